// Package search assembles the final percent-encoded search URL.
package search

import (
	"net/url"

	"github.com/hiddenclip/tubescope/pkg/pattern"
)

const (
	// DefaultBaseURL is the search endpoint queries are appended to.
	DefaultBaseURL = "https://www.youtube.com/results"
	// DefaultSortParam carries the optional sort-order hint.
	DefaultSortParam = "sp"

	sortNewest = "CAI"
	sortOldest = "CAISAhAB"
)

// Assemble glues rendered text and qualifier into one search_query value
// and appends the age-based sort hint. The query string is built by hand
// so search_query stays the first parameter.
func Assemble(baseURL, sortParam, text, qualifier string, age pattern.Age) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if sortParam == "" {
		sortParam = DefaultSortParam
	}
	q := text
	if qualifier != "" {
		if q != "" {
			q += " "
		}
		q += qualifier
	}
	out := baseURL + "?search_query=" + url.QueryEscape(q)
	switch age {
	case pattern.AgeNew:
		out += "&" + sortParam + "=" + url.QueryEscape(sortNewest)
	case pattern.AgeOld:
		out += "&" + sortParam + "=" + url.QueryEscape(sortOldest)
	}
	return out
}
