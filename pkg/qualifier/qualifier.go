// Package qualifier derives the before:/after: upload-date token appended
// to the rendered search text.
package qualifier

import (
	"fmt"

	"github.com/hiddenclip/tubescope/pkg/pattern"
	"github.com/hiddenclip/tubescope/pkg/render"
)

// Build returns the date qualifier for a rendered pattern, possibly
// empty. First match wins:
//
//  1. a rendered year token anchors an after: bound at January 1 of that
//     year
//  2. an explicit before bound
//  3. an explicit after bound
//  4. age "old" bounds before the chosen date
//  5. age "new" bounds after one year before the chosen date
//
// Anything else emits no qualifier, which degrades to a plain search.
func Build(cs pattern.Constraints, age pattern.Age, res render.Result) string {
	switch {
	case res.Year != 0:
		return fmt.Sprintf("after:%04d-01-01", res.Year)
	case cs.Before != nil:
		return "before:" + cs.Before.Format(pattern.DateLayout)
	case cs.After != nil:
		return "after:" + cs.After.Format(pattern.DateLayout)
	case age == pattern.AgeOld:
		return "before:" + res.Date.Format(pattern.DateLayout)
	case age == pattern.AgeNew:
		return "after:" + res.Date.AddDate(-1, 0, 0).Format(pattern.DateLayout)
	}
	return ""
}
