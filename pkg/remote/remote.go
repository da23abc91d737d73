// Package remote downloads community catalogs and maintains the local
// catalog cache file.
package remote

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/natefinch/atomic"

	"github.com/hiddenclip/tubescope/pkg/pattern"
)

const maxCatalogSize = 4 << 20 // 4 MiB is plenty for a pattern catalog

// Fetch downloads a catalog JSON array from url. Records failing
// validation are skipped and counted, like a file import. Fetched
// patterns are never user-created.
func Fetch(url string) ([]pattern.Pattern, int, error) {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = log.New(io.Discard, "", 0)

	resp, err := client.Get(url)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, 0, fmt.Errorf("catalog fetch failed: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogSize))
	if err != nil {
		return nil, 0, err
	}

	patterns, skipped, err := pattern.ParseList(body)
	if err != nil {
		return nil, 0, err
	}
	for i := range patterns {
		patterns[i].UserCreated = false
	}
	return patterns, skipped, nil
}

// SaveCache writes the catalog cache atomically so a crash mid-write
// never leaves a truncated file behind.
func SaveCache(path string, patterns []pattern.Pattern) error {
	data, err := pattern.Encode(patterns)
	if err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}
