package storage

import (
	"context"
	"fmt"

	"github.com/hiddenclip/tubescope/pkg/pattern"
)

// ImportMode selects how an import interacts with the stored set.
type ImportMode string

const (
	// ImportMerge unions incoming records into the store by (name, age).
	ImportMerge ImportMode = "merge"
	// ImportReplace swaps the whole stored set for the payload.
	ImportReplace ImportMode = "replace"
)

// ParseImportMode validates a --mode flag value.
func ParseImportMode(s string) (ImportMode, error) {
	switch ImportMode(s) {
	case ImportMerge, ImportReplace:
		return ImportMode(s), nil
	}
	return "", fmt.Errorf("unknown import mode %q (want merge or replace)", s)
}

// ImportReport summarizes one import attempt.
type ImportReport struct {
	Imported int
	Skipped  int
}

// Import loads a JSON array of patterns into the store. A payload that is
// not a JSON array fails the whole attempt and leaves the store
// untouched; individually invalid records are skipped and counted. Every
// imported record is force-flagged user-created.
func (d *DB) Import(ctx context.Context, data []byte, mode ImportMode) (ImportReport, error) {
	patterns, skipped, err := pattern.ParseList(data)
	if err != nil {
		return ImportReport{}, err
	}
	for i := range patterns {
		patterns[i].UserCreated = true
	}

	switch mode {
	case ImportReplace:
		if err := d.ReplaceAll(ctx, patterns); err != nil {
			return ImportReport{}, err
		}
	default:
		for _, p := range patterns {
			if err := d.Upsert(ctx, p); err != nil {
				return ImportReport{}, err
			}
		}
	}
	return ImportReport{Imported: len(patterns), Skipped: skipped}, nil
}

// Export serializes the stored set to the JSON array import understands.
func (d *DB) Export(ctx context.Context) ([]byte, error) {
	patterns, err := d.List(ctx)
	if err != nil {
		return nil, err
	}
	return pattern.Encode(patterns)
}
