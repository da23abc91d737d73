// Package picker narrows the catalog by the active filters and draws one
// selectable unit uniformly at random.
package picker

import (
	"errors"
	"time"

	"github.com/hiddenclip/tubescope/pkg/pattern"
	"github.com/hiddenclip/tubescope/pkg/random"
)

// ErrNoEligible is returned when the active filters exclude every unit.
// It is a user-facing, recoverable condition.
var ErrNoEligible = errors.New("no eligible patterns match the active filters")

// FilterState is an immutable snapshot of the active filters, built by
// the caller and passed into every Select call. An empty category or name
// set matches everything.
type FilterState struct {
	// Categories holds the active category labels.
	Categories map[string]bool
	// Names holds active unit keys (see pattern.Unit.Key).
	Names map[string]bool
	// Age is the active age mode; AgeUnspecified means "any".
	Age pattern.Age
}

// NewFilterState builds a FilterState from flat lists.
func NewFilterState(categories, nameKeys []string, age pattern.Age) FilterState {
	fs := FilterState{Age: age}
	if len(categories) > 0 {
		fs.Categories = make(map[string]bool, len(categories))
		for _, c := range categories {
			fs.Categories[c] = true
		}
	}
	if len(nameKeys) > 0 {
		fs.Names = make(map[string]bool, len(nameKeys))
		for _, k := range nameKeys {
			fs.Names[k] = true
		}
	}
	return fs
}

// Eligible expands the catalog into units and keeps those passing every
// predicate for the given clock.
func Eligible(catalog []pattern.Pattern, fs FilterState, now time.Time) []pattern.Unit {
	var out []pattern.Unit
	for _, u := range pattern.Expand(catalog) {
		if !eligible(u, fs, now) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func eligible(u pattern.Unit, fs FilterState, now time.Time) bool {
	if len(fs.Categories) > 0 && !fs.Categories[u.Category] {
		return false
	}
	// Unspecified-age units match every mode; a set mode additionally
	// admits units carrying that same age.
	if fs.Age != pattern.AgeUnspecified && u.Age != pattern.AgeUnspecified && u.Age != fs.Age {
		return false
	}
	if len(fs.Names) > 0 && !fs.Names[u.Key()] {
		return false
	}
	// A year-set constraint gates future-dated content until its
	// smallest admissible year.
	if minYear, ok := u.Constraints.MinYear(); ok && now.Year() < minYear {
		return false
	}
	return true
}

// Select draws one eligible unit uniformly at random.
func Select(catalog []pattern.Pattern, fs FilterState, now time.Time, rng random.Source) (pattern.Unit, error) {
	units := Eligible(catalog, fs, now)
	if len(units) == 0 {
		return pattern.Unit{}, ErrNoEligible
	}
	return units[rng.IntN(len(units))], nil
}
