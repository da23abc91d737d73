// Package engine runs one full find action: select a unit, render its
// specifier, build the date qualifier and assemble the search URL. It is
// a pure function of (catalog, filters, clock, randomness).
package engine

import (
	"time"

	"github.com/hiddenclip/tubescope/pkg/pattern"
	"github.com/hiddenclip/tubescope/pkg/picker"
	"github.com/hiddenclip/tubescope/pkg/qualifier"
	"github.com/hiddenclip/tubescope/pkg/random"
	"github.com/hiddenclip/tubescope/pkg/render"
	"github.com/hiddenclip/tubescope/pkg/search"
)

// Options tune a find run. Zero values fall back to the defaults: the
// real clock, a fresh random source and the default search endpoint.
type Options struct {
	BaseURL   string
	SortParam string
	// Override pins the rendering date instead of drawing one.
	Override *time.Time
	Rand     random.Source
	Now      func() time.Time
}

// Result is one produced search.
type Result struct {
	Unit      pattern.Unit
	Text      string
	Qualifier string
	URL       string
	Date      time.Time
}

// Find runs the whole pipeline once. It returns picker.ErrNoEligible
// when the filters exclude everything.
func Find(catalog []pattern.Pattern, fs picker.FilterState, opts Options) (Result, error) {
	now := time.Now()
	if opts.Now != nil {
		now = opts.Now()
	}
	rng := opts.Rand
	if rng == nil {
		rng = random.New()
	}

	unit, err := picker.Select(catalog, fs, now, rng)
	if err != nil {
		return Result{}, err
	}

	rendered := render.Render(unit.Specifier, unit.Constraints, unit.Age, opts.Override, now, rng)

	// An empty specifier renders to the bare name, with no trailing
	// separator.
	text := unit.Name
	if rendered.Text != "" {
		if text != "" {
			text += " "
		}
		text += rendered.Text
	}

	qual := qualifier.Build(unit.Constraints, unit.Age, rendered)
	u := search.Assemble(opts.BaseURL, opts.SortParam, text, qual, unit.Age)

	return Result{
		Unit:      unit,
		Text:      text,
		Qualifier: qual,
		URL:       u,
		Date:      rendered.Date,
	}, nil
}
