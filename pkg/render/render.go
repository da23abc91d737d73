// Package render fills a specifier template's placeholder tokens with
// concrete values, honoring the pattern's constraints and age hint.
package render

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/hiddenclip/tubescope/pkg/pattern"
	"github.com/hiddenclip/tubescope/pkg/random"
)

// tokenRe matches every recognized placeholder token. Alternatives are
// ordered by specificity so a combined grouping is consumed before any of
// its sub-tokens; the template is scanned left-to-right exactly once.
var tokenRe = regexp.MustCompile(
	`MONTH DD, YYYY|YYYY-MM-DD|YYYY MM DD|YYYYMMDD|YYYY|MONTH|MON|MM|DD|hhmmss|hh|mm|ss|X{1,4}`)

// Result carries the rendered text plus the date the calendar/clock
// tokens derived from, so the qualifier builder can anchor its bounds.
type Result struct {
	Text string
	// Date is the chosen rendering date, whether or not any token used it.
	Date time.Time
	// Year is the year written by a year-bearing token, 0 when the
	// template had none.
	Year int
}

// Render replaces every recognized token in template. Unrecognized text
// passes through verbatim. The rendering date comes from overrideDate if
// given, otherwise from a window derived from the age hint and any
// explicit date bounds; a year-set constraint overrides the year in
// either case. All numeric runs share the range constraint when one is
// present.
func Render(template string, cs pattern.Constraints, age pattern.Age, overrideDate *time.Time, now time.Time, rng random.Source) Result {
	date := chooseDate(cs, age, overrideDate, now, rng)
	res := Result{Date: date}
	res.Text = tokenRe.ReplaceAllStringFunc(template, func(tok string) string {
		switch tok {
		case "MONTH DD, YYYY":
			res.Year = date.Year()
			return fmt.Sprintf("%s %02d, %04d", date.Month(), date.Day(), date.Year())
		case "YYYY-MM-DD":
			res.Year = date.Year()
			return date.Format("2006-01-02")
		case "YYYY MM DD":
			res.Year = date.Year()
			return date.Format("2006 01 02")
		case "YYYYMMDD":
			res.Year = date.Year()
			return date.Format("20060102")
		case "YYYY":
			res.Year = date.Year()
			return fmt.Sprintf("%04d", date.Year())
		case "MONTH":
			return date.Month().String()
		case "MON":
			return date.Format("Jan")
		case "MM":
			return fmt.Sprintf("%02d", int(date.Month()))
		case "DD":
			return fmt.Sprintf("%02d", date.Day())
		case "hhmmss":
			return date.Format("150405")
		case "hh":
			return date.Format("15")
		case "mm":
			return date.Format("04")
		case "ss":
			return date.Format("05")
		}
		if strings.HasPrefix(tok, "X") {
			return renderRun(len(tok), cs.Range, rng)
		}
		return tok
	})
	return res
}

// renderRun draws a value for a run of n placeholder characters. The
// range constraint wins over the bare digit-count default; without one,
// the value is an n-digit zero-padded integer.
func renderRun(n int, r *pattern.Range, rng random.Source) string {
	if r != nil {
		return r.Format(r.Min + rng.IntN(r.Max-r.Min+1))
	}
	limit := 1
	for i := 0; i < n; i++ {
		limit *= 10
	}
	return fmt.Sprintf("%0*d", n, rng.IntN(limit))
}

// chooseDate picks the date all calendar and clock tokens derive from.
func chooseDate(cs pattern.Constraints, age pattern.Age, overrideDate *time.Time, now time.Time, rng random.Source) time.Time {
	var d time.Time
	if overrideDate != nil {
		d = *overrideDate
	} else {
		start, end := dateWindow(cs, age, now)
		span := int(end.Sub(start) / time.Second)
		if span <= 0 {
			d = end
		} else {
			d = start.Add(time.Duration(rng.IntN(span+1)) * time.Second)
		}
	}
	if len(cs.Years) > 0 {
		y := cs.Years[rng.IntN(len(cs.Years))]
		day := d.Day()
		// Keep the day unless it does not exist in the substituted year,
		// e.g. Feb 29 mapped onto a non-leap year.
		if last := time.Date(y, d.Month()+1, 0, 0, 0, 0, 0, d.Location()).Day(); day > last {
			day = last
		}
		d = time.Date(y, d.Month(), day, d.Hour(), d.Minute(), d.Second(), 0, d.Location())
	}
	return d
}

// dateWindow derives the uniform draw window: the past 365 days for
// "new", the past 10 years otherwise, with explicit date bounds replacing
// the matching edge when they tighten it.
func dateWindow(cs pattern.Constraints, age pattern.Age, now time.Time) (time.Time, time.Time) {
	end := now
	if b := cs.Before; b != nil && b.Before(end) {
		end = *b
	}
	days := 3650
	if age == pattern.AgeNew {
		days = 365
	}
	start := end.AddDate(0, 0, -days)
	if a := cs.After; a != nil && a.After(start) && a.Before(end) {
		start = *a
	}
	return start, end
}
