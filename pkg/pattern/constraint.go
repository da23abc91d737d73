package pattern

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the textual form for all constraint and qualifier dates.
const DateLayout = "2006-01-02"

// Constraints narrow how a pattern may render and when it is eligible.
// All of them are advisory: a missing or malformed constraint falls back
// to the renderer's defaults, never to an error, since catalogs may be
// hand-edited.
type Constraints struct {
	// Years is the admissible-year set. When non-empty, year tokens draw
	// from it instead of from the age-based date window, and the pattern
	// only becomes eligible once the clock reaches the smallest year.
	Years []int

	// Range bounds every numeric-run placeholder in the template.
	Range *Range

	// Before and After are explicit calendar-date bounds that override
	// the age heuristic when building the date qualifier.
	Before *time.Time
	After  *time.Time
}

// Empty reports whether no constraint is set.
func (c Constraints) Empty() bool {
	return len(c.Years) == 0 && c.Range == nil && c.Before == nil && c.After == nil
}

// MinYear returns the smallest admissible year, if any.
func (c Constraints) MinYear() (int, bool) {
	if len(c.Years) == 0 {
		return 0, false
	}
	min := c.Years[0]
	for _, y := range c.Years[1:] {
		if y < min {
			min = y
		}
	}
	return min, true
}

// String summarizes the set constraints for listings.
func (c Constraints) String() string {
	var parts []string
	if len(c.Years) > 0 {
		ys := make([]string, len(c.Years))
		for i, y := range c.Years {
			ys[i] = strconv.Itoa(y)
		}
		parts = append(parts, "years="+strings.Join(ys, ","))
	}
	if c.Range != nil {
		parts = append(parts, "range="+c.Range.String())
	}
	if c.Before != nil {
		parts = append(parts, "before="+c.Before.Format(DateLayout))
	}
	if c.After != nil {
		parts = append(parts, "after="+c.After.Format(DateLayout))
	}
	return strings.Join(parts, " ")
}

// Range is an inclusive integer bound for numeric-run placeholders.
// Hex marks ranges whose textual form carried hex letters; such ranges
// render their values in base 16.
type Range struct {
	Min, Max int
	Hex      bool
}

// ParseRange parses a "min-max" bound. If either side contains a hex
// letter the pair is read base-16, else base-10. Anything malformed
// yields nil, meaning "no constraint".
func ParseRange(s string) *Range {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return nil
	}
	base := 10
	if strings.ContainsAny(s, "abcdefABCDEF") {
		base = 16
	}
	min, err := strconv.ParseInt(strings.TrimSpace(parts[0]), base, 32)
	if err != nil {
		return nil
	}
	max, err := strconv.ParseInt(strings.TrimSpace(parts[1]), base, 32)
	if err != nil {
		return nil
	}
	if min > max {
		return nil
	}
	return &Range{Min: int(min), Max: int(max), Hex: base == 16}
}

// Width is the digit count of Max in the range's base; rendered values
// are zero-padded to it.
func (r *Range) Width() int {
	if r.Hex {
		return len(strconv.FormatInt(int64(r.Max), 16))
	}
	return len(strconv.Itoa(r.Max))
}

// Format renders a drawn value zero-padded to the range's width.
func (r *Range) Format(n int) string {
	if r.Hex {
		return fmt.Sprintf("%0*X", r.Width(), n)
	}
	return fmt.Sprintf("%0*d", r.Width(), n)
}

func (r *Range) String() string {
	if r.Hex {
		return fmt.Sprintf("%X-%X", r.Min, r.Max)
	}
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// ParseDate parses a YYYY-MM-DD bound; malformed input yields nil.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
