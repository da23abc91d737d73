// Package pattern holds the catalog data model: parameterized search-term
// templates, their constraints, and the default built-in catalog.
package pattern

import "strings"

// Age hints at how recent the footage produced by a pattern tends to be.
// It biases both the random date window used while rendering and the
// direction of the emitted date qualifier.
type Age string

const (
	AgeUnspecified Age = ""
	AgeNew         Age = "new"
	AgeOld         Age = "old"
)

// ParseAge maps a user-supplied string to an Age. "any" and the empty
// string both mean unspecified.
func ParseAge(s string) (Age, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return AgeUnspecified, true
	case "new":
		return AgeNew, true
	case "old":
		return AgeOld, true
	}
	return AgeUnspecified, false
}

// Pattern is one catalog entry: a base name plus zero or more specifier
// templates sharing the same category, age hint and constraints.
type Pattern struct {
	Name        string
	Specifiers  []string
	Category    string
	Age         Age
	Constraints Constraints
	UserCreated bool
}

// Valid reports whether the pattern can render to anything at all:
// it needs a non-empty name or at least one non-empty specifier.
func (p Pattern) Valid() bool {
	if p.Name != "" {
		return true
	}
	for _, s := range p.Specifiers {
		if s != "" {
			return true
		}
	}
	return false
}

// Unit is one selectable (name, specifier) pair. A pattern with several
// specifiers expands into one unit per specifier so each variant can be
// included or excluded independently.
type Unit struct {
	Pattern
	Specifier string
}

// Key identifies a unit for filtering purposes.
func (u Unit) Key() string {
	return u.Name + "|" + u.Specifier
}

// Expand flattens a catalog into selectable units. A pattern without
// specifiers yields a single unit with an empty specifier, which renders
// to the bare name.
func Expand(catalog []Pattern) []Unit {
	var units []Unit
	for _, p := range catalog {
		if len(p.Specifiers) == 0 {
			units = append(units, Unit{Pattern: p, Specifier: ""})
			continue
		}
		for _, s := range p.Specifiers {
			units = append(units, Unit{Pattern: p, Specifier: s})
		}
	}
	return units
}
