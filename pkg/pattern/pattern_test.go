package pattern

import (
	"errors"
	"testing"
)

func TestExpandUnits(t *testing.T) {
	catalog := []Pattern{
		{Name: "VID", Specifiers: []string{"YYYYMMDD", "XXXX"}},
		{Name: "Bare"},
		{Name: "IMG", Specifiers: []string{"XXXX"}},
	}
	units := Expand(catalog)
	if len(units) != 4 {
		t.Fatalf("expected 4 units, got %d", len(units))
	}
	if units[0].Key() != "VID|YYYYMMDD" || units[1].Key() != "VID|XXXX" {
		t.Fatalf("unexpected keys: %s, %s", units[0].Key(), units[1].Key())
	}
	if units[2].Specifier != "" {
		t.Fatalf("bare pattern should expand to an empty specifier, got %q", units[2].Specifier)
	}
}

func TestValid(t *testing.T) {
	if (Pattern{}).Valid() {
		t.Fatal("empty pattern should be invalid")
	}
	if (Pattern{Specifiers: []string{""}}).Valid() {
		t.Fatal("pattern with only empty specifiers should be invalid")
	}
	if !(Pattern{Name: "IMG"}).Valid() {
		t.Fatal("named pattern should be valid")
	}
	if !(Pattern{Specifiers: []string{"XXXX"}}).Valid() {
		t.Fatal("pattern with a specifier should be valid")
	}
}

func TestParseListRejectsBadPayloads(t *testing.T) {
	if _, _, err := ParseList([]byte("{not json")); !errors.Is(err, ErrNotJSON) {
		t.Fatalf("expected ErrNotJSON, got %v", err)
	}
	if _, _, err := ParseList([]byte(`{"name":"x"}`)); !errors.Is(err, ErrNotArray) {
		t.Fatalf("expected ErrNotArray, got %v", err)
	}
}

func TestParseListSkipsInvalidRecords(t *testing.T) {
	payload := []byte(`[
		{"name":"IMG","specifiers":["XXXX"],"category":"camera"},
		{"name":"","specifiers":[""]},
		{"specifiers":["YYYY"],"age":"old","range":"10-12","before":"2015-01-01"}
	]`)
	patterns, skipped, err := ParseList(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped != 1 {
		t.Fatalf("expected 1 skipped record, got %d", skipped)
	}
	if len(patterns) != 2 {
		t.Fatalf("expected 2 patterns, got %d", len(patterns))
	}
	p := patterns[1]
	if p.Age != AgeOld {
		t.Fatalf("expected old age, got %q", p.Age)
	}
	if p.Constraints.Range == nil || p.Constraints.Range.Min != 10 || p.Constraints.Range.Max != 12 {
		t.Fatalf("range not parsed: %+v", p.Constraints.Range)
	}
	if p.Constraints.Before == nil || p.Constraints.Before.Year() != 2015 {
		t.Fatalf("before bound not parsed: %+v", p.Constraints.Before)
	}
}

func TestParseListDropsMalformedConstraints(t *testing.T) {
	payload := []byte(`[{"name":"IMG","specifiers":["XXXX"],"range":"banana","before":"soon","age":"ancient"}]`)
	patterns, skipped, err := ParseList(payload)
	if err != nil || skipped != 0 || len(patterns) != 1 {
		t.Fatalf("unexpected result: %v %d %d", err, skipped, len(patterns))
	}
	p := patterns[0]
	if !p.Constraints.Empty() {
		t.Fatalf("malformed constraints should be dropped, got %s", p.Constraints.String())
	}
	if p.Age != AgeUnspecified {
		t.Fatalf("unknown age should default to unspecified, got %q", p.Age)
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	in := []Pattern{
		{Name: "IMG", Specifiers: []string{"XXXX"}, Category: "camera", Age: AgeOld,
			Constraints: Constraints{Years: []int{2012, 2013}, Range: ParseRange("0-99"),
				Before: ParseDate("2015-01-01"), After: ParseDate("2010-01-01")},
			UserCreated: true},
	}
	data, err := Encode(in)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	out, skipped, err := ParseList(data)
	if err != nil || skipped != 0 {
		t.Fatalf("parse failed: %v (skipped %d)", err, skipped)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 pattern, got %d", len(out))
	}
	got := out[0]
	if got.Name != "IMG" || got.Category != "camera" || got.Age != AgeOld || !got.UserCreated {
		t.Fatalf("fields lost in round trip: %+v", got)
	}
	if got.Constraints.String() != in[0].Constraints.String() {
		t.Fatalf("constraints lost: %s vs %s", got.Constraints.String(), in[0].Constraints.String())
	}
}

func TestDefaultsAreValid(t *testing.T) {
	for _, p := range Defaults() {
		if !p.Valid() {
			t.Fatalf("invalid default pattern: %+v", p)
		}
	}
	if len(Categories(Defaults())) == 0 {
		t.Fatal("expected some default categories")
	}
}
