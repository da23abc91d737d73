package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hiddenclip/tubescope/pkg/pattern"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "tubescope.sqlite"))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUpsertAndList(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	p := pattern.Pattern{
		Name:       "GH01",
		Specifiers: []string{"XXXX"},
		Category:   "action cam",
		Age:        pattern.AgeNew,
		Constraints: pattern.Constraints{
			Range: pattern.ParseRange("1-9999"),
			After: pattern.ParseDate("2014-01-01"),
		},
	}
	if err := db.Upsert(ctx, p); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	got, err := db.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 pattern, got %d", len(got))
	}
	if got[0].Name != "GH01" || got[0].Age != pattern.AgeNew || !got[0].UserCreated {
		t.Fatalf("unexpected pattern: %+v", got[0])
	}
	if got[0].Constraints.Range == nil || got[0].Constraints.Range.Max != 9999 {
		t.Fatalf("range lost: %+v", got[0].Constraints.Range)
	}
	if got[0].Constraints.After == nil || got[0].Constraints.After.Year() != 2014 {
		t.Fatalf("after bound lost: %+v", got[0].Constraints.After)
	}
}

func TestUpsertMergesByNameAndAge(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	first := pattern.Pattern{Name: "VID", Specifiers: []string{"YYYYMMDD"}, Category: "phone"}
	second := pattern.Pattern{
		Name: "VID", Specifiers: []string{"XXXX", "YYYYMMDD"}, Category: "mobile",
		Constraints: pattern.Constraints{Before: pattern.ParseDate("2020-01-01")},
	}
	if err := db.Upsert(ctx, first); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if err := db.Upsert(ctx, second); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	got, err := db.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected a single merged row, got %d", len(got))
	}
	p := got[0]
	if len(p.Specifiers) != 2 || p.Specifiers[0] != "YYYYMMDD" || p.Specifiers[1] != "XXXX" {
		t.Fatalf("specifier union wrong: %#v", p.Specifiers)
	}
	if p.Category != "mobile" {
		t.Fatalf("incoming category should win, got %q", p.Category)
	}
	if p.Constraints.Before == nil {
		t.Fatal("incoming before bound should be kept")
	}
}

func TestDifferentAgesStaySeparate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.Upsert(ctx, pattern.Pattern{Name: "IMG", Specifiers: []string{"XXXX"}}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := db.Upsert(ctx, pattern.Pattern{Name: "IMG", Specifiers: []string{"XXXX"}, Age: pattern.AgeOld}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	got, err := db.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows for distinct (name, age) keys, got %d", len(got))
	}
}

func TestRemoveSpecifier(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	p := pattern.Pattern{Name: "VID", Specifiers: []string{"YYYYMMDD", "XXXX"}}
	if err := db.Upsert(ctx, p); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	removed, err := db.RemoveSpecifier(ctx, "VID", pattern.AgeUnspecified, "XXXX")
	if err != nil || !removed {
		t.Fatalf("remove specifier failed: removed=%v err=%v", removed, err)
	}

	got, _ := db.List(ctx)
	if len(got) != 1 || len(got[0].Specifiers) != 1 || got[0].Specifiers[0] != "YYYYMMDD" {
		t.Fatalf("unexpected state after removal: %#v", got)
	}

	removed, err = db.RemoveSpecifier(ctx, "VID", pattern.AgeUnspecified, "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed {
		t.Fatal("removing a missing specifier must report false")
	}
}

func TestRemove(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.Upsert(ctx, pattern.Pattern{Name: "IMG", Specifiers: []string{"XXXX"}}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	removed, err := db.Remove(ctx, "IMG", pattern.AgeUnspecified)
	if err != nil || !removed {
		t.Fatalf("remove failed: removed=%v err=%v", removed, err)
	}
	removed, err = db.Remove(ctx, "IMG", pattern.AgeUnspecified)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed {
		t.Fatal("second remove must report false")
	}
}

func TestImportReplaceExportRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	payload := []byte(`[
		{"name":"GH01","specifiers":["XXXX"],"category":"action cam","age":"new","range":"1-9999"},
		{"name":"Tape","specifiers":["MONTH YYYY"],"age":"old","before":"2005-12-31"}
	]`)
	report, err := db.Import(ctx, payload, ImportReplace)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if report.Imported != 2 || report.Skipped != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}

	exported, err := db.Export(ctx)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if err := db.ReplaceAll(ctx, nil); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	report, err = db.Import(ctx, exported, ImportReplace)
	if err != nil || report.Imported != 2 {
		t.Fatalf("re-import failed: %+v %v", report, err)
	}

	got, _ := db.List(ctx)
	if len(got) != 2 {
		t.Fatalf("expected 2 patterns after round trip, got %d", len(got))
	}
	for _, p := range got {
		if !p.UserCreated {
			t.Fatalf("imported pattern must be flagged user-created: %+v", p)
		}
	}
}

func TestImportReplaceMergesDuplicateKeys(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	payload := []byte(`[
		{"name":"VID","specifiers":["YYYYMMDD"],"category":"phone"},
		{"name":"VID","specifiers":["XXXX"],"category":"mobile"}
	]`)
	report, err := db.Import(ctx, payload, ImportReplace)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if report.Imported != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}

	got, err := db.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("duplicate keys must collapse into one row, got %d", len(got))
	}
	p := got[0]
	if len(p.Specifiers) != 2 || p.Specifiers[0] != "YYYYMMDD" || p.Specifiers[1] != "XXXX" {
		t.Fatalf("specifier union wrong: %#v", p.Specifiers)
	}
	if p.Category != "mobile" {
		t.Fatalf("the later record's category should win, got %q", p.Category)
	}
}

func TestImportCountsInvalidRecords(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	payload := []byte(`[
		{"name":"IMG","specifiers":["XXXX"]},
		{"name":"","specifiers":[""]},
		{}
	]`)
	report, err := db.Import(ctx, payload, ImportMerge)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if report.Imported != 1 || report.Skipped != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestImportRejectsBadPayload(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.Upsert(ctx, pattern.Pattern{Name: "IMG", Specifiers: []string{"XXXX"}}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if _, err := db.Import(ctx, []byte("not json"), ImportReplace); err == nil {
		t.Fatal("expected an error for a bad payload")
	}
	got, _ := db.List(ctx)
	if len(got) != 1 {
		t.Fatal("a failed import must leave the store untouched")
	}
}

func TestParseImportMode(t *testing.T) {
	if _, err := ParseImportMode("merge"); err != nil {
		t.Fatalf("merge must parse: %v", err)
	}
	if _, err := ParseImportMode("replace"); err != nil {
		t.Fatalf("replace must parse: %v", err)
	}
	if _, err := ParseImportMode("upsert"); err == nil {
		t.Fatal("unknown mode must fail")
	}
}
