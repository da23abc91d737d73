package pattern

import "time"

func date(s string) *time.Time {
	return ParseDate(s)
}

// defaultCatalog is the built-in set of default-filename patterns:
// the names cameras, phones and capture apps give their files when
// nobody bothers to rename them before uploading.
var defaultCatalog = []Pattern{
	{Name: "IMG", Specifiers: []string{"XXXX"}, Category: "camera"},
	{Name: "DSC", Specifiers: []string{"XXXX"}, Category: "camera", Age: AgeOld},
	{Name: "DSCN", Specifiers: []string{"XXXX"}, Category: "camera", Age: AgeOld},
	{Name: "DSCF", Specifiers: []string{"XXXX"}, Category: "camera", Age: AgeOld},
	{Name: "PICT", Specifiers: []string{"XXXX"}, Category: "camera", Age: AgeOld},
	{Name: "100", Specifiers: []string{"XXXX"}, Category: "camera", Age: AgeOld,
		Constraints: Constraints{Range: ParseRange("1-9999")}},
	{Name: "SAM", Specifiers: []string{"XXXX"}, Category: "phone", Age: AgeOld},
	{Name: "WP", Specifiers: []string{"YYYYMMDD"}, Category: "phone", Age: AgeOld,
		Constraints: Constraints{After: date("2010-11-08"), Before: date("2017-07-01")}},
	{Name: "VID", Specifiers: []string{"YYYYMMDD", "XXXX"}, Category: "phone"},
	{Name: "MVI", Specifiers: []string{"XXXX"}, Category: "camcorder", Age: AgeOld},
	{Name: "MOV", Specifiers: []string{"XXXX"}, Category: "camcorder", Age: AgeOld},
	{Name: "FILE", Specifiers: []string{"XXXX"}, Category: "camcorder", Age: AgeOld},
	{Name: "WIN", Specifiers: []string{"YYYYMMDD hh mm ss"}, Category: "webcam",
		Constraints: Constraints{After: date("2012-10-26")}},
	{Name: "DJI", Specifiers: []string{"XXXX"}, Category: "drone", Age: AgeNew,
		Constraints: Constraints{After: date("2013-01-01")}},
	{Name: "GOPR", Specifiers: []string{"XXXX"}, Category: "action cam"},
	{Name: "GX01", Specifiers: []string{"XXXX"}, Category: "action cam", Age: AgeNew},
	{Name: "WhatsApp Video", Specifiers: []string{"YYYY-MM-DD"}, Category: "messaging", Age: AgeNew,
		Constraints: Constraints{After: date("2013-08-01")}},
	{Name: "Screen Recording", Specifiers: []string{"YYYY-MM-DD"}, Category: "screen", Age: AgeNew},
	{Name: "Screenshot", Specifiers: []string{"YYYY-MM-DD"}, Category: "screen"},
	{Name: "Everyplay", Specifiers: []string{"XXXX"}, Category: "screen", Age: AgeOld,
		Constraints: Constraints{Years: []int{2013, 2014, 2015, 2016}}},
	{Name: "My Movie", Specifiers: []string{"X"}, Category: "misc"},
	{Name: "Untitled", Specifiers: []string{"X"}, Category: "misc"},
	{Name: "", Specifiers: []string{"MONTH DD, YYYY"}, Category: "misc", Age: AgeOld},
}

// Defaults returns a copy of the built-in catalog.
func Defaults() []Pattern {
	out := make([]Pattern, len(defaultCatalog))
	copy(out, defaultCatalog)
	return out
}

// Categories returns the distinct category labels of a catalog, in first
// appearance order.
func Categories(catalog []Pattern) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range catalog {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}
