package pattern

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/tidwall/gjson"
)

// wirePattern is the JSON shape patterns travel in: export files, import
// payloads and remote catalogs all use the same array-of-objects form.
type wirePattern struct {
	Name        string   `json:"name"`
	Specifiers  []string `json:"specifiers"`
	Category    string   `json:"category,omitempty"`
	Age         string   `json:"age,omitempty"`
	Years       []int    `json:"years,omitempty"`
	Range       string   `json:"range,omitempty"`
	Before      string   `json:"before,omitempty"`
	After       string   `json:"after,omitempty"`
	UserCreated bool     `json:"user_created,omitempty"`
}

func (p Pattern) wire() wirePattern {
	w := wirePattern{
		Name:        p.Name,
		Specifiers:  p.Specifiers,
		Category:    p.Category,
		Age:         string(p.Age),
		Years:       p.Constraints.Years,
		UserCreated: p.UserCreated,
	}
	if p.Constraints.Range != nil {
		w.Range = p.Constraints.Range.String()
	}
	if p.Constraints.Before != nil {
		w.Before = p.Constraints.Before.Format(DateLayout)
	}
	if p.Constraints.After != nil {
		w.After = p.Constraints.After.Format(DateLayout)
	}
	return w
}

// MarshalJSON emits the wire form.
func (p Pattern) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.wire())
}

// Encode serializes a catalog to the indented JSON array used by export
// files and the catalog cache.
func Encode(catalog []Pattern) ([]byte, error) {
	if catalog == nil {
		catalog = []Pattern{}
	}
	return json.MarshalIndent(catalog, "", "  ")
}

var (
	ErrNotJSON  = errors.New("payload is not valid JSON")
	ErrNotArray = errors.New("payload must be a JSON array of patterns")
)

// ParseList reads a JSON array of patterns leniently: missing or mistyped
// fields default, malformed constraint strings are dropped, and records
// with neither a name nor a non-empty specifier are skipped and counted.
// Only a non-JSON or non-array payload is an error.
func ParseList(data []byte) (patterns []Pattern, skipped int, err error) {
	if !gjson.ValidBytes(data) {
		return nil, 0, ErrNotJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, 0, ErrNotArray
	}
	for _, rec := range root.Array() {
		p := Pattern{
			Name:        rec.Get("name").String(),
			Category:    rec.Get("category").String(),
			UserCreated: rec.Get("user_created").Bool(),
		}
		if age, ok := ParseAge(rec.Get("age").String()); ok {
			p.Age = age
		}
		for _, s := range rec.Get("specifiers").Array() {
			p.Specifiers = append(p.Specifiers, s.String())
		}
		for _, y := range rec.Get("years").Array() {
			if y.Int() > 0 {
				p.Constraints.Years = append(p.Constraints.Years, int(y.Int()))
			}
		}
		p.Constraints.Range = ParseRange(rec.Get("range").String())
		p.Constraints.Before = ParseDate(rec.Get("before").String())
		p.Constraints.After = ParseDate(rec.Get("after").String())
		if !p.Valid() {
			skipped++
			continue
		}
		patterns = append(patterns, p)
	}
	return patterns, skipped, nil
}

// LoadFile reads a catalog file written by Encode. A missing file is not
// an error; it just contributes nothing.
func LoadFile(path string) ([]Pattern, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	patterns, _, err := ParseList(data)
	return patterns, err
}
