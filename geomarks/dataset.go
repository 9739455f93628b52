package geomarks

import (
	"bytes"
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Landmark is a single point of interest in the base artwork's normalized frame.
type Landmark struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Name string  `json:"name"`
}

// Category (a "geomark") is a named group of landmarks sharing one marker icon.
type Category struct {
	Name      string
	Landmarks []Landmark
}

type categoryBody struct {
	Landmarks []Landmark `json:"landmarks"`
}

// MarshalJSON writes the one-key object form {"<name>": {"landmarks": [...]}}.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]categoryBody{c.Name: {Landmarks: c.Landmarks}})
}

// UnmarshalJSON reads the one-key object form.
func (c *Category) UnmarshalJSON(data []byte) error {
	var raw map[string]categoryBody
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return errors.Errorf("geomark must have exactly one key, got %d", len(raw))
	}
	for name, body := range raw {
		c.Name = name
		c.Landmarks = body.Landmarks
	}
	return nil
}

// Dataset is the ordered list of categories supplied to the view.
type Dataset []Category

// Names returns the category names in dataset order.
func (d Dataset) Names() []string {
	names := make([]string, 0, len(d))
	for _, c := range d {
		names = append(names, c.Name)
	}
	return names
}

// Filter keeps the categories present in sel, preserving order. A nil selection
// keeps everything.
func (d Dataset) Filter(sel Selection) Dataset {
	if sel == nil {
		return d
	}
	out := make(Dataset, 0, len(d))
	for _, c := range d {
		if sel.Has(c.Name) {
			out = append(out, c)
		}
	}
	return out
}

// Selection is the set of visible category names.
type Selection map[string]struct{}

// Select builds a selection from names.
func Select(names ...string) Selection {
	s := make(Selection, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// All selects every category of d.
func All(d Dataset) Selection {
	return Select(d.Names()...)
}

func (s Selection) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Toggle flips one name in place.
func (s Selection) Toggle(name string) {
	if s.Has(name) {
		delete(s, name)
		return
	}
	s[name] = struct{}{}
}

// Key returns a stable identifier for a set of category names.
func Key(names []string) string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}

type document struct {
	Geomarks Dataset `json:"geomarks"`
}

// DecodeDataset reads a data.json document: {"geomarks": [...]}.
func DecodeDataset(data []byte) (Dataset, error) {
	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decoding dataset")
	}
	return doc.Geomarks, nil
}

// LoadDataset reads and decodes a data.json file.
func LoadDataset(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading dataset %s", path)
	}
	ds, err := DecodeDataset(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return ds, nil
}
