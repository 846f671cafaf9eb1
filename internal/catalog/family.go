package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Variant is one downloadable style of a family, e.g. "regular" or "700italic".
type Variant struct {
	Name string
	URL  string
}

// Files keeps the variant files in the order the API lists them.
type Files []Variant

// UnmarshalJSON decodes a JSON object while preserving key order.
func (f *Files) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*f = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("catalog: files must be a JSON object")
	}

	var out Files
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("catalog: unexpected key %v", keyTok)
		}
		var url string
		if err := dec.Decode(&url); err != nil {
			return fmt.Errorf("catalog: variant %q: %w", key, err)
		}
		out = append(out, Variant{Name: key, URL: url})
	}
	*f = out
	return nil
}

// MarshalJSON encodes the files as a JSON object in list order.
func (f Files) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, v := range f {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(v.Name)
		if err != nil {
			return nil, err
		}
		u, err := json.Marshal(v.URL)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(u)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// Family is one entry of the webfonts list.
type Family struct {
	Family   string   `json:"family"`
	Category string   `json:"category,omitempty"`
	Variants []string `json:"variants,omitempty"`
	Subsets  []string `json:"subsets,omitempty"`
	Files    Files    `json:"files"`
}

// Preferred returns the "regular" file, or the first listed one.
func (f Family) Preferred() (Variant, bool) {
	for _, v := range f.Files {
		if v.Name == "regular" {
			return v, true
		}
	}
	if len(f.Files) == 0 {
		return Variant{}, false
	}
	return f.Files[0], true
}

// VariantNames returns the variant names in list order.
func (f Family) VariantNames() []string {
	names := make([]string, 0, len(f.Files))
	for _, v := range f.Files {
		names = append(names, v.Name)
	}
	return names
}

type webfontList struct {
	Items []Family `json:"items"`
}
