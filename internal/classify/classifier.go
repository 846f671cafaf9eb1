package classify

import (
	"strings"

	"github.com/nao1215/deckkit/internal/model"
)

// SystemFonts are families installed with common operating systems and
// the generic CSS families.
var SystemFonts = []string{
	// Windows
	"Arial", "Calibri", "Cambria", "Candara", "Comic Sans MS", "Consolas", "Constantia",
	"Corbel", "Courier New", "Georgia", "Impact", "Lucida Console", "Lucida Sans Unicode",
	"Microsoft Sans Serif", "Palatino Linotype", "Segoe UI", "Tahoma", "Times New Roman",
	"Trebuchet MS", "Verdana", "Wingdings",

	// macOS
	"Avenir", "Avenir Next", "Helvetica", "Helvetica Neue", "Menlo", "Monaco", "Optima",
	"Palatino", "San Francisco", "Times", "Zapfino", "游ゴシック", "Yu Gothic", "YuGothic",
	"Hiragino Sans", "Hiragino Kaku Gothic", "Hiragino Mincho Pro", "STSong",
	"STHeiti", "STKaiti", "STFangsong", "PingFang SC", "PingFang HK", "PingFang TC",

	// Linux
	"Liberation Sans", "Liberation Serif", "Liberation Mono", "DejaVu Sans",
	"DejaVu Serif", "DejaVu Sans Mono", "Ubuntu", "Noto Sans", "Noto Serif",

	// CSS generic families
	"serif", "sans-serif", "monospace", "cursive", "fantasy",
}

// CommercialMarkers are lowercase substrings identifying commercial fonts.
var CommercialMarkers = []string{"adobe", "linotype", "monotype", "myfonts"}

// Classifier assigns categories to font names. The zero value is not
// usable; call New.
type Classifier struct {
	system  []string
	markers []string
}

// New returns a classifier using SystemFonts and CommercialMarkers.
func New() *Classifier {
	return NewWithTables(SystemFonts, CommercialMarkers)
}

// NewWithTables returns a classifier using custom tables. Entries are
// compared case-insensitively.
func NewWithTables(system, markers []string) *Classifier {
	c := &Classifier{
		system:  make([]string, 0, len(system)),
		markers: make([]string, 0, len(markers)),
	}
	for _, s := range system {
		c.system = append(c.system, normalize(s))
	}
	for _, m := range markers {
		c.markers = append(c.markers, normalize(m))
	}
	return c
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Classify returns the category of one font name.
func (c *Classifier) Classify(name string) model.Category {
	n := normalize(name)
	if c.isSystem(n) {
		return model.CategorySystem
	}
	for _, m := range c.markers {
		if strings.Contains(n, m) {
			return model.CategoryCommercial
		}
	}
	return model.CategoryFree
}

func (c *Classifier) isSystem(n string) bool {
	for _, s := range c.system {
		if n == s {
			return true
		}
		// the empty string is contained in everything
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// Partition splits fonts into one set per category. Every category key is
// present in the result, and each name lands in exactly one set.
func (c *Classifier) Partition(fonts model.FontSet) map[model.Category]model.FontSet {
	buckets := make(map[model.Category]model.FontSet, len(model.Categories))
	for _, cat := range model.Categories {
		buckets[cat] = model.NewFontSet()
	}
	for name := range fonts {
		buckets[c.Classify(name)].Add(name)
	}
	return buckets
}

// IsCommercial reports whether name falls into the commercial bucket.
func (c *Classifier) IsCommercial(name string) bool {
	return c.Classify(name) == model.CategoryCommercial
}
