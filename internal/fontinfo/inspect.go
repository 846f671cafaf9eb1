package fontinfo

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/crypto/sha3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"seehuhn.de/go/sfnt"

	"github.com/nao1215/deckkit/internal/model"
)

const (
	// StyleNormal and StyleItalic are CSS font-style values.
	StyleNormal = "normal"
	StyleItalic = "italic"

	// WeightNormal and WeightBold are the CSS font-weight keywords.
	WeightNormal = "normal"
	WeightBold   = "bold"
)

// Digest returns the hex encoded SHA3-256 digest of data.
func Digest(data []byte) string {
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Inspect reads the font file at path. An error is returned only when the
// file cannot be read; unparseable fonts get file-name based metadata.
func Inspect(path string) (model.EmbeddedFont, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is a file deckkit just wrote
	if err != nil {
		return model.EmbeddedFont{}, fmt.Errorf("failed to read font file: %w", err)
	}

	name := filepath.Base(path)
	ef := model.EmbeddedFont{
		Path:     path,
		FileName: name,
		Size:     int64(len(data)),
		SHA3:     Digest(data),
	}

	if f, err := parse(data); err == nil {
		ef.Parsed = true
		ef.Family = f.FamilyName
		ef.Subfamily = f.Subfamily()
		ef.PostScriptName = f.PostScriptName()
		ef.Weight = CSSWeight(int(f.Weight), f.IsBold)
		ef.Style = StyleNormal
		if f.IsItalic || f.IsOblique {
			ef.Style = StyleItalic
		}
	}
	if ef.Family == "" {
		ef.Family = FamilyFromFileName(name)
	}
	if ef.Weight == "" {
		ef.Weight = WeightFromName(name)
	}
	if ef.Style == "" {
		ef.Style = StyleFromName(name)
	}
	return ef, nil
}

// parse guards against parser panics on hostile input. Embedded fonts come
// from untrusted documents.
func parse(data []byte) (f *sfnt.Font, err error) {
	defer func() {
		if r := recover(); r != nil {
			f, err = nil, fmt.Errorf("sfnt parser panic: %v", r)
		}
	}()
	return sfnt.Read(bytes.NewReader(data))
}

// CSSWeight converts an OS/2 weight class into a CSS font-weight value.
// A zero class falls back to the bold flag.
func CSSWeight(class int, bold bool) string {
	switch {
	case class == 0 && bold:
		return WeightBold
	case class == 0, class == 400:
		return WeightNormal
	case class == 700:
		return WeightBold
	default:
		return strconv.Itoa(class)
	}
}

var separators = regexp.MustCompile(`[-_]+`)

// FamilyFromFileName guesses a family name from a font file name:
// "open_sans-bold.fntdata" becomes "Open Sans Bold".
func FamilyFromFileName(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Join(strings.Fields(separators.ReplaceAllString(base, " ")), " ")
	if base == "" {
		return "Unknown Font"
	}
	// a Caser holds state, so one is made per call
	return cases.Title(language.Und, cases.NoLower).String(base)
}

// weightKeywords is checked in order. Compound keywords come first so that
// "semibold" is not reported as bold.
var weightKeywords = []struct {
	keywords []string
	weight   string
}{
	{[]string{"extrabold", "ultrabold"}, "800"},
	{[]string{"semibold"}, "600"},
	{[]string{"extralight", "ultralight"}, "200"},
	{[]string{"bold", "black", "heavy"}, WeightBold},
	{[]string{"light", "thin"}, "300"},
	{[]string{"medium"}, "500"},
}

// WeightFromName guesses a CSS font-weight from keywords in a file name.
func WeightFromName(name string) string {
	lower := strings.ToLower(name)
	for _, w := range weightKeywords {
		for _, k := range w.keywords {
			if strings.Contains(lower, k) {
				return w.weight
			}
		}
	}
	return WeightNormal
}

// StyleFromName returns italic when the file name mentions italic or
// oblique.
func StyleFromName(name string) string {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "italic") || strings.Contains(lower, "oblique") {
		return StyleItalic
	}
	return StyleNormal
}
