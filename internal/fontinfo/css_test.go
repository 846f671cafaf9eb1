package fontinfo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/deckkit/internal/model"
)

func TestFontFace(t *testing.T) {
	t.Parallel()

	f := model.EmbeddedFont{Family: "Brand's Sans", Weight: "600", Style: StyleItalic}
	got := FontFace(f, "brand.otf")

	for _, want := range []string{
		`font-family: 'Brand\'s Sans';`,
		"font-weight: 600;",
		"font-style: italic;",
		"src: url('brand.otf') format('opentype');",
		"font-display: swap;",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("rule lacks %q:\n%s", want, got)
		}
	}
}

func TestWriteStylesheet(t *testing.T) {
	t.Parallel()

	t.Run("one rule per font", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		fonts := []model.EmbeddedFont{
			{FileName: "font1.fntdata", Family: "Font1", Weight: WeightNormal, Style: StyleNormal},
			{FileName: "Brand-Bold.ttf", Family: "Brand", Weight: WeightBold, Style: StyleNormal},
		}

		p, err := WriteStylesheet(dir, fonts)
		if err != nil {
			t.Fatal(err)
		}
		if p != filepath.Join(dir, StylesheetName) {
			t.Errorf("path = %s", p)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatal(err)
		}
		if n := strings.Count(string(data), "@font-face"); n != 2 {
			t.Errorf("got %d rules, want 2", n)
		}
		if !strings.Contains(string(data), "url('font1.fntdata') format('truetype')") {
			t.Errorf("missing fntdata source:\n%s", data)
		}
	})

	t.Run("no fonts writes nothing", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		p, err := WriteStylesheet(dir, nil)
		if err != nil || p != "" {
			t.Fatalf("got %q, %v", p, err)
		}
		if _, err := os.Stat(filepath.Join(dir, StylesheetName)); !os.IsNotExist(err) {
			t.Errorf("stylesheet should not exist, stat err = %v", err)
		}
	})
}
