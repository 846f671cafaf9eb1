package fontref

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/deckkit/internal/archive"
)

const (
	slideNS = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`

	calibriSlide = `<?xml version="1.0" encoding="UTF-8"?>
<p:sld ` + slideNS + `><p:cSld><p:spTree><p:sp><p:txBody><a:p>
<a:r><a:rPr typeface="Calibri"/><a:t>One</a:t></a:r>
<a:r><a:rPr typeface="Calibri"/><a:t>Two</a:t></a:r>
<a:r><a:rPr><a:latin typeface="Calibri"/></a:rPr><a:t>Three</a:t></a:r>
</a:p></p:txBody></p:sp></p:spTree></p:cSld></p:sld>`

	theme = `<?xml version="1.0" encoding="UTF-8"?>
<a:theme ` + slideNS + ` name="Office"><a:themeElements><a:fontScheme name="Custom">
<a:majorFont><a:latin typeface="Montserrat"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>
<a:minorFont><a:latin typeface="Open Sans"/><a:ea typeface="游ゴシック"/><a:cs typeface=""/></a:minorFont>
</a:fontScheme></a:themeElements></a:theme>`

	placeholderSlide = `<p:sld ` + slideNS + `><a:rPr><a:latin typeface="+mj-lt"/><a:ea typeface="+mn-ea"/><a:cs typeface="+mj-cs"/>
<a:sym typeface="Wingdings"/></a:rPr></p:sld>`
)

type entry struct {
	name string
	data string
}

func writeZip(t *testing.T, path string, entries []entry) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := io.WriteString(w, e.data); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
}

func openZip(t *testing.T, entries []entry) *archive.Reader {
	t.Helper()
	p := filepath.Join(t.TempDir(), "deck.pptx")
	writeZip(t, p, entries)
	r, err := archive.Open(p, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOOXMLFinder(t *testing.T) {
	t.Parallel()

	t.Run("duplicate Calibri declarations collapse to one name", func(t *testing.T) {
		t.Parallel()
		r := openZip(t, []entry{{"ppt/slides/slide1.xml", calibriSlide}})

		got, err := NewOOXMLFinder(quietLogger()).FindReferences(context.Background(), r)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"Calibri"}, got.Sorted()); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("slides and themes accumulate into one set", func(t *testing.T) {
		t.Parallel()
		r := openZip(t, []entry{
			{"ppt/slides/slide1.xml", calibriSlide},
			{"ppt/theme/theme1.xml", theme},
			{"ppt/slideLayouts/slideLayout1.xml", `<p:sldLayout ` + slideNS + `><a:latin typeface="Ignored Layout Font"/></p:sldLayout>`},
		})

		got, err := NewOOXMLFinder(quietLogger()).FindReferences(context.Background(), r)
		if err != nil {
			t.Fatal(err)
		}
		want := []string{"Calibri", "Montserrat", "Open Sans", "游ゴシック"}
		if diff := cmp.Diff(want, got.Sorted()); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("placeholder tokens never survive", func(t *testing.T) {
		t.Parallel()
		r := openZip(t, []entry{{"ppt/slides/slide2.xml", placeholderSlide}})

		got, err := NewOOXMLFinder(quietLogger()).FindReferences(context.Background(), r)
		if err != nil {
			t.Fatal(err)
		}
		for _, p := range Placeholders {
			if got.Has(p) {
				t.Errorf("placeholder %q present in %v", p, got.Sorted())
			}
		}
		if diff := cmp.Diff([]string{"Wingdings"}, got.Sorted()); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("malformed slide is skipped with a warning", func(t *testing.T) {
		t.Parallel()
		r := openZip(t, []entry{
			{"ppt/slides/slide1.xml", `<p:sld ` + slideNS + `><a:latin typeface="Broken Font"/>`},
			{"ppt/slides/slide2.xml", calibriSlide},
		})

		var logs bytes.Buffer
		finder := NewOOXMLFinder(slog.New(slog.NewTextHandler(&logs, nil)))
		got, err := finder.FindReferences(context.Background(), r)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"Calibri"}, got.Sorted()); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		if !bytes.Contains(logs.Bytes(), []byte("could not parse document")) {
			t.Errorf("expected a warning, got %q", logs.String())
		}
	})

	t.Run("cancelled context stops the scan", func(t *testing.T) {
		t.Parallel()
		r := openZip(t, []entry{{"ppt/slides/slide1.xml", calibriSlide}})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := NewOOXMLFinder(quietLogger()).FindReferences(ctx, r); err == nil {
			t.Error("expected context error")
		}
	})
}

func TestDocumentSelectors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		slide   bool
		isTheme bool
	}{
		{"ppt/slides/slide1.xml", true, false},
		{"ppt/slides/slide12.xml", true, false},
		{"ppt/slides/_rels/slide1.xml.rels", false, false},
		{"ppt/slideMasters/slideMaster1.xml", false, false},
		{"ppt/theme/theme1.xml", false, true},
		{"ppt/theme/themeOverride1.xml", false, true},
		{"ppt/theme/theme1.xml.rels", false, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if IsSlide(tc.name) != tc.slide || IsTheme(tc.name) != tc.isTheme {
				t.Errorf("IsSlide=%v IsTheme=%v, want %v %v", IsSlide(tc.name), IsTheme(tc.name), tc.slide, tc.isTheme)
			}
		})
	}
}

func TestTypefaces(t *testing.T) {
	t.Parallel()

	t.Run("counts slot declarations", func(t *testing.T) {
		t.Parallel()
		fonts, slotted, err := Typefaces([]byte(calibriSlide), slideSlots)
		if err != nil {
			t.Fatal(err)
		}
		if len(fonts) != 1 || slotted != 1 {
			t.Errorf("got %v fonts and %d slotted, want 1 and 1", fonts.Sorted(), slotted)
		}
	})

	t.Run("namespaced typeface attribute is ignored", func(t *testing.T) {
		t.Parallel()
		doc := `<root xmlns:x="urn:x"><a x:typeface="Hidden"/><b typeface="Shown"/></root>`
		fonts, _, err := Typefaces([]byte(doc), slideSlots)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"Shown"}, fonts.Sorted()); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("declared legacy encoding is decoded", func(t *testing.T) {
		t.Parallel()
		doc := "<?xml version=\"1.0\" encoding=\"windows-1252\"?>\n" +
			"<theme><latin typeface=\"Caf\xe9 Sans\"/><ea typeface=\"Gill Sans\"/></theme>"
		fonts, slotted, err := Typefaces([]byte(doc), slideSlots)
		if err != nil {
			t.Fatalf("Typefaces() error = %v", err)
		}
		if diff := cmp.Diff([]string{"Café Sans", "Gill Sans"}, fonts.Sorted()); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		if slotted != 2 {
			t.Errorf("slotted = %d, want 2", slotted)
		}
	})

	t.Run("syntax error returns nothing", func(t *testing.T) {
		t.Parallel()
		fonts, _, err := Typefaces([]byte(`<a typeface="X"><b></a>`), slideSlots)
		if err == nil || fonts != nil {
			t.Errorf("expected error and nil set, got %v, %v", fonts, err)
		}
	})
}

func TestNamesInText(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "font names between binary noise",
			text: "\x00\x01Helvetica Neue\x00\x02Avenir Next\x00",
			want: []string{"Avenir Next", "Helvetica Neue"},
		},
		{
			name: "stop words are dropped case-insensitively",
			text: "\x00The\x00with\x00Because\x00Gotham\x00",
			want: []string{"Gotham"},
		},
		{
			name: "acronyms and short tokens are dropped",
			text: "\x00PDF\x00IWA\x00ab\x00Futura\x00",
			want: []string{"Futura"},
		},
		{
			name: "mixed case keeps acronym-like names",
			text: "\x00DIN Pro\x00",
			want: []string{"DIN Pro"},
		},
		{
			name: "nothing font-like",
			text: "\x00\x01\x02 12 \x03",
			want: []string{},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tc.want, NamesInText(tc.text).Sorted()); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("valid utf-8 is used as is", func(t *testing.T) {
		t.Parallel()
		if got := decode([]byte("Hiragino Sans")); got != "Hiragino Sans" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("utf-16 with byte order mark", func(t *testing.T) {
		t.Parallel()
		data := []byte{0xFF, 0xFE, 'L', 0, 'a', 0, 't', 0, 'o', 0, 0x00, 0xD8}
		if got := decode(data); got[:4] != "Lato" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("invalid utf-8 without bom falls back to latin-1", func(t *testing.T) {
		t.Parallel()
		data := []byte{'G', 'i', 'l', 'l', ' ', 'S', 'a', 'n', 's', 0xE9}
		if got := decode(data); got != "Gill Sansé" {
			t.Errorf("got %q", got)
		}
	})
}

func TestHeuristicFinder(t *testing.T) {
	t.Parallel()

	t.Run("zip scans entries ending in Index only", func(t *testing.T) {
		t.Parallel()
		r := openZip(t, []entry{
			{"Index/Document.iwa", "\x00Not Scanned Font\x00"},
			{"Metadata/DocumentIndex", "\x00Brandon Grotesque\x00"},
		})

		got, err := NewHeuristicFinder(quietLogger()).FindReferences(context.Background(), r)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"Brandon Grotesque"}, got.Sorted()); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("directory package scans files named Index", func(t *testing.T) {
		t.Parallel()
		root := filepath.Join(t.TempDir(), "Talk.key")
		for name, data := range map[string]string{
			"Index":            "\x00Proxima Nova\x00",
			"Data/Index":       "\x00Gotham Rounded\x00",
			"Data/SearchIndex": "\x00Skipped Face\x00",
		} {
			p := filepath.Join(root, filepath.FromSlash(name))
			if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(p, []byte(data), 0o600); err != nil {
				t.Fatal(err)
			}
		}
		d, err := archive.OpenDir(root, quietLogger())
		if err != nil {
			t.Fatal(err)
		}

		got, err := NewHeuristicFinder(quietLogger()).FindReferences(context.Background(), d)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"Gotham Rounded", "Proxima Nova"}, got.Sorted()); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no names yields the common presentation fonts", func(t *testing.T) {
		t.Parallel()
		r := openZip(t, []entry{{"Index", "\x00\x01\x02"}})

		got, err := NewHeuristicFinder(quietLogger()).FindReferences(context.Background(), r)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != len(CommonPresentationFonts) {
			t.Errorf("expected %d fallback fonts, got %d", len(CommonPresentationFonts), len(got))
		}
		if !got.Has("Source Sans Pro") || !got.Has("游ゴシック") {
			t.Errorf("fallback list incomplete: %v", got.Sorted())
		}
	})
}
