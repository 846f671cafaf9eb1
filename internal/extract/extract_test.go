package extract

import (
	"archive/zip"
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/nao1215/deckkit/internal/fontref"
	"github.com/nao1215/deckkit/internal/model"
)

type entry struct {
	name string
	data []byte
}

func quiet() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeZip(t *testing.T, p string, entries ...entry) string {
	t.Helper()
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(e.data); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return p
}

const slide = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
<p:cSld><p:spTree><p:sp><p:txBody>
<a:p><a:r><a:rPr lang="en-US" typeface="Calibri"/><a:t>Title</a:t></a:r></a:p>
<a:p><a:r><a:rPr lang="en-US"><a:latin typeface="Calibri"/></a:rPr><a:t>Body</a:t></a:r></a:p>
<a:p><a:r><a:rPr lang="en-US"><a:latin typeface="+mn-lt"/><a:ea typeface="+mn-ea"/></a:rPr><a:t>Theme</a:t></a:r></a:p>
</p:txBody></p:sp></p:spTree></p:cSld></p:sld>`

func TestForPath(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		path    string
		want    model.Format
		wantErr bool
	}{
		{path: "talk.pptx", want: model.FormatPPTX},
		{path: "TALK.PPTX", want: model.FormatPPTX},
		{path: "talk.key", want: model.FormatKeynote},
		{path: "talk.keynote", want: model.FormatKeynote},
		{path: "talk.key/", want: model.FormatKeynote},
		{path: "talk.pdf", wantErr: true},
		{path: "talk.ppt", wantErr: true},
		{path: "talk", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			t.Parallel()
			x, err := ForPath(tc.path, t.TempDir())
			if tc.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if x.Format() != tc.want {
				t.Errorf("Format() = %s, want %s", x.Format(), tc.want)
			}
		})
	}
}

func TestFileUnsupportedBeforeIO(t *testing.T) {
	t.Parallel()

	// the file does not exist; the extension alone decides
	_, err := File(context.Background(), filepath.Join(t.TempDir(), "missing.odp"), t.TempDir())
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestPPTXExtract(t *testing.T) {
	t.Parallel()

	t.Run("calibri deck without embedded fonts", func(t *testing.T) {
		t.Parallel()
		deck := writeZip(t, filepath.Join(t.TempDir(), "Quarterly Review.pptx"),
			entry{"[Content_Types].xml", []byte("<Types/>")},
			entry{"ppt/slides/slide1.xml", []byte(slide)},
		)
		out := t.TempDir()

		res, err := File(context.Background(), deck, out, quiet())
		if err != nil {
			t.Fatal(err)
		}
		if len(res.EmbeddedFonts) != 0 {
			t.Errorf("expected no embedded fonts, got %v", res.EmbeddedFonts)
		}
		if diff := cmp.Diff([]string{"Calibri"}, res.ReferencedFonts); diff != "" {
			t.Errorf("references mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"Calibri"}, res.SystemFonts); diff != "" {
			t.Errorf("system mismatch (-want +got):\n%s", diff)
		}
		if len(res.CommercialFonts) != 0 || len(res.FreeFonts) != 0 {
			t.Errorf("unexpected buckets %v %v", res.CommercialFonts, res.FreeFonts)
		}
		if res.OutputFolder != filepath.Join(out, "Quarterly Review") {
			t.Errorf("OutputFolder = %s", res.OutputFolder)
		}
		if res.Format != model.FormatPPTX || res.Source != deck {
			t.Errorf("unexpected source fields %s %s", res.Format, res.Source)
		}
	})

	t.Run("embedded fonts are copied in listing order", func(t *testing.T) {
		t.Parallel()
		deck := writeZip(t, filepath.Join(t.TempDir(), "brand.pptx"),
			entry{"ppt/fonts/font2.fntdata", []byte("obfuscated")},
			entry{"ppt/fonts/font1.fntdata", goregular.TTF},
			entry{"ppt/media/image1.png", []byte("png")},
			entry{"ppt/slides/slide1.xml", []byte(slide)},
		)
		out := t.TempDir()

		res, err := File(context.Background(), deck, out, quiet())
		if err != nil {
			t.Fatal(err)
		}
		folder := filepath.Join(out, "brand")
		want := []string{filepath.Join(folder, "font2.fntdata"), filepath.Join(folder, "font1.fntdata")}
		if diff := cmp.Diff(want, res.EmbeddedFonts); diff != "" {
			t.Errorf("embedded mismatch (-want +got):\n%s", diff)
		}
		if len(res.EmbeddedDetails) != 2 {
			t.Fatalf("expected 2 details, got %d", len(res.EmbeddedDetails))
		}
		if res.EmbeddedDetails[0].Parsed || !res.EmbeddedDetails[1].Parsed {
			t.Errorf("parse flags wrong: %+v", res.EmbeddedDetails)
		}
		if _, err := os.Stat(filepath.Join(folder, "fonts.css")); err != nil {
			t.Errorf("fonts.css missing: %v", err)
		}
	})

	t.Run("stylesheet can be disabled", func(t *testing.T) {
		t.Parallel()
		deck := writeZip(t, filepath.Join(t.TempDir(), "plain.pptx"),
			entry{"ppt/fonts/font1.fntdata", goregular.TTF},
		)
		out := t.TempDir()

		if _, err := File(context.Background(), deck, out, quiet(), WithStylesheet(false)); err != nil {
			t.Fatal(err)
		}
		if _, err := os.Stat(filepath.Join(out, "plain", "fonts.css")); !os.IsNotExist(err) {
			t.Errorf("fonts.css should not exist, stat err = %v", err)
		}
	})

	t.Run("missing file is ErrNotFound", func(t *testing.T) {
		t.Parallel()
		out := t.TempDir()
		_, err := File(context.Background(), filepath.Join(t.TempDir(), "gone.pptx"), out, quiet())
		if !errors.Is(err, ErrNotFound) || !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if _, statErr := os.Stat(filepath.Join(out, "gone")); !os.IsNotExist(statErr) {
			t.Error("output folder must not be created for a missing input")
		}
	})

	t.Run("damaged archive yields an empty result", func(t *testing.T) {
		t.Parallel()
		p := filepath.Join(t.TempDir(), "broken.pptx")
		if err := os.WriteFile(p, []byte("definitely not a zip"), 0o600); err != nil {
			t.Fatal(err)
		}
		out := t.TempDir()

		res, err := File(context.Background(), p, out, quiet())
		if err != nil {
			t.Fatal(err)
		}
		if len(res.EmbeddedFonts) != 0 || len(res.ReferencedFonts) != 0 {
			t.Errorf("expected an empty result, got %+v", res)
		}
		if res.SystemFonts == nil || res.FreeFonts == nil {
			t.Error("buckets should be empty slices, not nil")
		}
		if info, err := os.Stat(filepath.Join(out, "broken")); err != nil || !info.IsDir() {
			t.Errorf("output folder should exist: %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		deck := writeZip(t, filepath.Join(t.TempDir(), "deck.pptx"), entry{"ppt/slides/slide1.xml", []byte(slide)})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := File(ctx, deck, t.TempDir(), quiet()); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestKeynoteExtract(t *testing.T) {
	t.Parallel()

	t.Run("directory package", func(t *testing.T) {
		t.Parallel()
		pkg := filepath.Join(t.TempDir(), "Launch.key")
		files := map[string][]byte{
			"Data/Brand-Bold.ttf":   goregular.TTF,
			"Data/Brand-Light.otf":  []byte("otf"),
			"Data/image.png":        []byte("png"),
			"Data/nested/skip.ttf":  []byte("nested"),
			"Index/Document.iwa":    []byte("\x00Ignored Font\x00"),
			"Metadata/Properties":   []byte("plist"),
			"Metadata/Sub/Index":    []byte("\x00Proxima Nova\x00Futura PT\x00"),
			"preview.jpg":           []byte("jpg"),
			"Metadata/BuildVersion": []byte("\x00Helvetica Neue\x00"),
		}
		for name, data := range files {
			p := filepath.Join(pkg, filepath.FromSlash(name))
			if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(p, data, 0o600); err != nil {
				t.Fatal(err)
			}
		}
		out := t.TempDir()

		res, err := File(context.Background(), pkg, out, quiet())
		if err != nil {
			t.Fatal(err)
		}
		folder := filepath.Join(out, "Launch")
		want := []string{filepath.Join(folder, "Brand-Bold.ttf"), filepath.Join(folder, "Brand-Light.otf")}
		if diff := cmp.Diff(want, res.EmbeddedFonts); diff != "" {
			t.Errorf("embedded mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"Futura PT", "Proxima Nova"}, res.ReferencedFonts); diff != "" {
			t.Errorf("references mismatch (-want +got):\n%s", diff)
		}
		if res.Format != model.FormatKeynote {
			t.Errorf("Format = %s", res.Format)
		}

		// Shell completion appends a separator to package directories.
		slashed, err := File(context.Background(), pkg+string(filepath.Separator), t.TempDir(), quiet())
		if err != nil {
			t.Fatalf("File() with trailing separator error = %v", err)
		}
		if diff := cmp.Diff(res.ReferencedFonts, slashed.ReferencedFonts); diff != "" {
			t.Errorf("trailing separator references mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("zipped document", func(t *testing.T) {
		t.Parallel()
		doc := writeZip(t, filepath.Join(t.TempDir(), "Pitch.key"),
			entry{"Data/Brand.TTF", goregular.TTF},
			entry{"Data/other.otf", []byte("otf")},
			entry{"Data/photo.jpg", []byte("jpg")},
			entry{"Index/Slide-1.iwa", []byte("\x00Not An Index\x00")},
			entry{"Index/DocumentIndex", []byte("\x00Avenir Next\x00Gotham\x00")},
		)
		out := t.TempDir()

		res, err := File(context.Background(), doc, out, quiet())
		if err != nil {
			t.Fatal(err)
		}
		if len(res.EmbeddedFonts) != 2 {
			t.Errorf("expected 2 embedded fonts, got %v", res.EmbeddedFonts)
		}
		if diff := cmp.Diff([]string{"Avenir Next", "Gotham"}, res.ReferencedFonts); diff != "" {
			t.Errorf("references mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"Avenir Next"}, res.SystemFonts); diff != "" {
			t.Errorf("system mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("raw file falls back to common fonts", func(t *testing.T) {
		t.Parallel()
		p := filepath.Join(t.TempDir(), "Legacy.key")
		if err := os.WriteFile(p, []byte{0x00, 0x01, 0x02, 0x03}, 0o600); err != nil {
			t.Fatal(err)
		}

		res, err := File(context.Background(), p, t.TempDir(), quiet())
		if err != nil {
			t.Fatal(err)
		}
		if len(res.EmbeddedFonts) != 0 {
			t.Errorf("expected no embedded fonts, got %v", res.EmbeddedFonts)
		}
		if len(res.ReferencedFonts) != len(fontref.CommonPresentationFonts) {
			t.Errorf("expected the fallback list, got %v", res.ReferencedFonts)
		}
		total := len(res.SystemFonts) + len(res.CommercialFonts) + len(res.FreeFonts)
		if total != len(res.ReferencedFonts) {
			t.Errorf("buckets do not partition the references: %d vs %d", total, len(res.ReferencedFonts))
		}
	})

	t.Run("missing package is ErrNotFound", func(t *testing.T) {
		t.Parallel()
		_, err := File(context.Background(), filepath.Join(t.TempDir(), "none.key"), t.TempDir(), quiet())
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
