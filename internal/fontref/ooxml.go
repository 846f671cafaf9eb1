package fontref

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/nao1215/deckkit/internal/archive"
	"github.com/nao1215/deckkit/internal/model"
)

const typefaceAttr = "typeface"

var (
	// slideSlots are DrawingML elements carrying a font per script.
	slideSlots = map[string]bool{"latin": true, "ea": true, "cs": true}

	// themeSlots add the theme's major and minor font collections.
	themeSlots = map[string]bool{"latin": true, "ea": true, "cs": true, "majorFont": true, "minorFont": true}
)

// OOXMLFinder reads font references from PowerPoint slide and theme XML.
type OOXMLFinder struct {
	logger *slog.Logger
}

// NewOOXMLFinder creates a finder logging skipped documents to logger.
func NewOOXMLFinder(logger *slog.Logger) *OOXMLFinder {
	if logger == nil {
		logger = slog.Default()
	}
	return &OOXMLFinder{logger: logger}
}

// Name implements ReferenceFinder.
func (f *OOXMLFinder) Name() string { return "ooxml" }

// IsSlide reports whether name is a slide document (ppt/slides/slideN.xml).
func IsSlide(name string) bool {
	return strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml")
}

// IsTheme reports whether name is a theme document.
func IsTheme(name string) bool {
	return strings.Contains(name, "theme") && strings.HasSuffix(name, ".xml")
}

// FindReferences implements ReferenceFinder. Slides are scanned before
// themes; a malformed document contributes nothing and is logged.
func (f *OOXMLFinder) FindReferences(ctx context.Context, c archive.Container) (model.FontSet, error) {
	fonts := model.NewFontSet()
	names := c.Names()

	passes := []struct {
		match func(string) bool
		slots map[string]bool
	}{
		{IsSlide, slideSlots},
		{IsTheme, themeSlots},
	}
	for _, pass := range passes {
		for _, name := range names {
			if !pass.match(name) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			data, err := c.ReadEntry(name)
			if err != nil {
				f.logger.Warn("could not read document", "document", name, "error", err)
				continue
			}
			found, slotted, err := Typefaces(data, pass.slots)
			if err != nil {
				f.logger.Warn("could not parse document", "document", name, "error", err)
				continue
			}
			f.logger.Debug("font references found", "document", name, "count", len(found), "slots", slotted)
			fonts.AddAll(found)
		}
	}

	RemovePlaceholders(fonts)
	return fonts, nil
}

// Typefaces walks every element of an XML document and collects the value
// of each unqualified typeface attribute. slotted counts the values that
// sat on a font-slot element (local name in slots), which is where
// PowerPoint reads the rendered family from. The document is
// all-or-nothing: on a syntax error nothing is returned.
func Typefaces(data []byte, slots map[string]bool) (fonts model.FontSet, slotted int, err error) {
	fonts = model.NewFontSet()
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = true
	dec.CharsetReader = charset.NewReaderLabel

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return fonts, slotted, nil
		}
		if err != nil {
			return nil, 0, err
		}

		el, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if v, ok := typeface(el); ok {
			fonts.Add(v)
			if slots[el.Name.Local] {
				slotted++
			}
		}
	}
}

func typeface(el xml.StartElement) (string, bool) {
	for _, a := range el.Attr {
		if a.Name.Space == "" && a.Name.Local == typefaceAttr {
			return a.Value, true
		}
	}
	return "", false
}
