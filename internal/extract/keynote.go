package extract

import (
	"context"
	"path"
	"strings"

	"github.com/nao1215/deckkit/internal/archive"
	"github.com/nao1215/deckkit/internal/fontref"
	"github.com/nao1215/deckkit/internal/model"
	"github.com/nao1215/deckkit/internal/pipeline"
)

// KeynoteDataDir is the package folder where Keynote keeps media and
// embedded fonts.
const KeynoteDataDir = "Data"

// Keynote extracts fonts from Apple Keynote documents, either directory
// packages or zipped single files.
type Keynote struct {
	outputDir string
	settings  settings
}

// Format implements Extractor.
func (x *Keynote) Format() model.Format { return model.FormatKeynote }

// Extract implements Extractor. Keynote's Index files are undocumented, so
// references come from the binary heuristic.
func (x *Keynote) Extract(ctx context.Context, p string) (*model.ExtractionResult, error) {
	draft := model.NewExtraction(p, model.FormatKeynote, outputFolder(x.outputDir, p))

	c, err := archive.OpenContainer(p, x.settings.logger)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	logger := pipeline.WithStepLogger(x.settings.logger)
	return run(ctx, x.settings, draft,
		pipeline.NewCopyEmbeddedStep(c, KeynoteFontSelectors(c), logger),
		pipeline.NewInspectStep(x.settings.stylesheet, logger),
		pipeline.NewReferenceStep(c, fontref.NewHeuristicFinder(x.settings.logger), logger),
		pipeline.NewClassifyStep(x.settings.classifier),
	)
}

// KeynoteFontSelectors returns the embedded font selectors for c. A
// package copies Data/*.ttf and then Data/*.otf; a zip copies any entry
// with a TrueType or OpenType extension; a raw file has none.
func KeynoteFontSelectors(c archive.Container) []archive.Selector {
	switch c.(type) {
	case *archive.Dir:
		return []archive.Selector{dataFile(".ttf"), dataFile(".otf")}
	case *archive.Reader:
		return []archive.Selector{archive.HasSuffix(".ttf", ".otf", ".TTF", ".OTF")}
	default:
		return nil
	}
}

func dataFile(ext string) archive.Selector {
	return func(name string) bool {
		return path.Dir(name) == KeynoteDataDir && strings.HasSuffix(name, ext)
	}
}
