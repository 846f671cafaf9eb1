package extract

import (
	"context"
	"errors"

	"github.com/nao1215/deckkit/internal/archive"
	"github.com/nao1215/deckkit/internal/fontref"
	"github.com/nao1215/deckkit/internal/model"
	"github.com/nao1215/deckkit/internal/pipeline"
)

// EmbeddedFontsPrefix is the archive folder holding PowerPoint's embedded
// font binaries.
const EmbeddedFontsPrefix = "ppt/fonts/"

// PPTX extracts fonts from PowerPoint .pptx files.
type PPTX struct {
	outputDir string
	settings  settings
}

// Format implements Extractor.
func (x *PPTX) Format() model.Format { return model.FormatPPTX }

// Extract implements Extractor.
func (x *PPTX) Extract(ctx context.Context, path string) (*model.ExtractionResult, error) {
	draft := model.NewExtraction(path, model.FormatPPTX, outputFolder(x.outputDir, path))

	r, err := archive.Open(path, x.settings.logger)
	if errors.Is(err, archive.ErrNotArchive) {
		return damaged(ctx, x.settings, draft, err)
	}
	if err != nil {
		return nil, err
	}
	defer r.Close()

	logger := pipeline.WithStepLogger(x.settings.logger)
	return run(ctx, x.settings, draft,
		pipeline.NewCopyEmbeddedStep(r, []archive.Selector{archive.HasPrefix(EmbeddedFontsPrefix)}, logger),
		pipeline.NewInspectStep(x.settings.stylesheet, logger),
		pipeline.NewReferenceStep(r, fontref.NewOOXMLFinder(x.settings.logger), logger),
		pipeline.NewClassifyStep(x.settings.classifier),
	)
}
