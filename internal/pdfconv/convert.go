package pdfconv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/deckkit/internal/archive"
	"github.com/nao1215/deckkit/internal/model"
	"github.com/nao1215/deckkit/internal/pipeline"
	"github.com/nao1215/deckkit/internal/pptx"
)

const (
	// DefaultDPI is the rasterisation resolution.
	DefaultDPI = 300

	// DefaultOutputDir is where decks are written by default.
	DefaultOutputDir = "converted_pptx"
)

var (
	// ErrNotPDF is returned for inputs without a .pdf extension.
	ErrNotPDF = errors.New("not a pdf file")

	// ErrNoPages is returned when the rasterizer produced no images.
	ErrNoPages = errors.New("no pages rendered")
)

// Converter turns PDFs into .pptx decks.
type Converter struct {
	outputDir  string
	dpi        int
	rasterizer Rasterizer
	logger     *slog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithDPI sets the rasterisation resolution. Values <= 0 are ignored.
func WithDPI(dpi int) Option {
	return func(c *Converter) {
		if dpi > 0 {
			c.dpi = dpi
		}
	}
}

// WithRasterizer replaces the pdftoppm rasterizer.
func WithRasterizer(r Rasterizer) Option {
	return func(c *Converter) {
		c.rasterizer = r
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// New creates a Converter writing into outputDir.
func New(outputDir string, opts ...Option) *Converter {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	c := &Converter{
		outputDir:  outputDir,
		dpi:        DefaultDPI,
		rasterizer: Pdftoppm{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// OutputPath returns where the deck for pdfPath is written. A non-empty
// name replaces the input stem; ".pptx" is appended when missing.
func (c *Converter) OutputPath(pdfPath, name string) string {
	name = strings.TrimSpace(name)
	if name != "" {
		name = filepath.Base(name)
	}
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = model.Stem(pdfPath)
	}
	if !strings.EqualFold(filepath.Ext(name), ".pptx") {
		name += ".pptx"
	}
	return filepath.Join(c.outputDir, name)
}

// Convert renders pdfPath into a deck. name is optional, see OutputPath.
func (c *Converter) Convert(ctx context.Context, pdfPath, name string) (*model.ConversionResult, error) {
	if f, ok := model.DetectFormat(pdfPath); !ok || f != model.FormatPDF {
		return nil, fmt.Errorf("%w: %s", ErrNotPDF, pdfPath)
	}
	if err := archive.CheckExists(pdfPath); err != nil {
		return nil, err
	}

	title := model.Stem(pdfPath)
	info, err := ReadInfo(pdfPath)
	if err != nil {
		c.logger.Warn("could not read pdf information", "file", pdfPath, "error", err)
	} else if info.Title != "" {
		title = info.Title
	}

	if err := os.MkdirAll(c.outputDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	tmp, err := os.MkdirTemp("", "deckkit-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmp); err != nil {
			c.logger.Warn("could not remove temp directory", "dir", tmp, "error", err)
		}
	}()

	c.logger.Debug("rasterizing pdf", "file", pdfPath, "dpi", c.dpi)
	images, err := c.rasterizer.Rasterize(ctx, pdfPath, tmp, c.dpi)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPages, pdfPath)
	}
	if info.Pages > 0 && info.Pages != len(images) {
		c.logger.Warn("rendered page count differs from the document",
			"file", pdfPath, "pages", info.Pages, "rendered", len(images))
	}

	deck := pptx.NewDeck(pptx.WithTitle(title))
	for _, img := range images {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pic, err := pptx.LoadPicture(img)
		if err != nil {
			return nil, err
		}
		deck.Add(pic)
	}

	out := c.OutputPath(pdfPath, name)
	if err := deck.Save(out); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", out, err)
	}

	c.logger.Info("converted pdf", "file", pdfPath, "output", out, "slides", deck.Len())
	return &model.ConversionResult{
		Source:     pdfPath,
		OutputPath: out,
		Pages:      deck.Len(),
		DPI:        c.dpi,
	}, nil
}

// ConvertMany converts each PDF in order with its default output name.
// Failures are logged and counted; the error is only set when ctx ended.
func (c *Converter) ConvertMany(ctx context.Context, paths []string) ([]*model.ConversionResult, model.Tally, error) {
	bp := pipeline.NewBatchProcessor(func(ctx context.Context, p string) (*model.ConversionResult, error) {
		return c.Convert(ctx, p, "")
	}, pipeline.WithBatchLogger(c.logger))
	return bp.ProcessBatch(ctx, paths)
}
