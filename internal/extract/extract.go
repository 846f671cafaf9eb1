package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/nao1215/deckkit/internal/archive"
	"github.com/nao1215/deckkit/internal/classify"
	"github.com/nao1215/deckkit/internal/model"
	"github.com/nao1215/deckkit/internal/pipeline"
)

var (
	// ErrUnsupportedFormat is returned for inputs whose extension is not
	// a presentation format.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrNotFound is returned when the input path does not exist.
	ErrNotFound = archive.ErrNotFound
)

// Extractor extracts fonts from one presentation format.
type Extractor interface {
	// Extract processes the file at path. The output folder is
	// <output dir>/<file stem>.
	Extract(ctx context.Context, path string) (*model.ExtractionResult, error)

	// Format returns the format handled by the extractor.
	Format() model.Format
}

// Option configures an Extractor.
type Option func(*settings)

type settings struct {
	logger     *slog.Logger
	classifier *classify.Classifier
	stylesheet bool
}

// WithLogger sets the logger for warnings about damaged inputs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithClassifier replaces the default font classifier.
func WithClassifier(c *classify.Classifier) Option {
	return func(s *settings) {
		s.classifier = c
	}
}

// WithStylesheet controls whether fonts.css is written next to the
// embedded fonts. It is on by default.
func WithStylesheet(enabled bool) Option {
	return func(s *settings) {
		s.stylesheet = enabled
	}
}

func newSettings(opts []Option) settings {
	s := settings{stylesheet: true}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.classifier == nil {
		s.classifier = classify.New()
	}
	return s
}

// New returns the extractor for format.
func New(format model.Format, outputDir string, opts ...Option) (Extractor, error) {
	s := newSettings(opts)
	switch format {
	case model.FormatPPTX:
		return &PPTX{outputDir: outputDir, settings: s}, nil
	case model.FormatKeynote:
		return &Keynote{outputDir: outputDir, settings: s}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// ForPath returns the extractor matching the extension of path.
func ForPath(path, outputDir string, opts ...Option) (Extractor, error) {
	format, ok := model.DetectFormat(path)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	return New(format, outputDir, opts...)
}

// File extracts fonts from path with the extractor matching its extension.
func File(ctx context.Context, path, outputDir string, opts ...Option) (*model.ExtractionResult, error) {
	x, err := ForPath(path, outputDir, opts...)
	if err != nil {
		return nil, err
	}
	return x.Extract(ctx, path)
}

func outputFolder(outputDir, path string) string {
	return filepath.Join(outputDir, model.Stem(path))
}

// run executes steps over a fresh draft and freezes the result.
func run(ctx context.Context, s settings, draft *model.Extraction, steps ...pipeline.Step) (*model.ExtractionResult, error) {
	p := pipeline.New(pipeline.WithLogger(s.logger))
	p.AddSteps(steps...)
	if err := p.Execute(ctx, draft); err != nil {
		return nil, err
	}
	return draft.Result(), nil
}

// damaged returns the empty result for an input whose container could not
// be read at all.
func damaged(ctx context.Context, s settings, draft *model.Extraction, cause error) (*model.ExtractionResult, error) {
	s.logger.Warn("could not read presentation, returning partial result",
		"path", draft.Source,
		"error", cause,
	)
	return run(ctx, s, draft,
		ensureFolderStep{},
		pipeline.NewClassifyStep(s.classifier),
	)
}

// ensureFolderStep creates the output folder when nothing else will.
type ensureFolderStep struct{}

func (ensureFolderStep) Name() string { return "ensure_folder" }

func (ensureFolderStep) Do(_ context.Context, draft *model.Extraction) error {
	return archive.EnsureDir(draft.OutputFolder)
}
