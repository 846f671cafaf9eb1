package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/deckkit/internal/archive"
	"github.com/nao1215/deckkit/internal/classify"
	"github.com/nao1215/deckkit/internal/fontinfo"
	"github.com/nao1215/deckkit/internal/fontref"
	"github.com/nao1215/deckkit/internal/model"
)

// StepOption configures the steps in this package.
type StepOption func(*stepSettings)

type stepSettings struct {
	logger *slog.Logger
}

// WithStepLogger sets the logger used by a step.
func WithStepLogger(logger *slog.Logger) StepOption {
	return func(s *stepSettings) {
		s.logger = logger
	}
}

func applyStepOptions(opts []StepOption) stepSettings {
	var s stepSettings
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// CopyEmbeddedStep copies embedded font binaries out of the container into
// the draft's output folder. Selectors run in order; a Keynote package
// copies its .ttf files before its .otf files.
type CopyEmbeddedStep struct {
	container archive.Container
	selectors []archive.Selector
	logger    *slog.Logger
}

// NewCopyEmbeddedStep creates a copy step for c.
func NewCopyEmbeddedStep(c archive.Container, selectors []archive.Selector, opts ...StepOption) *CopyEmbeddedStep {
	s := applyStepOptions(opts)
	return &CopyEmbeddedStep{container: c, selectors: selectors, logger: s.logger}
}

// Name returns the step name.
func (s *CopyEmbeddedStep) Name() string {
	return "copy_embedded"
}

// Do creates the output folder and copies every selected entry. Entries
// that fail to copy are skipped by the container.
func (s *CopyEmbeddedStep) Do(_ context.Context, draft *model.Extraction) error {
	if err := archive.EnsureDir(draft.OutputFolder); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}
	for _, sel := range s.selectors {
		draft.EmbeddedFonts = append(draft.EmbeddedFonts, s.container.CopyMatching(sel, draft.OutputFolder)...)
	}
	s.logger.Debug("embedded fonts copied", "source", draft.Source, "count", len(draft.EmbeddedFonts))
	return nil
}

// InspectStep reads metadata from each copied font and optionally writes a
// fonts.css stylesheet next to them.
type InspectStep struct {
	writeCSS bool
	logger   *slog.Logger
}

// NewInspectStep creates an inspection step.
func NewInspectStep(writeCSS bool, opts ...StepOption) *InspectStep {
	s := applyStepOptions(opts)
	return &InspectStep{writeCSS: writeCSS, logger: s.logger}
}

// Name returns the step name.
func (s *InspectStep) Name() string {
	return "inspect_fonts"
}

// Do inspects the embedded fonts. It never fails the extraction.
func (s *InspectStep) Do(ctx context.Context, draft *model.Extraction) error {
	for _, p := range draft.EmbeddedFonts {
		if ctx.Err() != nil {
			return nil
		}
		info, err := fontinfo.Inspect(p)
		if err != nil {
			s.logger.Warn("could not inspect font", "path", p, "error", err)
			continue
		}
		draft.EmbeddedDetails = append(draft.EmbeddedDetails, info)
	}

	if !s.writeCSS {
		return nil
	}
	if _, err := fontinfo.WriteStylesheet(draft.OutputFolder, draft.EmbeddedDetails); err != nil {
		s.logger.Warn("could not write stylesheet", "folder", draft.OutputFolder, "error", err)
	}
	return nil
}

// ReferenceStep collects referenced font names with a ReferenceFinder.
type ReferenceStep struct {
	container archive.Container
	finder    fontref.ReferenceFinder
	logger    *slog.Logger
}

// NewReferenceStep creates a reference step reading from c.
func NewReferenceStep(c archive.Container, finder fontref.ReferenceFinder, opts ...StepOption) *ReferenceStep {
	s := applyStepOptions(opts)
	return &ReferenceStep{container: c, finder: finder, logger: s.logger}
}

// Name returns the step name.
func (s *ReferenceStep) Name() string {
	return "find_references_" + s.finder.Name()
}

// Do adds the finder's names to the draft and strips placeholder tokens.
func (s *ReferenceStep) Do(ctx context.Context, draft *model.Extraction) error {
	fonts, err := s.finder.FindReferences(ctx, s.container)
	if err != nil {
		return err
	}
	draft.References.AddAll(fonts)
	fontref.RemovePlaceholders(draft.References)
	s.logger.Debug("referenced fonts found", "source", draft.Source, "count", len(draft.References))
	return nil
}

// ClassifyStep partitions the referenced names into categories.
type ClassifyStep struct {
	classifier *classify.Classifier
}

// NewClassifyStep creates a classification step. A nil classifier uses
// the built-in tables.
func NewClassifyStep(c *classify.Classifier) *ClassifyStep {
	if c == nil {
		c = classify.New()
	}
	return &ClassifyStep{classifier: c}
}

// Name returns the step name.
func (s *ClassifyStep) Name() string {
	return "classify"
}

// Do fills draft.Buckets.
func (s *ClassifyStep) Do(_ context.Context, draft *model.Extraction) error {
	draft.Buckets = s.classifier.Partition(draft.References)
	return nil
}
