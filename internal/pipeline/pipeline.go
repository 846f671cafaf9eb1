package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/deckkit/internal/model"
)

// Step is one stage of an extraction. Steps run in sequence and each sees
// the draft as left by the previous steps.
type Step interface {
	// Do executes the step. Problems that only lose part of the result
	// (a corrupt entry, an unparseable font) are logged and return nil;
	// an error means the extraction as a whole failed.
	Do(ctx context.Context, draft *model.Extraction) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline executes steps in order.
type Pipeline struct {
	steps []Step

	logger *slog.Logger

	// continueOnError keeps running later steps after one failed.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to run the remaining steps
// when one fails. The first error is still returned by Execute.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all steps in sequence. Cancellation is checked before each
// step; a cancelled run marks the draft and returns ctx.Err().
func (p *Pipeline) Execute(ctx context.Context, draft *model.Extraction) error {
	var firstErr error

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"source", draft.Source,
				"reason", err,
			)
			draft.Cancelled = true
			return err
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"source", draft.Source,
		)

		if err := step.Do(ctx, draft); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"source", draft.Source,
				"error", err,
			)
			if !p.continueOnError {
				return err
			}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		draft.PerformedSteps = append(draft.PerformedSteps, step.Name())
	}

	return firstErr
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
