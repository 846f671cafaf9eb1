package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/deckkit/internal/model"
)

// ProcessFunc handles one input file of a batch.
type ProcessFunc[T any] func(ctx context.Context, input string) (T, error)

// BatchProcessor feeds input files through a ProcessFunc one at a time.
// A failing input is logged and counted; the batch carries on.
type BatchProcessor[T any] struct {
	process ProcessFunc[T]
	logger  *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*batchSettings)

type batchSettings struct {
	logger *slog.Logger
}

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(s *batchSettings) {
		s.logger = logger
	}
}

// NewBatchProcessor creates a BatchProcessor running process per input.
func NewBatchProcessor[T any](process ProcessFunc[T], opts ...BatchOption) *BatchProcessor[T] {
	var s batchSettings
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return &BatchProcessor[T]{process: process, logger: s.logger}
}

// ProcessBatch processes inputs in order and returns the successful
// results with a tally of the run. The error is non-nil only when ctx was
// cancelled; inputs not reached by then are not counted.
func (bp *BatchProcessor[T]) ProcessBatch(ctx context.Context, inputs []string) ([]T, model.Tally, error) {
	results := make([]T, 0, len(inputs))
	tally, err := bp.ProcessBatchWithCallback(ctx, inputs, func(_ string, result T, err error) {
		if err == nil {
			results = append(results, result)
		}
	})
	return results, tally, err
}

// ProcessBatchWithCallback processes inputs in order and calls callback
// after each one, so callers can print results as they arrive.
func (bp *BatchProcessor[T]) ProcessBatchWithCallback(
	ctx context.Context,
	inputs []string,
	callback func(input string, result T, err error),
) (model.Tally, error) {
	bp.logger.Debug("starting batch processing", "total_inputs", len(inputs))
	startTime := time.Now()

	var tally model.Tally
	for i, input := range inputs {
		if err := ctx.Err(); err != nil {
			bp.logger.Warn("batch cancelled",
				"processed", tally.Total(),
				"remaining", len(inputs)-i,
			)
			return tally, err
		}

		bp.logger.Debug("processing input",
			"input", input,
			"index", i+1,
			"total", len(inputs),
		)

		result, err := bp.process(ctx, input)
		if err != nil {
			bp.logger.Warn("input failed", "input", input, "error", err)
			tally.Failure(input, err)
		} else {
			tally.Success()
		}
		if callback != nil {
			callback(input, result, err)
		}
	}

	bp.logger.Debug("batch processing complete",
		"succeeded", tally.Succeeded,
		"failed", tally.Failed,
		"elapsed", time.Since(startTime),
	)
	return tally, nil
}
