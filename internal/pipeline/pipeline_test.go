package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/deckkit/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, draft *model.Extraction) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, draft *model.Extraction) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, draft)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

func newDraft() *model.Extraction {
	return model.NewExtraction("deck.pptx", model.FormatPPTX, "out/deck")
}

func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()
		if p.StepCount() != 0 {
			t.Errorf("expected 0 steps, got %d", p.StepCount())
		}
		if p.logger == nil {
			t.Error("expected default logger")
		}
	})

	t.Run("applies WithContinueOnError option", func(t *testing.T) {
		t.Parallel()

		p := New(WithContinueOnError(true))
		if !p.continueOnError {
			t.Error("expected continueOnError to be true")
		}
	})
}

func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	p := New()
	p.AddStep(&mockStep{name: "first"})
	p.AddSteps(&mockStep{name: "second"}, &mockStep{name: "third"})

	if diff := cmp.Diff([]string{"first", "second", "third"}, p.StepNames()); diff != "" {
		t.Errorf("step names mismatch (-want +got):\n%s", diff)
	}
}

func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes all steps in order", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{
			name: "references",
			doFunc: func(_ context.Context, d *model.Extraction) error {
				d.References.Add("Calibri")
				return nil
			},
		})
		p.AddStep(&mockStep{
			name: "count",
			doFunc: func(_ context.Context, d *model.Extraction) error {
				if !d.References.Has("Calibri") {
					t.Error("second step did not see the first step's work")
				}
				return nil
			},
		})

		draft := newDraft()
		if err := p.Execute(context.Background(), draft); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"references", "count"}, draft.PerformedSteps); diff != "" {
			t.Errorf("performed steps mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("stops on first error by default", func(t *testing.T) {
		t.Parallel()

		expectedErr := errors.New("step failed")
		second := &mockStep{name: "should-not-run"}

		p := New()
		p.AddStep(&mockStep{
			name: "failing-step",
			doFunc: func(_ context.Context, _ *model.Extraction) error {
				return expectedErr
			},
		})
		p.AddStep(second)

		err := p.Execute(context.Background(), newDraft())
		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if second.callCount != 0 {
			t.Error("second step should not have been called")
		}
	})

	t.Run("continues on error when configured and reports the first error", func(t *testing.T) {
		t.Parallel()

		first := errors.New("first")
		second := &mockStep{name: "should-run"}

		p := New(WithContinueOnError(true))
		p.AddStep(&mockStep{
			name: "failing-step",
			doFunc: func(_ context.Context, _ *model.Extraction) error {
				return first
			},
		})
		p.AddStep(second)

		draft := newDraft()
		err := p.Execute(context.Background(), draft)
		if !errors.Is(err, first) {
			t.Errorf("expected %v, got %v", first, err)
		}
		if second.callCount != 1 {
			t.Error("second step should have been called")
		}
		if diff := cmp.Diff([]string{"should-run"}, draft.PerformedSteps); diff != "" {
			t.Errorf("performed steps mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		step := &mockStep{name: "should-not-run"}
		p := New()
		p.AddStep(step)

		draft := newDraft()
		err := p.Execute(ctx, draft)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if step.callCount != 0 {
			t.Error("step should not have been called")
		}
		if !draft.Cancelled {
			t.Error("draft should be marked cancelled")
		}
	})
}
