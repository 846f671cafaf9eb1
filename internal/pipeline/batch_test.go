package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBatchProcessorProcessBatch(t *testing.T) {
	t.Parallel()

	t.Run("processes every input in order", func(t *testing.T) {
		t.Parallel()

		var order []string
		bp := NewBatchProcessor(func(_ context.Context, input string) (string, error) {
			order = append(order, input)
			return "done:" + input, nil
		})

		results, tally, err := bp.ProcessBatch(context.Background(), []string{"a.pptx", "b.key", "c.pptx"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]string{"a.pptx", "b.key", "c.pptx"}, order); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"done:a.pptx", "done:b.key", "done:c.pptx"}, results); diff != "" {
			t.Errorf("results mismatch (-want +got):\n%s", diff)
		}
		if tally.Succeeded != 3 || tally.Failed != 0 {
			t.Errorf("unexpected tally %+v", tally)
		}
	})

	t.Run("a failing input is isolated and counted", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func(_ context.Context, input string) (int, error) {
			if input == "broken.pptx" {
				return 0, errors.New("not a valid zip file")
			}
			return len(input), nil
		})

		results, tally, err := bp.ProcessBatch(context.Background(), []string{"a.pptx", "broken.pptx", "bb.pptx"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff([]int{6, 7}, results); diff != "" {
			t.Errorf("results mismatch (-want +got):\n%s", diff)
		}
		if tally.Succeeded != 2 || tally.Failed != 1 {
			t.Errorf("unexpected tally %+v", tally)
		}
		if diff := cmp.Diff([]string{"broken.pptx: not a valid zip file"}, tally.Errors); diff != "" {
			t.Errorf("errors mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("cancellation stops between inputs", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		calls := 0
		bp := NewBatchProcessor(func(_ context.Context, _ string) (int, error) {
			calls++
			cancel()
			return 1, nil
		})

		_, tally, err := bp.ProcessBatch(ctx, []string{"a", "b", "c"})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if calls != 1 || tally.Total() != 1 {
			t.Errorf("calls = %d, tally = %+v", calls, tally)
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		t.Parallel()

		bp := NewBatchProcessor(func(_ context.Context, _ string) (int, error) {
			t.Error("process must not be called")
			return 0, nil
		}, WithBatchLogger(nil))

		results, tally, err := bp.ProcessBatch(context.Background(), nil)
		if err != nil || len(results) != 0 || tally.Total() != 0 {
			t.Errorf("got %v, %+v, %v", results, tally, err)
		}
	})
}

func TestBatchProcessorCallback(t *testing.T) {
	t.Parallel()

	type call struct {
		Input  string
		Result int
		Failed bool
	}
	var calls []call

	bp := NewBatchProcessor(func(_ context.Context, input string) (int, error) {
		if input == "x" {
			return 0, errors.New("boom")
		}
		return len(input), nil
	})
	tally, err := bp.ProcessBatchWithCallback(context.Background(), []string{"ab", "x"}, func(input string, result int, err error) {
		calls = append(calls, call{Input: input, Result: result, Failed: err != nil})
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []call{{Input: "ab", Result: 2}, {Input: "x", Failed: true}}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Errorf("callbacks mismatch (-want +got):\n%s", diff)
	}
	if tally.Total() != 2 || tally.OK() {
		t.Errorf("unexpected tally %+v", tally)
	}
}
