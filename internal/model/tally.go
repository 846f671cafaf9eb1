package model

import "fmt"

// Tally counts the outcome of a batch run over several input files.
type Tally struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`

	// Errors holds one message per failed input, in processing order.
	Errors []string `json:"errors,omitempty"`
}

// Success records a processed input.
func (t *Tally) Success() {
	t.Succeeded++
}

// Failure records a failed input and its error.
func (t *Tally) Failure(input string, err error) {
	t.Failed++
	t.Errors = append(t.Errors, fmt.Sprintf("%s: %v", input, err))
}

// Total returns the number of inputs seen.
func (t *Tally) Total() int {
	return t.Succeeded + t.Failed
}

// OK reports whether every input succeeded.
func (t *Tally) OK() bool {
	return t.Failed == 0
}
