package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/deckkit/internal/model"
)

// ExtractionReport is the outcome of one extract-fonts run.
type ExtractionReport struct {
	// Results holds one entry per successfully processed input.
	Results []*model.ExtractionResult `json:"results"`

	// Tally counts successes and failures over all inputs.
	Tally model.Tally `json:"tally"`

	// GeneratedAt is when the report was created.
	GeneratedAt time.Time `json:"generated_at"`
}

// NewExtractionReport creates a report for results.
func NewExtractionReport(results []*model.ExtractionResult, tally model.Tally) *ExtractionReport {
	if results == nil {
		results = []*model.ExtractionResult{}
	}
	return &ExtractionReport{
		Results:     results,
		Tally:       tally,
		GeneratedAt: time.Now().UTC(),
	}
}

// EmbeddedCount returns the number of embedded fonts over all results.
func (r *ExtractionReport) EmbeddedCount() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.EmbeddedFonts)
	}
	return n
}

// CategoryCounts sums the bucket sizes over all results.
func (r *ExtractionReport) CategoryCounts() map[model.Category]int {
	counts := make(map[model.Category]int, len(model.Categories))
	for _, res := range r.Results {
		for _, c := range model.Categories {
			counts[c] += len(res.Bucket(c))
		}
	}
	return counts
}

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs an extraction report.
	Write(report *ExtractionReport) (int, error)

	// WriteHunt outputs the result of a font hunt.
	WriteHunt(result *model.HuntResult) (int, error)
}

// MultiWriter writes to multiple Writers in order.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *ExtractionReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteHunt outputs the hunt result to all configured Writers.
func (m *MultiWriter) WriteHunt(result *model.HuntResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteHunt(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Format names an output format.
type Format string

const (
	// FormatText is the human-readable terminal format.
	FormatText Format = "text"
	// FormatJSON is JSON.
	FormatJSON Format = "json"
	// FormatMarkdown is GitHub flavoured markdown.
	FormatMarkdown Format = "markdown"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatText, FormatJSON, FormatMarkdown}

// ParseFormat converts a flag value into a Format. "md" is accepted for
// markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want text, json or markdown)", s)
	}
}

// NewWriter returns the Writer for format. version is embedded in JSON.
func NewWriter(format Format, output io.Writer, version string) Writer {
	switch format {
	case FormatJSON:
		return NewFullJSONWriter(output, version, WithPrettyPrint())
	case FormatMarkdown:
		return NewMarkdownWriter(output)
	default:
		return NewSimpleWriter(output)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
