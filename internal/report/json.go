package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/deckkit/internal/model"
)

// JSONWriter outputs reports in JSON format for tool integration.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the extraction report in JSON format.
func (w *JSONWriter) Write(report *ExtractionReport) (int, error) {
	return w.writeJSON(report)
}

// WriteHunt outputs the hunt result in JSON format.
func (w *JSONWriter) WriteHunt(result *model.HuntResult) (int, error) {
	return w.writeJSON(result)
}

// writeJSON marshals v and writes it with a trailing newline.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	data = append(data, '\n')

	return w.output.Write(data)
}

// JSONReport wraps a report with the version of the tool that made it.
type JSONReport struct {
	Version string `json:"version"`

	// Extraction is set for extract-fonts output.
	Extraction *ExtractionReport `json:"extraction,omitempty"`

	// Hunt is set for hunt-fonts output.
	Hunt *model.HuntResult `json:"hunt,omitempty"`
}

// FullJSONWriter outputs reports inside a JSONReport wrapper.
type FullJSONWriter struct {
	*JSONWriter

	version string
}

// NewFullJSONWriter creates a writer for complete reports with metadata.
func NewFullJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *FullJSONWriter {
	return &FullJSONWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// Write outputs the extraction report wrapped with metadata.
func (w *FullJSONWriter) Write(report *ExtractionReport) (int, error) {
	return w.writeJSON(&JSONReport{Version: w.version, Extraction: report})
}

// WriteHunt outputs the hunt result wrapped with metadata.
func (w *FullJSONWriter) WriteHunt(result *model.HuntResult) (int, error) {
	return w.writeJSON(&JSONReport{Version: w.version, Hunt: result})
}
