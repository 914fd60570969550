package report

import (
	"encoding/json"
	"io"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string

	// version is embedded in run reports.
	version string
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
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// WithVersion sets the arccms version embedded in run reports.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
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

// JSONReport wraps a run report with a summary and version information.
//
// Design decision: We wrap the report rather than adding fields to
// RunReport so that output-specific fields do not leak into the preview
// server's API.
type JSONReport struct {
	// Version is the arccms version that generated this report.
	Version string `json:"version,omitempty"`

	// Summary counts the outcomes.
	Summary JSONSummary `json:"summary"`

	// Report is the full run report.
	Report *RunReport `json:"report"`
}

// JSONSummary counts the outcomes of a run.
type JSONSummary struct {
	Sections int  `json:"sections"`
	OK       int  `json:"ok"`
	Fallback int  `json:"fallback"`
	Degraded bool `json:"degraded"`
}

// Write outputs the run report in JSON format.
func (w *JSONWriter) Write(run *RunReport) (int, error) {
	return w.writeJSON(&JSONReport{
		Version: w.version,
		Summary: JSONSummary{
			Sections: len(run.Sections),
			OK:       run.OKCount(),
			Fallback: run.FallbackCount(),
			Degraded: run.Degraded(),
		},
		Report: run,
	})
}

// WriteInspection outputs the inspection in JSON format.
func (w *JSONWriter) WriteInspection(ins *Inspection) (int, error) {
	return w.writeJSON(ins)
}

// WriteComparison outputs the comparison in JSON format.
func (w *JSONWriter) WriteComparison(c *Comparison) (int, error) {
	return w.writeJSON(c)
}

// WriteHistory outputs the history in JSON format.
func (w *JSONWriter) WriteHistory(h *History) (int, error) {
	return w.writeJSON(h)
}

// writeJSON marshals the given value to JSON and writes it to the output.
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

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
