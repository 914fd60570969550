package report

import (
	"io"
)

// Writer defines the interface for report output.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or an HTTP
// response with the same API.
type Writer interface {
	// Write outputs a run report.
	// Returns the number of bytes written and any error encountered.
	Write(run *RunReport) (int, error)

	// WriteInspection outputs a page inspection.
	WriteInspection(ins *Inspection) (int, error)

	// WriteComparison outputs a snapshot comparison.
	WriteComparison(c *Comparison) (int, error)

	// WriteHistory outputs stored resolutions.
	WriteHistory(h *History) (int, error)
}

// Format selects a Writer implementation.
type Format string

// Output formats.
const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// FormatFor returns the format selected by the --json and --markdown flags.
// Text is the default.
func FormatFor(jsonOutput, markdownOutput bool) Format {
	switch {
	case jsonOutput:
		return FormatJSON
	case markdownOutput:
		return FormatMarkdown
	default:
		return FormatText
	}
}

// NewWriter returns a Writer for format. version is embedded in JSON run
// reports; textOpts configure the text writer.
func NewWriter(output io.Writer, format Format, version string, textOpts ...SimpleWriterOption) Writer {
	switch format {
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint(), WithVersion(version))
	case FormatMarkdown:
		return NewMarkdownWriter(output)
	default:
		return NewSimpleWriter(output, textOpts...)
	}
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the run report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(run *RunReport) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.Write(run) })
}

// WriteInspection outputs the inspection to all configured Writers.
func (m *MultiWriter) WriteInspection(ins *Inspection) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteInspection(ins) })
}

// WriteComparison outputs the comparison to all configured Writers.
func (m *MultiWriter) WriteComparison(c *Comparison) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteComparison(c) })
}

// WriteHistory outputs the history to all configured Writers.
func (m *MultiWriter) WriteHistory(h *History) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteHistory(h) })
}

func (m *MultiWriter) each(write func(Writer) (int, error)) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := write(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// dash replaces an empty cell with "-".
func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncateString truncates a string to maxLen runes with ellipsis.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
