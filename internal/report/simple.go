package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/arclebanon/arccms/internal/resolver"
)

const (
	timeLayout = "2006-01-02 15:04:05 MST"
	ruleWidth  = 70
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with one line per section
// and clear section formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because it works in all terminals and pipes cleanly to files.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether blocks without fields are shown
	// in inspections.
	showEmpty bool

	// verbose adds matched and missing block types per section.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show blocks without fields.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the run report in human-readable format.
func (w *SimpleWriter) Write(run *RunReport) (int, error) {
	var sb strings.Builder

	writeBanner(&sb, "ARC CMS REPORT")

	fmt.Fprintf(&sb, "CMS:        %s\n", run.BaseURL)
	fmt.Fprintf(&sb, "Generated:  %s\n", run.GeneratedAt.Format(timeLayout))
	if run.Page != nil {
		fmt.Fprintf(&sb, "Page:       #%d %s (%s)\n", run.Page.ID, run.Page.Title, run.Page.Type)
	} else {
		sb.WriteString("Page:       unavailable\n")
	}
	fmt.Fprintf(&sb, "Sections:   %d ok, %d fallback\n", run.OKCount(), run.FallbackCount())
	switch {
	case run.Degraded():
		sb.WriteString("Status:     DEGRADED (CMS unreachable or invalid)\n")
	case run.FallbackCount() > 0:
		sb.WriteString("Status:     Partial (some sections have no content)\n")
	default:
		sb.WriteString("Status:     Complete\n")
	}
	sb.WriteString("\n")

	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	for _, o := range run.Sections {
		w.writeOutcome(&sb, o)
	}
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")

	if run.Page != nil && w.verbose {
		sb.WriteString("\nBlocks:\n")
		for _, t := range run.Page.BlockTypes() {
			fmt.Fprintf(&sb, "  %-24s %d\n", t, run.Page.BlockCounts[t])
		}
	}

	return w.output.Write([]byte(sb.String()))
}

// writeOutcome writes one line per section, plus detail lines.
func (w *SimpleWriter) writeOutcome(sb *strings.Builder, o resolver.Outcome) {
	status := "[ok]"
	if !o.OK() {
		status = "[" + string(o.Reason) + "]"
	}
	fmt.Fprintf(sb, "  %-14s %-12s %8s\n", status, o.Section, o.Duration.Round(time.Millisecond))

	if o.Error != "" {
		fmt.Fprintf(sb, "      error:   %s\n", truncateString(o.Error, ruleWidth-15))
	}
	if !w.verbose {
		return
	}
	if len(o.Matched) > 0 {
		fmt.Fprintf(sb, "      matched: %s\n", strings.Join(o.Matched, ", "))
	}
	if len(o.Missing) > 0 {
		fmt.Fprintf(sb, "      missing: %s\n", strings.Join(o.Missing, ", "))
	}
}

// WriteInspection outputs a page inspection in human-readable format.
func (w *SimpleWriter) WriteInspection(ins *Inspection) (int, error) {
	var sb strings.Builder

	writeBanner(&sb, "PAGE INSPECTION")

	fmt.Fprintf(&sb, "CMS:    %s\n", ins.BaseURL)
	if ins.Page != nil {
		fmt.Fprintf(&sb, "Page:   #%d %s (%s)\n", ins.Page.ID, ins.Page.Title, ins.Page.Type)
		fmt.Fprintf(&sb, "Hash:   %s\n", dash(ins.Page.BodyHash))
	}
	fmt.Fprintf(&sb, "Blocks: %d\n\n", len(ins.Blocks))

	for _, b := range ins.Blocks {
		if len(b.Fields) == 0 && !w.showEmpty {
			continue
		}
		fmt.Fprintf(&sb, "[%d] %s (%s)\n", b.Index, b.Label, b.Type)
		for _, f := range b.Fields {
			value := strings.ReplaceAll(f.Value, "\n", " ")
			fmt.Fprintf(&sb, "    %-20s %s\n", f.Key+":", truncateString(value, ruleWidth-25))
		}
		sb.WriteString("\n")
	}

	return w.output.Write([]byte(sb.String()))
}

// WriteComparison outputs a snapshot comparison in human-readable format.
func (w *SimpleWriter) WriteComparison(c *Comparison) (int, error) {
	var sb strings.Builder

	writeBanner(&sb, "SNAPSHOT COMPARISON")

	fmt.Fprintf(&sb, "Older:  #%d %s  %s\n", c.Older.ID, c.Older.Timestamp.Format(timeLayout), c.Older.Title)
	fmt.Fprintf(&sb, "Newer:  #%d %s  %s\n\n", c.Newer.ID, c.Newer.Timestamp.Format(timeLayout), c.Newer.Title)

	if c.Unchanged() {
		sb.WriteString("No changes.\n")
		return w.output.Write([]byte(sb.String()))
	}

	if c.TitleChanged {
		fmt.Fprintf(&sb, "Title:  %q -> %q\n", c.Older.Title, c.Newer.Title)
	}
	if c.BodyChanged {
		sb.WriteString("Body:   changed\n")
	}
	if len(c.Changes) > 0 {
		sb.WriteString("\nBlock counts:\n")
		for _, ch := range c.Changes {
			fmt.Fprintf(&sb, "  %-24s %d -> %d\n", ch.Type, ch.Before, ch.After)
		}
	}

	return w.output.Write([]byte(sb.String()))
}

// WriteHistory outputs stored resolutions in human-readable format.
func (w *SimpleWriter) WriteHistory(h *History) (int, error) {
	var sb strings.Builder

	title := "RESOLUTION HISTORY"
	if h.Section != "" {
		title += ": " + strings.ToUpper(h.Section)
	}
	writeBanner(&sb, title)

	if len(h.Entries) == 0 {
		sb.WriteString("No resolutions recorded.\n")
		return w.output.Write([]byte(sb.String()))
	}

	for _, r := range h.Entries {
		fmt.Fprintf(&sb, "  %s  %-12s %-9s %-12s %8s\n",
			r.Timestamp.Local().Format("2006-01-02 15:04:05"),
			r.Section, r.Status, r.Reason, r.Duration.Round(time.Millisecond))
		if w.verbose && r.Error != "" {
			fmt.Fprintf(&sb, "      error: %s\n", truncateString(r.Error, ruleWidth-13))
		}
	}

	return w.output.Write([]byte(sb.String()))
}

// writeBanner writes a centered title between two rules.
func writeBanner(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	if pad := (ruleWidth - len(title)) / 2; pad > 0 {
		sb.WriteString(strings.Repeat(" ", pad))
	}
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")
}
