package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/arclebanon/arccms/internal/resolver"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing, e.g. as a pull
// request comment after content changes.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the run report in Markdown format.
func (w *MarkdownWriter) Write(run *RunReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, run)
	w.writeAlert(md, run)
	w.writeSections(md, run)
	w.writeBlocks(md, run.Page)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, run *RunReport) {
	md.H1("ARC CMS Report")
	md.PlainText("")

	page := "unavailable"
	if run.Page != nil {
		page = fmt.Sprintf("#%d %s", run.Page.ID, run.Page.Title)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"CMS", "`" + run.BaseURL + "`"},
			{"Generated", run.GeneratedAt.Format(timeLayout)},
			{"Page", page},
			{"Sections", strconv.Itoa(len(run.Sections))},
			{"From CMS", strconv.Itoa(run.OKCount())},
			{"Defaults", strconv.Itoa(run.FallbackCount())},
		},
	})
	md.PlainText("")
}

// writeAlert writes an alert summarising the run.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, run *RunReport) {
	switch {
	case run.Page == nil && run.Degraded():
		md.Cautionf("The CMS could not be read. All %d section(s) show default content.", len(run.Sections))
	case run.Degraded():
		md.Warningf("%d section(s) fell back to defaults because a CMS request failed.", run.FallbackCount())
	case run.FallbackCount() > 0:
		md.Note(fmt.Sprintf("%d section(s) have no content in the CMS and show defaults.", run.FallbackCount()))
	default:
		md.Tip("Every section is served from the CMS.")
	}
	md.PlainText("")
}

// writeSections writes one table row per section.
func (w *MarkdownWriter) writeSections(md *markdown.Markdown, run *RunReport) {
	md.H2("Sections")
	md.PlainText("")

	if len(run.Sections) == 0 {
		md.PlainText("No sections resolved.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(run.Sections))
	for i, o := range run.Sections {
		rows[i] = []string{
			o.Section,
			statusText(o),
			truncateString(dash(strings.Join(o.Matched, ", ")), 50),
			truncateString(dash(strings.Join(o.Missing, ", ")), 50),
			o.Duration.Round(time.Millisecond).String(),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Section", "Status", "Matched", "Missing", "Duration"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, o := range run.Sections {
		if o.Error != "" {
			md.Details(o.Section+" error", o.Error)
		}
	}
	md.PlainText("")
}

func statusText(o resolver.Outcome) string {
	if o.OK() {
		return "✅ ok"
	}
	if o.Reason == resolver.ReasonNoContent {
		return "⚪ no content"
	}
	return "⚠️ " + string(o.Reason)
}

// writeBlocks writes the block counts of the page and a pie chart of them.
func (w *MarkdownWriter) writeBlocks(md *markdown.Markdown, page *PageSummary) {
	types := page.BlockTypes()
	if len(types) == 0 {
		return
	}

	md.H2("Blocks")
	md.PlainText("")

	rows := make([][]string, len(types))
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Block Types"),
		piechart.WithShowData(true),
	)
	for i, t := range types {
		n := page.BlockCounts[t]
		rows[i] = []string{"`" + t + "`", strconv.Itoa(n)}
		chart.LabelAndIntValue(t, uint64(n)) //nolint:gosec // counts are never negative
	}

	md.Table(markdown.TableSet{
		Header: []string{"Type", "Count"},
		Rows:   rows,
	})
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// WriteInspection outputs a page inspection in Markdown format.
func (w *MarkdownWriter) WriteInspection(ins *Inspection) (int, error) {
	md := markdown.NewMarkdown(w.output)

	title := "Page Inspection"
	if ins.Page != nil {
		title += ": " + ins.Page.Title
	}
	md.H1(title)
	md.PlainText("")

	if len(ins.Blocks) == 0 {
		md.Note("The page body has no matching blocks.")
		md.PlainText("")
	}

	for _, b := range ins.Blocks {
		md.H2(fmt.Sprintf("%d. %s", b.Index, b.Label))
		md.PlainText("")
		md.PlainTextf("Type `%s`", b.Type)
		md.PlainText("")

		if len(b.Fields) == 0 {
			continue
		}
		rows := make([][]string, 0, len(b.Fields))
		for _, f := range b.Fields {
			if strings.Contains(f.Value, "\n") {
				md.Details(f.Key, f.Value)
				continue
			}
			rows = append(rows, []string{f.Key, truncateString(f.Value, 80)})
		}
		if len(rows) > 0 {
			md.Table(markdown.TableSet{
				Header: []string{"Field", "Value"},
				Rows:   rows,
			})
		}
		md.PlainText("")
	}

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// WriteComparison outputs a snapshot comparison in Markdown format.
func (w *MarkdownWriter) WriteComparison(c *Comparison) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Snapshot Comparison")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"", "Older", "Newer"},
		Rows: [][]string{
			{"Snapshot", "#" + strconv.FormatInt(c.Older.ID, 10), "#" + strconv.FormatInt(c.Newer.ID, 10)},
			{"Taken", c.Older.Timestamp.Format(timeLayout), c.Newer.Timestamp.Format(timeLayout)},
			{"Title", c.Older.Title, c.Newer.Title},
			{"Body hash", "`" + dash(c.Older.BodyHash) + "`", "`" + dash(c.Newer.BodyHash) + "`"},
		},
	})
	md.PlainText("")

	if c.Unchanged() {
		md.Tip("The home page has not changed.")
		md.PlainText("")
		w.writeFooter(md)
		return len(md.String()), md.Build()
	}

	if len(c.Changes) > 0 {
		md.H2("Block Changes")
		md.PlainText("")
		rows := make([][]string, len(c.Changes))
		for i, ch := range c.Changes {
			rows[i] = []string{"`" + ch.Type + "`", strconv.Itoa(ch.Before), strconv.Itoa(ch.After)}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Type", "Before", "After"},
			Rows:   rows,
		})
		md.PlainText("")
	} else {
		md.Note("Block counts are unchanged; only block content differs.")
		md.PlainText("")
	}

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// WriteHistory outputs stored resolutions in Markdown format.
func (w *MarkdownWriter) WriteHistory(h *History) (int, error) {
	md := markdown.NewMarkdown(w.output)

	title := "Resolution History"
	if h.Section != "" {
		title += ": " + h.Section
	}
	md.H1(title)
	md.PlainText("")

	if len(h.Entries) == 0 {
		md.PlainText("No resolutions recorded.")
		md.PlainText("")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, len(h.Entries))
	for i, r := range h.Entries {
		rows[i] = []string{
			r.Timestamp.Format(timeLayout),
			r.Section,
			string(r.Status),
			string(r.Reason),
			r.Duration.Round(time.Millisecond).String(),
			truncateString(dash(r.Error), 60),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Time", "Section", "Status", "Reason", "Duration", "Error"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [arccms](https://github.com/arclebanon/arccms)*")
}
