// Package report renders arccms results for people and tools.
//
// Three documents are rendered:
//   - RunReport: the outcome of resolving a set of sections
//   - Inspection: the raw blocks of the home page, with rich text shown as
//     Markdown
//   - Comparison: what changed between two page snapshots
//
// Each can be written as plain text for the terminal, as JSON for tools
// and as Markdown for sharing.
package report
