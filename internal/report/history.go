package report

import (
	"github.com/arclebanon/arccms/internal/database"
)

// History is a list of stored resolutions, newest first.
type History struct {
	// Section is the section the entries belong to. Empty means the
	// entries are the latest resolution of every section.
	Section string `json:"section,omitempty"`

	Entries []database.Resolution `json:"entries"`
}

// NewHistory wraps stored resolutions. A nil slice becomes empty so the
// JSON output is always a list.
func NewHistory(section string, entries []database.Resolution) *History {
	if entries == nil {
		entries = []database.Resolution{}
	}
	return &History{Section: section, Entries: entries}
}
