package report

import (
	"slices"

	"github.com/arclebanon/arccms/internal/database"
)

// BlockChange is a change in the number of blocks of one type.
type BlockChange struct {
	Type   string `json:"type"`
	Before int    `json:"before"`
	After  int    `json:"after"`
}

// Comparison describes the difference between two page snapshots.
type Comparison struct {
	Older database.PageSnapshot `json:"older"`
	Newer database.PageSnapshot `json:"newer"`

	// BodyChanged is true when the body hashes differ.
	BodyChanged bool `json:"body_changed"`

	// TitleChanged is true when the page title differs.
	TitleChanged bool `json:"title_changed"`

	// Changes lists block types whose count changed, by type name.
	Changes []BlockChange `json:"changes"`
}

// Compare computes the difference from older to newer.
func Compare(older, newer database.PageSnapshot) *Comparison {
	c := &Comparison{
		Older:        older,
		Newer:        newer,
		BodyChanged:  older.BodyHash != newer.BodyHash,
		TitleChanged: older.Title != newer.Title,
		Changes:      []BlockChange{},
	}

	types := make([]string, 0, len(older.BlockCounts)+len(newer.BlockCounts))
	for t := range older.BlockCounts {
		types = append(types, t)
	}
	for t := range newer.BlockCounts {
		if _, ok := older.BlockCounts[t]; !ok {
			types = append(types, t)
		}
	}
	slices.Sort(types)

	for _, t := range types {
		before, after := older.BlockCounts[t], newer.BlockCounts[t]
		if before != after {
			c.Changes = append(c.Changes, BlockChange{Type: t, Before: before, After: after})
		}
	}
	return c
}

// Unchanged reports whether the two snapshots describe the same content.
func (c *Comparison) Unchanged() bool {
	return !c.BodyChanged && !c.TitleChanged && len(c.Changes) == 0
}
