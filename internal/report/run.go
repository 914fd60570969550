package report

import (
	"slices"
	"time"

	"github.com/arclebanon/arccms/internal/model"
	"github.com/arclebanon/arccms/internal/resolver"
)

// PageSummary describes the page a run resolved against.
type PageSummary struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	Type        string         `json:"type"`
	BodyHash    string         `json:"body_hash,omitempty"`
	BlockCounts map[string]int `json:"block_counts"`
}

// NewPageSummary summarises page. A nil page yields nil.
func NewPageSummary(page *model.Page) *PageSummary {
	if page == nil {
		return nil
	}
	return &PageSummary{
		ID:          page.ID,
		Title:       page.Title,
		Type:        page.Meta.Type,
		BodyHash:    page.BodyHash(),
		BlockCounts: resolver.CountByType(page.Body),
	}
}

// BlockTypes returns the block types of the page, sorted.
func (p *PageSummary) BlockTypes() []string {
	if p == nil {
		return nil
	}
	types := make([]string, 0, len(p.BlockCounts))
	for t := range p.BlockCounts {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// RunReport is the outcome of one resolve run.
type RunReport struct {
	// BaseURL is the CMS origin.
	BaseURL string `json:"base_url"`

	// GeneratedAt is when the run finished.
	GeneratedAt time.Time `json:"generated_at"`

	// Page is the home page, nil when it could not be fetched.
	Page *PageSummary `json:"page,omitempty"`

	// Sections are the outcomes in resolution order.
	Sections []resolver.Outcome `json:"sections"`
}

// NewRunReport builds a report of a run.
func NewRunReport(baseURL string, page *model.Page, outcomes []resolver.Outcome) *RunReport {
	return &RunReport{
		BaseURL:     baseURL,
		GeneratedAt: time.Now(),
		Page:        NewPageSummary(page),
		Sections:    outcomes,
	}
}

// OKCount returns the number of sections resolved from the CMS.
func (r *RunReport) OKCount() int {
	n := 0
	for _, s := range r.Sections {
		if s.OK() {
			n++
		}
	}
	return n
}

// FallbackCount returns the number of sections showing defaults.
func (r *RunReport) FallbackCount() int {
	return len(r.Sections) - r.OKCount()
}

// Degraded reports whether any section fell back for a reason other than
// missing content, i.e. because the CMS could not be read.
func (r *RunReport) Degraded() bool {
	for _, s := range r.Sections {
		if !s.OK() && s.Reason != resolver.ReasonNoContent {
			return true
		}
	}
	return false
}
