package resolver

import (
	"time"

	"github.com/arclebanon/arccms/internal/wagtail"
)

// Status tags a Result.
type Status string

const (
	// StatusOK means at least one field came from the CMS.
	StatusOK Status = "ok"

	// StatusFallback means the view model is the section default.
	StatusFallback Status = "fallback"
)

// Reason explains a fallback.
type Reason string

// Fallback reasons. The first group mirrors the CMS error taxonomy.
const (
	ReasonNone       Reason = "none"
	ReasonTransport  Reason = "transport"
	ReasonHTTPStatus Reason = "http_status"
	ReasonMalformed  Reason = "malformed"
	ReasonNotFound   Reason = "not_found"
	ReasonNoContent  Reason = "no_content"
	ReasonCanceled   Reason = "canceled"
)

// Result is the outcome of resolving one section.
type Result[VM any] struct {
	// Section is the section name.
	Section string `json:"section"`

	// Status is ok or fallback.
	Status Status `json:"status"`

	// Reason is none for ok results.
	Reason Reason `json:"reason"`

	// Err is the fetch error behind a fallback, if any.
	Err error `json:"-"`

	// Error is Err's message, for reports.
	Error string `json:"error,omitempty"`

	// ViewModel is always usable, CMS-sourced or default.
	ViewModel VM `json:"view_model"`

	// PageID is the id of the page read, 0 for settings or failed fetches.
	PageID int `json:"page_id,omitempty"`

	// Matched lists the block types that contributed content.
	Matched []string `json:"matched,omitempty"`

	// Missing lists the block types that kept their defaults.
	Missing []string `json:"missing,omitempty"`

	// ResolvedAt is when resolution finished.
	ResolvedAt time.Time `json:"resolved_at"`

	// Duration is how long resolution took, fetch included.
	Duration time.Duration `json:"duration"`
}

// Outcome is a Result whose view model type has been erased, so results of
// different sections can travel together.
type Outcome = Result[any]

// OK reports whether the result carries CMS content.
func (r Result[VM]) OK() bool {
	return r.Status == StatusOK
}

// Erase converts the result to an Outcome.
func (r Result[VM]) Erase() Outcome {
	return Outcome{
		Section:    r.Section,
		Status:     r.Status,
		Reason:     r.Reason,
		Err:        r.Err,
		Error:      r.Error,
		ViewModel:  r.ViewModel,
		PageID:     r.PageID,
		Matched:    r.Matched,
		Missing:    r.Missing,
		ResolvedAt: r.ResolvedAt,
		Duration:   r.Duration,
	}
}

// reasonFor maps a fetch error onto a fallback reason.
func reasonFor(err error) Reason {
	switch wagtail.Classify(err) {
	case wagtail.KindNone:
		return ReasonNone
	case wagtail.KindCanceled:
		return ReasonCanceled
	case wagtail.KindHTTPStatus:
		return ReasonHTTPStatus
	case wagtail.KindMalformed:
		return ReasonMalformed
	case wagtail.KindNotFound:
		return ReasonNotFound
	default:
		return ReasonTransport
	}
}
