package wagtail

import (
	"context"
	"errors"
	"fmt"
)

// Content API errors.
//
// Design decision: We define one sentinel per failure class rather than
// wrapping all errors generically. Callers choose their fallback by class
// (e.g. "CMS is down" versus "page was never published") with errors.Is.
var (
	// ErrTransport is returned when the request never produced a response:
	// connection refused, DNS failure or timeout.
	ErrTransport = errors.New("cms transport failure")

	// ErrHTTPStatus is returned (wrapped in *StatusError) for non-2xx responses.
	ErrHTTPStatus = errors.New("cms returned non-2xx status")

	// ErrMalformed is returned when a response body cannot be decoded or
	// lacks a field the client relies on.
	ErrMalformed = errors.New("malformed cms response")

	// ErrPageNotFound is returned when a listing has no page of the
	// requested type or slug.
	ErrPageNotFound = errors.New("page not found")

	// ErrInvalidBaseURL is returned by NewClient for an unusable base URL.
	ErrInvalidBaseURL = errors.New("invalid cms base URL")
)

// StatusError describes a non-2xx response.
type StatusError struct {
	// Code is the HTTP status code.
	Code int

	// URL is the requested URL.
	URL string
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d from %s", ErrHTTPStatus, e.Code, e.URL)
}

// Unwrap lets errors.Is match ErrHTTPStatus.
func (e *StatusError) Unwrap() error {
	return ErrHTTPStatus
}

// Kind is the class of a content API failure.
type Kind int

const (
	// KindNone means no error.
	KindNone Kind = iota

	// KindTransport covers connection, DNS and timeout failures.
	KindTransport

	// KindHTTPStatus covers non-2xx responses.
	KindHTTPStatus

	// KindMalformed covers undecodable or incomplete payloads.
	KindMalformed

	// KindNotFound covers empty listings.
	KindNotFound

	// KindCanceled means the caller's context was cancelled.
	KindCanceled
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTransport:
		return "transport"
	case KindHTTPStatus:
		return "http_status"
	case KindMalformed:
		return "malformed"
	case KindNotFound:
		return "not_found"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Classify maps err onto the content API error taxonomy.
// Cancellation is checked first because a cancelled request surfaces as a
// transport error too. Deadline expiry counts as a transport timeout.
// Errors outside the taxonomy are reported as KindTransport.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, ErrPageNotFound):
		return KindNotFound
	case errors.Is(err, ErrHTTPStatus):
		return KindHTTPStatus
	case errors.Is(err, ErrMalformed):
		return KindMalformed
	default:
		return KindTransport
	}
}
