package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidBaseURL is returned when the CMS base URL is empty, not
	// absolute, or uses a scheme other than http/https.
	ErrInvalidBaseURL = errors.New("invalid base URL: must be an absolute http(s) URL")

	// ErrInvalidPageType is returned when the home page type is empty.
	// The listing endpoint cannot locate the home page without it.
	ErrInvalidPageType = errors.New("invalid page type: must not be empty")

	// ErrInvalidTimeout is returned when the request timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidCacheTTL is returned when the cache TTL is negative.
	// Use 0 to disable caching.
	ErrInvalidCacheTTL = errors.New("invalid cache TTL: must be non-negative")

	// ErrInvalidConcurrency is returned when the section concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to use the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidSponsorsPerPage is returned when the sponsor page size is not positive.
	ErrInvalidSponsorsPerPage = errors.New("invalid sponsors per page: must be positive")
)
