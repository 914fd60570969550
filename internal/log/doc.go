// Package log provides secure logging functionality with automatic sanitization
// of sensitive information, built on top of the standard slog package.
//
// Content fetches carry credentials more often than one would expect:
// preview tokens for draft pages, Django session and CSRF cookies copied
// from a browser, and signed media URLs handed out by object storage.
// The SecureHandler masks them before a record reaches the output:
//   - HTTP headers (Authorization, Cookie, X-CSRFToken, X-Api-Key)
//   - Values that look like bearer tokens, JWTs or long API keys
//   - Signature and token query parameters inside logged URLs
//
// Even in verbose mode, sensitive values are masked so that logs can be
// attached to bug reports as-is.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("fetching page",
//	    "url", "https://api.arc.pingtech.dev/api/v2/pages/42/?token=abc",
//	)
//	// url=https://api.arc.pingtech.dev/api/v2/pages/42/?token=***REDACTED***
//
//	slog.SetDefault(logger)
package log
