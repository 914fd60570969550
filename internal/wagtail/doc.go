// Package wagtail provides a read-only client for the Wagtail v2 content API
// that backs the ARC site.
//
// The client resolves the site's home page in two requests: the page
// listing filtered by content type, then the detail document of the first
// listed page. It also reads the site settings document, document metadata
// and the image listing, and probes backend health.
//
// # Error taxonomy
//
// Every failure is caller-visible and falls into exactly one class:
//   - ErrTransport: connection refused, DNS failure, timeout
//   - ErrHTTPStatus (via *StatusError): any non-2xx response
//   - ErrMalformed: invalid JSON, oversized body, missing page id
//   - ErrPageNotFound: a valid listing with zero matching pages
//
// Classify maps an error onto these classes. Context cancellation is
// reported as KindCanceled so callers can tell teardown from outage.
// The client never retries; retry policy belongs to the caller.
//
// # Usage
//
//	client, err := wagtail.NewClient("https://api.arc.pingtech.dev",
//	    wagtail.WithTimeout(15*time.Second),
//	    wagtail.WithLogger(logger),
//	)
//	page, err := client.HomePage(ctx)
package wagtail
