package wagtail

import "net/http"

// headerInjectingTransport wraps an http.RoundTripper to inject
// fixed headers into every request.
//
// Design decision: We use a custom RoundTripper rather than setting headers
// at each call site. Preview tokens and API keys then also reach redirected
// requests and the health probes without extra plumbing.
type headerInjectingTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

// RoundTrip implements http.RoundTripper.
func (t *headerInjectingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	clone := req.Clone(req.Context())
	for key, value := range t.headers {
		clone.Header.Set(key, value)
	}
	return t.base.RoundTrip(clone)
}
