package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const (
	homeListing = `{"meta": {"total_count": 1}, "items": [{"id": 7, "title": "Home", "meta": {"type": "cms_app.HomePage"}}]}`

	homeDetail = `{
	"id": 7,
	"title": "Home",
	"meta": {"type": "cms_app.HomePage", "slug": "home"},
	"body": [
		{"id": "h1", "type": "hero_slide", "value": {"title": "Build the future", "subtitle": "ARC 2026"}},
		{"id": "e1", "type": "event", "value": {"title": "Qualifiers", "date": "2026-03-01"}},
		{"id": "a1", "type": "about", "value": {"title": "About ARC", "description": "<p>Robots <em>everywhere</em></p>"}}
	]
}`

	settingsDoc = `{"id": 1, "site_name": "ARC", "body": [{"type": "nav_item", "value": {"label": "Events", "anchor": "#events"}}]}`

	documentDoc = `{"id": 12, "title": "Competition Rules", "file_extension": "pdf", "file_size": 1536, "meta": {"download_url": "/media/documents/competition-rules.pdf"}}`
)

// newFakeCMS starts a Wagtail API stub serving one home page.
func newFakeCMS(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v2/health/", jsonHandler(`{"status": "ok"}`))
	mux.HandleFunc("GET /api/v2/pages/{$}", jsonHandler(homeListing))
	mux.HandleFunc("GET /api/v2/pages/7/", jsonHandler(homeDetail))
	mux.HandleFunc("GET /api/v2/settings/", jsonHandler(settingsDoc))
	mux.HandleFunc("GET /api/v2/documents/12/", jsonHandler(documentDoc))
	mux.HandleFunc("HEAD /media/documents/competition-rules.pdf", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// newDownCMS returns the URL of a server that is already closed.
func newDownCMS(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	return srv.URL
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body)) //nolint:errcheck // test server
	}
}

// emptyConfig writes an empty configuration file so tests never pick up a
// file from the working or home directory.
func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arccms.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(t.Context())
	return stdout.String(), err
}
