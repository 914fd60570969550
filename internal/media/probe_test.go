package media

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestFindWorkingURL(t *testing.T) {
	t.Parallel()

	var heads atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD, got %s", r.Method)
		}
		heads.Add(1)
		switch r.URL.Path {
		case "/media/rules/rule-book.pdf", "/media/rules/later.pdf":
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	t.Run("first 2xx candidate wins", func(t *testing.T) {
		urls := []string{
			"http://127.0.0.1:1/unreachable.pdf",
			srv.URL + "/media/documents/rule-book.pdf",
			srv.URL + "/media/rules/rule-book.pdf",
			srv.URL + "/media/rules/later.pdf",
		}
		got, err := FindWorkingURL(t.Context(), srv.Client(), urls, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != urls[2] {
			t.Errorf("expected %q, got %q", urls[2], got)
		}
	})

	t.Run("no candidate answers", func(t *testing.T) {
		_, err := FindWorkingURL(t.Context(), srv.Client(), []string{srv.URL + "/missing.pdf"}, nil)
		if !errors.Is(err, ErrNoWorkingURL) {
			t.Errorf("expected ErrNoWorkingURL, got %v", err)
		}
	})

	t.Run("cancelled context stops the search", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		before := heads.Load()
		_, err := FindWorkingURL(ctx, srv.Client(), []string{srv.URL + "/media/rules/rule-book.pdf"}, nil)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if heads.Load() != before {
			t.Error("expected no request after cancellation")
		}
	})
}
