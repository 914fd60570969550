package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestPageUnmarshal tests decoding of Wagtail page documents.
func TestPageUnmarshal(t *testing.T) {
	t.Parallel()

	t.Run("decodes detail document with body", func(t *testing.T) {
		t.Parallel()

		data := `{
			"id": 42,
			"title": "Home",
			"meta": {"type": "cms_app.HomePage", "slug": "home", "locale": "en"},
			"body": [
				{"id": "a1", "type": "hero", "value": {"title": "X", "description": "Y"}},
				{"id": "a2", "type": "paragraph", "value": "<p>Hello</p>"}
			],
			"hero_title": "Welcome"
		}`

		var page Page
		if err := json.Unmarshal([]byte(data), &page); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := Page{
			ID:    42,
			Title: "Home",
			Meta:  PageMeta{Type: "cms_app.HomePage", Slug: "home", Locale: "en"},
			Body: []Block{
				{ID: "a1", Type: "hero", Value: BlockValue{"title": "X", "description": "Y"}},
				{ID: "a2", Type: "paragraph", Value: BlockValue{ScalarKey: "<p>Hello</p>"}},
			},
			Fields: map[string]any{"hero_title": "Welcome"},
		}
		if diff := cmp.Diff(want, page); diff != "" {
			t.Errorf("page mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("listing item has no body and no extra fields", func(t *testing.T) {
		t.Parallel()

		var page Page
		if err := json.Unmarshal([]byte(`{"id": 3, "title": "T", "meta": {"type": "x"}}`), &page); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Body != nil {
			t.Errorf("expected nil body, got %v", page.Body)
		}
		if page.Fields != nil {
			t.Errorf("expected nil fields, got %v", page.Fields)
		}
	})

	t.Run("body that is not a list is an error", func(t *testing.T) {
		t.Parallel()

		var page Page
		if err := json.Unmarshal([]byte(`{"id": 3, "body": "oops"}`), &page); err == nil {
			t.Error("expected error for non-list body")
		}
	})
}

// TestPageField tests the Field accessor.
func TestPageField(t *testing.T) {
	t.Parallel()

	page := &Page{Fields: map[string]any{"hero_title": "Welcome", "count": float64(3)}}

	if got := page.Field("hero_title"); got != "Welcome" {
		t.Errorf("expected 'Welcome', got %q", got)
	}
	if got := page.Field("count"); got != "3" {
		t.Errorf("expected '3', got %q", got)
	}
	if got := page.Field("missing"); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}

	var nilPage *Page
	if got := nilPage.Field("hero_title"); got != "" {
		t.Errorf("expected empty string for nil page, got %q", got)
	}
}

// TestPageBodyHash tests the BodyHash method.
func TestPageBodyHash(t *testing.T) {
	t.Parallel()

	t.Run("empty body produces empty hash", func(t *testing.T) {
		t.Parallel()

		page := &Page{}
		if h := page.BodyHash(); h != "" {
			t.Errorf("expected empty hash, got %q", h)
		}
	})

	t.Run("equal bodies produce equal hashes", func(t *testing.T) {
		t.Parallel()

		a := &Page{ID: 1, Body: []Block{{Type: "hero", Value: BlockValue{"title": "X"}}}}
		b := &Page{ID: 2, Body: []Block{{Type: "hero", Value: BlockValue{"title": "X"}}}}
		if a.BodyHash() != b.BodyHash() {
			t.Error("expected equal hashes for equal bodies")
		}
		if len(a.BodyHash()) != 64 {
			t.Errorf("expected 64 hex characters, got %d", len(a.BodyHash()))
		}
	})

	t.Run("different bodies produce different hashes", func(t *testing.T) {
		t.Parallel()

		a := &Page{Body: []Block{{Type: "hero", Value: BlockValue{"title": "X"}}}}
		b := &Page{Body: []Block{{Type: "hero", Value: BlockValue{"title": "Z"}}}}
		if a.BodyHash() == b.BodyHash() {
			t.Error("expected different hashes")
		}
	})
}
