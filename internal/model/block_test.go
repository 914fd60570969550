package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestBlockValueUnmarshal tests that every JSON shape decodes into a BlockValue.
func TestBlockValueUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want BlockValue
	}{
		{name: "object", data: `{"title": "X"}`, want: BlockValue{"title": "X"}},
		{name: "rich text string", data: `"<p>hi</p>"`, want: BlockValue{ScalarKey: "<p>hi</p>"}},
		{name: "image id", data: `12`, want: BlockValue{ScalarKey: float64(12)}},
		{name: "list", data: `["a","b"]`, want: BlockValue{ScalarKey: []any{"a", "b"}}},
		{name: "null", data: `null`, want: BlockValue{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got BlockValue
			if err := json.Unmarshal([]byte(tt.data), &got); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestBlockValueAccessors tests the typed accessors.
func TestBlockValueAccessors(t *testing.T) {
	t.Parallel()

	var v BlockValue
	data := `{
		"title": "Robot Soccer",
		"year": 2024,
		"weight": "3",
		"open": true,
		"rules": ["Team size: 3 robots", "", {"type": "item", "value": "Ball detection required"}],
		"benefits": [
			{"type": "item", "value": {"title": "Impact"}},
			{"title": "Skills"},
			"plain"
		],
		"link": {"url": "https://example.org"},
		"image": {"large": "https://cdn/l.jpg"},
		"photo": "https://cdn/raw.jpg",
		"document": {"id": 7, "title": "Rules", "meta": {"download_url": "/documents/7/rules.pdf"}},
		"doc_id": 9
	}`
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("String", func(t *testing.T) {
		t.Parallel()
		if got := v.String("title"); got != "Robot Soccer" {
			t.Errorf("expected 'Robot Soccer', got %q", got)
		}
		if got := v.String("year"); got != "2024" {
			t.Errorf("expected '2024', got %q", got)
		}
		if got := v.String("open"); got != "true" {
			t.Errorf("expected 'true', got %q", got)
		}
		if got := v.String("link"); got != "" {
			t.Errorf("expected empty string for object, got %q", got)
		}
	})

	t.Run("Strings skips empty and unwraps list items", func(t *testing.T) {
		t.Parallel()
		want := []string{"Team size: 3 robots", "Ball detection required"}
		if diff := cmp.Diff(want, v.Strings("rules")); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		if got := v.Strings("title"); got != nil {
			t.Errorf("expected nil for non-list, got %v", got)
		}
	})

	t.Run("Int", func(t *testing.T) {
		t.Parallel()
		if n, ok := v.Int("year"); !ok || n != 2024 {
			t.Errorf("expected 2024, got %d (ok=%v)", n, ok)
		}
		if n, ok := v.Int("weight"); !ok || n != 3 {
			t.Errorf("expected 3 from numeric string, got %d (ok=%v)", n, ok)
		}
		if _, ok := v.Int("title"); ok {
			t.Error("expected ok=false for non-numeric value")
		}
	})

	t.Run("Bool", func(t *testing.T) {
		t.Parallel()
		if !v.Bool("open") {
			t.Error("expected true")
		}
		if v.Bool("missing") {
			t.Error("expected false for missing key")
		}
	})

	t.Run("Has", func(t *testing.T) {
		t.Parallel()
		if !v.Has("title") {
			t.Error("expected title to be present")
		}
		if v.Has("missing") {
			t.Error("expected missing key to be absent")
		}
	})

	t.Run("List unwraps items and wraps scalars", func(t *testing.T) {
		t.Parallel()
		want := []BlockValue{
			{"title": "Impact"},
			{"title": "Skills"},
			{ScalarKey: "plain"},
		}
		if diff := cmp.Diff(want, v.List("benefits")); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Map", func(t *testing.T) {
		t.Parallel()
		if got := v.Map("link").String("url"); got != "https://example.org" {
			t.Errorf("expected nested url, got %q", got)
		}
		if v.Map("title") != nil {
			t.Error("expected nil map for scalar")
		}
	})

	t.Run("Image", func(t *testing.T) {
		t.Parallel()
		if got := v.Image("image").URL(); got != "https://cdn/l.jpg" {
			t.Errorf("expected large rendition, got %q", got)
		}
		if got := v.Image("photo").URL(); got != "https://cdn/raw.jpg" {
			t.Errorf("expected raw url, got %q", got)
		}
		if !v.Image("missing").IsZero() {
			t.Error("expected zero image for missing key")
		}
	})

	t.Run("Document", func(t *testing.T) {
		t.Parallel()
		doc := v.Document("document")
		if doc.ID != 7 || doc.Title != "Rules" || doc.URL != "/documents/7/rules.pdf" {
			t.Errorf("unexpected document: %+v", doc)
		}
		if got := v.Document("doc_id"); got.ID != 9 {
			t.Errorf("expected id 9, got %+v", got)
		}
		if !v.Document("missing").IsZero() {
			t.Error("expected zero document for missing key")
		}
	})
}
