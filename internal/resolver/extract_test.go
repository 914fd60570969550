package resolver

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arclebanon/arccms/internal/model"
)

// TestExtract tests block extraction by type.
func TestExtract(t *testing.T) {
	t.Parallel()

	page := pageWith(
		block("hero_slide", model.BlockValue{"title": "A"}),
		block("about", model.BlockValue{"title": "About"}),
		block("hero_slide", model.BlockValue{"title": "B"}),
		block("hero_slide", model.BlockValue{"title": "C"}),
	)

	t.Run("matches keep body order", func(t *testing.T) {
		t.Parallel()

		want := []model.BlockValue{{"title": "A"}, {"title": "B"}, {"title": "C"}}
		if diff := cmp.Diff(want, Extract(page, "hero_slide")); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("type match is exact", func(t *testing.T) {
		t.Parallel()

		if got := Extract(page, "hero"); len(got) != 0 {
			t.Errorf("expected no matches for prefix type, got %v", got)
		}
		if got := Extract(page, "About"); len(got) != 0 {
			t.Errorf("expected case-sensitive match, got %v", got)
		}
	})

	t.Run("nil page and empty body yield empty slices", func(t *testing.T) {
		t.Parallel()

		if got := Extract(nil, "about"); got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice for nil page, got %#v", got)
		}
		if got := Extract(&model.Page{}, "about"); got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice for empty body, got %#v", got)
		}
	})

	t.Run("aliases share one ordered candidate list", func(t *testing.T) {
		t.Parallel()

		blocks := []model.Block{
			block("hero", model.BlockValue{"title": "1"}),
			block("hero_slide", model.BlockValue{"title": "2"}),
			block("hero", model.BlockValue{"title": "3"}),
		}
		want := []model.BlockValue{{"title": "1"}, {"title": "2"}, {"title": "3"}}
		if diff := cmp.Diff(want, extractAny(blocks, []string{"hero_slide", "hero"})); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

// TestCountByType tests the block type summary.
func TestCountByType(t *testing.T) {
	t.Parallel()

	blocks := []model.Block{
		block("sponsor", nil),
		block("partner", nil),
		block("sponsor", nil),
	}
	want := map[string]int{"sponsor": 2, "partner": 1}
	if diff := cmp.Diff(want, CountByType(blocks)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if got := CountByType(nil); len(got) != 0 {
		t.Errorf("expected empty counts, got %v", got)
	}
}
