package resolver

import (
	"errors"
	"testing"

	"github.com/arclebanon/arccms/internal/model"
)

// TestPageRecorder tests that the recorder keeps the page sections read
// and never fetches on its own.
func TestPageRecorder(t *testing.T) {
	t.Parallel()

	t.Run("keeps the served page", func(t *testing.T) {
		t.Parallel()

		src := &fakeSource{page: pageWith(block("slide", model.BlockValue{"title": "A"}))}
		rec := RecordPage(src)

		ResolveAll(t.Context(), rec, []Section{testSpec(), testSpec()}, WithLogger(discardLogger()))

		if rec.Page() != src.page {
			t.Errorf("expected the served page, got %+v", rec.Page())
		}
		if n := src.homeCalls.Load(); n != 2 {
			t.Errorf("expected one fetch per section, got %d", n)
		}
	})

	t.Run("failed fetches record nothing", func(t *testing.T) {
		t.Parallel()

		src := &fakeSource{page: pageWith(), err: errors.New("down")}
		rec := RecordPage(src)

		testSpec().Resolve(t.Context(), rec, WithLogger(discardLogger()))

		if rec.Page() != nil {
			t.Errorf("expected no page, got %+v", rec.Page())
		}
		if n := src.homeCalls.Load(); n != 1 {
			t.Errorf("expected 1 fetch, got %d", n)
		}
	})

	t.Run("settings sections leave it empty", func(t *testing.T) {
		t.Parallel()

		src := &fakeSource{page: pageWith(), settings: &model.Settings{}}
		rec := RecordPage(src)
		spec := testSpec()
		spec.Source = FromSettings

		spec.Resolve(t.Context(), rec, WithLogger(discardLogger()))

		if rec.Page() != nil {
			t.Errorf("expected no page, got %+v", rec.Page())
		}
		if n := src.homeCalls.Load(); n != 0 {
			t.Errorf("expected no home page fetch, got %d", n)
		}
	})
}
