package section

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPaginate(t *testing.T) {
	t.Parallel()

	seq := func(n int) []int {
		items := make([]int, n)
		for i := range items {
			items[i] = i + 1
		}
		return items
	}

	tests := []struct {
		name      string
		n         int
		perPage   int
		wantPages int
		wantLast  int
	}{
		{name: "19 sponsors four per page", n: 19, perPage: 4, wantPages: 5, wantLast: 3},
		{name: "exact multiple", n: 8, perPage: 4, wantPages: 2, wantLast: 4},
		{name: "fewer than a page", n: 3, perPage: 4, wantPages: 1, wantLast: 3},
		{name: "empty", n: 0, perPage: 4, wantPages: 0},
		{name: "non-positive page size", n: 5, perPage: 0, wantPages: 1, wantLast: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := PageCount(tt.n, tt.perPage); got != tt.wantPages {
				t.Errorf("expected PageCount %d, got %d", tt.wantPages, got)
			}

			pages := Paginate(seq(tt.n), tt.perPage)
			if len(pages) != tt.wantPages {
				t.Fatalf("expected %d pages, got %d", tt.wantPages, len(pages))
			}
			if tt.wantPages == 0 {
				if pages == nil {
					t.Error("expected an empty, non-nil page list")
				}
				return
			}
			if got := len(pages[len(pages)-1]); got != tt.wantLast {
				t.Errorf("expected %d items on the last page, got %d", tt.wantLast, got)
			}

			var flat []int
			for _, p := range pages {
				flat = append(flat, p...)
			}
			if diff := cmp.Diff(seq(tt.n), flat); diff != "" {
				t.Errorf("pages do not preserve order (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPaginateDoesNotAlias(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, 3, 4, 5}
	pages := Paginate(items, 2)
	pages[0] = append(pages[0], 99)

	if items[2] != 3 {
		t.Errorf("expected appending to a page to leave the next page intact, got %v", items)
	}
}
