package resolver

import (
	"context"
	"sync/atomic"

	"github.com/arclebanon/arccms/internal/model"
)

// PageRecorder is a Source that keeps the first home page it served.
// Reports use it to show the page the sections were resolved from without
// fetching it again; Page is nil when no section read the home page or
// every read failed.
type PageRecorder struct {
	Source

	page atomic.Pointer[model.Page]
}

// RecordPage wraps src.
func RecordPage(src Source) *PageRecorder {
	return &PageRecorder{Source: src}
}

// HomePage implements Source.
func (r *PageRecorder) HomePage(ctx context.Context) (*model.Page, error) {
	page, err := r.Source.HomePage(ctx)
	if err == nil && page != nil {
		r.page.CompareAndSwap(nil, page)
	}
	return page, err
}

// Page returns the recorded home page, or nil.
func (r *PageRecorder) Page() *model.Page {
	return r.page.Load()
}
