package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/arclebanon/arccms/internal/model"
)

// fakeFetcher counts calls and can block until released.
type fakeFetcher struct {
	homeCalls     atomic.Int32
	settingsCalls atomic.Int32

	// gate, when non-nil, blocks HomePage until closed.
	gate chan struct{}
	// started receives once per HomePage call.
	started chan struct{}

	mu   sync.Mutex
	errs []error // returned by successive HomePage calls, then nil
}

func (f *fakeFetcher) HomePage(ctx context.Context) (*model.Page, error) {
	f.homeCalls.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return nil, err
	}
	return &model.Page{ID: 42, Title: "Home"}, nil
}

func (f *fakeFetcher) Settings(_ context.Context) (*model.Settings, error) {
	f.settingsCalls.Add(1)
	return &model.Settings{ID: 1, SiteName: "ARC"}, nil
}

// fakeClock is a concurrency-safe settable clock.
type fakeClock struct {
	nanos atomic.Int64
}

func (c *fakeClock) Now() time.Time          { return time.Unix(0, c.nanos.Load()) }
func (c *fakeClock) Advance(d time.Duration) { c.nanos.Add(int64(d)) }

// TestPageCacheDeduplicates tests that concurrent callers share one fetch.
func TestPageCacheDeduplicates(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{}
	c := New(f)

	const callers = 20
	var wg sync.WaitGroup
	pages := make([]*model.Page, callers)
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pages[i], errs[i] = c.HomePage(t.Context())
		}()
	}
	wg.Wait()

	for i := range callers {
		if errs[i] != nil {
			t.Fatalf("caller %d: unexpected error: %v", i, errs[i])
		}
		if pages[i] != pages[0] {
			t.Errorf("caller %d got a different page instance", i)
		}
	}
	if n := f.homeCalls.Load(); n != 1 {
		t.Errorf("expected 1 fetch, got %d", n)
	}
	if s := c.Stats(); s.Fetches != 1 {
		t.Errorf("expected stats to report 1 fetch, got %+v", s)
	}
}

// TestPageCacheTTL tests expiry of stored entries.
func TestPageCacheTTL(t *testing.T) {
	t.Parallel()

	t.Run("entry is reused until the TTL passes", func(t *testing.T) {
		t.Parallel()

		clock := &fakeClock{}
		f := &fakeFetcher{}
		c := New(f, WithTTL(30*time.Second), withClock(clock.Now))

		for range 3 {
			if _, err := c.HomePage(t.Context()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if n := f.homeCalls.Load(); n != 1 {
			t.Fatalf("expected 1 fetch within TTL, got %d", n)
		}
		if s := c.Stats(); s.Hits != 2 {
			t.Errorf("expected 2 hits, got %d", s.Hits)
		}

		clock.Advance(30 * time.Second)
		if _, err := c.HomePage(t.Context()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n := f.homeCalls.Load(); n != 2 {
			t.Errorf("expected refetch after TTL, got %d fetches", n)
		}
	})

	t.Run("zero TTL stores nothing", func(t *testing.T) {
		t.Parallel()

		f := &fakeFetcher{}
		c := New(f, WithTTL(0))

		for range 2 {
			if _, err := c.HomePage(t.Context()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if n := f.homeCalls.Load(); n != 2 {
			t.Errorf("expected 2 fetches without storage, got %d", n)
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()

		f := &fakeFetcher{}
		c := New(f)

		if _, err := c.HomePage(t.Context()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		settings, err := c.Settings(t.Context())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if settings.SiteName != "ARC" {
			t.Errorf("expected settings document, got %+v", settings)
		}
		if f.homeCalls.Load() != 1 || f.settingsCalls.Load() != 1 {
			t.Errorf("expected one fetch per key, got home=%d settings=%d", f.homeCalls.Load(), f.settingsCalls.Load())
		}
	})
}

// TestPageCacheErrorsNotCached tests that failures are retried by the next caller.
func TestPageCacheErrorsNotCached(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	f := &fakeFetcher{errs: []error{boom}}
	c := New(f)

	if _, err := c.HomePage(t.Context()); !errors.Is(err, boom) {
		t.Fatalf("expected first call to fail with %v, got %v", boom, err)
	}
	page, err := c.HomePage(t.Context())
	if err != nil {
		t.Fatalf("expected second call to succeed, got %v", err)
	}
	if page.ID != 42 {
		t.Errorf("expected page 42, got %d", page.ID)
	}
	if n := f.homeCalls.Load(); n != 2 {
		t.Errorf("expected 2 fetches, got %d", n)
	}
}

// TestPageCacheCancelledWaiter tests that a cancelled caller does not
// disturb the shared fetch.
func TestPageCacheCancelledWaiter(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{
		gate:    make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	c := New(f)

	ctx, cancel := context.WithCancel(t.Context())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.HomePage(ctx)
		firstErr <- err
	}()

	<-f.started
	cancel()

	select {
	case err := <-firstErr:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled caller did not return promptly")
	}

	secondPage := make(chan *model.Page, 1)
	go func() {
		page, err := c.HomePage(t.Context())
		if err != nil {
			t.Errorf("unexpected error for second caller: %v", err)
		}
		secondPage <- page
	}()

	close(f.gate)

	select {
	case page := <-secondPage:
		if page == nil || page.ID != 42 {
			t.Errorf("expected page 42, got %+v", page)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("second caller did not receive the shared result")
	}
	if n := f.homeCalls.Load(); n != 1 {
		t.Errorf("expected the detached fetch to be shared, got %d fetches", n)
	}
}

// TestPageCacheInvalidate tests that Invalidate forces a refetch.
func TestPageCacheInvalidate(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{}
	c := New(f)

	if _, err := c.HomePage(t.Context()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Invalidate()
	if _, err := c.HomePage(t.Context()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := f.homeCalls.Load(); n != 2 {
		t.Errorf("expected refetch after invalidate, got %d fetches", n)
	}
}

// TestPageCacheCancelledBeforeCall tests the fast path for dead contexts.
func TestPageCacheCancelledBeforeCall(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{}
	c := New(f)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	if _, err := c.HomePage(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if n := f.homeCalls.Load(); n != 0 {
		t.Errorf("expected no fetch, got %d", n)
	}
}
