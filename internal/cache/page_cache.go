package cache

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/arclebanon/arccms/internal/model"
)

// Cache keys. One document per key.
const (
	keyHome     = "home"
	keySettings = "settings"
)

// defaultFetchTimeout bounds a shared fetch once it is detached from the
// caller that started it.
const defaultFetchTimeout = 15 * time.Second

// Fetcher loads documents from the CMS. *wagtail.Client implements it.
type Fetcher interface {
	HomePage(ctx context.Context) (*model.Page, error)
	Settings(ctx context.Context) (*model.Settings, error)
}

// Stats counts cache activity.
type Stats struct {
	// Hits is the number of calls answered from a stored entry.
	Hits int64 `json:"hits"`

	// Fetches is the number of fetches issued to the CMS.
	Fetches int64 `json:"fetches"`

	// Shared is the number of calls whose fetch result went to more than
	// one caller.
	Shared int64 `json:"shared"`
}

type entry struct {
	value   any
	expires time.Time
}

// PageCache deduplicates and caches HomePage and Settings calls.
// It implements Fetcher itself, so it can stand in for the client.
//
// Design decision: The shared fetch runs on a context detached from the
// caller that happened to start it, bounded by fetchTimeout. A caller that
// gives up returns at once with its own context error while the other
// waiters still get the document.
type PageCache struct {
	fetcher      Fetcher
	ttl          time.Duration
	fetchTimeout time.Duration
	logger       *slog.Logger
	now          func() time.Time

	group singleflight.Group

	mu      sync.Mutex
	entries map[string]entry
	// generation is bumped by Invalidate; fetches started earlier are not stored.
	generation uint64

	hits    atomic.Int64
	fetches atomic.Int64
	shared  atomic.Int64
}

// Option configures a PageCache.
type Option func(*PageCache)

// WithTTL sets how long successful results are kept. Zero disables storage;
// concurrent calls are still deduplicated.
func WithTTL(ttl time.Duration) Option {
	return func(c *PageCache) {
		if ttl >= 0 {
			c.ttl = ttl
		}
	}
}

// WithFetchTimeout bounds each shared fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *PageCache) {
		if d > 0 {
			c.fetchTimeout = d
		}
	}
}

// WithLogger sets the logger for the cache.
func WithLogger(logger *slog.Logger) Option {
	return func(c *PageCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// withClock replaces time.Now in tests.
func withClock(now func() time.Time) Option {
	return func(c *PageCache) {
		c.now = now
	}
}

// New creates a PageCache in front of fetcher with a 30 second TTL.
func New(fetcher Fetcher, opts ...Option) *PageCache {
	c := &PageCache{
		fetcher:      fetcher,
		ttl:          30 * time.Second,
		fetchTimeout: defaultFetchTimeout,
		logger:       slog.Default(),
		now:          time.Now,
		entries:      make(map[string]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HomePage returns the cached home page or fetches it once for all callers.
func (c *PageCache) HomePage(ctx context.Context) (*model.Page, error) {
	v, err := c.get(ctx, keyHome, func(ctx context.Context) (any, error) {
		return c.fetcher.HomePage(ctx)
	})
	if err != nil {
		return nil, err
	}
	page, _ := v.(*model.Page)
	return page, nil
}

// Settings returns the cached settings document or fetches it once for all callers.
func (c *PageCache) Settings(ctx context.Context) (*model.Settings, error) {
	v, err := c.get(ctx, keySettings, func(ctx context.Context) (any, error) {
		return c.fetcher.Settings(ctx)
	})
	if err != nil {
		return nil, err
	}
	settings, _ := v.(*model.Settings)
	return settings, nil
}

// Invalidate drops every stored document. Fetches already in flight finish
// for their waiters but their results are not stored.
func (c *PageCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
	c.generation++
	c.group.Forget(keyHome)
	c.group.Forget(keySettings)

	c.logger.Debug("page cache invalidated")
}

// Stats returns a snapshot of the cache counters.
func (c *PageCache) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Fetches: c.fetches.Load(),
		Shared:  c.shared.Load(),
	}
}

func (c *PageCache) lookup(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

func (c *PageCache) get(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if v, ok := c.lookup(key); ok {
		c.hits.Add(1)
		return v, nil
	}

	c.mu.Lock()
	gen := c.generation
	c.mu.Unlock()

	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		c.fetches.Add(1)

		fctx, cancel := context.WithTimeout(detached, c.fetchTimeout)
		defer cancel()

		start := c.now()
		v, err := fetch(fctx)
		if err != nil {
			c.logger.Debug("shared fetch failed", "key", key, "error", err)
			return nil, err
		}

		c.mu.Lock()
		if c.ttl > 0 && gen == c.generation {
			c.entries[key] = entry{value: v, expires: c.now().Add(c.ttl)}
		}
		c.mu.Unlock()

		c.logger.Debug("shared fetch completed", "key", key, "duration", c.now().Sub(start))
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Shared {
			c.shared.Add(1)
		}
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
