package resolver

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// defaultConcurrency is the number of sections resolved at once.
const defaultConcurrency = 8

// options holds settings shared by Resolve and ResolveAll.
type options struct {
	logger      *slog.Logger
	concurrency int
}

// Option configures resolution.
type Option func(*options)

// WithLogger sets the logger used for resolution outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithConcurrency sets how many sections ResolveAll runs at once.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:      slog.Default(),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ResolveAll resolves sections concurrently against src and returns their
// outcomes in input order. Put a cache in front of src so the sections
// share one fetch per document.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it bounds concurrency in a few lines and Wait guarantees every
// goroutine has returned before the results are read. Sections never
// return errors, so one failing section cannot cancel its siblings.
func ResolveAll(ctx context.Context, src Source, sections []Section, opts ...Option) []Outcome {
	o := newOptions(opts)
	start := time.Now()

	o.logger.Debug("resolving sections",
		"total", len(sections),
		"concurrency", o.concurrency,
	)

	outcomes := make([]Outcome, len(sections))

	var g errgroup.Group
	g.SetLimit(o.concurrency)
	for i, sec := range sections {
		g.Go(func() error {
			// Each goroutine writes only its own index.
			outcomes[i] = sec.ResolveOutcome(ctx, src, opts...)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // goroutines never return errors

	fallbacks := 0
	for _, out := range outcomes {
		if !out.OK() {
			fallbacks++
		}
	}
	o.logger.Debug("sections resolved",
		"total", len(sections),
		"fallbacks", fallbacks,
		"elapsed", time.Since(start),
	)

	return outcomes
}
