package wagtail

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// HealthStatus is the outcome of a backend health check.
type HealthStatus struct {
	// Ready reports whether the content API answered.
	Ready bool `json:"ready"`

	// Healthy reports whether the health endpoint answered.
	Healthy bool `json:"healthy"`

	// LastChecked is when the check finished.
	LastChecked time.Time `json:"last_checked"`

	// Err is the first failure, nil when healthy.
	Err error `json:"-"`
}

// OK reports whether the backend is ready to serve content.
func (s HealthStatus) OK() bool {
	return s.Ready && s.Healthy
}

// String returns a short human-readable description of the status.
func (s HealthStatus) String() string {
	switch {
	case s.OK():
		return "ready"
	case s.Err != nil:
		return "unavailable: " + s.Err.Error()
	default:
		return "unavailable"
	}
}

// noCache is sent with health probes so intermediaries never answer for
// the backend.
var noCache = http.Header{
	"Cache-Control": {"no-cache"},
	"Pragma":        {"no-cache"},
}

// CheckHealth probes the backend: first the health endpoint, then the page
// listing, each under its own timeout. A CMS can answer its health endpoint
// while its content API is still migrating, so both must succeed.
func (c *Client) CheckHealth(ctx context.Context) HealthStatus {
	status := HealthStatus{}

	if err := c.probe(ctx, c.apiBase+"/health/", c.healthTimeout); err != nil {
		status.Err = fmt.Errorf("health check failed: %w", err)
		status.LastChecked = time.Now()
		return status
	}
	status.Healthy = true

	if err := c.probe(ctx, c.apiBase+"/pages/", c.apiCheckTimeout); err != nil {
		status.Healthy = false
		status.Err = fmt.Errorf("api check failed: %w", err)
		status.LastChecked = time.Now()
		return status
	}
	status.Ready = true
	status.LastChecked = time.Now()

	return status
}

func (c *Client) probe(ctx context.Context, endpoint string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := c.get(ctx, endpoint, noCache)
	return err
}

// WaitForReady checks health up to attempts times, pausing delay between
// checks, and returns the first healthy status or the last failed one.
// It returns early with the context's error when ctx is done.
func (c *Client) WaitForReady(ctx context.Context, attempts int, delay time.Duration) HealthStatus {
	if attempts < 1 {
		attempts = 1
	}

	var status HealthStatus
	for attempt := 1; attempt <= attempts; attempt++ {
		status = c.CheckHealth(ctx)
		if status.OK() {
			c.logger.Info("backend is ready", "attempt", attempt)
			return status
		}

		c.logger.Warn("backend not ready",
			"attempt", attempt,
			"max_attempts", attempts,
			"error", status.Err,
		)

		if attempt == attempts {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			status.Err = ctx.Err()
			status.LastChecked = time.Now()
			return status
		case <-timer.C:
		}
	}

	c.logger.Error("backend failed to become ready", "attempts", attempts)
	return status
}
