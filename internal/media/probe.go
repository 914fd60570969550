package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// ErrNoWorkingURL is returned by FindWorkingURL when no candidate answers.
var ErrNoWorkingURL = errors.New("no working media url")

// Exists reports whether a HEAD request for rawURL succeeds with a 2xx
// status. Transport errors are returned; a non-2xx status is not an error.
func Exists(ctx context.Context, hc *http.Client, rawURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return false, err
	}

	resp, err := hc.Do(req)
	if err != nil {
		return false, err
	}
	_ = resp.Body.Close() //nolint:errcheck // HEAD responses have no body

	return resp.StatusCode >= 200 && resp.StatusCode <= 299, nil
}

// FindWorkingURL probes urls in order with HEAD requests and returns the
// first one that answers 2xx. Probes run one at a time so the earliest
// candidate wins deterministically. A failed probe is logged at debug
// level and the next candidate is tried; a cancelled ctx stops the search.
func FindWorkingURL(ctx context.Context, hc *http.Client, urls []string, logger *slog.Logger) (string, error) {
	if hc == nil {
		hc = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}

	for _, u := range urls {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		ok, err := Exists(ctx, hc, u)
		if err != nil {
			logger.Debug("media probe failed", "url", u, "error", err)
			continue
		}
		if ok {
			return u, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("%w: tried %d candidates", ErrNoWorkingURL, len(urls))
}
