package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pfrederiksen/gameday/internal/logger"
)

const (
	DefaultUserAgent = "gameday-cli/1.0 (github.com/pfrederiksen/gameday)"
	DefaultTimeout   = 30 * time.Second
)

// Getter fetches one feed document. *Fetcher is the network implementation.
type Getter interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Options configures a Fetcher. Zero values fall back to defaults.
type Options struct {
	HTTPClient *http.Client
	UserAgent  string
	Timeout    time.Duration
	Logger     *logger.Logger
	Metrics    *logger.Metrics
}

// Fetcher handles HTTP retrieval of feed documents
type Fetcher struct {
	client    *http.Client
	userAgent string
	log       *logger.Logger
	metrics   *logger.Metrics
}

// New creates a Fetcher from opts.
func New(opts Options) *Fetcher {
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	log := opts.Logger
	if log == nil {
		log = logger.Default()
	}

	metrics := opts.Metrics
	if metrics == nil {
		metrics = logger.DefaultMetrics()
	}

	return &Fetcher{
		client:    client,
		userAgent: userAgent,
		log:       log,
		metrics:   metrics,
	}
}

// Fetch performs a single GET of url and returns the full response body.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	start := time.Now()
	f.metrics.IncrCounter("feed.fetch")

	body, status, err := f.get(ctx, url)
	elapsed := time.Since(start)
	f.metrics.RecordTiming("feed.fetch", elapsed)

	if err != nil {
		var fe *Error
		if errors.As(err, &fe) {
			f.metrics.IncrCounter("feed.fetch.errors." + kindName(fe.Kind))
		}
		f.log.Debug("Feed request failed", logger.Fields{
			"url":         url,
			"status":      status,
			"duration_ms": elapsed.Milliseconds(),
			"error":       err.Error(),
		})
		return nil, err
	}

	f.log.Debug("Fetched feed", logger.Fields{
		"url":         url,
		"status":      status,
		"bytes":       len(body),
		"duration_ms": elapsed.Milliseconds(),
	})
	return body, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		// A URL that cannot form a request can never be fetched.
		return nil, 0, &Error{Kind: ErrFeedNotFound, URL: url, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, &Error{Kind: ErrFeedUnavailable, URL: url, Err: cause(ctx, err)}
	}
	defer resp.Body.Close()

	if kind := classify(resp.StatusCode); kind != nil {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return nil, resp.StatusCode, &Error{Kind: kind, URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &Error{Kind: ErrFeedUnavailable, URL: url, StatusCode: resp.StatusCode, Err: cause(ctx, err)}
	}

	return body, resp.StatusCode, nil
}

// classify maps an HTTP status to a failure kind, nil for success.
func classify(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound || status == http.StatusGone:
		return ErrFeedNotFound
	case status >= 500:
		return ErrFeedServerError
	default:
		return ErrFeedUnavailable
	}
}

// cause prefers the context error so callers can match context.Canceled.
func cause(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
