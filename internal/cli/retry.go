package cli

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pfrederiksen/gameday/internal/config"
	"github.com/pfrederiksen/gameday/internal/feed"
	"github.com/pfrederiksen/gameday/internal/logger"
)

// retryGetter retries unavailable and 5xx fetches with exponential backoff.
// Not-found and caller cancellation are returned at once.
type retryGetter struct {
	next    feed.Getter
	policy  config.RetryConfig
	log     *logger.Logger
	metrics *logger.Metrics
}

func newRetryGetter(next feed.Getter, policy config.RetryConfig, log *logger.Logger, metrics *logger.Metrics) *retryGetter {
	return &retryGetter{next: next, policy: policy, log: log, metrics: metrics}
}

func (r *retryGetter) Fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	var lastErr error

	op := func() error {
		b, err := r.next.Fetch(ctx, url)
		if err != nil {
			lastErr = err
			if !feed.Retryable(err) || ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		body = b
		return nil
	}

	notify := func(err error, wait time.Duration) {
		r.metrics.IncrCounter("feed.retry")
		r.log.Warn("Retrying feed request", logger.Fields{
			"url":     url,
			"wait_ms": wait.Milliseconds(),
			"error":   err.Error(),
		})
	}

	err := backoff.RetryNotify(op, r.backOff(ctx), notify)
	if err == nil {
		return body, nil
	}

	// Cancelled while waiting between attempts: keep the result typed.
	var fe *feed.Error
	if err != lastErr && !errors.As(err, &fe) {
		return nil, &feed.Error{Kind: feed.ErrFeedUnavailable, URL: url, Err: err}
	}
	return nil, err
}

func (r *retryGetter) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.policy.InitialInterval
	if r.policy.MaxInterval > 0 {
		b.MaxInterval = r.policy.MaxInterval
	}
	b.MaxElapsedTime = 0
	b.Reset()

	retries := r.policy.MaxAttempts - 1
	if retries < 0 {
		retries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)
}
