package github

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds the exponential backoff applied to rate-limited
// metadata calls. One policy is shared by every call site so the retry
// behavior stays uniform.
type RetryPolicy struct {
	// InitialDelay is the first wait; each subsequent wait doubles.
	InitialDelay time.Duration
	// MaxAttempts caps the total number of tries, first call included.
	MaxAttempts uint64
}

// DefaultRetryPolicy returns the production policy: 2s, 4s, 8s between at
// most four attempts.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{InitialDelay: 2 * time.Second, MaxAttempts: 4}
}

// Permanent marks err as non-retryable.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Retry runs op under the policy, backing off exponentially between
// attempts. Errors wrapped with Permanent stop the loop immediately.
func Retry(ctx context.Context, p RetryPolicy, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = p.InitialDelay * 8

	var policy backoff.BackOff = b
	if p.MaxAttempts > 0 {
		policy = backoff.WithMaxRetries(b, p.MaxAttempts-1)
	}
	return backoff.Retry(op, backoff.WithContext(policy, ctx))
}
