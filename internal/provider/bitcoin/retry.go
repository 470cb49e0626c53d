package bitcoin

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/blockgraph/chaingraph-backend/internal/chain"
)

const (
	defaultInitialInterval = 500 * time.Millisecond
	defaultMaxInterval     = 10 * time.Second
	defaultMaxElapsedTime  = 2 * time.Minute
)

// RetryConfig tunes the exponential backoff applied to provider calls.
type RetryConfig struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

func (c RetryConfig) withDefaults() RetryConfig {
	if c.InitialInterval <= 0 {
		c.InitialInterval = defaultInitialInterval
	}
	if c.MaxInterval <= 0 {
		c.MaxInterval = defaultMaxInterval
	}
	if c.MaxElapsedTime <= 0 {
		c.MaxElapsedTime = defaultMaxElapsedTime
	}
	return c
}

// withRetry runs op under exponential backoff. Errors that are not
// classified as retryable abort immediately.
func withRetry[T any](ctx context.Context, cfg RetryConfig, op func() (T, error)) (T, error) {
	var result T

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = cfg.InitialInterval
	policy.MaxInterval = cfg.MaxInterval
	policy.MaxElapsedTime = cfg.MaxElapsedTime

	err := backoff.Retry(func() error {
		value, err := op()
		if err != nil {
			if !chain.IsRetryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = value
		return nil
	}, backoff.WithContext(policy, ctx))

	return result, err
}
