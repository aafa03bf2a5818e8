package commands

import (
	"context"

	"fulfillment/internal/pkg/errs"
)

// DefaultConflictRetries is used when no explicit retry budget is configured.
const DefaultConflictRetries = 3

// RetryPolicy bounds how many times a handler reruns its whole unit of work
// after losing an optimistic version check.
type RetryPolicy struct {
	retries int
}

// NewRetryPolicy returns a policy allowing retries extra attempts. Negative
// values mean no retry.
func NewRetryPolicy(retries int) RetryPolicy {
	return RetryPolicy{retries: max(retries, 0)}
}

// Retries returns the number of extra attempts.
func (p RetryPolicy) Retries() int {
	return p.retries
}

// run calls attempt until it succeeds, fails with a non-retryable error, the
// budget is spent, or ctx is done. The last error is returned unchanged.
func (p RetryPolicy) run(ctx context.Context, attempt func() error) error {
	var err error
	for i := 0; i <= p.retries; i++ {
		if err = attempt(); err == nil || !errs.IsRetryable(err) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
	}
	return err
}
