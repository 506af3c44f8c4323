// Package retry wraps remote calls in a bounded, context-aware backoff loop
// that only retries rate-limited responses.
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/vietddude/employees/internal/core/domain"
	"github.com/vietddude/employees/internal/metrics"
)

// Policy defines retry behavior.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration // 0 = uncapped
}

// DefaultPolicy provides sensible defaults.
var DefaultPolicy = Policy{
	MaxAttempts:  3,
	InitialDelay: 1 * time.Second,
	Multiplier:   2.0,
	MaxDelay:     30 * time.Second,
}

// ErrorAction determines how to handle an error.
type ErrorAction int

const (
	ActionRetry ErrorAction = iota
	ActionFatal
)

// ClassifyError determines the action for a given error.
// Only a rate-limited response is worth waiting for; everything else is final.
func ClassifyError(err error) ErrorAction {
	if domain.KindOf(err) == domain.KindRateLimited {
		return ActionRetry
	}
	return ActionFatal
}

// Controller applies one Policy to every operation it runs.
// It holds no per-call state and is safe for concurrent use.
type Controller struct {
	policy Policy
	log    *slog.Logger
}

// New creates a Controller. A MaxAttempts below 1 is treated as 1.
func New(policy Policy, log *slog.Logger) *Controller {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.Multiplier < 1 {
		policy.Multiplier = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Controller{policy: policy, log: log.With("component", "retry")}
}

// Policy returns the controller's policy.
func (c *Controller) Policy() Policy {
	return c.policy
}

// Do runs op with exponential backoff on rate-limited failures.
// Exhausting the budget returns an error that still classifies as rate limited.
func Do[T any](ctx context.Context, c *Controller, name string, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < c.policy.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		lastErr = err
		if ClassifyError(err) == ActionFatal {
			return zero, err
		}

		if attempt == c.policy.MaxAttempts-1 {
			break
		}

		delay := c.Backoff(attempt)
		metrics.RetryAttemptsTotal.WithLabelValues(name).Inc()
		c.log.Debug("Rate limited, backing off",
			"operation", name,
			"attempt", attempt+1,
			"max_attempts", c.policy.MaxAttempts,
			"delay", delay,
		)

		if err := wait(ctx, delay); err != nil {
			return zero, domain.NewExternalService(name, "interrupted while waiting to retry", err)
		}
	}

	metrics.RetryExhaustedTotal.WithLabelValues(name).Inc()
	c.log.Warn("Retry budget exhausted", "operation", name, "attempts", c.policy.MaxAttempts)
	return zero, fmt.Errorf("%s failed after %d attempts: %w", name, c.policy.MaxAttempts, lastErr)
}

// Backoff returns the delay to wait after the given zero-based attempt.
func (c *Controller) Backoff(attempt int) time.Duration {
	delay := float64(c.policy.InitialDelay) * math.Pow(c.policy.Multiplier, float64(attempt))
	if c.policy.MaxDelay > 0 && delay > float64(c.policy.MaxDelay) {
		delay = float64(c.policy.MaxDelay)
	}
	return time.Duration(delay)
}

func wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
