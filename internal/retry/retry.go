// Package retry wraps a single outbound model call with bounded retry and
// exponential backoff. Only overload-class failures are retried; everything
// else propagates unchanged on the first occurrence.
package retry

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// Config bounds one retry loop.
type Config struct {
	// MaxAttempts is the total number of underlying calls issued, including
	// the first one.
	MaxAttempts int
	// InitialDelay is the wait before the second attempt; it doubles on
	// each further retryable failure. No jitter.
	InitialDelay time.Duration
}

// DefaultConfig matches the backend's per-key rate limit behavior: three
// attempts with a 2s base delay.
func DefaultConfig() Config {
	return Config{MaxAttempts: 3, InitialDelay: 2 * time.Second}
}

// retryableFragments are the message signatures of overload-class failures.
// Matched case-insensitively against the error text.
var retryableFragments = []string{
	"429",
	"503",
	"overloaded",
	"resource exhausted",
	"quota",
}

// Retryable reports whether err is an overload-class failure worth retrying:
// HTTP 429/503 status codes, or a message indicating overload, quota
// exhaustion, or resource exhaustion.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == 429 || apiErr.Code == 503 {
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	for _, frag := range retryableFragments {
		if strings.Contains(msg, frag) {
			return true
		}
	}
	return false
}

// Do invokes op until it succeeds, a non-retryable error occurs, the attempt
// budget is exhausted, or ctx is cancelled. At most cfg.MaxAttempts calls are
// issued. The backoff delay before attempt i (0-indexed) is
// InitialDelay * 2^(i-1). Cancellation is observed between attempts and
// during the backoff wait, never mid-call.
func Do[T any](ctx context.Context, cfg Config, op func(context.Context) (T, error)) (T, error) {
	var zero T
	if cfg.MaxAttempts < 1 {
		cfg = DefaultConfig()
	}

	var lastErr error
	for i := 0; i < cfg.MaxAttempts; i++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !Retryable(err) || i == cfg.MaxAttempts-1 {
			return zero, err
		}

		delay := cfg.InitialDelay << i
		log.Warn().
			Err(err).
			Int("attempt", i+1).
			Int("max_attempts", cfg.MaxAttempts).
			Dur("delay", delay).
			Msg("Model call overloaded, backing off")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}
	return zero, lastErr
}
