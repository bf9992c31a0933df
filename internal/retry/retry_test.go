package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"google.golang.org/genai"
)

func fastConfig() Config {
	return Config{MaxAttempts: 3, InitialDelay: time.Millisecond}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"Nil error", nil, false},
		{"API error 429", genai.APIError{Code: 429, Message: "slow down"}, true},
		{"API error 503", genai.APIError{Code: 503, Message: "unavailable"}, true},
		{"API error 400", genai.APIError{Code: 400, Message: "bad request"}, false},
		{"Wrapped API error 429", fmt.Errorf("call failed: %w", genai.APIError{Code: 429}), true},
		{"Status code in message", errors.New("rpc error: code 429 received"), true},
		{"Overloaded message", errors.New("The model is OVERLOADED right now"), true},
		{"Resource exhausted message", errors.New("RESOURCE EXHAUSTED: try later"), true},
		{"Quota message", errors.New("Quota exceeded for project"), true},
		{"Plain failure", errors.New("invalid argument"), false},
		{"Safety block", errors.New("response blocked by safety settings"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Retryable(tt.err); got != tt.want {
				t.Errorf("Retryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestDoSucceedsAfterRetryableFailures(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastConfig(), func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("model is overloaded")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Do() error = %v, want nil", err)
	}
	if got != "ok" {
		t.Errorf("Do() = %q, want %q", got, "ok")
	}
	if calls != 3 {
		t.Errorf("op called %d times, want 3", calls)
	}
}

func TestDoStopsOnNonRetryableError(t *testing.T) {
	sentinel := errors.New("invalid argument")
	calls := 0
	start := time.Now()
	_, err := Do(context.Background(), Config{MaxAttempts: 3, InitialDelay: time.Second}, func(ctx context.Context) (int, error) {
		calls++
		return 0, sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("Do() error = %v, want %v", err, sentinel)
	}
	if calls != 1 {
		t.Errorf("op called %d times, want 1", calls)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Do() waited %v before returning a non-retryable error", elapsed)
	}
}

func TestDoExhaustsAttemptBudget(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastConfig(), func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("quota exceeded")
	})
	if err == nil {
		t.Fatal("Do() error = nil, want the final attempt's error")
	}
	if calls != 3 {
		t.Errorf("op called %d times, want 3", calls)
	}
}

func TestDoBackoffDoubles(t *testing.T) {
	base := 20 * time.Millisecond
	var gaps []time.Duration
	last := time.Now()
	_, err := Do(context.Background(), Config{MaxAttempts: 3, InitialDelay: base}, func(ctx context.Context) (int, error) {
		now := time.Now()
		gaps = append(gaps, now.Sub(last))
		last = now
		return 0, errors.New("503 service unavailable")
	})
	if err == nil {
		t.Fatal("Do() error = nil, want failure after exhausting attempts")
	}
	if len(gaps) != 3 {
		t.Fatalf("op called %d times, want 3", len(gaps))
	}
	// gaps[1] follows the first failure (1x base), gaps[2] the second (2x base).
	if gaps[1] < base {
		t.Errorf("first backoff %v, want >= %v", gaps[1], base)
	}
	if gaps[2] < 2*base {
		t.Errorf("second backoff %v, want >= %v", gaps[2], 2*base)
	}
}

func TestDoObservesCancellationDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	done := make(chan error, 1)
	go func() {
		_, err := Do(ctx, Config{MaxAttempts: 3, InitialDelay: 10 * time.Second}, func(ctx context.Context) (int, error) {
			calls++
			return 0, errors.New("model is overloaded")
		})
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Do() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Do() did not return after cancellation during backoff")
	}
	if calls != 1 {
		t.Errorf("op called %d times after cancellation, want 1", calls)
	}
}

func TestDoObservesPreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	_, err := Do(ctx, fastConfig(), func(ctx context.Context) (int, error) {
		calls++
		return 0, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do() error = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Errorf("op called %d times with a cancelled context, want 0", calls)
	}
}

func TestDoRepairsInvalidConfig(t *testing.T) {
	got, err := Do(context.Background(), Config{}, func(ctx context.Context) (string, error) {
		return "ok", nil
	})
	if err != nil || got != "ok" {
		t.Errorf("Do() = (%q, %v), want (%q, nil)", got, err, "ok")
	}
}
