package ai

import (
	"math/rand/v2"
	"time"

	"github.com/AndreToral/MVP-PROJECT/internal/logger"
)

// RetryConfig controls the exponential backoff applied to generation calls.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxJitter   time.Duration
}

// DefaultRetryConfig gives delays of 1s, 2s, 4s, 8s, 16s plus jitter.
var DefaultRetryConfig = RetryConfig{
	MaxAttempts: 5,
	BaseDelay:   time.Second,
	MaxJitter:   time.Second,
}

// backoffDelay is the pure schedule: BaseDelay * 2^attempt + uniform jitter
// in [0, MaxJitter).
func backoffDelay(cfg RetryConfig, attempt int) time.Duration {
	delay := cfg.BaseDelay << uint(attempt)
	jitter := time.Duration(rand.Int64N(int64(cfg.MaxJitter)))
	return delay + jitter
}

// executeWithRetry runs op, retrying transient failures per cfg. Permanent
// failures and exhausted retries both surface as OverloadedError; the raw
// cause is logged, never returned to the caller. Once started the loop runs
// to completion, there is no cancellation mid-retry.
func executeWithRetry(log *logger.Logger, cfg RetryConfig, op func() (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		out, err := op()
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !isTransient(err) {
			log.Error("generation call failed permanently", "attempt", attempt+1, "error", err)
			return "", &OverloadedError{Err: err}
		}
		if attempt == cfg.MaxAttempts-1 {
			break
		}

		wait := backoffDelay(cfg, attempt)
		log.Warn("transient generation failure, retrying",
			"attempt", attempt+1, "max_attempts", cfg.MaxAttempts, "wait", wait, "error", err)
		time.Sleep(wait)
	}

	log.Error("generation retries exhausted", "attempts", cfg.MaxAttempts, "error", lastErr)
	return "", &OverloadedError{Err: lastErr}
}
