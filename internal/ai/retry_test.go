package ai

import (
	"errors"
	"testing"
	"time"

	"github.com/AndreToral/MVP-PROJECT/internal/logger"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 5,
		BaseDelay:   time.Millisecond,
		MaxJitter:   time.Millisecond,
	}
}

// scriptedOp returns the queued results in order, counting invocations.
type scriptedOp struct {
	results []error
	calls   int
}

func (s *scriptedOp) run() (string, error) {
	idx := s.calls
	s.calls++
	if idx < len(s.results) && s.results[idx] != nil {
		return "", s.results[idx]
	}
	return "ok", nil
}

func TestExecuteWithRetry_SucceedsImmediately(t *testing.T) {
	op := &scriptedOp{}
	out, err := executeWithRetry(logger.NewNop(), fastRetryConfig(), op.run)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "ok" {
		t.Fatalf("unexpected output: %q", out)
	}
	if op.calls != 1 {
		t.Fatalf("expected 1 call, got %d", op.calls)
	}
}

func TestExecuteWithRetry_TransientThenSuccess(t *testing.T) {
	transient := &UnavailableError{Err: errors.New("backend 503")}
	op := &scriptedOp{results: []error{transient, transient, transient, nil}}

	out, err := executeWithRetry(logger.NewNop(), fastRetryConfig(), op.run)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "ok" {
		t.Fatalf("unexpected output: %q", out)
	}
	if op.calls != 4 {
		t.Fatalf("expected 4 calls (3 failures + success), got %d", op.calls)
	}
}

func TestExecuteWithRetry_ExhaustionSurfacesOverload(t *testing.T) {
	transient := &UnavailableError{Err: errors.New("backend 503")}
	op := &scriptedOp{results: []error{transient, transient, transient, transient, transient, transient}}

	_, err := executeWithRetry(logger.NewNop(), fastRetryConfig(), op.run)
	if err == nil {
		t.Fatal("expected error after exhaustion")
	}
	if op.calls != 5 {
		t.Fatalf("expected exactly MaxAttempts calls, got %d", op.calls)
	}

	// The caller sees the overload error, not the raw cause.
	var overloaded *OverloadedError
	if !errors.As(err, &overloaded) {
		t.Fatalf("expected OverloadedError, got %T", err)
	}
	if !errors.Is(err, transient.Err) {
		t.Fatal("overload error should wrap the original cause for logging")
	}
}

func TestExecuteWithRetry_PermanentFailureDoesNotRetry(t *testing.T) {
	op := &scriptedOp{results: []error{errors.New("invalid request")}}

	_, err := executeWithRetry(logger.NewNop(), fastRetryConfig(), op.run)
	if err == nil {
		t.Fatal("expected error")
	}
	if op.calls != 1 {
		t.Fatalf("expected 1 call for a permanent failure, got %d", op.calls)
	}
	var overloaded *OverloadedError
	if !errors.As(err, &overloaded) {
		t.Fatalf("expected OverloadedError, got %T", err)
	}
}

func TestBackoffDelay_Schedule(t *testing.T) {
	cfg := DefaultRetryConfig
	// Delay grows as 1s, 2s, 4s, 8s, 16s plus jitter in [0, 1s).
	for attempt, base := range []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second, 16 * time.Second} {
		got := backoffDelay(cfg, attempt)
		if got < base || got >= base+cfg.MaxJitter {
			t.Errorf("attempt %d: delay %v outside [%v, %v)", attempt, got, base, base+cfg.MaxJitter)
		}
	}
}

func TestIsTransient(t *testing.T) {
	if !isTransient(&UnavailableError{Err: errors.New("503")}) {
		t.Error("UnavailableError must be transient")
	}
	if isTransient(errors.New("bad request")) {
		t.Error("plain errors must not be transient")
	}
	if isTransient(&OverloadedError{Err: errors.New("exhausted")}) {
		t.Error("OverloadedError is terminal, not transient")
	}
}
