package resilience

import (
	"errors"
	"testing"
	"time"
)

func testBreaker(threshold int, openTimeout time.Duration) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      openTimeout,
	})
	now := time.Date(2026, 8, 14, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b, now := testBreaker(2, 5*time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	*now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}
}

func TestCircuitBreaker_HalfOpenAllowsSingleProbe(t *testing.T) {
	b, now := testBreaker(1, 5*time.Second)

	b.RecordFailure()
	*now = now.Add(6 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("first probe must pass: %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("second caller must wait for the probe, got %v", err)
	}
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	b, now := testBreaker(1, 5*time.Second)

	b.RecordFailure()
	*now = now.Add(6 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("probe must pass: %v", err)
	}
	b.RecordFailure()

	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("failed probe must reopen the circuit, got %s", state)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open after failed probe, got %v", err)
	}
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	b, _ := testBreaker(2, 5*time.Second)

	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()

	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("success must reset the streak, got %s", state)
	}
}

func TestNormalizeCircuitBreakerConfig_Defaults(t *testing.T) {
	cfg := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{Enabled: true})
	if cfg.FailureThreshold != 5 {
		t.Fatalf("unexpected default threshold: %d", cfg.FailureThreshold)
	}
	if cfg.OpenTimeout != 15*time.Second {
		t.Fatalf("unexpected default open timeout: %s", cfg.OpenTimeout)
	}
}
