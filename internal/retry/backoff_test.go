package retry

import (
	"testing"
	"time"
)

func TestExponentialBackoff_NextDelay_WithoutJitter(t *testing.T) {
	strategy := NewExponentialBackoff(5,
		WithInitialDelay(100*time.Millisecond),
		WithMultiplier(2.0),
		WithJitter(0),
	)

	tests := []struct {
		attempt       int
		expectedDelay time.Duration
	}{
		{attempt: 0, expectedDelay: 100 * time.Millisecond},
		{attempt: 1, expectedDelay: 200 * time.Millisecond},
		{attempt: 2, expectedDelay: 400 * time.Millisecond},
		{attempt: 3, expectedDelay: 800 * time.Millisecond},
	}

	for _, tt := range tests {
		if delay := strategy.NextDelay(tt.attempt); delay != tt.expectedDelay {
			t.Errorf("NextDelay(%d) = %v, want %v", tt.attempt, delay, tt.expectedDelay)
		}
	}
}

func TestExponentialBackoff_NextDelay_MaxDelayCap(t *testing.T) {
	strategy := NewExponentialBackoff(10,
		WithInitialDelay(100*time.Millisecond),
		WithMaxDelay(1*time.Second),
		WithJitter(0),
	)

	if delay := strategy.NextDelay(10); delay != 1*time.Second {
		t.Errorf("NextDelay(10) = %v, want %v", delay, 1*time.Second)
	}
}

func TestExponentialBackoff_NextDelay_WithJitter(t *testing.T) {
	tests := []struct {
		random float64
		want   time.Duration
	}{
		{random: 0.0, want: 90 * time.Millisecond},
		{random: 0.5, want: 100 * time.Millisecond},
	}

	for _, tt := range tests {
		strategy := NewExponentialBackoff(3,
			WithInitialDelay(100*time.Millisecond),
			WithJitter(0.1),
			WithJitterFunc(func() float64 { return tt.random }),
		)
		if got := strategy.NextDelay(0); got != tt.want {
			t.Errorf("NextDelay(0) with random=%v = %v, want %v", tt.random, got, tt.want)
		}
	}
}

func TestExponentialBackoff_MaxAttempts(t *testing.T) {
	if got := NewExponentialBackoff(-1).MaxAttempts(); got != -1 {
		t.Errorf("MaxAttempts() = %d, want -1", got)
	}
}
