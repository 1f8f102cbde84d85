package countdown

import (
	"testing"
	"time"

	"github.com/pottypal/potty-timer/internal/model"
)

func TestRemaining_InactiveIsFrozen(t *testing.T) {
	rec := &model.Timer{Duration: 1800, StartTime: 1_000_000, IsActive: false, RemainingTime: 1795}

	instants := []time.Time{
		time.UnixMilli(0),
		time.UnixMilli(1_000_000),
		time.UnixMilli(1_000_000).Add(48 * time.Hour),
	}
	for _, now := range instants {
		if got := Remaining(rec, now); got != 1795 {
			t.Fatalf("inactive remaining at %v: got %d, want 1795", now, got)
		}
	}
}

func TestRemaining_ActiveCountsDown(t *testing.T) {
	start := time.UnixMilli(1_700_000_000_000)
	rec := &model.Timer{Duration: 1800, StartTime: start.UnixMilli(), IsActive: true, RemainingTime: 1800}

	tests := []struct {
		elapsed time.Duration
		want    int64
	}{
		{0, 1800},
		{999 * time.Millisecond, 1800}, // whole seconds only
		{1 * time.Second, 1799},
		{5 * time.Second, 1795},
		{1800 * time.Second, 0},
		{9999 * time.Second, 0}, // floored at zero
	}
	for _, tc := range tests {
		if got := Remaining(rec, start.Add(tc.elapsed)); got != tc.want {
			t.Fatalf("remaining after %v: got %d, want %d", tc.elapsed, got, tc.want)
		}
	}
}

func TestRemaining_MonotonicNonIncreasing(t *testing.T) {
	start := time.UnixMilli(1_700_000_000_000)
	rec := &model.Timer{Duration: 60, StartTime: start.UnixMilli(), IsActive: true, RemainingTime: 60}

	prev := Remaining(rec, start)
	for step := time.Duration(1); step <= 90; step++ {
		got := Remaining(rec, start.Add(step*700*time.Millisecond))
		if got > prev {
			t.Fatalf("remaining increased from %d to %d at step %d", prev, got, step)
		}
		if got < 0 {
			t.Fatalf("remaining went negative: %d", got)
		}
		prev = got
	}
}

func TestRemaining_ClockRegressionClampsElapsed(t *testing.T) {
	start := time.UnixMilli(1_700_000_000_000)
	rec := &model.Timer{Duration: 120, StartTime: start.UnixMilli(), IsActive: true, RemainingTime: 120}

	// now before startTime must not inflate remaining past duration
	if got := Remaining(rec, start.Add(-time.Hour)); got != 120 {
		t.Fatalf("remaining with regressed clock: got %d, want 120", got)
	}
}

func TestExpired(t *testing.T) {
	start := time.UnixMilli(1_700_000_000_000)
	rec := &model.Timer{Duration: 2, StartTime: start.UnixMilli(), IsActive: true, RemainingTime: 2}

	if Expired(rec, start.Add(1*time.Second)) {
		t.Fatalf("timer expired early")
	}
	if !Expired(rec, start.Add(3*time.Second)) {
		t.Fatalf("timer not expired at start+3s")
	}

	// an inactive record at zero is not "expired": the transition already ran
	done := &model.Timer{Duration: 2, StartTime: start.UnixMilli(), IsActive: false, RemainingTime: 0}
	if Expired(done, start.Add(10*time.Second)) {
		t.Fatalf("inactive record reported expired")
	}
}
