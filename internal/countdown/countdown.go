// Package countdown derives live remaining time from a stored timer record.
package countdown

import (
	"time"

	"github.com/pottypal/potty-timer/internal/model"
)

// Remaining returns the timer's remaining seconds at the given wall-clock
// instant. Inactive timers return their frozen RemainingTime snapshot
// regardless of now. Active timers count down from Duration by whole
// elapsed seconds since StartTime, floored at zero. Elapsed time is
// clamped to zero when now precedes StartTime (clock regression), so the
// result never exceeds Duration and is never negative.
//
// Remaining is pure. Transitioning an expired record is the lifecycle
// controller's job, not this package's.
func Remaining(t *model.Timer, now time.Time) int64 {
	if !t.IsActive {
		return t.RemainingTime
	}
	elapsed := (now.UnixMilli() - t.StartTime) / 1000
	if elapsed < 0 {
		elapsed = 0
	}
	rem := t.Duration - elapsed
	if rem < 0 {
		rem = 0
	}
	return rem
}

// Expired reports whether an active timer has counted down to zero at now.
// It is false for inactive records even when their snapshot is zero, which
// keeps the expire transition idempotent.
func Expired(t *model.Timer, now time.Time) bool {
	return t.IsActive && Remaining(t, now) == 0
}
