// Package services implements the timer lifecycle state machine on top of
// the store. Every transition reads fresh state, validates, computes the
// next record and asks the store to persist it; records are never mutated
// in place.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pottypal/potty-timer/internal/countdown"
	"github.com/pottypal/potty-timer/internal/model"
	"github.com/pottypal/potty-timer/internal/store"
)

type TimerService struct {
	store store.Store
	now   func() time.Time
}

func NewTimerService(s store.Store) *TimerService {
	return &TimerService{store: s, now: time.Now}
}

// Create validates the duration and persists a fresh idle record with the
// full countdown remaining. Validation fails before storage is touched.
func (s *TimerService) Create(ctx context.Context, duration int64) (*model.Timer, error) {
	if err := validDuration(duration); err != nil {
		return nil, err
	}
	t := &model.Timer{
		Duration:      duration,
		StartTime:     s.now().UnixMilli(),
		IsActive:      false,
		RemainingTime: duration,
	}
	return s.store.Timers().Create(ctx, t)
}

// Get returns the record with remaining time re-derived live. An active
// record that has reached zero is transitioned to notification mode on the
// way out.
func (s *TimerService) Get(ctx context.Context, id string) (*model.Timer, error) {
	rec, err := s.store.Timers().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.reconcile(ctx, rec)
}

// Current resolves the most recently created record, reconciled like Get.
func (s *TimerService) Current(ctx context.Context) (*model.Timer, error) {
	rec, err := s.store.Timers().Current(ctx)
	if err != nil {
		return nil, err
	}
	return s.reconcile(ctx, rec)
}

// List returns every record, newest first, each with remaining time
// re-derived live.
func (s *TimerService) List(ctx context.Context) ([]*model.Timer, error) {
	recs, err := s.store.Timers().List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]*model.Timer, 0, len(recs))
	for _, rec := range recs {
		t := *rec
		t.RemainingTime = countdown.Remaining(rec, now)
		out = append(out, &t)
	}
	return out, nil
}

// ActiveTimers returns currently running records, newest first. Used by the
// expiry tick.
func (s *TimerService) ActiveTimers(ctx context.Context) ([]*model.Timer, error) {
	return s.store.Timers().ListActive(ctx)
}

// Start begins (or restarts) the countdown from the current instant and
// clears notification mode. RemainingTime is left as stored; while active,
// reads derive the live value from StartTime.
func (s *TimerService) Start(ctx context.Context, id string) (*model.Timer, error) {
	active := true
	notif := false
	startMS := s.now().UnixMilli()
	return s.store.Timers().Update(ctx, id, model.TimerUpdate{
		IsActive:           &active,
		StartTime:          &startMS,
		IsNotificationMode: &notif,
	})
}

// Pause freezes the live remaining time into the stored snapshot. Pausing
// an already-inactive record is a no-op passthrough: the record is returned
// unchanged rather than erroring, so a second pause yields the same value.
func (s *TimerService) Pause(ctx context.Context, id string) (*model.Timer, error) {
	rec, err := s.store.Timers().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rec.IsActive {
		return rec, nil
	}
	remaining := countdown.Remaining(rec, s.now())
	active := false
	return s.store.Timers().Update(ctx, id, model.TimerUpdate{
		IsActive:      &active,
		RemainingTime: &remaining,
	})
}

// Reset returns the record to idle with the full configured duration
// remaining and notification mode cleared.
func (s *TimerService) Reset(ctx context.Context, id string) (*model.Timer, error) {
	rec, err := s.store.Timers().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	active := false
	notif := false
	startMS := s.now().UnixMilli()
	remaining := rec.Duration
	return s.store.Timers().Update(ctx, id, model.TimerUpdate{
		IsActive:           &active,
		StartTime:          &startMS,
		RemainingTime:      &remaining,
		IsNotificationMode: &notif,
	})
}

// ChangeDuration reconfigures the countdown length and resets the remaining
// snapshot to it. While the record is active, StartTime is also restarted so
// the new duration counts from now; elapsed time under the old duration
// never bleeds into the new one. Inactive records keep their StartTime.
func (s *TimerService) ChangeDuration(ctx context.Context, id string, duration int64) (*model.Timer, error) {
	if err := validDuration(duration); err != nil {
		return nil, err
	}
	rec, err := s.store.Timers().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	u := model.TimerUpdate{
		Duration:      &duration,
		RemainingTime: &duration,
	}
	if rec.IsActive {
		startMS := s.now().UnixMilli()
		u.StartTime = &startMS
	}
	return s.store.Timers().Update(ctx, id, u)
}

// ExpireCheck transitions a running record that has counted down to zero
// into notification mode. The precondition (active, zero remaining, not yet
// notified) is checked against freshly-read state, so invoking it again
// after a successful transition is a no-op: the record is returned as-is.
func (s *TimerService) ExpireCheck(ctx context.Context, id string) (*model.Timer, error) {
	rec, err := s.store.Timers().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.IsNotificationMode || !countdown.Expired(rec, s.now()) {
		return rec, nil
	}
	return s.expire(ctx, rec.ID)
}

// Update is the administrative pass-through merge. It does not re-derive
// remaining time and, aside from duration positivity, does not guard the
// state-machine invariants; production use should be restricted.
func (s *TimerService) Update(ctx context.Context, id string, u model.TimerUpdate) (*model.Timer, error) {
	if u.Duration != nil {
		if err := validDuration(*u.Duration); err != nil {
			return nil, err
		}
	}
	return s.store.Timers().Update(ctx, id, u)
}

// Delete removes the record.
func (s *TimerService) Delete(ctx context.Context, id string) error {
	return s.store.Timers().Delete(ctx, id)
}

// reconcile derives the live remaining time for a freshly-read record; a
// record observed at zero while active is persisted as expired atomically
// (single-record update) before being returned.
func (s *TimerService) reconcile(ctx context.Context, rec *model.Timer) (*model.Timer, error) {
	now := s.now()
	if !rec.IsNotificationMode && countdown.Expired(rec, now) {
		return s.expire(ctx, rec.ID)
	}
	t := *rec
	t.RemainingTime = countdown.Remaining(rec, now)
	return &t, nil
}

func (s *TimerService) expire(ctx context.Context, id string) (*model.Timer, error) {
	active := false
	notif := true
	var zero int64
	return s.store.Timers().Update(ctx, id, model.TimerUpdate{
		IsActive:           &active,
		RemainingTime:      &zero,
		IsNotificationMode: &notif,
	})
}

func validDuration(d int64) error {
	if d <= 0 {
		return fmt.Errorf("%w: duration must be a positive number", model.ErrInvalidArgument)
	}
	return nil
}
