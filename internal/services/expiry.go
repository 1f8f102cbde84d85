package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ExpiryMonitor is the periodic tick that re-evaluates running timers and
// transitions those that have counted down to zero. The tick is advisory
// and idempotent: ExpireCheck re-validates its precondition against fresh
// state, so overlapping or repeated ticks never double-transition a record.
type ExpiryMonitor struct {
	svc *TimerService
	log zerolog.Logger
}

func NewExpiryMonitor(svc *TimerService, log zerolog.Logger) *ExpiryMonitor {
	return &ExpiryMonitor{svc: svc, log: log}
}

// Start runs the tick loop until ctx is cancelled.
func (m *ExpiryMonitor) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tick(ctx)
		}
	}
}

func (m *ExpiryMonitor) tick(ctx context.Context) {
	active, err := m.svc.ActiveTimers(ctx)
	if err != nil {
		m.log.Error().Err(err).Msg("expiry tick: listing active timers failed")
		return
	}
	for _, t := range active {
		after, err := m.svc.ExpireCheck(ctx, t.ID)
		if err != nil {
			// The record may have been deleted between list and check.
			m.log.Warn().Err(err).Str("timer_id", t.ID).Msg("expiry tick: check failed")
			continue
		}
		if after.IsNotificationMode && !t.IsNotificationMode {
			m.log.Info().Str("timer_id", t.ID).Msg("timer expired")
		}
	}
}
