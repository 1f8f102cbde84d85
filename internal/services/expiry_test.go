package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpiryMonitor_TickTransitionsExpiredTimers(t *testing.T) {
	svc, now := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, 2)
	require.NoError(t, err)
	_, err = svc.Start(ctx, created.ID)
	require.NoError(t, err)

	running, err := svc.Create(ctx, 3600)
	require.NoError(t, err)
	_, err = svc.Start(ctx, running.ID)
	require.NoError(t, err)

	m := NewExpiryMonitor(svc, zerolog.Nop())

	// Assertions read the raw store so the Get read path cannot perform
	// the transition itself; only the tick should.
	raw := svc.store.Timers()

	// before expiry the tick changes nothing
	m.tick(ctx)
	got, err := raw.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)

	*now = now.Add(3 * time.Second)
	m.tick(ctx)

	expired, err := raw.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, expired.IsActive)
	assert.True(t, expired.IsNotificationMode)
	assert.Equal(t, int64(0), expired.RemainingTime)

	// the long timer is untouched
	still, err := raw.Get(ctx, running.ID)
	require.NoError(t, err)
	assert.True(t, still.IsActive)
	assert.False(t, still.IsNotificationMode)

	// a second tick in quick succession is a no-op
	m.tick(ctx)
	noop, err := raw.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, expired.UpdatedAt, noop.UpdatedAt)
}
