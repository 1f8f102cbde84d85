package store

import (
	"context"

	"github.com/pottypal/potty-timer/internal/model"
)

// Store exposes persistence operations required by the timer service.
// Implementations live under internal/store/<driver>/ (sqlite, postgres).
type Store interface {
	Timers() Timers
}

// Timers is the durable record storage for timer entities. Every operation
// is atomic with respect to a single record; no multi-record transactions
// are required. I/O failures propagate to the caller wrapped with storage
// context, and retries (if any) belong to the caller.
type Timers interface {
	// Create assigns a fresh id plus created/updated timestamps and persists
	// the record, returning the stored form.
	Create(ctx context.Context, t *model.Timer) (*model.Timer, error)
	// Get returns the record for id, or model.ErrNotFound.
	Get(ctx context.Context, id string) (*model.Timer, error)
	// Current returns the most recently created record (ties broken by
	// insertion order), or model.ErrNotFound when the store is empty.
	Current(ctx context.Context) (*model.Timer, error)
	// Update merges only the provided fields onto the existing record,
	// refreshes updatedAt, and returns the full updated record. Fails with
	// model.ErrNotFound if id does not resolve at the time of update.
	Update(ctx context.Context, id string, u model.TimerUpdate) (*model.Timer, error)
	// Delete removes the record, or fails with model.ErrNotFound.
	Delete(ctx context.Context, id string) error
	// List returns every record, newest first.
	List(ctx context.Context) ([]*model.Timer, error)
	// ListActive returns records with isActive set, newest first.
	ListActive(ctx context.Context) ([]*model.Timer, error)
	// DeleteAll removes every record. Test/debug reset only.
	DeleteAll(ctx context.Context) error
}
