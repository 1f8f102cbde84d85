// Package sqlite implements store.Store on a local SQLite database using the
// pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pottypal/potty-timer/internal/model"
	"github.com/pottypal/potty-timer/internal/store"
)

// New opens (or creates) the database at path, bootstraps the schema and
// returns the store.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB wires the store onto an existing connection (used by the factory
// and by tests).
func NewWithDB(db *sql.DB) (store.Store, error) {
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ensure schema: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Timers() store.Timers { return &timers{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// DB exposes the underlying connection (test/debug use).
func (s *sqliteStore) DB() *sql.DB { return s.db }

type timers struct{ db *sql.DB }

const timerColumns = `id, duration, start_time, is_active, remaining_time, is_notification_mode, created_at, updated_at`

func (t *timers) Create(ctx context.Context, m *model.Timer) (*model.Timer, error) {
	out := *m
	out.ID = uuid.New().String()
	now := time.Now().UTC().Unix()
	out.CreatedAt = now
	out.UpdatedAt = now

	_, err := t.db.ExecContext(ctx,
		`INSERT INTO timers (`+timerColumns+`) VALUES (?,?,?,?,?,?,?,?)`,
		out.ID, out.Duration, out.StartTime, boolToInt(out.IsActive),
		out.RemainingTime, boolToInt(out.IsNotificationMode), out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("sqlite: create timer: %w", err)
	}
	return &out, nil
}

func (t *timers) Get(ctx context.Context, id string) (*model.Timer, error) {
	row := t.db.QueryRowContext(ctx,
		`SELECT `+timerColumns+` FROM timers WHERE id = ?`, id)
	return scanTimer(row)
}

func (t *timers) Current(ctx context.Context) (*model.Timer, error) {
	// rowid breaks created_at ties by insertion order
	row := t.db.QueryRowContext(ctx,
		`SELECT `+timerColumns+` FROM timers ORDER BY created_at DESC, rowid DESC LIMIT 1`)
	return scanTimer(row)
}

func (t *timers) Update(ctx context.Context, id string, u model.TimerUpdate) (*model.Timer, error) {
	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC().Unix()}
	if u.Duration != nil {
		sets = append(sets, "duration = ?")
		args = append(args, *u.Duration)
	}
	if u.StartTime != nil {
		sets = append(sets, "start_time = ?")
		args = append(args, *u.StartTime)
	}
	if u.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, boolToInt(*u.IsActive))
	}
	if u.RemainingTime != nil {
		sets = append(sets, "remaining_time = ?")
		args = append(args, *u.RemainingTime)
	}
	if u.IsNotificationMode != nil {
		sets = append(sets, "is_notification_mode = ?")
		args = append(args, boolToInt(*u.IsNotificationMode))
	}
	args = append(args, id)

	res, err := t.db.ExecContext(ctx,
		`UPDATE timers SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: update timer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return t.Get(ctx, id)
}

func (t *timers) Delete(ctx context.Context, id string) error {
	res, err := t.db.ExecContext(ctx, `DELETE FROM timers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: delete timer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (t *timers) List(ctx context.Context) ([]*model.Timer, error) {
	return t.query(ctx,
		`SELECT `+timerColumns+` FROM timers ORDER BY created_at DESC, rowid DESC`)
}

func (t *timers) ListActive(ctx context.Context) ([]*model.Timer, error) {
	return t.query(ctx,
		`SELECT `+timerColumns+` FROM timers WHERE is_active = 1 ORDER BY created_at DESC, rowid DESC`)
}

func (t *timers) DeleteAll(ctx context.Context) error {
	if _, err := t.db.ExecContext(ctx, `DELETE FROM timers`); err != nil {
		return fmt.Errorf("sqlite: delete all timers: %w", err)
	}
	return nil
}

func (t *timers) query(ctx context.Context, q string, args ...interface{}) ([]*model.Timer, error) {
	rows, err := t.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list timers: %w", err)
	}
	defer rows.Close()
	var out []*model.Timer
	for rows.Next() {
		m, err := scanTimerRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list timers: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTimer(row *sql.Row) (*model.Timer, error) {
	m, err := scanTimerRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	return m, err
}

func scanTimerRow(r rowScanner) (*model.Timer, error) {
	var m model.Timer
	var active, notif int64
	if err := r.Scan(&m.ID, &m.Duration, &m.StartTime, &active,
		&m.RemainingTime, &notif, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.IsActive = active != 0
	m.IsNotificationMode = notif != 0
	return &m, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
