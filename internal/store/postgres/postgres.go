// Package postgres implements store.Store on PostgreSQL via the pgx stdlib
// driver. Schema setup is handled by migrations outside this package.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/pottypal/potty-timer/internal/model"
	"github.com/pottypal/potty-timer/internal/store"
)

// Open opens a PostgreSQL connection and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres-backed store on an existing connection.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

// Bootstrap performs a connectivity check to ensure Postgres is reachable.
func Bootstrap(ctx context.Context, dsn string) error {
	if dsn == "" {
		return nil
	}
	db, err := Open(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return db.PingContext(ctx)
}

type pgStore struct{ db *sql.DB }

func (s *pgStore) Timers() store.Timers { return &timers{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type timers struct{ db *sql.DB }

const timerColumns = `id, duration, start_time, is_active, remaining_time, is_notification_mode, created_at, updated_at`

func (t *timers) Create(ctx context.Context, m *model.Timer) (*model.Timer, error) {
	out := *m
	out.ID = uuid.New().String()
	now := time.Now().UTC().Unix()
	out.CreatedAt = now
	out.UpdatedAt = now

	_, err := t.db.ExecContext(ctx, `
        INSERT INTO timers (`+timerColumns+`)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    `, out.ID, out.Duration, out.StartTime, out.IsActive,
		out.RemainingTime, out.IsNotificationMode, out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("postgres: create timer: %w", err)
	}
	return &out, nil
}

func (t *timers) Get(ctx context.Context, id string) (*model.Timer, error) {
	row := t.db.QueryRowContext(ctx, `
        SELECT `+timerColumns+` FROM timers WHERE id=$1
    `, id)
	return scanTimer(row)
}

func (t *timers) Current(ctx context.Context) (*model.Timer, error) {
	// ctid ordering approximates insertion order for created_at ties
	row := t.db.QueryRowContext(ctx, `
        SELECT `+timerColumns+` FROM timers ORDER BY created_at DESC, ctid DESC LIMIT 1
    `)
	return scanTimer(row)
}

func (t *timers) Update(ctx context.Context, id string, u model.TimerUpdate) (*model.Timer, error) {
	sets := []string{"updated_at = $1"}
	args := []interface{}{time.Now().UTC().Unix()}
	add := func(col string, v interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)+1))
		args = append(args, v)
	}
	if u.Duration != nil {
		add("duration", *u.Duration)
	}
	if u.StartTime != nil {
		add("start_time", *u.StartTime)
	}
	if u.IsActive != nil {
		add("is_active", *u.IsActive)
	}
	if u.RemainingTime != nil {
		add("remaining_time", *u.RemainingTime)
	}
	if u.IsNotificationMode != nil {
		add("is_notification_mode", *u.IsNotificationMode)
	}
	args = append(args, id)

	row := t.db.QueryRowContext(ctx, `
        UPDATE timers SET `+strings.Join(sets, ", ")+fmt.Sprintf(` WHERE id=$%d
        RETURNING `+timerColumns, len(args)), args...)
	return scanTimer(row)
}

func (t *timers) Delete(ctx context.Context, id string) error {
	res, err := t.db.ExecContext(ctx, `DELETE FROM timers WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("postgres: delete timer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (t *timers) List(ctx context.Context) ([]*model.Timer, error) {
	return t.query(ctx, `
        SELECT `+timerColumns+` FROM timers ORDER BY created_at DESC, ctid DESC
    `)
}

func (t *timers) ListActive(ctx context.Context) ([]*model.Timer, error) {
	return t.query(ctx, `
        SELECT `+timerColumns+` FROM timers WHERE is_active ORDER BY created_at DESC, ctid DESC
    `)
}

func (t *timers) DeleteAll(ctx context.Context) error {
	if _, err := t.db.ExecContext(ctx, `DELETE FROM timers`); err != nil {
		return fmt.Errorf("postgres: delete all timers: %w", err)
	}
	return nil
}

func (t *timers) query(ctx context.Context, q string, args ...interface{}) ([]*model.Timer, error) {
	rows, err := t.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: list timers: %w", err)
	}
	defer rows.Close()
	var out []*model.Timer
	for rows.Next() {
		var m model.Timer
		if err := rows.Scan(&m.ID, &m.Duration, &m.StartTime, &m.IsActive,
			&m.RemainingTime, &m.IsNotificationMode, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list timers: %w", err)
	}
	return out, nil
}

func scanTimer(row *sql.Row) (*model.Timer, error) {
	var m model.Timer
	err := row.Scan(&m.ID, &m.Duration, &m.StartTime, &m.IsActive,
		&m.RemainingTime, &m.IsNotificationMode, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
