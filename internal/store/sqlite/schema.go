package sqlite

import "database/sql"

// EnsureSchema creates the timers table and its indexes if they do not exist.
// Timestamps are integers: start_time is epoch milliseconds, created_at and
// updated_at are epoch seconds.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS timers (
            id TEXT PRIMARY KEY,
            duration INTEGER NOT NULL,
            start_time INTEGER NOT NULL,
            is_active INTEGER NOT NULL DEFAULT 0,
            remaining_time INTEGER NOT NULL,
            is_notification_mode INTEGER NOT NULL DEFAULT 0,
            created_at INTEGER NOT NULL,
            updated_at INTEGER NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS idx_timers_is_active ON timers(is_active);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
