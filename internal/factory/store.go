// Package factory constructs the configured store driver.
package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pottypal/potty-timer/internal/config"
	"github.com/pottypal/potty-timer/internal/localstate"
	storepkg "github.com/pottypal/potty-timer/internal/store"
	storepg "github.com/pottypal/potty-timer/internal/store/postgres"
	storesqlite "github.com/pottypal/potty-timer/internal/store/sqlite"
)

// NewStore returns the store selected by cfg.DBDriver.
//
// sqlite opens (or creates) the local database file and bootstraps the
// schema synchronously. postgres opens the connection synchronously so
// health checks work immediately, then launches an async bootstrap check
// rather than blocking startup.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.DBDriver {
	case "sqlite":
		path := cfg.SQLitePath
		if path == "" {
			p, err := localstate.DBPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		st, err := storesqlite.New(path)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("driver", cfg.DBDriver).Str("path", path).Msg("sqlite store ready")
		return st, nil

	case "postgres":
		dsn := cfg.PostgresDSN
		if dsn == "" {
			return nil, fmt.Errorf("POTTY_TIMER_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		db, err := storepg.Open(dsn)
		if err != nil {
			return nil, err
		}

		go func() {
			bootstrapTimeout := time.Duration(cfg.BootstrapTimeoutSeconds) * time.Second
			bootstrapCtx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
			defer cancel()

			if err := storepg.Bootstrap(bootstrapCtx, dsn); err != nil {
				log.Warn().Err(err).Str("driver", cfg.DBDriver).Msg("store bootstrap check failed")
			} else {
				log.Debug().Str("driver", cfg.DBDriver).Msg("store bootstrap check completed")
			}
		}()

		return storepg.NewWithDB(db), nil

	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
