package app

import (
	"context"
	"errors"

	"github.com/sippsearcher/sippsearcher-backend/internal/config"
	"github.com/sippsearcher/sippsearcher-backend/internal/storage"
	"github.com/sippsearcher/sippsearcher-backend/internal/storage/memory"
	"github.com/sippsearcher/sippsearcher-backend/internal/storage/postgres"
	"github.com/sippsearcher/sippsearcher-backend/internal/storage/sqlite"
	pgclient "github.com/sippsearcher/sippsearcher-backend/pkg/client/postgresql"
	"go.uber.org/zap"
)

// ErrNoDurableStorage is the fail-fast condition: a production process
// must not serve traffic without a durable backend.
var ErrNoDurableStorage = errors.New("production mode requires a configured postgresql database")

// newStorage picks exactly one backend for the process lifetime:
// postgres when configured, otherwise the embedded sqlite file, and the
// in-memory fallback only when the embedded database cannot be opened.
func newStorage(ctx context.Context, cfg config.Config, log *zap.Logger) (storage.Storage, error) {
	if cfg.Env == config.EnvProd && !cfg.PostgreSQL.Configured() {
		return nil, ErrNoDurableStorage
	}

	if cfg.PostgreSQL.Configured() {
		return postgres.New(ctx, pgclient.Config{
			Host:     cfg.PostgreSQL.Host,
			Port:     cfg.PostgreSQL.Port,
			Username: cfg.PostgreSQL.Username,
			Password: cfg.PostgreSQL.Password,
			Database: cfg.PostgreSQL.Database,
		}, log)
	}

	st, err := sqlite.New(ctx, cfg.SQLite.Path, log)
	if err != nil {
		log.Warn("embedded database unavailable, falling back to in-memory storage",
			zap.String("path", cfg.SQLite.Path),
			zap.Error(err),
		)
		log.Warn("in-memory storage is ephemeral: all data is lost on restart")

		return memory.NewSeeded(log), nil
	}

	return st, nil
}
