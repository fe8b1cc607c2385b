package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/questkeeper-app/questkeeper/internal/config"
	"github.com/questkeeper-app/questkeeper/internal/database"
	"github.com/questkeeper-app/questkeeper/internal/database/postgres"
	"github.com/questkeeper-app/questkeeper/internal/event"
	"github.com/questkeeper-app/questkeeper/internal/eventlog"
	"github.com/questkeeper-app/questkeeper/internal/gateway"
	"github.com/questkeeper-app/questkeeper/internal/repository"
)

// InitializeStore builds the document store the services run on. In dev mode
// it is backed by in-process maps so the app runs without a database;
// otherwise it connects a pgx pool and wires the Postgres repositories.
// The quest journal shares the same backing: a per-user ring buffer in dev
// mode, the events table otherwise.
// Returns the store, the journal repository, the pool for readiness checks
// (caller must close), and any error encountered.
func InitializeStore(cfg *config.Config, eventBus event.Bus, publisher *event.ResilientPublisher) (gateway.Store, repository.EventLog, database.Pool, error) {
	if cfg.DevMode {
		slog.Info(LogMsgUsingMemoryStore)
		return gateway.NewMemoryStore(eventBus, publisher), eventlog.NewMemoryEventLog(), memoryPool{}, nil
	}

	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDatabase, err)
	}

	store := gateway.NewStore(
		postgres.NewCharacterRepository(pool),
		postgres.NewTaskRepository(pool),
		eventBus,
		publisher,
	)

	slog.Info(LogMsgUsingPostgresStore,
		"host", cfg.DBHost,
		"database", cfg.DBName)

	return store, postgres.NewEventLogRepository(pool), pool, nil
}

// memoryPool satisfies database.Pool when running without a database, so
// the readiness probe stays truthful in dev mode.
type memoryPool struct{}

func (memoryPool) Ping(ctx context.Context) error { return nil }

func (memoryPool) Close() {}
