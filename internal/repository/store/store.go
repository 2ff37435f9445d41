// Package store opens the configured storage backend.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"wikitree/internal/config"
	"wikitree/internal/domain/repositories"
	treerepo "wikitree/internal/domain/repositories/tree"
	"wikitree/internal/repository/postgres"
	"wikitree/internal/repository/sqlite"
)

// Store bundles the repositories of one backend.
type Store struct {
	Nodes treerepo.NodeRepository
	Tx    repositories.TransactionManager

	// ClearSite removes every node of a site (seeding and tests).
	ClearSite func(ctx context.Context, siteID string) (int64, error)

	// ResetSchema drops the node table and creates it again, empty.
	ResetSchema func(ctx context.Context) error

	ping  func(ctx context.Context) error
	close func()
}

// Ping checks that the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close releases the backend's connections.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open connects to the backend selected by cfg.StoreDriver and makes sure its
// schema exists.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, logger)
	case config.DriverSQLite:
		return openSQLite(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	logger.Info("database connected",
		"driver", config.DriverPostgres,
		"table", tables.Nodes,
		"max_conns", pool.Config().MaxConns,
	)

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	return &Store{
		Nodes: postgres.NewNodeRepository(repoConfig),
		Tx:    postgres.NewTransactionManager(pool, logger),
		ClearSite: func(ctx context.Context, siteID string) (int64, error) {
			return postgres.ClearSite(ctx, pool, tables, siteID)
		},
		ResetSchema: func(ctx context.Context) error {
			if err := postgres.DropSchema(ctx, pool, tables); err != nil {
				return err
			}
			return postgres.EnsureSchema(ctx, pool, tables)
		},
		ping:  pool.Ping,
		close: pool.Close,
	}, nil
}

func openSQLite(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	db, err := sqlite.Open(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, err
	}

	logger.Info("database connected",
		"driver", config.DriverSQLite,
		"path", cfg.SQLitePath,
	)

	return &Store{
		Nodes: sqlite.NewNodeRepository(&sqlite.RepositoryConfig{DB: db, Logger: logger}),
		Tx:    sqlite.NewTransactionManager(db, logger),
		ClearSite: func(ctx context.Context, siteID string) (int64, error) {
			return sqlite.ClearSite(ctx, db, siteID)
		},
		ResetSchema: func(context.Context) error {
			return sqlite.ResetSchema(db)
		},
		ping: db.PingContext,
		close: func() {
			if err := db.Close(); err != nil {
				logger.Warn("close database", "error", err)
			}
		},
	}, nil
}
