package main

import (
	"context"
	"fmt"
	"log/slog"

	"taskboard/internal/config"
	"taskboard/internal/storage"
	"taskboard/internal/storage/memory"
	"taskboard/internal/storage/postgres"
	"taskboard/internal/storage/sqlite"
)

// openBackend opens the key-value backend selected by sc.Driver.
func openBackend(ctx context.Context, sc config.StorageConfig, logger *slog.Logger) (storage.Backend, error) {
	switch sc.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory storage, data is lost on exit")
		return memory.New(), nil
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, sc.Path, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverPostgres, config.DriverPgx:
		driver := postgres.DriverPgx
		if sc.Driver == config.DriverPostgres {
			driver = postgres.DriverPq
		}
		store, err := postgres.Open(ctx, driver, sc.DSN, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", sc.Driver)
	}
}
