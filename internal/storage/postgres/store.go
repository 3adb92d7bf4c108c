package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"taskboard/internal/storage/sqlkv"
)

// Drivers accepted by Open. "pgx" is the pgx/v5 stdlib driver, "postgres" is lib/pq.
const (
	DriverPgx = "pgx"
	DriverPq  = "postgres"
)

// Open connects to Postgres and runs the required migrations.
func Open(ctx context.Context, driver, dsn string, logger *slog.Logger) (*sqlkv.Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty database dsn")
	}
	switch driver {
	case "":
		driver = DriverPgx
	case DriverPgx, DriverPq:
	default:
		return nil, fmt.Errorf("unsupported postgres driver %q", driver)
	}

	conn, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := sqlkv.New(conn, squirrel.Dollar, logger)
	if err := s.Migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return s, nil
}
