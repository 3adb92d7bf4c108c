package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"taskboard/internal/storage/sqlkv"
)

// Open initializes the SQLite key-value store and runs the required migrations.
func Open(ctx context.Context, dbPath string, logger *slog.Logger) (*sqlkv.Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("empty database path")
	}

	if err := ensureDir(dbPath); err != nil {
		return nil, err
	}

	conn, err := sqlx.Open("sqlite3", fmt.Sprintf("file:%s?_busy_timeout=5000", dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)

	s := sqlkv.New(conn, squirrel.Question, logger)
	if err := s.Migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return s, nil
}

func ensureDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
