package sqlkv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"taskboard/internal/storage"
)

const table = "kv_entries"

// Store implements storage.Backend on top of a single SQL table.
type Store struct {
	db     *sqlx.DB
	sb     squirrel.StatementBuilderType
	logger *slog.Logger
}

// New wraps an open database. The placeholder format must match the driver:
// squirrel.Question for SQLite, squirrel.Dollar for Postgres.
func New(db *sqlx.DB, placeholder squirrel.PlaceholderFormat, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		db:     db,
		sb:     squirrel.StatementBuilder.PlaceholderFormat(placeholder),
		logger: logger,
	}
}

// Migrate creates the key-value table when it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	stmt := `CREATE TABLE IF NOT EXISTS ` + table + ` (
            entry_key TEXT PRIMARY KEY,
            entry_value TEXT NOT NULL,
            updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
        )`
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// DB exposes the underlying handle.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	query, args, err := s.sb.Select("entry_value").From(table).Where(squirrel.Eq{"entry_key": key}).ToSql()
	if err != nil {
		return "", false, fmt.Errorf("build select: %w", err)
	}

	var value string
	err = s.db.GetContext(ctx, &value, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Apply(ctx context.Context, batch storage.Batch) error {
	if len(batch) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	now := time.Now().UTC()
	for _, op := range batch {
		var builder interface {
			ToSql() (string, []any, error)
		}
		if op.Delete {
			builder = s.sb.Delete(table).Where(squirrel.Eq{"entry_key": op.Key})
		} else {
			builder = s.sb.Insert(table).
				Columns("entry_key", "entry_value", "updated_at").
				Values(op.Key, op.Value, now).
				Suffix("ON CONFLICT(entry_key) DO UPDATE SET entry_value = excluded.entry_value, updated_at = excluded.updated_at")
		}

		query, args, err := builder.ToSql()
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("build statement: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
			}
			return fmt.Errorf("write %q: %w", op.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.logger.Debug("batch applied", slog.Int("ops", len(batch)))
	return nil
}

// Close releases the database resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
