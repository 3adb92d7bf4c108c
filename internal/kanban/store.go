package kanban

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"taskboard/internal/storage"
)

var (
	ErrBoardNotFound   = errors.New("board not found")
	ErrColumnNotFound  = errors.New("column not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrForbidden       = errors.New("forbidden")
)

// IsNotFound reports whether err signals a missing board, column, task or comment.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBoardNotFound) ||
		errors.Is(err, ErrColumnNotFound) ||
		errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrCommentNotFound)
}

// Store owns the board collection persisted in a key-value backend.
// Mutators are serialized by an internal mutex; concurrent processes sharing
// one backend are not coordinated and the last write wins.
type Store struct {
	mu      sync.Mutex
	backend storage.Backend
	logger  *slog.Logger
	now     func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithClock replaces the time source used to stamp entities.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New builds a Store over the given backend.
func New(backend storage.Backend, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		backend: backend,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
