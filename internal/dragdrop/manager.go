package dragdrop

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/kanban"
)

// DefaultSessionTTL bounds how long an abandoned drag is remembered.
const DefaultSessionTTL = 10 * time.Minute

type entry struct {
	session *Session
	started time.Time
}

// Manager keeps drag sessions addressable by id so a client can drive one
// drag over several requests.
type Manager struct {
	mu       sync.Mutex
	store    Board
	logger   *slog.Logger
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]entry
}

// NewManager returns an empty registry.
func NewManager(store Board, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:    store,
		logger:   logger,
		ttl:      DefaultSessionTTL,
		now:      time.Now,
		sessions: make(map[string]entry),
	}
}

// Start opens a session dragging taskID on boardID. The task must exist.
func (m *Manager) Start(ctx context.Context, boardID, taskID string) (string, error) {
	b, err := m.store.GetBoard(ctx, boardID)
	if err != nil {
		return "", err
	}
	if ci, _ := b.FindTask(taskID); ci == -1 {
		return "", fmt.Errorf("task %s: %w", taskID, kanban.ErrTaskNotFound)
	}

	s := NewSession(m.store, boardID)
	s.Start(taskID)
	id := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneLocked()
	m.sessions[id] = entry{session: s, started: m.now()}

	m.logger.Debug("drag started", "drag_id", id, "board_id", boardID, "task_id", taskID)
	return id, nil
}

// Get returns the session registered under id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	return e.session, ok
}

// Finish forgets the session.
func (m *Manager) Finish(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) pruneLocked() {
	cutoff := m.now().Add(-m.ttl)
	for id, e := range m.sessions {
		if e.started.Before(cutoff) {
			delete(m.sessions, id)
			m.logger.Debug("drag expired", "drag_id", id)
		}
	}
}
