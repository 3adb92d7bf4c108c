// Package dragdrop drives a single drag of a task across a board: live moves
// while hovering over other columns, a reorder when dropped inside the same
// column.
package dragdrop

import (
	"context"
	"errors"
	"slices"
	"sync"

	"taskboard/internal/models"
)

// ErrNotDragging is returned when a drag event arrives for an idle session.
var ErrNotDragging = errors.New("no drag in progress")

// Board is the subset of the board store a drag needs.
type Board interface {
	GetBoard(ctx context.Context, id string) (models.Board, error)
	MoveTask(ctx context.Context, boardID, taskID, sourceColumnID, targetColumnID string, targetIndex int) error
	ReorderTasksInColumn(ctx context.Context, boardID, columnID string, orderedTaskIDs []string) error
}

// Session tracks one in-flight drag on a board.
type Session struct {
	mu       sync.Mutex
	store    Board
	boardID  string
	activeID string
}

// NewSession returns an idle session for the board.
func NewSession(store Board, boardID string) *Session {
	return &Session{store: store, boardID: boardID}
}

// BoardID returns the board the session operates on.
func (s *Session) BoardID() string {
	return s.boardID
}

// Start picks up the task.
func (s *Session) Start(taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = taskID
}

// ActiveID returns the dragged task id, empty when idle.
func (s *Session) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Over handles hovering over overID, a column id or a task id. Entering a
// column other than the dragged task's current one moves the task to the end
// of that column right away. It reports whether a move was persisted.
func (s *Session) Over(ctx context.Context, overID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeID == "" {
		return false, ErrNotDragging
	}
	if overID == "" {
		return false, nil
	}

	b, err := s.store.GetBoard(ctx, s.boardID)
	if err != nil {
		return false, err
	}
	from, _ := b.FindTask(s.activeID)
	if from == -1 {
		return false, nil
	}
	to := b.FindColumn(overID)
	if to == -1 {
		to, _ = b.FindTask(overID)
	}
	if to == -1 || to == from {
		return false, nil
	}

	target := b.Columns[to]
	if err := s.store.MoveTask(ctx, s.boardID, s.activeID, b.Columns[from].ID, target.ID, len(target.Tasks)); err != nil {
		return false, err
	}
	return true, nil
}

// Drop ends the drag over overID. Dropping onto another task of the same
// column reorders that column; every other target only ends the drag.
// It reports whether a reorder was persisted.
func (s *Session) Drop(ctx context.Context, overID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.activeID
	s.activeID = ""
	if active == "" {
		return false, ErrNotDragging
	}
	if overID == "" || overID == active {
		return false, nil
	}

	b, err := s.store.GetBoard(ctx, s.boardID)
	if err != nil {
		return false, err
	}
	ac, ai := b.FindTask(active)
	oc, oi := b.FindTask(overID)
	if ac == -1 || oc == -1 || ac != oc {
		return false, nil
	}

	col := b.Columns[ac]
	ids := make([]string, 0, len(col.Tasks))
	for _, t := range col.Tasks {
		ids = append(ids, t.ID)
	}
	if err := s.store.ReorderTasksInColumn(ctx, s.boardID, col.ID, arrayMove(ids, ai, oi)); err != nil {
		return false, err
	}
	return true, nil
}

// Cancel ends the drag without touching the board.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = ""
}

func arrayMove(ids []string, from, to int) []string {
	out := slices.Clone(ids)
	item := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, item)
}
