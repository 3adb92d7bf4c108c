package kanban

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"taskboard/internal/models"
	"taskboard/internal/storage"
)

// DefaultColumnTitles are the columns every new board starts with.
var DefaultColumnTitles = []string{"To Do", "In Progress", "Done"}

// ListBoards returns all boards in display order.
func (s *Store) ListBoards(ctx context.Context) ([]models.Board, error) {
	return s.Load(ctx)
}

// SearchBoards returns boards whose name or description contains term,
// ignoring case. An empty term matches every board.
func (s *Store) SearchBoards(ctx context.Context, term string) ([]models.Board, error) {
	boards, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return boards, nil
	}

	matched := boards[:0]
	for _, b := range boards {
		if strings.Contains(strings.ToLower(b.Name), term) ||
			strings.Contains(strings.ToLower(b.Description), term) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// GetBoard fetches a single board by id.
func (s *Store) GetBoard(ctx context.Context, id string) (models.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.loadBoard(ctx, id)
	if err != nil {
		return models.Board{}, err
	}
	return *b, nil
}

// CreateBoard persists a new board owned by owner with the default columns.
func (s *Store) CreateBoard(ctx context.Context, data models.CreateBoardData, owner models.User) (models.Board, error) {
	name := strings.TrimSpace(data.Name)
	if name == "" {
		return models.Board{}, fmt.Errorf("board name must not be empty: %w", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.nextID(ctx)
	if err != nil {
		return models.Board{}, err
	}

	now := s.now()
	b := models.Board{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(data.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
		TeamMembers: []models.User{owner},
		Owner:       owner,
		Columns:     make([]models.Column, 0, len(DefaultColumnTitles)),
	}
	for i, title := range DefaultColumnTitles {
		colID, err := s.nextID(ctx)
		if err != nil {
			return models.Board{}, err
		}
		b.Columns = append(b.Columns, models.Column{ID: colID, Title: title, Order: i, Tasks: []models.Task{}})
	}

	index, err := s.loadIndex(ctx)
	if err != nil {
		return models.Board{}, err
	}
	if err := s.writeBoard(ctx, &b, append(index, b.ID)); err != nil {
		return models.Board{}, err
	}

	s.logger.Debug("board created", "board_id", b.ID, "owner_id", owner.ID)
	return b, nil
}

// UpdateBoard applies the non-nil fields of upd to the board.
func (s *Store) UpdateBoard(ctx context.Context, id string, upd models.BoardUpdate) (models.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.mutateBoard(ctx, id, func(b *models.Board) error {
		if upd.Name != nil {
			name := strings.TrimSpace(*upd.Name)
			if name == "" {
				return fmt.Errorf("board name must not be empty: %w", ErrInvalidInput)
			}
			b.Name = name
		}
		if upd.Description != nil {
			b.Description = strings.TrimSpace(*upd.Description)
		}
		if upd.TeamMembers != nil {
			b.TeamMembers = slices.Clone(*upd.TeamMembers)
			if b.TeamMembers == nil {
				b.TeamMembers = []models.User{}
			}
		}
		return nil
	})
	if err != nil {
		return models.Board{}, err
	}
	return *b, nil
}

// DeleteBoard removes the board with the given id. It reports false when no
// board matched; the collection is then left untouched.
func (s *Store) DeleteBoard(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, err := s.loadIndex(ctx)
	if err != nil {
		return false, err
	}
	pos := slices.Index(index, id)
	if pos == -1 {
		return false, nil
	}

	remaining := slices.Delete(slices.Clone(index), pos, pos+1)
	var batch storage.Batch
	batch.Del(boardKey(id))
	if err := putIndex(&batch, remaining); err != nil {
		return false, err
	}
	if err := s.backend.Apply(ctx, batch); err != nil {
		return false, fmt.Errorf("delete board %s: %w", id, err)
	}

	s.logger.Debug("board deleted", "board_id", id)
	return true, nil
}
