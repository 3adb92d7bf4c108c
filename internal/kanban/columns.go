package kanban

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"taskboard/internal/models"
)

// CreateColumn appends a column to the board.
func (s *Store) CreateColumn(ctx context.Context, boardID string, data models.CreateColumnData) (models.Column, error) {
	title := strings.TrimSpace(data.Title)
	if title == "" {
		return models.Column{}, fmt.Errorf("column title must not be empty: %w", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.loadBoard(ctx, boardID); err != nil {
		return models.Column{}, err
	}
	id, err := s.nextID(ctx)
	if err != nil {
		return models.Column{}, err
	}

	var col models.Column
	_, err = s.mutateBoard(ctx, boardID, func(b *models.Board) error {
		col = models.Column{ID: id, Title: title, Order: len(b.Columns), Tasks: []models.Task{}}
		b.Columns = append(b.Columns, col)
		return nil
	})
	if err != nil {
		return models.Column{}, err
	}
	return col, nil
}

// UpdateColumn applies the non-nil fields of upd to the column.
func (s *Store) UpdateColumn(ctx context.Context, boardID, columnID string, upd models.ColumnUpdate) (models.Column, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var col models.Column
	_, err := s.mutateBoard(ctx, boardID, func(b *models.Board) error {
		i := b.FindColumn(columnID)
		if i == -1 {
			return fmt.Errorf("column %s: %w", columnID, ErrColumnNotFound)
		}
		if upd.Title != nil {
			title := strings.TrimSpace(*upd.Title)
			if title == "" {
				return fmt.Errorf("column title must not be empty: %w", ErrInvalidInput)
			}
			b.Columns[i].Title = title
		}
		col = b.Columns[i]
		return nil
	})
	if err != nil {
		return models.Column{}, err
	}
	return col, nil
}

// DeleteColumn removes the column together with its tasks and renumbers the
// remaining columns. It reports false when the board or column is absent.
func (s *Store) DeleteColumn(ctx context.Context, boardID, columnID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.mutateBoard(ctx, boardID, func(b *models.Board) error {
		i := b.FindColumn(columnID)
		if i == -1 {
			return ErrColumnNotFound
		}
		b.Columns = slices.Delete(b.Columns, i, i+1)
		renumber(b.Columns)
		return nil
	})
	if errors.Is(err, ErrBoardNotFound) || errors.Is(err, ErrColumnNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func renumber(cols []models.Column) {
	for i := range cols {
		cols[i].Order = i
	}
}
