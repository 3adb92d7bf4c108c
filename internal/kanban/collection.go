package kanban

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"taskboard/internal/models"
	"taskboard/internal/storage"
)

const (
	// KeyBoards holds the JSON array of board ids in display order.
	KeyBoards = "taskboard_boards"

	boardKeyPrefix = "taskboard_board:"
)

func boardKey(id string) string {
	return boardKeyPrefix + id
}

// Load returns every board in display order.
func (s *Store) Load(ctx context.Context) ([]models.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Save replaces the whole collection with boards. Board ids must be unique.
// The id counter is moved past every numeric id in boards in the same write.
func (s *Store) Save(ctx context.Context, boards []models.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, boards)
}

func (s *Store) load(ctx context.Context) ([]models.Board, error) {
	ids, err := s.loadIndex(ctx)
	if err != nil {
		return nil, err
	}

	boards := make([]models.Board, 0, len(ids))
	for _, id := range ids {
		b, err := s.loadBoard(ctx, id)
		if errors.Is(err, ErrBoardNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		boards = append(boards, *b)
	}
	return boards, nil
}

func (s *Store) save(ctx context.Context, boards []models.Board) error {
	previous, err := s.loadIndex(ctx)
	if err != nil {
		return err
	}

	var batch storage.Batch
	ids := make([]string, 0, len(boards))
	for i := range boards {
		id := boards[i].ID
		if id == "" {
			return fmt.Errorf("board without id: %w", ErrInvalidInput)
		}
		if slices.Contains(ids, id) {
			return fmt.Errorf("duplicate board id %s: %w", id, ErrInvalidInput)
		}
		raw, err := json.Marshal(&boards[i])
		if err != nil {
			return fmt.Errorf("encode board %s: %w", boards[i].ID, err)
		}
		batch.Put(boardKey(boards[i].ID), string(raw))
		ids = append(ids, boards[i].ID)
	}
	for _, id := range previous {
		if !slices.Contains(ids, id) {
			batch.Del(boardKey(id))
		}
	}
	if err := putIndex(&batch, ids); err != nil {
		return err
	}
	if err := s.advanceCounter(ctx, &batch, boards); err != nil {
		return err
	}

	if err := s.backend.Apply(ctx, batch); err != nil {
		return fmt.Errorf("save boards: %w", err)
	}
	return nil
}

// loadIndex returns the ordered board ids. A missing or unparsable index is an
// empty collection.
func (s *Store) loadIndex(ctx context.Context) ([]string, error) {
	raw, ok, err := s.backend.Get(ctx, KeyBoards)
	if err != nil {
		return nil, fmt.Errorf("read board index: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.logger.Warn("board index unreadable, treating collection as empty", "error", err)
		return nil, nil
	}
	return ids, nil
}

func (s *Store) loadBoard(ctx context.Context, id string) (*models.Board, error) {
	raw, ok, err := s.backend.Get(ctx, boardKey(id))
	if err != nil {
		return nil, fmt.Errorf("read board %s: %w", id, err)
	}
	if !ok {
		return nil, fmt.Errorf("board %s: %w", id, ErrBoardNotFound)
	}

	var b models.Board
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		s.logger.Warn("board unreadable, skipping", "board_id", id, "error", err)
		return nil, fmt.Errorf("board %s: %w", id, ErrBoardNotFound)
	}
	return &b, nil
}

// writeBoard persists a single board. A non-nil index is written in the same batch.
func (s *Store) writeBoard(ctx context.Context, b *models.Board, index []string) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode board %s: %w", b.ID, err)
	}

	var batch storage.Batch
	batch.Put(boardKey(b.ID), string(raw))
	if index != nil {
		if err := putIndex(&batch, index); err != nil {
			return err
		}
	}
	if err := s.backend.Apply(ctx, batch); err != nil {
		return fmt.Errorf("save board %s: %w", b.ID, err)
	}
	return nil
}

// mutateBoard loads one board, applies fn and writes the board back when fn
// succeeds. The board's updatedAt is refreshed on every successful mutation.
func (s *Store) mutateBoard(ctx context.Context, id string, fn func(b *models.Board) error) (*models.Board, error) {
	b, err := s.loadBoard(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(b); err != nil {
		return nil, err
	}
	b.UpdatedAt = s.now()
	if err := s.writeBoard(ctx, b, nil); err != nil {
		return nil, err
	}
	return b, nil
}

func putIndex(batch *storage.Batch, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode board index: %w", err)
	}
	batch.Put(KeyBoards, string(raw))
	return nil
}
