package kanban

import (
	"context"
	"fmt"
	"strconv"

	"taskboard/internal/models"
	"taskboard/internal/storage"
)

// KeyNextID holds the last identifier handed out, as a decimal string.
const KeyNextID = "taskboard_next_id"

const initialID = 1000

// NextID returns an identifier that was never returned before by this backend.
func (s *Store) NextID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextID(ctx)
}

func (s *Store) nextID(ctx context.Context) (string, error) {
	current, err := s.counter(ctx)
	if err != nil {
		return "", err
	}

	next := strconv.FormatInt(current+1, 10)
	if err := storage.Set(ctx, s.backend, KeyNextID, next); err != nil {
		return "", fmt.Errorf("write id counter: %w", err)
	}
	return next, nil
}

// counter returns the last id handed out, or initialID when none was.
func (s *Store) counter(ctx context.Context) (int64, error) {
	raw, ok, err := s.backend.Get(ctx, KeyNextID)
	if err != nil {
		return 0, fmt.Errorf("read id counter: %w", err)
	}
	if !ok {
		return initialID, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// ids are never reissued, so a corrupt counter is fatal
		return 0, fmt.Errorf("id counter %q: %w", raw, err)
	}
	return v, nil
}

// advanceCounter queues a counter update in batch so that no numeric id used
// by boards, or by anything on them, can be handed out again. Non-numeric ids
// are ignored.
func (s *Store) advanceCounter(ctx context.Context, batch *storage.Batch, boards []models.Board) error {
	current, err := s.counter(ctx)
	if err != nil {
		return err
	}

	highest := current
	bump := func(id string) {
		if v, err := strconv.ParseInt(id, 10, 64); err == nil && v > highest {
			highest = v
		}
	}
	for _, b := range boards {
		bump(b.ID)
		for _, col := range b.Columns {
			bump(col.ID)
			for _, t := range col.Tasks {
				bump(t.ID)
				for _, c := range t.Comments {
					bump(c.ID)
				}
			}
		}
	}

	if highest > current {
		batch.Put(KeyNextID, strconv.FormatInt(highest, 10))
	}
	return nil
}
