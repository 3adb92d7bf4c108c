package kanban

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"taskboard/internal/models"
)

// CreateTask appends a new task to the column. An empty priority defaults to medium.
func (s *Store) CreateTask(ctx context.Context, boardID, columnID string, data models.CreateTaskData, creator models.User) (models.Task, error) {
	title := strings.TrimSpace(data.Title)
	if title == "" {
		return models.Task{}, fmt.Errorf("task title must not be empty: %w", ErrInvalidInput)
	}
	priority := data.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if _, ok := models.ValidPriorities[priority]; !ok {
		return models.Task{}, fmt.Errorf("unknown priority %q: %w", priority, ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.loadBoard(ctx, boardID)
	if err != nil {
		return models.Task{}, err
	}
	if b.FindColumn(columnID) == -1 {
		return models.Task{}, fmt.Errorf("column %s: %w", columnID, ErrColumnNotFound)
	}
	id, err := s.nextID(ctx)
	if err != nil {
		return models.Task{}, err
	}

	now := s.now()
	task := models.Task{
		ID:          id,
		Title:       title,
		Description: data.Description,
		Priority:    priority,
		Assignees:   nonNil(slices.Clone(data.Assignees)),
		Creator:     &creator,
		DueDate:     data.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
		Comments:    []models.Comment{},
		Attachments: []string{},
		Tags:        slices.Clone(data.Tags),
	}

	_, err = s.mutateBoard(ctx, boardID, func(b *models.Board) error {
		i := b.FindColumn(columnID)
		b.Columns[i].Tasks = append(b.Columns[i].Tasks, task)
		return nil
	})
	if err != nil {
		return models.Task{}, err
	}

	s.logger.Debug("task created", "board_id", boardID, "column_id", columnID, "task_id", id)
	return task, nil
}

// UpdateTask applies the non-nil fields of upd to the task, wherever it lives on the board.
func (s *Store) UpdateTask(ctx context.Context, boardID, taskID string, upd models.TaskUpdate) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var task models.Task
	_, err := s.mutateBoard(ctx, boardID, func(b *models.Board) error {
		ci, ti := b.FindTask(taskID)
		if ci == -1 {
			return fmt.Errorf("task %s: %w", taskID, ErrTaskNotFound)
		}
		t := &b.Columns[ci].Tasks[ti]
		if err := applyTaskUpdate(t, upd); err != nil {
			return err
		}
		t.UpdatedAt = s.now()
		task = *t
		return nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func applyTaskUpdate(t *models.Task, upd models.TaskUpdate) error {
	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return fmt.Errorf("task title must not be empty: %w", ErrInvalidInput)
		}
		t.Title = title
	}
	if upd.Priority != nil {
		if _, ok := models.ValidPriorities[*upd.Priority]; !ok {
			return fmt.Errorf("unknown priority %q: %w", *upd.Priority, ErrInvalidInput)
		}
		t.Priority = *upd.Priority
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Assignees != nil {
		t.Assignees = nonNil(slices.Clone(*upd.Assignees))
	}
	switch {
	case upd.ClearDueDate:
		t.DueDate = nil
	case upd.DueDate != nil:
		due := *upd.DueDate
		t.DueDate = &due
	}
	if upd.Tags != nil {
		t.Tags = slices.Clone(*upd.Tags)
	}
	if upd.Attachments != nil {
		t.Attachments = nonNil(slices.Clone(*upd.Attachments))
	}
	return nil
}

// DeleteTask removes the task from whichever column holds it. It reports false
// when the board or task is absent.
func (s *Store) DeleteTask(ctx context.Context, boardID, taskID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.mutateBoard(ctx, boardID, func(b *models.Board) error {
		ci, ti := b.FindTask(taskID)
		if ci == -1 {
			return ErrTaskNotFound
		}
		b.Columns[ci].Tasks = slices.Delete(b.Columns[ci].Tasks, ti, ti+1)
		return nil
	})
	if errors.Is(err, ErrBoardNotFound) || errors.Is(err, ErrTaskNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MoveTask takes the task out of the source column and inserts it into the
// target column at targetIndex. Indexes past the end append; negative indexes
// insert at the front. Both edits are persisted by one write.
func (s *Store) MoveTask(ctx context.Context, boardID, taskID, sourceColumnID, targetColumnID string, targetIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.mutateBoard(ctx, boardID, func(b *models.Board) error {
		si := b.FindColumn(sourceColumnID)
		if si == -1 {
			return fmt.Errorf("source column %s: %w", sourceColumnID, ErrColumnNotFound)
		}
		di := b.FindColumn(targetColumnID)
		if di == -1 {
			return fmt.Errorf("target column %s: %w", targetColumnID, ErrColumnNotFound)
		}
		ti := slices.IndexFunc(b.Columns[si].Tasks, func(t models.Task) bool { return t.ID == taskID })
		if ti == -1 {
			return fmt.Errorf("task %s in column %s: %w", taskID, sourceColumnID, ErrTaskNotFound)
		}

		task := b.Columns[si].Tasks[ti]
		b.Columns[si].Tasks = slices.Delete(b.Columns[si].Tasks, ti, ti+1)

		dst := b.Columns[di].Tasks
		targetIndex = max(0, min(targetIndex, len(dst)))
		b.Columns[di].Tasks = slices.Insert(dst, targetIndex, task)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("task moved", "board_id", boardID, "task_id", taskID,
		"from", sourceColumnID, "to", targetColumnID, "index", targetIndex)
	return nil
}

// ReorderTasksInColumn sorts the column's tasks to follow orderedTaskIDs.
// Unknown ids are ignored. Tasks missing from orderedTaskIDs keep their
// relative order after the listed ones.
func (s *Store) ReorderTasksInColumn(ctx context.Context, boardID, columnID string, orderedTaskIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.mutateBoard(ctx, boardID, func(b *models.Board) error {
		ci := b.FindColumn(columnID)
		if ci == -1 {
			return fmt.Errorf("column %s: %w", columnID, ErrColumnNotFound)
		}
		b.Columns[ci].Tasks = reorder(b.Columns[ci].Tasks, orderedTaskIDs)
		return nil
	})
	return err
}

func reorder(tasks []models.Task, ids []string) []models.Task {
	byID := make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	out := make([]models.Task, 0, len(tasks))
	placed := make(map[string]bool, len(tasks))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok || placed[id] {
			continue
		}
		out = append(out, t)
		placed[id] = true
	}
	for _, t := range tasks {
		if !placed[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
