package kanban

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"taskboard/internal/models"
)

// AddComment appends a comment by author to the task.
func (s *Store) AddComment(ctx context.Context, boardID, taskID, text string, author models.User) (models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Comment{}, fmt.Errorf("comment must not be empty: %w", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.loadBoard(ctx, boardID)
	if err != nil {
		return models.Comment{}, err
	}
	if ci, _ := b.FindTask(taskID); ci == -1 {
		return models.Comment{}, fmt.Errorf("task %s: %w", taskID, ErrTaskNotFound)
	}
	id, err := s.nextID(ctx)
	if err != nil {
		return models.Comment{}, err
	}

	now := s.now()
	comment := models.Comment{ID: id, Text: text, Author: author, CreatedAt: now}
	_, err = s.mutateBoard(ctx, boardID, func(b *models.Board) error {
		ci, ti := b.FindTask(taskID)
		t := &b.Columns[ci].Tasks[ti]
		t.Comments = append(t.Comments, comment)
		t.UpdatedAt = now
		return nil
	})
	if err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

// DeleteComment removes a comment. Only its author or an admin may do so.
func (s *Store) DeleteComment(ctx context.Context, boardID, taskID, commentID string, actor models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.mutateBoard(ctx, boardID, func(b *models.Board) error {
		ci, ti := b.FindTask(taskID)
		if ci == -1 {
			return fmt.Errorf("task %s: %w", taskID, ErrTaskNotFound)
		}
		t := &b.Columns[ci].Tasks[ti]
		i := slices.IndexFunc(t.Comments, func(c models.Comment) bool { return c.ID == commentID })
		if i == -1 {
			return fmt.Errorf("comment %s: %w", commentID, ErrCommentNotFound)
		}
		if t.Comments[i].Author.ID != actor.ID && !actor.IsAdmin() {
			return fmt.Errorf("comment %s belongs to another user: %w", commentID, ErrForbidden)
		}
		t.Comments = slices.Delete(t.Comments, i, i+1)
		t.UpdatedAt = s.now()
		return nil
	})
	return err
}
