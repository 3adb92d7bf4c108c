package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/kanban"
	"taskboard/internal/models"
)

type columnRequest struct {
	Title string `json:"title" binding:"required"`
}

type orderRequest struct {
	TaskIDs []string `json:"taskIds" binding:"required"`
}

func (s *Server) handleCreateColumn(c *gin.Context) {
	boardID, ok := s.pathID(c, "boardId")
	if !ok {
		return
	}

	var req columnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	col, err := s.store.CreateColumn(c.Request.Context(), boardID, models.CreateColumnData{Title: req.Title})
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"column": col})
}

func (s *Server) handleUpdateColumn(c *gin.Context) {
	boardID, ok := s.pathID(c, "boardId")
	if !ok {
		return
	}
	columnID, ok := s.pathID(c, "columnId")
	if !ok {
		return
	}

	var req columnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	col, err := s.store.UpdateColumn(c.Request.Context(), boardID, columnID, models.ColumnUpdate{Title: &req.Title})
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"column": col})
}

// handleDeleteColumn removes a column together with its tasks.
func (s *Server) handleDeleteColumn(c *gin.Context) {
	boardID, ok := s.pathID(c, "boardId")
	if !ok {
		return
	}
	columnID, ok := s.pathID(c, "columnId")
	if !ok {
		return
	}

	deleted, err := s.store.DeleteColumn(c.Request.Context(), boardID, columnID)
	if err != nil {
		s.fail(c, err)
		return
	}
	if !deleted {
		s.fail(c, fmt.Errorf("column %s: %w", columnID, kanban.ErrColumnNotFound))
		return
	}
	respondSuccess(c, http.StatusNoContent, nil)
}

// handleReorderTasks rewrites the task order of one column.
func (s *Server) handleReorderTasks(c *gin.Context) {
	boardID, ok := s.pathID(c, "boardId")
	if !ok {
		return
	}
	columnID, ok := s.pathID(c, "columnId")
	if !ok {
		return
	}

	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	if err := s.store.ReorderTasksInColumn(ctx, boardID, columnID, req.TaskIDs); err != nil {
		s.fail(c, err)
		return
	}
	board, err := s.store.GetBoard(ctx, boardID)
	if err != nil {
		s.fail(c, err)
		return
	}
	col, err := columnOf(board, columnID)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"column": col})
}

// columnOf returns the column with the given id. The column may have been
// removed by another request since the caller last checked.
func columnOf(board models.Board, columnID string) (models.Column, error) {
	i := board.FindColumn(columnID)
	if i == -1 {
		return models.Column{}, fmt.Errorf("column %s: %w", columnID, kanban.ErrColumnNotFound)
	}
	return board.Columns[i], nil
}
