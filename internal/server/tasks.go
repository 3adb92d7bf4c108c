package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/kanban"
	"taskboard/internal/models"
)

type createTaskRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Priority    models.Priority `json:"priority"`
	AssigneeIDs []string        `json:"assigneeIds"`
	DueDate     *time.Time      `json:"dueDate"`
	Tags        []string        `json:"tags"`
}

type updateTaskRequest struct {
	Title        *string          `json:"title"`
	Description  *string          `json:"description"`
	Priority     *models.Priority `json:"priority"`
	AssigneeIDs  *[]string        `json:"assigneeIds"`
	DueDate      *time.Time       `json:"dueDate"`
	ClearDueDate bool             `json:"clearDueDate"`
	Tags         *[]string        `json:"tags"`
	Attachments  *[]string        `json:"attachments"`
}

type moveRequest struct {
	SourceColumnID string `json:"sourceColumnId" binding:"required"`
	TargetColumnID string `json:"targetColumnId" binding:"required"`
	TargetIndex    int    `json:"targetIndex"`
}

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

// assignable lists the users a task on board may be assigned to.
func assignable(board models.Board, caller models.User) []models.User {
	return directory(append(board.TeamMembers, board.Owner, caller)...)
}

// handleCreateTask appends a task to a column.
func (s *Server) handleCreateTask(c *gin.Context) {
	boardID, ok := s.pathID(c, "boardId")
	if !ok {
		return
	}
	columnID, ok := s.pathID(c, "columnId")
	if !ok {
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	user := currentUser(c)
	board, err := s.store.GetBoard(ctx, boardID)
	if err != nil {
		s.fail(c, err)
		return
	}
	assignees, err := resolveUsers(req.AssigneeIDs, assignable(board, user))
	if err != nil {
		s.fail(c, err)
		return
	}

	task, err := s.store.CreateTask(ctx, boardID, columnID, models.CreateTaskData{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Assignees:   assignees,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
	}, user)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"task": task})
}

// handleUpdateTask applies a partial update to a task.
func (s *Server) handleUpdateTask(c *gin.Context) {
	boardID, ok := s.pathID(c, "boardId")
	if !ok {
		return
	}
	taskID, ok := s.pathID(c, "taskId")
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	upd := models.TaskUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Priority:     req.Priority,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
		Tags:         req.Tags,
		Attachments:  req.Attachments,
	}
	if req.AssigneeIDs != nil {
		board, err := s.store.GetBoard(ctx, boardID)
		if err != nil {
			s.fail(c, err)
			return
		}
		assignees, err := resolveUsers(*req.AssigneeIDs, assignable(board, currentUser(c)))
		if err != nil {
			s.fail(c, err)
			return
		}
		upd.Assignees = &assignees
	}

	task, err := s.store.UpdateTask(ctx, boardID, taskID, upd)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"task": task})
}

// handleDeleteTask removes a task from whichever column holds it.
func (s *Server) handleDeleteTask(c *gin.Context) {
	boardID, ok := s.pathID(c, "boardId")
	if !ok {
		return
	}
	taskID, ok := s.pathID(c, "taskId")
	if !ok {
		return
	}

	deleted, err := s.store.DeleteTask(c.Request.Context(), boardID, taskID)
	if err != nil {
		s.fail(c, err)
		return
	}
	if !deleted {
		s.fail(c, fmt.Errorf("task %s: %w", taskID, kanban.ErrTaskNotFound))
		return
	}
	respondSuccess(c, http.StatusNoContent, nil)
}

// handleMoveTask relocates a task between columns in one write.
func (s *Server) handleMoveTask(c *gin.Context) {
	boardID, ok := s.pathID(c, "boardId")
	if !ok {
		return
	}
	taskID, ok := s.pathID(c, "taskId")
	if !ok {
		return
	}

	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	if err := s.store.MoveTask(ctx, boardID, taskID, req.SourceColumnID, req.TargetColumnID, req.TargetIndex); err != nil {
		s.fail(c, err)
		return
	}
	board, err := s.store.GetBoard(ctx, boardID)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"board": board})
}

func (s *Server) handleAddComment(c *gin.Context) {
	boardID, ok := s.pathID(c, "boardId")
	if !ok {
		return
	}
	taskID, ok := s.pathID(c, "taskId")
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	comment, err := s.store.AddComment(c.Request.Context(), boardID, taskID, req.Text, currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"comment": comment})
}

func (s *Server) handleDeleteComment(c *gin.Context) {
	boardID, ok := s.pathID(c, "boardId")
	if !ok {
		return
	}
	taskID, ok := s.pathID(c, "taskId")
	if !ok {
		return
	}
	commentID, ok := s.pathID(c, "commentId")
	if !ok {
		return
	}

	if err := s.store.DeleteComment(c.Request.Context(), boardID, taskID, commentID, currentUser(c)); err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusNoContent, nil)
}
