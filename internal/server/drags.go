package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/dragdrop"
)

type startDragRequest struct {
	TaskID string `json:"taskId" binding:"required"`
}

type dragEventRequest struct {
	OverID string `json:"overId"`
}

// handleStartDrag opens a drag session for a task.
func (s *Server) handleStartDrag(c *gin.Context) {
	boardID, ok := s.pathID(c, "boardId")
	if !ok {
		return
	}

	var req startDragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	id, err := s.drags.Start(c.Request.Context(), boardID, req.TaskID)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"dragId": id, "activeId": req.TaskID})
}

// session resolves the :dragId parameter.
func (s *Server) session(c *gin.Context) (string, *dragdrop.Session, bool) {
	id, ok := s.pathID(c, "dragId")
	if !ok {
		return "", nil, false
	}
	sess, ok := s.drags.Get(id)
	if !ok {
		s.respondError(c, http.StatusNotFound, fmt.Errorf("drag %s not found", id))
		return "", nil, false
	}
	return id, sess, true
}

// handleDragOver reports the element under the dragged task. Entering another
// column moves the task there immediately.
func (s *Server) handleDragOver(c *gin.Context) {
	_, sess, ok := s.session(c)
	if !ok {
		return
	}

	var req dragEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	moved, err := sess.Over(ctx, req.OverID)
	if err != nil {
		s.fail(c, err)
		return
	}
	board, err := s.store.GetBoard(ctx, sess.BoardID())
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"moved": moved, "board": board})
}

// handleDrop ends the drag and closes the session.
func (s *Server) handleDrop(c *gin.Context) {
	id, sess, ok := s.session(c)
	if !ok {
		return
	}
	defer s.drags.Finish(id)

	var req dragEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	reordered, err := sess.Drop(ctx, req.OverID)
	if err != nil {
		s.fail(c, err)
		return
	}
	board, err := s.store.GetBoard(ctx, sess.BoardID())
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"reordered": reordered, "board": board})
}

// handleCancelDrag abandons the drag. Moves already made while hovering stay.
func (s *Server) handleCancelDrag(c *gin.Context) {
	id, sess, ok := s.session(c)
	if !ok {
		return
	}
	sess.Cancel()
	s.drags.Finish(id)
	respondSuccess(c, http.StatusNoContent, nil)
}
