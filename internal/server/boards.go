package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskboard/internal/kanban"
	"taskboard/internal/models"
)

type createBoardRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type updateBoardRequest struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	TeamMemberIDs *[]string `json:"teamMemberIds"`
}

// pathID reads a route parameter, rejecting blank values.
func (s *Server) pathID(c *gin.Context, name string) (string, bool) {
	id := strings.TrimSpace(c.Param(name))
	if id == "" {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("%s is required", name))
		return "", false
	}
	return id, true
}

// handleListBoards returns all boards, optionally narrowed by ?q=.
func (s *Server) handleListBoards(c *gin.Context) {
	boards, err := s.store.SearchBoards(c.Request.Context(), c.Query("q"))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"boards": boards})
}

// handleCreateBoard creates a board owned by the caller.
func (s *Server) handleCreateBoard(c *gin.Context) {
	var req createBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	board, err := s.store.CreateBoard(c.Request.Context(), models.CreateBoardData{
		Name:        req.Name,
		Description: req.Description,
	}, currentUser(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"board": board})
}

// handleGetBoard returns one board with its tasks filtered by the query
// parameters q, priority, due and assignee.
func (s *Server) handleGetBoard(c *gin.Context) {
	boardID, ok := s.pathID(c, "boardId")
	if !ok {
		return
	}

	filter := kanban.TaskFilter{
		Search:   c.Query("q"),
		Priority: c.DefaultQuery("priority", kanban.PriorityAll),
		DueDate:  kanban.DueDateFilter(c.DefaultQuery("due", string(kanban.DueAll))),
		Assignee: c.DefaultQuery("assignee", kanban.AssigneeAll),
	}
	if err := filter.Validate(); err != nil {
		s.fail(c, err)
		return
	}

	board, err := s.store.GetBoard(c.Request.Context(), boardID)
	if err != nil {
		s.fail(c, err)
		return
	}
	if filter.Active() {
		board = kanban.FilterBoard(board, filter, s.now())
	}
	respondSuccess(c, http.StatusOK, gin.H{"board": board})
}

// handleUpdateBoard applies a partial update to a board.
func (s *Server) handleUpdateBoard(c *gin.Context) {
	boardID, ok := s.pathID(c, "boardId")
	if !ok {
		return
	}

	var req updateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}

	upd := models.BoardUpdate{Name: req.Name, Description: req.Description}
	if req.TeamMemberIDs != nil {
		current, err := s.store.GetBoard(c.Request.Context(), boardID)
		if err != nil {
			s.fail(c, err)
			return
		}
		members, err := resolveUsers(*req.TeamMemberIDs, directory(append(current.TeamMembers, currentUser(c))...))
		if err != nil {
			s.fail(c, err)
			return
		}
		upd.TeamMembers = &members
	}

	board, err := s.store.UpdateBoard(c.Request.Context(), boardID, upd)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"board": board})
}

// handleDeleteBoard removes a board and everything on it.
func (s *Server) handleDeleteBoard(c *gin.Context) {
	boardID, ok := s.pathID(c, "boardId")
	if !ok {
		return
	}

	deleted, err := s.store.DeleteBoard(c.Request.Context(), boardID)
	if err != nil {
		s.fail(c, err)
		return
	}
	if !deleted {
		s.fail(c, fmt.Errorf("board %s: %w", boardID, kanban.ErrBoardNotFound))
		return
	}
	respondSuccess(c, http.StatusNoContent, nil)
}
