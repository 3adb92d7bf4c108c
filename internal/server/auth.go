package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskboard/internal/kanban"
	"taskboard/internal/models"
)

const (
	ctxUserKey  = "user"
	ctxTokenKey = "token"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// requireUser resolves the bearer token into the current user.
func (s *Server) requireUser(c *gin.Context) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is missing"})
		return
	}

	user, err := s.auth.Authenticate(c.Request.Context(), token)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Set(ctxUserKey, user)
	c.Set(ctxTokenKey, token)
	c.Next()
}

func currentUser(c *gin.Context) models.User {
	return c.MustGet(ctxUserKey).(models.User)
}

// handleLogin opens a mock session for any non-empty credentials.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	sess, err := s.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, sess)
}

// handleSignup opens a mock session for a newly named user.
func (s *Server) handleSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	sess, err := s.auth.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, sess)
}

// handleLogout ends the caller's session.
func (s *Server) handleLogout(c *gin.Context) {
	if err := s.auth.Logout(c.Request.Context(), c.GetString(ctxTokenKey)); err != nil {
		s.fail(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, gin.H{"status": "logged out"})
}

// handleMe returns the current user.
func (s *Server) handleMe(c *gin.Context) {
	respondSuccess(c, http.StatusOK, gin.H{"user": currentUser(c)})
}

// handleListUsers returns the users that may be assigned to tasks.
func (s *Server) handleListUsers(c *gin.Context) {
	respondSuccess(c, http.StatusOK, gin.H{"users": directory(currentUser(c))})
}

// directory is the demo user list plus the caller.
func directory(extra ...models.User) []models.User {
	users := kanban.DemoUsers()
	for _, u := range extra {
		if u.ID != "" && !containsUser(users, u.ID) {
			users = append(users, u)
		}
	}
	return users
}

func containsUser(users []models.User, id string) bool {
	for _, u := range users {
		if u.ID == id {
			return true
		}
	}
	return false
}

// resolveUsers maps ids onto users from pool, preserving the order of ids.
func resolveUsers(ids []string, pool []models.User) ([]models.User, error) {
	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		found := false
		for _, u := range pool {
			if u.ID == id {
				if !containsUser(out, id) {
					out = append(out, u)
				}
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown user %q: %w", id, kanban.ErrInvalidInput)
		}
	}
	return out, nil
}
