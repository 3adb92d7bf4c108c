package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"taskboard/internal/auth"
	"taskboard/internal/dragdrop"
	"taskboard/internal/kanban"
)

// Options configures optional parts of the HTTP server.
type Options struct {
	// StaticDir holds the compiled frontend. Empty runs the API only.
	StaticDir string
	// CORSOrigins lists allowed browser origins. Empty allows every origin.
	CORSOrigins []string
}

// Server provides HTTP handlers for the kanban board backend.
type Server struct {
	engine    *gin.Engine
	store     *kanban.Store
	auth      *auth.Service
	drags     *dragdrop.Manager
	logger    *slog.Logger
	staticDir string
	now       func() time.Time
}

// New constructs the HTTP server with routes and middleware configured.
func New(store *kanban.Store, authSvc *auth.Service, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api/healthz"))

	corsCfg := cors.DefaultConfig()
	corsCfg.AddAllowHeaders("Authorization")
	if len(opts.CORSOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = opts.CORSOrigins
	}
	router.Use(cors.New(corsCfg))

	srv := &Server{
		engine:    router,
		store:     store,
		auth:      authSvc,
		drags:     dragdrop.NewManager(store, logger),
		logger:    logger,
		staticDir: opts.StaticDir,
		now:       time.Now,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API and static handlers together.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", s.handleLogin)
			authGroup.POST("/signup", s.handleSignup)
			authGroup.POST("/logout", s.requireUser, s.handleLogout)
			authGroup.GET("/me", s.requireUser, s.handleMe)
		}

		protected := api.Group("", s.requireUser)
		protected.GET("/users", s.handleListUsers)

		boards := protected.Group("/boards")
		{
			boards.GET("", s.handleListBoards)
			boards.POST("", s.handleCreateBoard)
			boards.GET("/:boardId", s.handleGetBoard)
			boards.PUT("/:boardId", s.handleUpdateBoard)
			boards.DELETE("/:boardId", s.handleDeleteBoard)

			boards.POST("/:boardId/columns", s.handleCreateColumn)
			boards.PUT("/:boardId/columns/:columnId", s.handleUpdateColumn)
			boards.DELETE("/:boardId/columns/:columnId", s.handleDeleteColumn)
			boards.POST("/:boardId/columns/:columnId/tasks", s.handleCreateTask)
			boards.PUT("/:boardId/columns/:columnId/order", s.handleReorderTasks)

			boards.PUT("/:boardId/tasks/:taskId", s.handleUpdateTask)
			boards.DELETE("/:boardId/tasks/:taskId", s.handleDeleteTask)
			boards.POST("/:boardId/tasks/:taskId/move", s.handleMoveTask)
			boards.POST("/:boardId/tasks/:taskId/comments", s.handleAddComment)
			boards.DELETE("/:boardId/tasks/:taskId/comments/:commentId", s.handleDeleteComment)

			boards.POST("/:boardId/drags", s.handleStartDrag)
		}

		drags := protected.Group("/drags")
		{
			drags.POST("/:dragId/over", s.handleDragOver)
			drags.POST("/:dragId/drop", s.handleDrop)
			drags.DELETE("/:dragId", s.handleCancelDrag)
		}
	}

	s.mountStatic()
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// fail maps domain errors onto HTTP statuses.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case kanban.IsNotFound(err):
		status = http.StatusNotFound
	case errors.Is(err, kanban.ErrInvalidInput), errors.Is(err, auth.ErrInvalidCredentials):
		status = http.StatusBadRequest
	case errors.Is(err, kanban.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, auth.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, dragdrop.ErrNotDragging):
		status = http.StatusConflict
	}
	s.respondError(c, status, err)
}

// respondError logs the error and returns a JSON payload.
func (s *Server) respondError(c *gin.Context, status int, err error) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.logger.Log(c.Request.Context(), level, "request failed",
		slog.String("path", c.FullPath()), slog.Int("status", status), slog.String("error", err.Error()))
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// respondSuccess wraps a payload in a JSON envelope for consistency.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}
