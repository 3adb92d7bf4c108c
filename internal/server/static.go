package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// mountStatic serves the compiled board UI. Unknown non-API paths fall back
// to index.html so client-side routes such as /boards/42 survive a reload.
func (s *Server) mountStatic() {
	indexPath := ""
	defer func() {
		s.engine.NoRoute(func(c *gin.Context) {
			if indexPath == "" || strings.HasPrefix(c.Request.URL.Path, "/api/") {
				c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
				return
			}
			c.File(indexPath)
		})
	}()

	if s.staticDir == "" {
		s.logger.Info("static directory not configured, serving API only")
		return
	}
	info, err := os.Stat(s.staticDir)
	if err != nil || !info.IsDir() {
		s.logger.Warn("static directory missing", "path", s.staticDir, "error", err)
		return
	}

	candidate := filepath.Join(s.staticDir, "index.html")
	if _, err := os.Stat(candidate); err != nil {
		s.logger.Warn("index.html not found", "path", candidate, "error", err)
	} else {
		indexPath = candidate
		s.engine.GET("/", func(c *gin.Context) {
			c.File(indexPath)
		})
	}

	assetsDir := filepath.Join(s.staticDir, "assets")
	if _, err := os.Stat(assetsDir); err == nil {
		s.engine.StaticFS("/assets", gin.Dir(assetsDir, false))
	}
	for _, name := range []string{"favicon.ico", "robots.txt"} {
		path := filepath.Join(s.staticDir, name)
		if _, err := os.Stat(path); err == nil {
			s.engine.StaticFile("/"+name, path)
		}
	}
}
