package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"taskboard/internal/auth"
	"taskboard/internal/kanban"
	"taskboard/internal/server"
)

func newServeCommand() *cobra.Command {
	var (
		addr      string
		staticDir string
		dbPath    string
		seed      bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("static") {
				cfg.StaticDir = staticDir
			}
			if cmd.Flags().Changed("db") {
				cfg.Storage.Path = dbPath
			}
			return serve(cmd.Context(), seed)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "HTTP listen address")
	cmd.Flags().StringVar(&staticDir, "static", "web/dist", "Directory with built frontend")
	cmd.Flags().StringVar(&dbPath, "db", "data/taskboard.db", "Path to sqlite database file")
	cmd.Flags().BoolVar(&seed, "seed", true, "Store the demo boards when storage is empty")
	return cmd
}

func serve(ctx context.Context, seed bool) error {
	logger.Info("taskboard starting", "storage", cfg.Storage.Driver)

	backend, err := openBackend(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Error("unable to open storage", slog.String("error", err.Error()))
		return err
	}
	defer backend.Close()

	store := kanban.New(backend, logger)
	if seed {
		if _, err := store.Seed(ctx); err != nil {
			return err
		}
	}

	if cfg.Auth.Secret == "" {
		cfg.Auth.Secret = uuid.NewString()
		logger.Warn("TASKBOARD_JWT_SECRET not set, sessions will not survive a restart")
	}
	authSvc, err := auth.NewService(backend, auth.Config{
		Secret: cfg.Auth.Secret,
		TTL:    cfg.Auth.TokenTTL,
		Admins: cfg.Auth.Admins,
	}, logger)
	if err != nil {
		return err
	}

	srv := server.New(store, authSvc, logger, server.Options{
		StaticDir:   cfg.StaticDir,
		CORSOrigins: cfg.CORSOrigins,
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	return runServer(httpServer, quit, logger)
}

// runServer serves until a signal arrives on quit, then shuts down
// gracefully. A listener failure such as a busy port is returned.
func runServer(httpServer *http.Server, quit <-chan os.Signal, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		return fmt.Errorf("listen on %s: %w", httpServer.Addr, err)
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
	return nil
}
