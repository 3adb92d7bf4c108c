package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"taskboard/internal/config"
)

var (
	configFile string
	cfg        config.Config
	logger     *slog.Logger
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "taskboard",
		Short: "Kanban boards with drag and drop, filters and comments",
		Long: `taskboard serves a kanban board API backed by a key-value store.

Boards, columns, tasks and comments live in SQLite, PostgreSQL or memory.
Settings come from an optional YAML file, a .env file and TASKBOARD_*
environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configFile)
			if err != nil {
				return err
			}
			level, _ := cfg.Level()
			logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file")

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newSeedCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newImportCommand())

	return rootCmd
}
