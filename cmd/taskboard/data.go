package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"taskboard/internal/config"
	"taskboard/internal/kanban"
	"taskboard/internal/models"
)

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Store the demo boards if storage holds none",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), cfg.Storage, func(store *kanban.Store) error {
				written, err := store.Seed(cmd.Context())
				if err != nil {
					return err
				}
				if written {
					cmd.Println("demo boards stored")
				} else {
					cmd.Println("boards already present, nothing to do")
				}
				return nil
			})
		},
	}
}

func newExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print every board as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			return withStore(cmd.Context(), cfg.Storage, func(store *kanban.Store) error {
				return exportBoards(cmd.Context(), store, w)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "-", "File to write, - for stdout")
	return cmd
}

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace every board with the JSON export in FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			return withStore(cmd.Context(), cfg.Storage, func(store *kanban.Store) error {
				n, err := importBoards(cmd.Context(), store, f)
				if err != nil {
					return err
				}
				cmd.Printf("imported %d boards\n", n)
				return nil
			})
		},
	}
}

func withStore(ctx context.Context, sc config.StorageConfig, fn func(*kanban.Store) error) error {
	backend, err := openBackend(ctx, sc, logger)
	if err != nil {
		return err
	}
	defer backend.Close()
	return fn(kanban.New(backend, logger))
}

func exportBoards(ctx context.Context, store *kanban.Store, w io.Writer) error {
	boards, err := store.Load(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(boards)
}

func importBoards(ctx context.Context, store *kanban.Store, r io.Reader) (int, error) {
	var boards []models.Board
	if err := json.NewDecoder(r).Decode(&boards); err != nil {
		return 0, fmt.Errorf("decode boards: %w", err)
	}
	if err := store.Save(ctx, boards); err != nil {
		return 0, err
	}
	return len(boards), nil
}
