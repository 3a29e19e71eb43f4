package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dgallion1/outliner/internal/output"
	"github.com/dgallion1/outliner/internal/pipeline"
	"github.com/dgallion1/outliner/internal/watch"
	"github.com/spf13/cobra"
)

var (
	watchDebounce time.Duration
	watchExisting bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Write outlines for documents as they appear in the input directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg, cmd.ErrOrStderr())

		schema, err := output.CompileSchema()
		if err != nil {
			return err
		}
		writer, err := output.NewWriter(cfg.OutputDir, schema)
		if err != nil {
			return err
		}
		worker := pipeline.NewWorker(cfg.Outline(), cfg.DocTimeout, nil, log)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		handle := func(ctx context.Context, path string) {
			data, err := os.ReadFile(path)
			if err != nil {
				log.Error("read failed", "path", path, "error", err)
				return
			}
			o, _ := worker.Outline(ctx, filepath.Base(path), data)
			if _, err := writer.Write(path, o); err != nil {
				log.Error("write failed", "path", path, "error", err)
			}
		}

		if watchExisting {
			paths, err := pipeline.Discover(cfg.InputDir)
			if err != nil {
				return err
			}
			err = pipeline.RunBatch(ctx, worker, paths, cfg.WorkerCount, func(r pipeline.BatchResult) error {
				_, err := writer.Write(r.Path, r.Outline)
				return err
			})
			if err != nil {
				log.Error("initial pass incomplete", "error", err)
			}
		}

		return watch.New(cfg.InputDir, watchDebounce, cfg.WorkerCount, handle, log).Run(ctx)
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "quiet period before a changed file is processed")
	watchCmd.Flags().BoolVar(&watchExisting, "existing", true, "process files already in the input directory first")
	rootCmd.AddCommand(watchCmd)
}
