package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/dgallion1/outliner/internal/output"
	"github.com/dgallion1/outliner/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	extractInput   string
	extractOutput  string
	extractWorkers int
)

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Write an outline for every document in the input directory",
	Long: `Process every supported document in the input directory (or the files given
as arguments) and write <name>.json to the output directory. A document that
cannot be processed still gets a result file carrying an "error" field.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if extractInput != "" {
			cfg.InputDir = extractInput
		}
		if extractOutput != "" {
			cfg.OutputDir = extractOutput
		}
		if extractWorkers > 0 {
			cfg.WorkerCount = extractWorkers
		}
		log := newLogger(cfg, cmd.ErrOrStderr())

		paths := args
		if len(paths) == 0 {
			paths, err = pipeline.Discover(cfg.InputDir)
			if err != nil {
				return err
			}
		}
		if len(paths) == 0 {
			log.Warn("no supported documents found", "dir", cfg.InputDir)
			return nil
		}

		schema, err := output.CompileSchema()
		if err != nil {
			return err
		}
		writer, err := output.NewWriter(cfg.OutputDir, schema)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		worker := pipeline.NewWorker(cfg.Outline(), cfg.DocTimeout, nil, log)
		summary := output.NewSummary()
		out := cmd.OutOrStdout()
		err = pipeline.RunBatch(ctx, worker, paths, cfg.WorkerCount, func(r pipeline.BatchResult) error {
			if _, err := writer.Write(r.Path, r.Outline); err != nil {
				return err
			}
			summary.Add(out, output.Entry{Input: r.Path, Outline: r.Outline, Duration: r.Duration})
			return nil
		})
		summary.Render(out)
		if err != nil {
			return fmt.Errorf("batch incomplete: %w", err)
		}
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractInput, "input", "i", "", "input directory (overrides input_dir)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output directory (overrides output_dir)")
	extractCmd.Flags().IntVarP(&extractWorkers, "workers", "w", 0, "parallel workers (overrides worker_count)")
	rootCmd.AddCommand(extractCmd)
}
