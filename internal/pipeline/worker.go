package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/outliner/internal/outline"
	"github.com/dgallion1/outliner/internal/parser"
)

// Worker decodes and classifies documents. It holds no per-document
// state, so one Worker may serve many goroutines.
type Worker struct {
	log     *slog.Logger
	cfg     outline.Config
	timeout time.Duration
	stats   *Stats
}

func NewWorker(cfg outline.Config, timeout time.Duration, stats *Stats, log *slog.Logger) *Worker {
	return &Worker{
		log:     log,
		cfg:     cfg,
		timeout: timeout,
		stats:   stats,
	}
}

// Process runs the outline pipeline for a queued job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	o, rep := w.outline(ctx, log, job.Filename, job.FileData(), job.SetStatus)
	job.Finish(o, rep)
}

// Outline processes one document synchronously. Failures never surface as
// errors: they produce the fallback outline carrying the cause.
func (w *Worker) Outline(ctx context.Context, filename string, data []byte) (outline.Outline, outline.Report) {
	log := w.log.With("filename", filename)
	return w.outline(ctx, log, filename, data, func(JobStatus, string) {})
}

type outcome struct {
	outline outline.Outline
	report  outline.Report
	err     error
}

func (w *Worker) outline(ctx context.Context, log *slog.Logger, filename string, data []byte, phase func(JobStatus, string)) (outline.Outline, outline.Report) {
	start := time.Now()
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	// The core is synchronous; the deadline is enforced around it.
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if v := recover(); v != nil {
				done <- outcome{err: fmt.Errorf("panic while processing: %v", v)}
			}
		}()
		phase(StatusDecoding, "decoding")
		doc, err := decode(filename, data)
		if err != nil {
			done <- outcome{err: err}
			return
		}
		if ctx.Err() != nil {
			return
		}
		phase(StatusClassifying, "classifying")
		o, rep, err := outline.Process(*doc, w.cfg)
		done <- outcome{outline: o, report: rep, err: err}
	}()

	var res outcome
	select {
	case res = <-done:
	case <-ctx.Done():
		res = outcome{err: fmt.Errorf("processing %s: %w", filename, ctx.Err())}
	}
	elapsed := time.Since(start)

	if res.err != nil {
		var malformed *outline.MalformedInputError
		if errors.As(res.err, &malformed) {
			log.Warn("malformed input", "span", malformed.SpanIndex, "reason", malformed.Reason)
		} else {
			log.Error("outline failed", "error", res.err)
		}
		w.record(elapsed, true)
		return outline.Fallback(res.err), res.report
	}

	for _, warning := range res.report.Warnings {
		if warning.Kind == outline.NoHeadingsFound {
			log.Info("no headings found")
			continue
		}
		log.Warn("degraded result", "kind", warning.Kind, "detail", warning.Message)
	}
	log.Info("outline complete",
		"headings", len(res.outline.Headings),
		"levels", res.report.Levels,
		"lines", res.report.Lines,
		"body_size", res.report.Profile.BodySize,
		"duration_ms", elapsed.Milliseconds(),
	)
	w.record(elapsed, false)
	return res.outline, res.report
}

func (w *Worker) record(d time.Duration, failed bool) {
	if w.stats != nil {
		w.stats.Record(d.Milliseconds(), failed)
	}
}

func decode(filename string, data []byte) (*outline.Document, error) {
	p, err := parser.ForFile(filename)
	if err != nil {
		return nil, err
	}
	doc, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}
	return doc, nil
}
