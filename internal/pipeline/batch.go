package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/dgallion1/outliner/internal/outline"
	"github.com/dgallion1/outliner/internal/parser"
)

// BatchResult is the outcome for one file of a batch.
type BatchResult struct {
	Path     string
	Outline  outline.Outline
	Report   outline.Report
	Duration time.Duration
}

// Discover lists the supported files directly inside dir, sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !parser.IsSupportedExtension(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// RunBatch processes paths on up to workers goroutines. emit is called
// once per file, from a single goroutine, in completion order. A file that
// cannot be read or decoded yields a fallback outline, never an error;
// the returned error joins the errors emit reported.
func RunBatch(ctx context.Context, w *Worker, paths []string, workers int, emit func(BatchResult) error) error {
	if workers <= 0 {
		workers = 1
	}
	in := make(chan string)
	out := make(chan BatchResult)

	var wg sync.WaitGroup
	for range min(workers, max(len(paths), 1)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range in {
				out <- w.file(ctx, path)
			}
		}()
	}
	go func() {
		defer close(in)
		for _, p := range paths {
			select {
			case in <- p:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(out)
	}()

	var errs []error
	for r := range out {
		if err := emit(r); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Path, err))
		}
	}
	if err := ctx.Err(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (w *Worker) file(ctx context.Context, path string) BatchResult {
	start := time.Now()
	name := filepath.Base(path)
	data, err := os.ReadFile(path)
	if err != nil {
		w.log.Error("read failed", "filename", name, "error", err)
		return BatchResult{Path: path, Outline: outline.Fallback(err), Duration: time.Since(start)}
	}
	o, rep := w.outline(ctx, w.log.With("filename", name), name, data, func(JobStatus, string) {})
	return BatchResult{Path: path, Outline: o, Report: rep, Duration: time.Since(start)}
}
