// Package watch processes documents as they land in a directory.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dgallion1/outliner/internal/parser"
	"github.com/fsnotify/fsnotify"
)

// Handler is called once per settled file.
type Handler func(ctx context.Context, path string)

// Watcher waits until a supported file has stopped changing for the
// debounce interval, then hands it to the handler.
type Watcher struct {
	dir      string
	debounce time.Duration
	workers  int
	handle   Handler
	log      *slog.Logger
}

func New(dir string, debounce time.Duration, workers int, handle Handler, log *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	if workers <= 0 {
		workers = 1
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		workers:  workers,
		handle:   handle,
		log:      log,
	}
}

// Run blocks until ctx is cancelled. Handlers still running are waited
// for before it returns.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()
	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.log.Info("watching", "dir", w.dir)

	var (
		wg      sync.WaitGroup
		sem     = make(chan struct{}, w.workers)
		ready   = make(chan string)
		pending = make(map[string]*time.Timer)
	)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !w.accept(ev.Name) {
				continue
			}
			if t, ok := pending[ev.Name]; ok {
				t.Reset(w.debounce)
				continue
			}
			path := ev.Name
			pending[path] = time.AfterFunc(w.debounce, func() {
				select {
				case ready <- path:
				case <-ctx.Done():
				}
			})

		case path := <-ready:
			delete(pending, path)
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return nil
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer func() { <-sem }()
				w.handle(ctx, path)
			}()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) accept(path string) bool {
	name := filepath.Base(path)
	return !strings.HasPrefix(name, ".") && parser.IsSupportedExtension(name)
}
