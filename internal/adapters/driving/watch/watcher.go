// Package watch keeps a directory in sync with the document index:
// eligible files are ingested on startup and re-ingested when they
// change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/formfill-labs/formfill-cli/internal/core/domain"
	"github.com/formfill-labs/formfill-cli/internal/core/ports/driving"
	"github.com/formfill-labs/formfill-cli/internal/logger"
)

const (
	// DefaultWorkers bounds concurrent ingestions during the initial scan.
	DefaultWorkers = 4

	// DefaultEventsPerSecond throttles re-ingestion under editor save
	// storms. Bursts up to DefaultBurst are absorbed.
	DefaultEventsPerSecond = 5
	DefaultBurst           = 10
)

// defaultExtensions are the file types treated as ingestable text.
var defaultExtensions = []string{".txt", ".md", ".text"}

// Watcher mirrors a directory tree into the index.
type Watcher struct {
	ingest  driving.IngestService
	dir     string
	exts    map[string]struct{}
	workers int
	limiter *rate.Limiter
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithExtensions overrides the ingestable file extensions.
func WithExtensions(exts ...string) Option {
	return func(w *Watcher) {
		w.exts = make(map[string]struct{}, len(exts))
		for _, e := range exts {
			w.exts[strings.ToLower(e)] = struct{}{}
		}
	}
}

// WithWorkers overrides the initial-scan concurrency.
func WithWorkers(n int) Option {
	return func(w *Watcher) {
		if n > 0 {
			w.workers = n
		}
	}
}

// WithRateLimit overrides the event throttle.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(w *Watcher) {
		w.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// New creates a watcher for dir.
func New(ingest driving.IngestService, dir string, opts ...Option) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch %s: %w", dir, domain.ErrInvalidInput)
	}

	w := &Watcher{
		ingest:  ingest,
		dir:     dir,
		workers: DefaultWorkers,
		limiter: rate.NewLimiter(rate.Limit(DefaultEventsPerSecond), DefaultBurst),
	}
	WithExtensions(defaultExtensions...)(w)
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run scans the directory, then watches for changes until the context
// is cancelled. Cancellation is a clean shutdown, not an error.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Scan(ctx); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := w.addRecursive(fsw, w.dir); err != nil {
		return err
	}
	logger.Info("Watching %s", w.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if err := w.handleEvent(ctx, fsw, event); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				logger.Warn("Event %s: %v", event, err)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// Scan ingests every eligible file under the directory, bounded by the
// worker count. Individual file failures are logged, not fatal.
func (w *Watcher) Scan(ctx context.Context) error {
	logger.Section("Directory Scan")

	var paths []string
	err := filepath.WalkDir(w.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && w.eligible(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan %s: %w", w.dir, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.workers)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := w.ingestFile(ctx, path); err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				logger.Warn("Scan: %s: %v", path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("Scanned %d files under %s", len(paths), w.dir)
	return nil
}

func (w *Watcher) handleEvent(ctx context.Context, fsw *fsnotify.Watcher, event fsnotify.Event) error {
	switch {
	case event.Op.Has(fsnotify.Create):
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			return w.addRecursive(fsw, event.Name)
		}
		fallthrough
	case event.Op.Has(fsnotify.Write):
		if !w.eligible(event.Name) {
			return nil
		}
		if err := w.limiter.Wait(ctx); err != nil {
			return err
		}
		return w.ingestFile(ctx, event.Name)
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		if !w.eligible(event.Name) {
			return nil
		}
		return w.removeByPath(ctx, event.Name)
	}
	return nil
}

func (w *Watcher) ingestFile(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	result, err := w.ingest.Ingest(ctx, driving.IngestRequest{
		Name:    filepath.Base(path),
		Path:    abs,
		Content: string(content),
	})
	if err != nil {
		return err
	}

	if result.Replaced {
		logger.Info("Re-ingested %s (%d chunks)", result.Document.Name, result.ChunkCount)
	} else {
		logger.Info("Ingested %s (%d chunks)", result.Document.Name, result.ChunkCount)
	}
	return nil
}

// removeByPath drops the document whose stored path matches a deleted
// file. A path with no matching document is not an error.
func (w *Watcher) removeByPath(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	docs, err := w.ingest.List(ctx)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	for _, doc := range docs {
		if doc.Path == abs {
			logger.Info("Removing %s (file deleted)", doc.Name)
			return w.ingest.Remove(ctx, doc.ID)
		}
	}
	return nil
}

func (w *Watcher) addRecursive(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := fsw.Add(path); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
		}
		return nil
	})
}

func (w *Watcher) eligible(path string) bool {
	_, ok := w.exts[strings.ToLower(filepath.Ext(path))]
	return ok
}
