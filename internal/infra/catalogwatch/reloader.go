package catalogwatch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/TeddyJubu/unified-mcp/internal/domain"
	"github.com/TeddyJubu/unified-mcp/internal/ports"
)

const defaultDebounce = 250 * time.Millisecond

// Reloader keeps the current endpoint catalog behind an atomic pointer and
// swaps it when the config file changes.
type Reloader struct {
	path     string
	source   ports.EndpointSource
	log      *slog.Logger
	debounce time.Duration

	current   atomic.Pointer[domain.Catalog]
	mu        sync.Mutex // serializes reload
	listeners []func(domain.Catalog)
}

type Option func(*Reloader)

func WithLogger(l *slog.Logger) Option {
	return func(r *Reloader) {
		if l != nil {
			r.log = l
		}
	}
}

func WithDebounce(d time.Duration) Option {
	return func(r *Reloader) {
		if d > 0 {
			r.debounce = d
		}
	}
}

// New creates a Reloader starting from an empty catalog. Call Reload to
// perform the initial load.
func New(path string, source ports.EndpointSource, opts ...Option) *Reloader {
	r := &Reloader{
		path:     filepath.Clean(path),
		source:   source,
		log:      slog.Default(),
		debounce: defaultDebounce,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.current.Store(&domain.Catalog{Source: r.path})
	return r
}

// Current returns the current catalog (lock-free atomic read).
func (r *Reloader) Current() domain.Catalog {
	return *r.current.Load()
}

// OnReload registers a callback invoked after each successful reload.
func (r *Reloader) OnReload(fn func(domain.Catalog)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Reload re-reads the config. A missing file yields an empty catalog. Any
// other failure leaves the current catalog in place and is returned.
func (r *Reloader) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cat, err := r.source.LoadCatalog(r.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		r.log.Warn("catalog.missing", "path", r.path)
		cat = domain.Catalog{Source: r.path}
	}

	r.current.Store(&cat)
	r.log.Info("catalog.reloaded", "path", r.path, "endpoints", len(cat.Endpoints))

	for _, fn := range r.listeners {
		fn(cat)
	}
	return nil
}

// Watch reloads the catalog whenever the config file is written, created,
// renamed or removed, until ctx is done. The parent directory is watched so
// editors that replace the file on save are picked up.
func (r *Reloader) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(r.path)
	if err := w.Add(dir); err != nil {
		return &domain.OpError{Op: "catalogwatch.watch", Kind: domain.KindNotFound, Path: dir, Err: err}
	}
	r.log.Info("catalog.watching", "path", r.path)

	timer := time.NewTimer(r.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != r.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			r.log.Debug("catalog.event", "op", ev.Op.String())
			timer.Reset(r.debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			r.log.Warn("catalog.watch_error", "error", err)

		case <-timer.C:
			if err := r.Reload(); err != nil {
				r.log.Warn("catalog.reload_failed", "path", r.path, "error", err)
			}
		}
	}
}
