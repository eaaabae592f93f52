// Package watcher reports changes to character record files made by any
// process, including other instances of the store.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/KirkDiggler/rpg-sheet-store/internal/errors"
	"github.com/KirkDiggler/rpg-sheet-store/internal/pkg/clock"
	characterrepo "github.com/KirkDiggler/rpg-sheet-store/internal/repositories/character"
)

// DefaultDebounce collapses bursts of events on one file into one change
const DefaultDebounce = 250 * time.Millisecond

// Op is what happened to a record
type Op string

// Change operations
const (
	OpSaved   Op = "saved"
	OpDeleted Op = "deleted"
)

// Change is one settled change to a record file
type Change struct {
	Op   Op
	ID   string
	Path string
}

// Config configures a Watcher
type Config struct {
	// Dir is the storage directory; it is created if missing
	Dir string
	// Debounce defaults to DefaultDebounce
	Debounce time.Duration
	// Clock defaults to the real clock
	Clock clock.Clock
}

// Validate ensures the config is usable
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Dir", c.Dir, vb)
	if c.Debounce < 0 {
		vb.InvalidField("Debounce", "must not be negative")
	}
	return vb.Build()
}

type pending struct {
	op Op
	at time.Time
}

// Watcher emits a Change for every record file that settles after being
// written or removed.
type Watcher struct {
	dir      string
	debounce time.Duration
	clock    clock.Clock

	mu      sync.Mutex
	pending map[string]pending
	running bool
	stopped bool
	fsw     *fsnotify.Watcher
	changes chan Change
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a Watcher; call Start to begin watching
func New(cfg *Config) (*Watcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	debounce := cfg.Debounce
	if debounce == 0 {
		debounce = DefaultDebounce
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &Watcher{
		dir:      cfg.Dir,
		debounce: debounce,
		clock:    clk,
		pending:  make(map[string]pending),
		changes:  make(chan Change, 64),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Changes delivers settled changes; it is closed once the watcher stops
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start begins watching in the background. It returns once the directory
// is being watched.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return errors.FailedPrecondition("watcher has been stopped and cannot be restarted")
	}
	if w.running {
		return nil
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return errors.DirectoryAccess(err, "create directory", w.dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	if err := fsw.Add(w.dir); err != nil {
		_ = fsw.Close()
		return errors.DirectoryAccess(err, "watch directory", w.dir)
	}

	w.fsw = fsw
	w.running = true

	slog.InfoContext(ctx, "watching storage directory",
		"dir", w.dir,
		"debounce", w.debounce)

	go w.run(ctx, fsw)

	return nil
}

// Stop ends watching and waits for the background goroutine to exit.
// It must be called even after the Start context is cancelled.
// A stopped Watcher cannot be restarted.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.stopped = true
		w.mu.Unlock()
		return
	}
	w.running = false
	w.stopped = true
	fsw := w.fsw
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := fsw.Close(); err != nil {
		slog.Error("failed to close file watcher", "error", err)
	}
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher) {
	defer close(w.doneCh)
	defer close(w.changes)

	tick := w.debounce / 4
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			slog.WarnContext(ctx, "file watcher error", "dir", w.dir, "error", err)
		case <-ticker.C:
			for _, change := range w.settled() {
				if !w.emit(ctx, change) {
					return
				}
			}
		}
	}
}

// handleEvent records the latest operation seen for a record file
func (w *Watcher) handleEvent(event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if _, ok := characterrepo.IDFromFileName(name); !ok {
		return
	}

	var op Op
	switch {
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		op = OpSaved
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		op = OpDeleted
	default:
		return
	}

	w.mu.Lock()
	w.pending[event.Name] = pending{op: op, at: w.clock.Now()}
	w.mu.Unlock()
}

// settled removes and returns the changes quiet for at least the debounce
// window, ordered by path.
func (w *Watcher) settled() []Change {
	now := w.clock.Now()

	w.mu.Lock()
	defer w.mu.Unlock()

	var out []Change
	for path, p := range w.pending {
		if now.Sub(p.at) < w.debounce {
			continue
		}
		id, _ := characterrepo.IDFromFileName(filepath.Base(path))
		out = append(out, Change{Op: p.op, ID: id, Path: path})
		delete(w.pending, path)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func (w *Watcher) emit(ctx context.Context, change Change) bool {
	select {
	case w.changes <- change:
		slog.DebugContext(ctx, "record changed",
			"op", string(change.Op),
			"character_id", change.ID,
			"path", change.Path)
		return true
	case <-ctx.Done():
		return false
	case <-w.stopCh:
		return false
	}
}
