package convert

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

const (
	// eventChannelBuffer is the size of the change event channel.
	eventChannelBuffer = 64

	defaultDebounce = 500 * time.Millisecond
)

// ChangeOperation indicates the type of change to a watched profile.
type ChangeOperation string

// OpCreate, OpModify, and OpDelete enumerate the profile change types.
const (
	OpCreate ChangeOperation = "create"
	OpModify ChangeOperation = "modify"
	OpDelete ChangeOperation = "delete"
)

// ChangeEvent reports a content change of a watched profile.
type ChangeEvent struct {
	// Path is the absolute profile path.
	Path string

	Operation ChangeOperation
}

// ContentHash returns the hex encoded SHA-256 of content.
func ContentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Watcher watches profile files and emits an event whenever the content of
// one of them changes. Changes are collected for one debounce interval
// before they are reported, and writes that leave the content untouched
// are dropped.
type Watcher struct {
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	// files maps the absolute path of every watched profile to its directory.
	files map[string]string

	// Debouncing: collect changes before processing
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	hashMu sync.RWMutex
	hashes map[string]string

	events chan ChangeEvent

	droppedEvents atomic.Int64
}

// NewWatcher creates a watcher for the profiles at paths. A zero debounce
// uses 500ms.
func NewWatcher(paths []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("no profiles to watch")
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	files := make(map[string]string, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		files[abs] = filepath.Dir(abs)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		debounce: debounce,
		watcher:  fsw,
		logger:   logger,
		files:    files,
		pending:  make(map[string]fsnotify.Op),
		hashes:   make(map[string]string),
		events:   make(chan ChangeEvent, eventChannelBuffer),
	}, nil
}

// Events returns the channel of change events. It is closed when Run returns.
func (w *Watcher) Events() <-chan ChangeEvent {
	return w.events
}

// DroppedEvents returns the number of events dropped because the channel was full.
func (w *Watcher) DroppedEvents() int64 {
	return w.droppedEvents.Load()
}

// SetHash records the content hash of a profile.
func (w *Watcher) SetHash(path, hash string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[path] = hash
}

// GetHash returns the recorded content hash of a profile.
func (w *Watcher) GetHash(path string) (string, bool) {
	w.hashMu.RLock()
	defer w.hashMu.RUnlock()
	hash, ok := w.hashes[path]
	return hash, ok
}

// Run watches the profile directories until ctx is done or the watcher is
// closed. Directories are watched instead of the files so that editors
// replacing a file on save keep being followed.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.events)
	defer w.watcher.Close()

	dirs := make(map[string]bool)
	for _, dir := range w.files {
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.logger.Debug("Watching directory", "path", dir)
	}

	w.logger.Info("Profile watcher started",
		"profiles", len(w.files),
		"debounce", w.debounce)

	w.processEvents(ctx)
	return nil
}

// processEvents handles fsnotify events with debouncing.
func (w *Watcher) processEvents(ctx context.Context) {
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

// handleFSEvent records a change to one of the watched profiles.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := filepath.Clean(event.Name)
	if _, ok := w.files[path]; !ok {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] |= event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Profile change detected",
		"path", path,
		"op", event.Op.String())
}

// flushPending reports the changes collected since the last tick.
func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path, op := range toProcess {
		if ctx.Err() != nil {
			return
		}

		content, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			w.hashMu.Lock()
			delete(w.hashes, path)
			w.hashMu.Unlock()
			w.sendEvent(ChangeEvent{Path: path, Operation: OpDelete})
			continue
		}
		if err != nil {
			w.logger.Warn("Failed to read profile for hash check",
				"path", path,
				"error", err)
			continue
		}

		newHash := ContentHash(content)
		oldHash, hadHash := w.GetHash(path)
		if hadHash && oldHash == newHash {
			continue
		}
		w.SetHash(path, newHash)

		event := ChangeEvent{Path: path, Operation: OpModify}
		if op.Has(fsnotify.Create) || !hadHash {
			event.Operation = OpCreate
		}
		w.sendEvent(event)
	}
}

// sendEvent sends an event to the output channel without blocking.
func (w *Watcher) sendEvent(event ChangeEvent) {
	select {
	case w.events <- event:
		w.logger.Debug("Sent change event",
			"path", event.Path,
			"op", event.Operation)
	default:
		dropped := w.droppedEvents.Add(1)
		w.logger.Warn("Change event channel full, dropping event",
			"path", event.Path,
			"dropped_total", dropped)
	}
}

// Watch converts input into output, then converts again every time the
// content of input changes, until ctx is done. Failed conversions are
// logged and watching continues. An empty output uses the configured default.
func (c *Converter) Watch(ctx context.Context, input, output string) error {
	if output == "" {
		output = c.cfg.Convert.Output
	}

	w, err := NewWatcher([]string{input}, c.cfg.Watch.Debounce, c.logger)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	return c.watch(ctx, w, input, output)
}

func (c *Converter) watch(ctx context.Context, w *Watcher, input, output string) error {
	abs, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", input, err)
	}
	if content, err := os.ReadFile(abs); err == nil {
		w.SetHash(abs, ContentHash(content))
	}
	if _, err := c.Convert(ctx, input, output); err != nil {
		c.logger.Error("Conversion failed", "input", input, "error", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.Run(gctx)
	})
	g.Go(func() error {
		for event := range w.Events() {
			if event.Operation == OpDelete {
				c.logger.Warn("Profile removed, waiting for it to reappear", "input", input)
				continue
			}
			if gctx.Err() != nil {
				continue
			}
			if _, err := c.Convert(gctx, input, output); err != nil {
				c.logger.Error("Conversion failed", "input", input, "error", err)
			}
		}
		return nil
	})
	return g.Wait()
}
