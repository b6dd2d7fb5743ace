package convert

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/cimrdfs2linkml/config"
)

func startWatcher(t *testing.T, path string) (*Watcher, context.CancelFunc) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	w, err := NewWatcher([]string{path}, 50*time.Millisecond, logger)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give watcher time to set up
	time.Sleep(100 * time.Millisecond)
	return w, cancel
}

func waitEvent(t *testing.T, w *Watcher) ChangeEvent {
	t.Helper()
	select {
	case event, ok := <-w.Events():
		require.True(t, ok, "events channel closed")
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change event")
		return ChangeEvent{}
	}
}

func TestNewWatcher(t *testing.T) {
	_, err := NewWatcher(nil, 0, nil)
	assert.Error(t, err)

	w, err := NewWatcher([]string{"profile.rdf"}, 0, nil)
	require.NoError(t, err)
	defer w.watcher.Close()

	assert.Equal(t, defaultDebounce, w.debounce)
	abs, err := filepath.Abs("profile.rdf")
	require.NoError(t, err)
	assert.Contains(t, w.files, abs)
}

func TestContentHash(t *testing.T) {
	assert.Equal(t, ContentHash([]byte("a")), ContentHash([]byte("a")))
	assert.NotEqual(t, ContentHash([]byte("a")), ContentHash([]byte("b")))
	assert.Len(t, ContentHash(nil), 64)
}

func TestWatcherCreate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "eq.rdf")
	w, _ := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte("<rdf/>"), 0644))

	event := waitEvent(t, w)
	assert.Equal(t, OpCreate, event.Operation)
	assert.Equal(t, path, event.Path)
}

func TestWatcherModify(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "eq.rdf")
	require.NoError(t, os.WriteFile(path, []byte("initial"), 0644))

	w, _ := startWatcher(t, path)
	w.SetHash(path, ContentHash([]byte("initial")))

	require.NoError(t, os.WriteFile(path, []byte("modified"), 0644))

	event := waitEvent(t, w)
	assert.Equal(t, OpModify, event.Operation)

	hash, ok := w.GetHash(path)
	require.True(t, ok)
	assert.Equal(t, ContentHash([]byte("modified")), hash)
}

func TestWatcherDelete(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "eq.rdf")
	require.NoError(t, os.WriteFile(path, []byte("initial"), 0644))

	w, _ := startWatcher(t, path)
	w.SetHash(path, ContentHash([]byte("initial")))

	require.NoError(t, os.Remove(path))

	event := waitEvent(t, w)
	assert.Equal(t, OpDelete, event.Operation)
	_, ok := w.GetHash(path)
	assert.False(t, ok)
}

func TestWatcherIgnoresUnchangedContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "eq.rdf")
	require.NoError(t, os.WriteFile(path, []byte("same"), 0644))

	w, _ := startWatcher(t, path)
	w.SetHash(path, ContentHash([]byte("same")))

	require.NoError(t, os.WriteFile(path, []byte("same"), 0644))

	select {
	case event := <-w.Events():
		t.Errorf("unexpected event for unchanged content: %+v", event)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "eq.rdf")
	w, _ := startWatcher(t, path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "tp.rdf"), []byte("x"), 0644))

	select {
	case event := <-w.Events():
		t.Errorf("unexpected event for unwatched file: %+v", event)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchRegenerates(t *testing.T) {
	fixtureData, err := os.ReadFile(fixture)
	require.NoError(t, err)

	dir := t.TempDir()
	input := filepath.Join(dir, "eq.rdf")
	output := filepath.Join(dir, "eq.yaml")
	require.NoError(t, os.WriteFile(input, fixtureData, 0644))

	cfg := config.DefaultConfig()
	cfg.Watch.Debounce = 50 * time.Millisecond
	c, err := New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- c.Watch(ctx, input, output)
	}()

	require.Eventually(t, func() bool {
		_, err := os.Stat(output)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond, "initial conversion")

	require.NoError(t, os.Remove(output))
	time.Sleep(100 * time.Millisecond)

	// Appending a comment changes the content but not the schema.
	require.NoError(t, os.WriteFile(input, append(fixtureData, []byte("<!-- edit -->\n")...), 0644))

	require.Eventually(t, func() bool {
		_, err := os.Stat(output)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond, "regenerated after change")

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchSurvivesBrokenProfile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "eq.rdf")
	output := filepath.Join(dir, "eq.yaml")
	require.NoError(t, os.WriteFile(input, []byte("<broken"), 0644))

	cfg := config.DefaultConfig()
	cfg.Watch.Debounce = 50 * time.Millisecond
	c, err := New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() {
		errCh <- c.Watch(ctx, input, output)
	}()

	time.Sleep(150 * time.Millisecond)
	assert.NoFileExists(t, output)

	fixtureData, err := os.ReadFile(fixture)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(input, fixtureData, 0644))

	require.Eventually(t, func() bool {
		_, err := os.Stat(output)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond, "converted once the profile is fixed")

	cancel()
	assert.NoError(t, <-errCh)
}
