package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func startWatcher(t *testing.T, path string) (*Watcher, <-chan *Config) {
	t.Helper()
	changes := make(chan *Config, 8)
	w, err := NewWatcher(path, func(c *Config) { changes <- c }, nil)
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)
	require.NoError(t, w.Start(context.Background()))
	return w, changes
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	w, changes := startWatcher(t, path)
	defer w.Stop()
	assert.True(t, w.IsWatching())

	cfg := DefaultConfig()
	cfg.Levels.Fatal = true
	cfg.Interactive = true
	require.NoError(t, cfg.Save(path))

	select {
	case got := <-changes:
		assert.True(t, got.Levels.Fatal)
		assert.True(t, got.Interactive)
	case <-time.After(5 * time.Second):
		t.Fatal("config change not delivered")
	}
	assert.GreaterOrEqual(t, w.Stats().Reloads, 1)
}

func TestWatcherKeepsPreviousOnInvalidFile(t *testing.T) {
	defer goleak.VerifyNone(t)
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	w, changes := startWatcher(t, path)
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("executor: gui\n"), 0644))

	require.Eventually(t, func() bool { return w.Stats().Errors > 0 }, 5*time.Second, 10*time.Millisecond)
	assert.Contains(t, w.Stats().LastError, "invalid executor")
	assert.Empty(t, changes)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	w, _ := startWatcher(t, path)
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644))
	time.Sleep(200 * time.Millisecond)

	assert.Zero(t, w.Stats().Events)
}

func TestWatcherStopWithoutStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := NewWatcher(filepath.Join(t.TempDir(), "config.yaml"), nil, nil)
	require.NoError(t, err)
	assert.False(t, w.IsWatching())
	w.Stop()
}
