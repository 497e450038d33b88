package engine

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/annotate/internal/config"
	"github.com/dshills/annotate/internal/logging"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// replaceFile swaps path's content in one rename, as editors do.
func replaceFile(t *testing.T, path, content string) {
	t.Helper()
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(content), 0o644))
	require.NoError(t, os.Rename(tmp, path))
}

func TestWatchConfig_AppliesReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annotate.toml")
	require.NoError(t, os.WriteFile(path, []byte("[history]\nmax_entries = 50\n"), 0o644))
	cfg, err := config.LoadAll(path)
	require.NoError(t, err)

	var buf syncBuffer
	e := New(WithConfig(cfg), WithLogger(logging.New(&buf, "debug", logging.FormatText)))
	require.Equal(t, 50, e.History().MaxEntries())

	w, err := e.WatchConfig(path)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	replaceFile(t, path, "[history]\nmax_entries = 3\nmerge_enabled = false\n")
	require.Eventually(t, func() bool {
		return e.History().MaxEntries() == 3
	}, 5*time.Second, 20*time.Millisecond)

	replaceFile(t, path, "[history]\nmax_entries = -1\n")
	require.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "config reload failed")
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, 3, e.History().MaxEntries())
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestWatchConfig_MissingDirectory(t *testing.T) {
	e := New()
	_, err := e.WatchConfig(filepath.Join(t.TempDir(), "missing", "annotate.toml"))
	assert.Error(t, err)
}
