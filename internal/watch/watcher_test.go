package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_Relevant(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "data.csv")
	other := filepath.Join(dir, "other.csv")
	require.NoError(t, os.WriteFile(watched, []byte("country\n"), 0o644))

	w, err := New([]string{watched})
	require.NoError(t, err)
	defer w.Close()

	tests := []struct {
		name     string
		path     string
		op       fsnotify.Op
		expected bool
	}{
		{"write to watched file", watched, fsnotify.Write, true},
		{"create watched file", watched, fsnotify.Create, true},
		{"rename watched file", watched, fsnotify.Rename, true},
		{"remove watched file", watched, fsnotify.Remove, true},
		{"write and chmod", watched, fsnotify.Write | fsnotify.Chmod, true},
		{"chmod only", watched, fsnotify.Chmod, false},
		{"write to sibling", other, fsnotify.Write, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := fsnotify.Event{Name: tt.path, Op: tt.op}
			assert.Equal(t, tt.expected, w.relevant(event))
		})
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "nope", "data.csv")})

	assert.Error(t, err)
}

func TestWatcher_Run_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("country\n"), 0o644))

	w, err := New([]string{path}, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) { calls.Add(1) })
	}()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("country\nChile\n"), 0o644))
	}

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
