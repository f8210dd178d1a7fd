package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_CallsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tailwind.config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("darkMode: false\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ready := make(chan struct{})
	changed := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, Config{Path: path, Debounce: 100 * time.Millisecond, Ready: ready}, func() {
			changed <- struct{}{}
		})
	}()

	<-ready

	// A burst of writes settles into one callback
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("darkMode: class\n"), 0o644))
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("onChange was not called")
	}

	select {
	case <-changed:
		t.Fatal("burst produced more than one callback")
	case <-time.After(400 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tailwind.config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ready := make(chan struct{})
	changed := make(chan struct{}, 1)
	go func() {
		_ = Run(ctx, Config{Path: path, Debounce: 10 * time.Millisecond, Ready: ready}, func() {
			changed <- struct{}{}
		})
	}()
	<-ready

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x\n"), 0o644))

	select {
	case <-changed:
		t.Fatal("change to a sibling file triggered onChange")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	ctx := context.Background()

	require.Error(t, Run(ctx, Config{}, func() {}))
	require.Error(t, Run(ctx, Config{Path: "x.yaml"}, nil))
	require.Error(t, Run(ctx, Config{Path: filepath.Join(t.TempDir(), "missing", "x.yaml")}, func() {}))
}
