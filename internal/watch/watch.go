// Package watch re-runs a callback when a single file changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the event bursts editors produce on save
const DefaultDebounce = 150 * time.Millisecond

// Config holds watcher configuration
type Config struct {
	Path     string          // File to watch
	Debounce time.Duration   // 0 = DefaultDebounce
	Log      io.Writer       // Watcher diagnostics, nil to discard
	Ready    chan<- struct{} // Closed once the watch is installed
}

// Run calls onChange after every settled change to the file until ctx is done.
// The parent directory is watched so atomic replacements (rename over the file)
// are seen as well as in-place writes.
func Run(ctx context.Context, config Config, onChange func()) error {
	if config.Path == "" {
		return errors.New("watch: empty path")
	}
	if onChange == nil {
		return errors.New("watch: nil callback")
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}

	target, err := filepath.Abs(config.Path)
	if err != nil {
		return fmt.Errorf("watch: resolve %s: %w", config.Path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch: add %s: %w", filepath.Dir(target), err)
	}
	if config.Ready != nil {
		close(config.Ready)
	}

	logf := func(format string, args ...any) {
		if config.Log != nil {
			fmt.Fprintf(config.Log, format, args...)
		}
	}

	// Stopped timer; armed on the first relevant event
	debounce := time.NewTimer(config.Debounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			debounce.Stop()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			debounce.Reset(config.Debounce)

		case <-debounce.C:
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logf("watch: %v\n", err)
		}
	}
}
