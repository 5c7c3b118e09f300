package logtail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Follow calls fn for every entry at or above minLevel written to path past
// offset, until ctx is cancelled. Pass the offset returned by Tail so no line
// is skipped between the two calls. Truncation or replacement of the file
// restarts reading from its beginning.
func Follow(ctx context.Context, path string, offset int64, minLevel slog.Level, fn func(Entry)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory so a log created or rotated later is still seen.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	// Catch up on anything written before the watch was registered.
	offset, err = readFrom(path, offset, minLevel, fn)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			offset, err = readFrom(path, offset, minLevel, fn)
			if err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch log: %w", err)
		}
	}
}

// readFrom delivers the complete lines past offset and returns the offset
// of the first byte not yet delivered. A trailing partial line stays unread.
func readFrom(path string, offset int64, minLevel slog.Level, fn func(Entry)) (int64, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return offset, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return offset, fmt.Errorf("stat log: %w", err)
	}
	if info.Size() < offset {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return offset, fmt.Errorf("seek log: %w", err)
	}

	entries, n, err := scan(file, 0, minLevel, false)
	if err != nil {
		return offset, err
	}
	for _, e := range entries {
		fn(e)
	}
	return offset + n, nil
}
