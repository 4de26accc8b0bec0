package ingest

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchConfig configures an intake-directory watcher
type WatchConfig struct {
	// Root is the intake directory, watched recursively
	Root string
	// Extensions is the accepted extension set (lower-cased, with dot)
	Extensions []string
	// InitialScan emits documents already present under Root
	InitialScan bool
	// Debounce coalesces rapid write/rename bursts for one file
	Debounce time.Duration
}

// Watch watches an intake directory and emits paths of claim documents as
// they arrive. The paths channel closes when ctx is cancelled.
func Watch(ctx context.Context, cfg WatchConfig) (<-chan string, <-chan error, error) {
	if cfg.Root == "" {
		return nil, nil, errors.New("no intake directory provided")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}

	exts := make(map[string]struct{}, len(cfg.Extensions))
	for _, e := range cfg.Extensions {
		exts[strings.ToLower(e)] = struct{}{}
	}

	paths := make(chan string, 256)
	errs := make(chan error, 1)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	// Register the root and any existing subdirectories
	err = filepath.WalkDir(cfg.Root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		if cfg.InitialScan && accepted(path, exts) {
			select {
			case paths <- path:
			default:
			}
		}
		return nil
	})
	if err != nil {
		_ = watcher.Close()
		return nil, nil, err
	}

	go func() {
		defer close(paths)
		defer close(errs)
		defer func() { _ = watcher.Close() }()

		pending := make(map[string]struct{})
		var timer *time.Timer
		var timerC <-chan time.Time

		flush := func() {
			for p := range pending {
				select {
				case paths <- p:
				case <-ctx.Done():
					return
				}
				delete(pending, p)
			}
			timerC = nil
		}

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op.Has(fsnotify.Create) {
					// New subdirectory: start watching it too
					if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
						_ = watcher.Add(event.Name)
						continue
					}
				}
				if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Rename) {
					continue
				}
				if !accepted(event.Name, exts) {
					continue
				}
				pending[event.Name] = struct{}{}
				if timer == nil {
					timer = time.NewTimer(cfg.Debounce)
				} else {
					timer.Reset(cfg.Debounce)
				}
				timerC = timer.C

			case <-timerC:
				flush()

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				select {
				case errs <- err:
				default:
				}
			}
		}
	}()

	return paths, errs, nil
}

func accepted(path string, exts map[string]struct{}) bool {
	_, ok := exts[strings.ToLower(filepath.Ext(path))]
	return ok
}
