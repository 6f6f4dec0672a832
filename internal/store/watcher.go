package store

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// fileWatcher watches a single reminder file and invokes onChange after a
// short debounce, since editors and sync tools fire bursts of write events.
type fileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func(string)
	mu       sync.Mutex
	pending  *time.Timer
	done     chan struct{}
}

func newFileWatcher(path string, onChange func(string)) (*fileWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &fileWatcher{
		watcher:  watcher,
		path:     absPath,
		onChange: onChange,
		done:     make(chan struct{}),
	}

	// Watch the directory rather than the file itself: atomic saves
	// (write temp + rename) would otherwise drop the watch.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, err
	}

	go fw.watch()
	return fw, nil
}

func (fw *fileWatcher) watch() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if event.Name != fw.path {
				continue
			}

			fw.mu.Lock()
			if fw.pending != nil {
				fw.pending.Stop()
			}
			fw.pending = time.AfterFunc(100*time.Millisecond, func() {
				if fw.onChange != nil {
					fw.onChange(fw.path)
				}
			})
			fw.mu.Unlock()

		case _, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			// Keep watching; a transient error must not kill the display.

		case <-fw.done:
			return
		}
	}
}

func (fw *fileWatcher) Close() error {
	close(fw.done)
	fw.mu.Lock()
	if fw.pending != nil {
		fw.pending.Stop()
	}
	fw.mu.Unlock()
	return fw.watcher.Close()
}
