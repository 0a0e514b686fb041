package ignore

import (
	"path/filepath"

	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the pattern set whenever the pattern file is created,
// modified or deleted. The workspace root directory is watched rather than
// the file itself so that creation and deletion are observed too.
type Watcher struct {
	loader   *Loader
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	onChange func()
	done     chan struct{}
}

// NewWatcher creates and starts a watcher for the loader's pattern file.
// onChange, when non-nil, runs after each reload.
func NewWatcher(loader *Loader, onChange func(), logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := fsw.Add(loader.matcher.Root()); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		loader:   loader,
		watcher:  fsw,
		logger:   logger,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	target := w.loader.FilePath()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.logger.Debug("Ignore file changed, reloading", "op", event.Op.String())
				w.loader.Reload()
				if w.onChange != nil {
					w.onChange()
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Debug("Ignore watcher error", "error", err)
		}
	}
}

// Close stops watching and releases resources
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
