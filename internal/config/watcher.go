package config

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ChangeHandler receives the reloaded configuration, or the error that
// prevented it from loading. The previous configuration stays in effect on
// error.
type ChangeHandler func(cfg *Config, err error)

// Watcher reloads a config file whenever it changes on disk.
type Watcher struct {
	watcher  *fsnotify.Watcher
	filePath string
	onChange ChangeHandler
	logger   *slog.Logger
	done     chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
}

// NewWatcher creates a watcher for the config file at path.
func NewWatcher(path string, onChange ChangeHandler, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:  watcher,
		filePath: path,
		onChange: onChange,
		logger:   logger,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching the file for changes.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	// Watch the directory, editors replace files on save
	dir := filepath.Dir(w.filePath)
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.running = true

	w.wg.Add(1)
	go w.watch()
	return nil
}

func (w *Watcher) watch() {
	defer w.wg.Done()
	filename := filepath.Base(w.filePath)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.logger.Debug("config file changed, reloading", "file", w.filePath)
				cfg, err := LoadConfig(w.filePath)
				if err != nil {
					w.logger.Warn("failed to reload config", "file", w.filePath, "error", err)
				}
				if w.onChange != nil {
					w.onChange(cfg, err)
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)

		case <-w.done:
			return
		}
	}
}

// Stop stops the watcher and waits for the watch loop to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return w.watcher.Close()
	}

	w.running = false
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
