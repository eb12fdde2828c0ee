package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"shelter-dashboard/internal/platform/logger"
)

// Watcher observa el archivo de config y entrega la config nueva al callback.
// Solo se usa para los ajustes del dashboard; el store no se reabre.
type Watcher struct {
	path     string
	callback func(*Config)
	log      logger.Logger
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	stopCh   chan struct{}
	debounce time.Duration
}

// NewWatcher crea y arranca el watcher.
func NewWatcher(path string, log logger.Logger, callback func(*Config)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	// Se observa el directorio: los editores que guardan con rename
	// reemplazan el archivo y un watch sobre el archivo se pierde.
	path = filepath.Clean(path)
	if _, err := os.Stat(path); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching config file: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching config dir: %w", err)
	}

	if log == nil {
		log = logger.Nop()
	}

	cw := &Watcher{
		path:     path,
		callback: callback,
		log:      log.With(map[string]any{"component": "config"}),
		watcher:  w,
		stopCh:   make(chan struct{}),
		debounce: 500 * time.Millisecond,
	}

	go cw.run()
	return cw, nil
}

func (cw *Watcher) run() {
	// debounce para no recargar varias veces por un mismo guardado
	var timer *time.Timer
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			switch {
			case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(cw.debounce, cw.reload)
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				// en un guardado atómico le sigue un Create
				cw.log.Debug("config file moved or removed", map[string]any{"path": cw.path, "op": event.Op.String()})
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.log.Warn("watcher error", map[string]any{"error": err.Error()})
		case <-cw.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (cw *Watcher) reload() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	cfg, err := Load(cw.path)
	if err != nil {
		cw.log.Error("hot-reload failed", map[string]any{"path": cw.path, "error": err.Error()})
		return
	}

	cw.log.Info("configuration reloaded", map[string]any{"path": cw.path})
	cw.callback(cfg)
}

// Stop detiene el watcher.
func (cw *Watcher) Stop() error {
	close(cw.stopCh)
	return cw.watcher.Close()
}
