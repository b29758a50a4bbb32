package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/ngrash/go-zdump/internal/logging"
)

// Loader holds the current configuration and reloads it when the file
// changes.
type Loader struct {
	path string

	mu     sync.RWMutex
	config *Config
}

// NewLoader loads the file at path.
func NewLoader(path string) (*Loader, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Loader{path: path, config: c}, nil
}

// Get returns the current configuration. The result must not be modified.
func (l *Loader) Get() *Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.config
}

func (l *Loader) reload() (*Config, error) {
	c, err := Load(l.path)
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.config = c
	l.mu.Unlock()
	return c, nil
}

// Watch reloads the configuration whenever the file is written or
// replaced, calling onChange with each new configuration. A file that
// fails to load keeps the previous configuration in place. Watch blocks
// until ctx is done.
func (l *Loader) Watch(ctx context.Context, onChange func(*Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watching config: %w", err)
	}
	defer w.Close()

	// Editors often replace the file, so the directory is watched.
	if err := w.Add(filepath.Dir(l.path)); err != nil {
		return fmt.Errorf("watching config: %w", err)
	}
	name := filepath.Clean(l.path)
	log := logging.Logger().With("config", l.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != name || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			c, err := l.reload()
			if err != nil {
				log.Warn("reload failed", "error", err)
				continue
			}
			log.Info("config reloaded")
			if onChange != nil {
				onChange(c)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "error", err)
		}
	}
}
