package curtain

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const defaultReloadDebounce = 100 * time.Millisecond

// ConfigWatcher reloads a config file when it changes on disk. Reloaded
// configs are delivered on Updates; drain it from the update loop and pass
// the values to Orchestrator.ApplyConfig, which is not safe to call from
// other goroutines.
type ConfigWatcher struct {
	path     string
	debounce time.Duration
	log      zerolog.Logger
	updates  chan Config

	mu    sync.Mutex
	timer *time.Timer
}

// NewConfigWatcher returns a watcher for the config file at path.
func NewConfigWatcher(path string, log zerolog.Logger) *ConfigWatcher {
	return &ConfigWatcher{
		path:     path,
		debounce: defaultReloadDebounce,
		log:      log,
		updates:  make(chan Config, 1),
	}
}

// Updates delivers each successfully reloaded config. Only the newest
// unread config is kept.
func (w *ConfigWatcher) Updates() <-chan Config {
	return w.updates
}

// Run watches the file's directory until ctx is done. Editors often replace
// files by rename, so the directory is watched rather than the file.
func (w *ConfigWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	name := filepath.Base(w.path)

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Str("path", w.path).Msg("config watcher error")
		}
	}
}

func (w *ConfigWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *ConfigWatcher) reload() {
	cfg, err := LoadConfig(w.path)
	if err != nil {
		w.log.Warn().Err(err).Msg("config reload failed")
		return
	}
	w.log.Info().Str("path", w.path).Msg("config reloaded")

	// Replace an unread config with the newer one.
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- cfg:
	default:
	}
}
