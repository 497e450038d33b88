package engine

import (
	"github.com/dshills/annotate/internal/config"
)

// WatchConfig starts watching the config file at path. Each successful
// reload is applied with ApplyConfig; failed reloads are logged and the
// current settings kept. The caller runs the returned watcher.
func (e *Engine) WatchConfig(path string) (*config.Watcher, error) {
	return config.NewWatcher(path, func(cfg *config.Config, err error) {
		if err != nil {
			e.log.Warn("config reload failed", "path", path, "error", err)
			return
		}
		e.ApplyConfig(cfg)
	})
}
