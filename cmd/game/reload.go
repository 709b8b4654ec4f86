package main

import (
	"github.com/charmbracelet/log"

	"github.com/torbware/fekagaps/internal/domain/entity"
	"github.com/torbware/fekagaps/internal/infrastructure/config"
	"github.com/torbware/fekagaps/internal/infrastructure/watch"
)

// forwardReloads turns level file changes into validated level sets on
// out. Broken edits are logged and skipped so the running level keeps
// going. Only the newest set is kept if the game has not picked up the
// previous one yet. out is closed when the watcher stops.
func forwardReloads(w *watch.Watcher, loader *config.Loader, defaultTime float64, out chan []*entity.LevelData, logger *log.Logger) {
	defer close(out)
	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				return
			}
			levels, err := reloadLevels(loader, defaultTime)
			if err != nil {
				logger.Warn("reload skipped", "file", name, "error", err)
				continue
			}
			select {
			case <-out:
			default:
			}
			out <- levels
			logger.Debug("levels changed", "file", name)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error", "error", err)
		}
	}
}

func reloadLevels(loader *config.Loader, defaultTime float64) ([]*entity.LevelData, error) {
	cfgs, err := loader.LoadLevels()
	if err != nil {
		return nil, err
	}
	return buildLevels(cfgs, defaultTime)
}
