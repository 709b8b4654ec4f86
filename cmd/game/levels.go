package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/torbware/fekagaps/internal/application/system"
	"github.com/torbware/fekagaps/internal/domain/entity"
	"github.com/torbware/fekagaps/internal/domain/level"
	"github.com/torbware/fekagaps/internal/infrastructure/config"
)

// openLoader reads configs from --config, or from the built-in set
func openLoader() (*config.Loader, error) {
	if flagConfig != "" {
		if _, err := os.Stat(flagConfig); err != nil {
			return nil, fmt.Errorf("config directory: %w", err)
		}
		return config.NewLoader(flagConfig), nil
	}

	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

// loadGame loads the tuning and the campaign levels
func loadGame(loader *config.Loader) (*config.GameConfig, []*entity.LevelData, error) {
	cfg, err := loader.LoadAll()
	if err != nil {
		return nil, nil, err
	}
	levels, err := buildLevels(cfg.Levels, cfg.Entities.Rules.LevelTimeSeconds)
	if err != nil {
		return nil, nil, err
	}
	return cfg, levels, nil
}

// buildLevels materializes level files and checks them as a campaign
func buildLevels(cfgs []*config.LevelConfig, defaultTime float64) ([]*entity.LevelData, error) {
	levels, err := validateLevels(cfgs, defaultTime)
	if err != nil {
		return nil, fmt.Errorf("invalid levels: %w", err)
	}
	return levels, nil
}

// validateLevels reports every broken level, not just the first, and
// returns the levels that did load so they can still be listed.
func validateLevels(cfgs []*config.LevelConfig, defaultTime float64) ([]*entity.LevelData, error) {
	levels := make([]*entity.LevelData, 0, len(cfgs))
	var errs []error
	for _, c := range cfgs {
		d, err := system.LoadLevel(c, defaultTime)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		levels = append(levels, d)
	}
	if len(errs) == 0 {
		errs = append(errs, level.Validate(levels))
	}
	return levels, errors.Join(errs...)
}

// readLevelArg loads a level file named on the command line. Tiled maps
// carry no ID, so they get their campaign index.
func readLevelArg(path string, index int) (*config.LevelConfig, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tmx":
		return config.LoadTMX(os.DirFS(filepath.Dir(path)), filepath.Base(path), strconv.Itoa(index))
	case ".yaml", ".yml":
		return config.ReadLevelFile(path)
	default:
		return nil, fmt.Errorf("%s: unknown level format (want .yaml or .tmx)", path)
	}
}
