package storage

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"
)

const settingsKey = "settings"

// Settings are the player preferences kept between launches
type Settings struct {
	Muted      bool `json:"muted"`
	Scale      int  `json:"scale"`
	Fullscreen bool `json:"fullscreen"`
	LastLevel  int  `json:"lastLevel"`
}

// itemStore is the part of gdata.Manager the settings use
type itemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// SettingsStore reads and writes Settings as a JSON item
type SettingsStore struct {
	items itemStore
}

// OpenSettings opens the per-user data directory for appName
func OpenSettings(appName string) (*SettingsStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open settings: %w", err)
	}
	return &SettingsStore{items: m}, nil
}

// Load returns the saved settings, or def when nothing was saved yet
func (s *SettingsStore) Load(def Settings) (Settings, error) {
	data, err := s.items.LoadItem(settingsKey)
	if err != nil {
		return def, fmt.Errorf("storage: cannot load settings: %w", err)
	}
	if len(data) == 0 {
		return def, nil
	}

	out := def
	if err := json.Unmarshal(data, &out); err != nil {
		return def, fmt.Errorf("storage: cannot parse settings: %w", err)
	}
	return out, nil
}

// Save writes the settings
func (s *SettingsStore) Save(settings Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("storage: cannot encode settings: %w", err)
	}
	if err := s.items.SaveItem(settingsKey, data); err != nil {
		return fmt.Errorf("storage: cannot save settings: %w", err)
	}
	return nil
}
