package config

import (
	"github.com/loadout-app/loadout/internal/models"
)

// LoadAppConfig loads the application state from ~/.loadout/config.json.
// If the file doesn't exist, returns the default config.
func LoadAppConfig() (*models.AppConfig, error) {
	path, err := ConfigFile()
	if err != nil {
		return nil, err
	}
	return LoadJSONOrDefault(path, models.NewAppConfig)
}

// SaveAppConfig saves the application state to ~/.loadout/config.json.
func SaveAppConfig(cfg *models.AppConfig) error {
	path, err := ConfigFile()
	if err != nil {
		return err
	}
	return SaveJSON(path, cfg)
}
