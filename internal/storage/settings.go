package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/liftlog/internal/constants"
	"github.com/julianstephens/liftlog/internal/logger"
	"github.com/julianstephens/liftlog/internal/models"
)

// LoadSettings reads the settings blob. A missing or undecodable blob yields
// the defaults; only read failures are returned.
func LoadSettings(p Provider) (models.Settings, error) {
	settings := models.DefaultSettings()

	data, err := p.Get(constants.SettingsKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := json.Unmarshal(data, &settings); err != nil {
		logger.Warn("Failed to decode settings, using defaults", "error", err)
		return models.DefaultSettings(), nil
	}
	return settings, nil
}

// SaveSettings overwrites the settings blob.
func SaveSettings(p Provider, settings models.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	if err := p.Put(constants.SettingsKey, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
