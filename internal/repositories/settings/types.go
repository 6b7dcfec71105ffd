package settings

import (
	"errors"

	"github.com/KirkDiggler/queuebot/internal/models"
)

// ErrSettingsNotFound is returned when no settings document has been stored
var ErrSettingsNotFound = errors.New("settings not found")

// LoadSettingsInput contains parameters for loading settings
type LoadSettingsInput struct {
}

// SaveSettingsInput contains parameters for saving settings
type SaveSettingsInput struct {
	Settings *models.QueueSettings
}
