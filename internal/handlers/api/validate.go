package api

import (
	"fmt"

	"github.com/KirkDiggler/queuebot/internal/models"
)

// validateSettingsUpdate checks the fields an operator is allowed to set.
// The queue engine itself accepts any value.
func validateSettingsUpdate(update *models.SettingsUpdate) error {
	if update.MaxQueueSize.Present && update.MaxQueueSize.Value != nil && *update.MaxQueueSize.Value < 1 {
		return fmt.Errorf("%w: maxQueueSize must be at least 1 or null", ErrInvalidSettings)
	}

	display := update.DisplaySettings
	if display == nil {
		return nil
	}

	if display.DisplayCount != nil && *display.DisplayCount < 1 {
		return fmt.Errorf("%w: displayCount must be at least 1", ErrInvalidSettings)
	}

	if opacity := display.BackgroundOpacity; opacity != nil && (*opacity < 0 || *opacity > 1) {
		return fmt.Errorf("%w: backgroundOpacity must be between 0 and 1", ErrInvalidSettings)
	}

	return nil
}
