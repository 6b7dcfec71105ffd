package settings

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/queuebot/internal/repositories/settings Repository

import (
	"context"

	"github.com/KirkDiggler/queuebot/internal/models"
)

// Repository persists the queue settings document
type Repository interface {
	// LoadSettings returns the stored settings layered over the defaults.
	// Returns ErrSettingsNotFound when nothing has been stored yet.
	LoadSettings(ctx context.Context, input *LoadSettingsInput) (*models.QueueSettings, error)

	// SaveSettings replaces the stored settings document
	SaveSettings(ctx context.Context, input *SaveSettingsInput) error
}
