package queue

import (
	"github.com/KirkDiggler/queuebot/internal/common/clock"
	"github.com/KirkDiggler/queuebot/internal/common/uuid"
	"github.com/KirkDiggler/queuebot/internal/models"
	queueRepo "github.com/KirkDiggler/queuebot/internal/repositories/queue"
	settingsRepo "github.com/KirkDiggler/queuebot/internal/repositories/settings"
)

// Config holds configuration for the queue service
type Config struct {
	// Settings are the starting settings, usually from LoadInitialSettings.
	// Defaults are used when nil.
	Settings *models.QueueSettings

	// Repository dependencies
	Store        queueRepo.Repository
	SettingsRepo settingsRepo.Repository

	// Publisher receives snapshots for display processes; optional
	Publisher Publisher

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// ProcessCommandInput contains the chat command to run
type ProcessCommandInput struct {
	Command *models.Command
}

// ProcessCommandOutput contains the result of running a chat command
type ProcessCommandOutput struct {
	// Response is the chat reply; empty means send nothing
	Response string

	// Changed reports whether the queue was mutated
	Changed bool
}

// MoveEntryInput contains parameters for reordering the queue
type MoveEntryInput struct {
	// FromIndex and ToIndex are 0-based
	FromIndex int
	ToIndex   int
}

// SetPlayingInput contains parameters for marking a user as playing
type SetPlayingInput struct {
	Username string
	Playing  bool
}

// RemoveEntryInput contains parameters for removing a user
type RemoveEntryInput struct {
	Username string
}

// UpdateSettingsInput contains the partial settings update
type UpdateSettingsInput struct {
	Update *models.SettingsUpdate
}

// UpdateSettingsOutput contains the settings after the update
type UpdateSettingsOutput struct {
	Settings models.QueueSettings

	// Persisted is false when saving the settings failed
	Persisted bool
}
