package queue

//go:generate mockgen -package=mocks -destination=mocks/mock_publisher.go github.com/KirkDiggler/queuebot/internal/services/queue Publisher

import (
	"context"

	"github.com/KirkDiggler/queuebot/internal/models"
)

// Service owns the live queue and settings. It is the only writer of
// either; every other surface goes through it.
type Service interface {
	// ProcessCommand runs a chat command and returns the reply to send
	ProcessCommand(ctx context.Context, input *ProcessCommandInput) (*ProcessCommandOutput, error)

	// MoveEntry reorders the queue
	MoveEntry(ctx context.Context, input *MoveEntryInput) error

	// SetPlaying marks or unmarks a user as playing
	SetPlaying(ctx context.Context, input *SetPlayingInput) error

	// RemoveEntry removes a user on the operator's behalf
	RemoveEntry(ctx context.Context, input *RemoveEntryInput) error

	// ClearQueue removes every entry
	ClearQueue(ctx context.Context) error

	// UpdateSettings merges a partial update into the settings and persists them
	UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*UpdateSettingsOutput, error)

	// GetSnapshot returns a copy of the current queue and settings
	GetSnapshot(ctx context.Context) (*models.Snapshot, error)

	// RequestSnapshot pushes the current snapshot to every display
	RequestSnapshot(ctx context.Context) error
}

// Publisher delivers snapshots to display processes
type Publisher interface {
	Publish(ctx context.Context, snapshot *models.Snapshot) int
}
