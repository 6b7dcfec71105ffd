package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/queuebot/internal/common/uuid UUID

// UUID hands out the opaque identifiers assigned to queue entries.
// Identifiers are random v4 UUIDs, so they are never reused within or
// across sessions.
type UUID interface {
	NewUUID() string
}

// DefaultUUID generates random v4 UUIDs
type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new random UUID string
func (d *DefaultUUID) NewUUID() string {
	return uuid.NewString()
}
