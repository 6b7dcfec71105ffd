package display

//go:generate mockgen -package=mocks -destination=mocks/mock_sink.go github.com/KirkDiggler/queuebot/internal/services/display Sink,SnapshotRequester

import (
	"context"

	"github.com/KirkDiggler/queuebot/internal/models"
)

// Sink is one registered display process as seen from the owner
type Sink interface {
	// ID identifies the sink for registration bookkeeping
	ID() string

	// Send delivers a full snapshot. It must not block on a slow receiver.
	Send(ctx context.Context, snapshot *models.Snapshot) error
}

// SnapshotRequester answers a display's request for the current state by
// pushing a full snapshot to every sink
type SnapshotRequester interface {
	RequestSnapshot(ctx context.Context) error
}
