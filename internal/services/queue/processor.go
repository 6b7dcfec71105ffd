package queue

import (
	"strings"

	"github.com/KirkDiggler/queuebot/internal/common/clock"
	"github.com/KirkDiggler/queuebot/internal/common/uuid"
	"github.com/KirkDiggler/queuebot/internal/models"
	queueRepo "github.com/KirkDiggler/queuebot/internal/repositories/queue"
	"github.com/KirkDiggler/queuebot/internal/services/messaging"
)

// Processor applies chat commands to a queue under a set of settings.
// It holds no state of its own.
type Processor struct {
	clock clock.Clock
	ids   uuid.UUID
}

// NewProcessor creates a processor that stamps entries with clk and ids
func NewProcessor(clk clock.Clock, ids uuid.UUID) *Processor {
	return &Processor{
		clock: clk,
		ids:   ids,
	}
}

// Process runs cmd against store and returns the reply and whether the
// store was mutated. Unknown command types produce no reply.
func (p *Processor) Process(cmd *models.Command, store queueRepo.Repository, settings *models.QueueSettings) (string, bool) {
	if cmd == nil {
		return "", false
	}

	switch cmd.Type {
	case models.CommandTypeJoin:
		return p.join(cmd.Username, cmd.Message, store, settings)
	case models.CommandTypeLeave:
		return p.leave(cmd.Username, store, settings)
	case models.CommandTypePosition:
		return p.position(cmd.Username, store, settings), false
	default:
		return "", false
	}
}

func (p *Processor) join(username, message string, store queueRepo.Repository, settings *models.QueueSettings) (string, bool) {
	responses := messaging.For(settings)

	// Order matters: the first failing rule decides the reply
	if !settings.IsOpen {
		return responses.Closed(), false
	}

	if !settings.HasCapacityFor(store.Len()) {
		return responses.Full(), false
	}

	if existing, ok := store.Find(username); ok {
		return responses.AlreadyInQueue(existing.Username, store.Position(username)), false
	}

	message = strings.TrimSpace(message)
	if settings.RequireMessage && message == "" {
		return responses.RequireMessage(username), false
	}

	position := store.Len() + 1
	store.Insert(models.QueueEntry{
		ID:       p.ids.NewUUID(),
		Username: username,
		Message:  message,
		JoinedAt: p.clock.Now(),
	})

	return responses.Joined(username, position), true
}

func (p *Processor) leave(username string, store queueRepo.Repository, settings *models.QueueSettings) (string, bool) {
	responses := messaging.For(settings)

	if _, ok := store.Find(username); !ok {
		return responses.NotInQueue(username), false
	}

	store.Remove(username)
	return responses.Left(username), true
}

func (p *Processor) position(username string, store queueRepo.Repository, settings *models.QueueSettings) string {
	responses := messaging.For(settings)

	entry, ok := store.Find(username)
	if !ok {
		return responses.NotInQueue(username)
	}

	waitMinutes := clock.MinutesSince(p.clock, entry.JoinedAt)
	return responses.Position(username, store.Position(username), waitMinutes)
}
