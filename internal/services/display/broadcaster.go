package display

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/KirkDiggler/queuebot/internal/models"
)

// Broadcaster fans every snapshot out to the registered display sinks.
// Delivery failures are logged and otherwise ignored; the next publish
// tries the same sink again.
type Broadcaster struct {
	mu    sync.RWMutex
	sinks map[string]Sink
}

// NewBroadcaster creates a broadcaster with no sinks
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		sinks: make(map[string]Sink),
	}
}

// Register adds a sink, replacing any sink with the same ID
func (b *Broadcaster) Register(sink Sink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sinks[sink.ID()] = sink
	log.Printf("Display sink %s registered (%d total)", sink.ID(), len(b.sinks))
}

// Unregister removes a sink; unknown IDs are ignored
func (b *Broadcaster) Unregister(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.sinks[id]; !ok {
		return
	}
	delete(b.sinks, id)
	log.Printf("Display sink %s unregistered (%d remaining)", id, len(b.sinks))
}

// Count returns the number of registered sinks
func (b *Broadcaster) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.sinks)
}

// Publish sends snapshot to every sink in ID order and returns how many
// deliveries succeeded
func (b *Broadcaster) Publish(ctx context.Context, snapshot *models.Snapshot) int {
	b.mu.RLock()
	sinks := make([]Sink, 0, len(b.sinks))
	for _, sink := range b.sinks {
		sinks = append(sinks, sink)
	}
	b.mu.RUnlock()

	sort.Slice(sinks, func(i, j int) bool {
		return sinks[i].ID() < sinks[j].ID()
	})

	delivered := 0
	for _, sink := range sinks {
		if err := sink.Send(ctx, snapshot); err != nil {
			log.Printf("Failed to push snapshot to display sink %s: %v", sink.ID(), err)
			continue
		}
		delivered++
	}

	return delivered
}
