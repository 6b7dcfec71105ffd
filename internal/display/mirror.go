// Package display is the passive side of queue sync: it caches the last
// snapshot received from the owner and renders the overlay from it.
// Nothing here can change the queue.
package display

import (
	"sync"

	"github.com/KirkDiggler/queuebot/internal/models"
)

// Mirror holds the last snapshot received from the owner
type Mirror struct {
	mu   sync.RWMutex
	last *models.Snapshot
}

// NewMirror creates a mirror that has not been synced yet
func NewMirror() *Mirror {
	return &Mirror{}
}

// Apply replaces the cached snapshot. Snapshots are full state, so the
// previous cache is discarded rather than merged.
func (m *Mirror) Apply(snapshot *models.Snapshot) {
	if snapshot == nil {
		return
	}

	copied := &models.Snapshot{
		Queue:    append([]models.QueueEntry(nil), snapshot.Queue...),
		Settings: snapshot.Settings.Clone(),
	}

	m.mu.Lock()
	m.last = copied
	m.mu.Unlock()
}

// Last returns the cached snapshot, or false before the first sync
func (m *Mirror) Last() (*models.Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last, m.last != nil
}
