package queue

import (
	"slices"
	"time"

	"github.com/KirkDiggler/queuebot/internal/models"
)

// memoryRepository keeps the queue in a slice. It has no locking of its
// own; the queue service is its only writer and serializes access.
type memoryRepository struct {
	entries []models.QueueEntry
}

// NewMemory creates an empty in-memory queue
func NewMemory() *memoryRepository {
	return &memoryRepository{
		entries: []models.QueueEntry{},
	}
}

func (r *memoryRepository) Insert(entry models.QueueEntry) {
	r.entries = append(r.entries, entry)
}

func (r *memoryRepository) Find(username string) (models.QueueEntry, bool) {
	idx := r.indexOf(username)
	if idx == -1 {
		return models.QueueEntry{}, false
	}
	return r.entries[idx], true
}

func (r *memoryRepository) Position(username string) int {
	idx := r.indexOf(username)
	if idx == -1 {
		return NotFound
	}
	return idx + 1
}

func (r *memoryRepository) Remove(username string) {
	r.entries = slices.DeleteFunc(r.entries, func(e models.QueueEntry) bool {
		return e.Matches(username)
	})
}

func (r *memoryRepository) Move(fromIndex, toIndex int) {
	if fromIndex == toIndex {
		return
	}

	moved := r.entries[fromIndex]
	r.entries = slices.Delete(r.entries, fromIndex, fromIndex+1)
	r.entries = slices.Insert(r.entries, toIndex, moved)
}

func (r *memoryRepository) SetPlaying(username string, playing bool, at time.Time) {
	idx := r.indexOf(username)
	if idx == -1 {
		return
	}

	entry := &r.entries[idx]
	entry.IsPlaying = playing
	if playing {
		startedAt := at
		entry.PlayingStartedAt = &startedAt
	} else {
		entry.PlayingStartedAt = nil
	}
}

func (r *memoryRepository) Clear() {
	r.entries = []models.QueueEntry{}
}

func (r *memoryRepository) List() []models.QueueEntry {
	out := make([]models.QueueEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *memoryRepository) Len() int {
	return len(r.entries)
}

func (r *memoryRepository) indexOf(username string) int {
	return slices.IndexFunc(r.entries, func(e models.QueueEntry) bool {
		return e.Matches(username)
	})
}
