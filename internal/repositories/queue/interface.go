package queue

import (
	"time"

	"github.com/KirkDiggler/queuebot/internal/models"
)

// NotFound is the position reported for a username that is not queued
const NotFound = -1

// Repository is the ordered waitlist. Implementations do not enforce
// uniqueness or capacity; the queue service checks both before inserting.
// Usernames are compared case-insensitively everywhere.
type Repository interface {
	// Insert appends the entry at the end of the queue
	Insert(entry models.QueueEntry)

	// Find returns the entry for username
	Find(username string) (models.QueueEntry, bool)

	// Position returns the 1-based position of username, or NotFound
	Position(username string) int

	// Remove deletes the entry for username; absent usernames are ignored
	Remove(username string)

	// Move takes the entry at fromIndex out and reinserts it at toIndex.
	// Both indices must be valid 0-based indices into the current queue.
	Move(fromIndex, toIndex int)

	// SetPlaying marks or unmarks username as playing, stamping at when marking
	SetPlaying(username string, playing bool, at time.Time)

	// Clear empties the queue
	Clear()

	// List returns a copy of the entries in queue order
	List() []models.QueueEntry

	// Len returns the number of entries
	Len() int
}
