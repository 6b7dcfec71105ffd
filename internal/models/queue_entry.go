package models

import (
	"strings"
	"time"
)

// QueueEntry is one viewer's place in the waitlist
type QueueEntry struct {
	// ID is the opaque identifier assigned when the entry is created
	ID string `json:"id" yaml:"id"`

	// Username is the chat identity as first submitted; casing is kept for display
	Username string `json:"username" yaml:"username"`

	// Message is the optional text attached with !join
	Message string `json:"message,omitempty" yaml:"message,omitempty"`

	// JoinedAt is when the entry was inserted
	JoinedAt time.Time `json:"joinedAt" yaml:"joinedAt"`

	// IsPlaying marks the entry as currently being served by the operator
	IsPlaying bool `json:"isPlaying" yaml:"isPlaying"`

	// PlayingStartedAt is set only while IsPlaying is true
	PlayingStartedAt *time.Time `json:"playingStartedAt,omitempty" yaml:"playingStartedAt,omitempty"`
}

// Matches reports whether the entry belongs to username, ignoring case
func (e *QueueEntry) Matches(username string) bool {
	return strings.EqualFold(e.Username, username)
}
