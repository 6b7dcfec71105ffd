package models

// Snapshot is the full state pushed to display processes.
// Receivers overwrite their cache with it; it is never a delta.
type Snapshot struct {
	// Queue holds every entry in waitlist order
	Queue []QueueEntry `json:"queue" yaml:"queue"`

	// Settings is the owner's settings at the time of the snapshot
	Settings QueueSettings `json:"settings" yaml:"settings"`
}

// SyncMessageType names the two messages of the display protocol
type SyncMessageType string

const (
	// SyncMessageQueueSnapshot carries a Snapshot from the owner to a display
	SyncMessageQueueSnapshot SyncMessageType = "queue_snapshot"

	// SyncMessageRequestSnapshot asks the owner to push a fresh snapshot
	SyncMessageRequestSnapshot SyncMessageType = "request_snapshot"
)

// SyncMessage is the envelope exchanged between owner and display
type SyncMessage struct {
	Type     SyncMessageType `json:"type"`
	Snapshot *Snapshot       `json:"payload,omitempty"`
}
