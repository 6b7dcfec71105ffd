package models

import (
	"bytes"
	"encoding/json"
)

// Template placeholders recognized in every message template
const (
	PlaceholderUsername = "{username}"
	PlaceholderPosition = "{position}"
	PlaceholderWaitTime = "{waitTime}"
)

// DisplaySettings controls what the overlay display shows
type DisplaySettings struct {
	// Enabled gates pushing snapshots to display processes
	Enabled bool `json:"enabled" yaml:"enabled"`

	// DisplayCount is how many entries from the head of the queue are rendered
	DisplayCount int `json:"displayCount" yaml:"displayCount"`

	ShowPosition bool `json:"showPosition" yaml:"showPosition"`
	ShowMessage  bool `json:"showMessage" yaml:"showMessage"`
	ShowWaitTime bool `json:"showWaitTime" yaml:"showWaitTime"`

	// BackgroundOpacity is in the range [0,1]
	BackgroundOpacity float64 `json:"backgroundOpacity" yaml:"backgroundOpacity"`
}

// QueueSettings is the operator-editable configuration of the queue.
// Values are replaced wholesale by Merge; callers never edit a shared copy.
type QueueSettings struct {
	// IsOpen gates new joins
	IsOpen bool `json:"isOpen" yaml:"isOpen"`

	// RequireMessage rejects joins without a non-blank message
	RequireMessage bool `json:"requireMessage" yaml:"requireMessage"`

	// MaxQueueSize caps the queue length; nil means unbounded
	MaxQueueSize *int `json:"maxQueueSize" yaml:"maxQueueSize"`

	JoinMessage           string `json:"joinMessage" yaml:"joinMessage"`
	LeaveMessage          string `json:"leaveMessage" yaml:"leaveMessage"`
	QueueFullMessage      string `json:"queueFullMessage" yaml:"queueFullMessage"`
	QueueClosedMessage    string `json:"queueClosedMessage" yaml:"queueClosedMessage"`
	AlreadyInQueueMessage string `json:"alreadyInQueueMessage" yaml:"alreadyInQueueMessage"`
	NotInQueueMessage     string `json:"notInQueueMessage" yaml:"notInQueueMessage"`
	PositionMessage       string `json:"positionMessage" yaml:"positionMessage"`
	RequireMessageText    string `json:"requireMessageText" yaml:"requireMessageText"`

	// DisplaySettings configures the overlay display
	DisplaySettings DisplaySettings `json:"displaySettings" yaml:"displaySettings"`
}

// DefaultMaxQueueSize is the capacity used when nothing else is configured
const DefaultMaxQueueSize = 50

// DefaultSettings returns the settings used before any persisted overrides apply
func DefaultSettings() QueueSettings {
	maxSize := DefaultMaxQueueSize
	return QueueSettings{
		IsOpen:                true,
		RequireMessage:        false,
		MaxQueueSize:          &maxSize,
		JoinMessage:           "{username} has joined the queue! Position: {position}",
		LeaveMessage:          "{username} has left the queue.",
		QueueFullMessage:      "The queue is currently full. Please try again later.",
		QueueClosedMessage:    "The queue is currently closed.",
		AlreadyInQueueMessage: "{username}, you are already in the queue at position {position}.",
		NotInQueueMessage:     "{username}, you are not in the queue.",
		PositionMessage:       "{username}, you are position {position} in the queue. Wait time: {waitTime} minutes.",
		RequireMessageText:    "{username}, please provide a message when joining the queue. Example: !join YourGameUsername",
		DisplaySettings: DisplaySettings{
			Enabled:           false,
			DisplayCount:      5,
			ShowPosition:      true,
			ShowMessage:       true,
			ShowWaitTime:      false,
			BackgroundOpacity: 0.7,
		},
	}
}

// Clone returns a copy that shares no pointers with s
func (s QueueSettings) Clone() QueueSettings {
	if s.MaxQueueSize != nil {
		maxSize := *s.MaxQueueSize
		s.MaxQueueSize = &maxSize
	}
	return s
}

// HasCapacityFor reports whether a queue of the given size can take one more entry
func (s QueueSettings) HasCapacityFor(size int) bool {
	if s.MaxQueueSize == nil || *s.MaxQueueSize <= 0 {
		return true
	}
	return size < *s.MaxQueueSize
}

// OptionalInt is a JSON field that distinguishes "absent" from "null".
// Present is false when the key was missing; Value is nil when it was null.
type OptionalInt struct {
	Present bool
	Value   *int
}

// SetInt returns an OptionalInt that sets the value to v
func SetInt(v int) OptionalInt {
	return OptionalInt{Present: true, Value: &v}
}

// ClearInt returns an OptionalInt that clears the value
func ClearInt() OptionalInt {
	return OptionalInt{Present: true}
}

// UnmarshalJSON implements json.Unmarshaler
func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// MarshalJSON implements json.Marshaler
func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// DisplaySettingsUpdate holds the display fields an operator wants to change
type DisplaySettingsUpdate struct {
	Enabled           *bool    `json:"enabled,omitempty"`
	DisplayCount      *int     `json:"displayCount,omitempty"`
	ShowPosition      *bool    `json:"showPosition,omitempty"`
	ShowMessage       *bool    `json:"showMessage,omitempty"`
	ShowWaitTime      *bool    `json:"showWaitTime,omitempty"`
	BackgroundOpacity *float64 `json:"backgroundOpacity,omitempty"`
}

// SettingsUpdate is a partial QueueSettings; nil fields are left unchanged
type SettingsUpdate struct {
	IsOpen         *bool       `json:"isOpen,omitempty"`
	RequireMessage *bool       `json:"requireMessage,omitempty"`
	MaxQueueSize   OptionalInt `json:"maxQueueSize,omitzero"`

	JoinMessage           *string `json:"joinMessage,omitempty"`
	LeaveMessage          *string `json:"leaveMessage,omitempty"`
	QueueFullMessage      *string `json:"queueFullMessage,omitempty"`
	QueueClosedMessage    *string `json:"queueClosedMessage,omitempty"`
	AlreadyInQueueMessage *string `json:"alreadyInQueueMessage,omitempty"`
	NotInQueueMessage     *string `json:"notInQueueMessage,omitempty"`
	PositionMessage       *string `json:"positionMessage,omitempty"`
	RequireMessageText    *string `json:"requireMessageText,omitempty"`

	DisplaySettings *DisplaySettingsUpdate `json:"displaySettings,omitempty"`
}

// Merge returns a copy of s with every field set in update applied.
// Display settings merge one level deep so a partial display update keeps
// its sibling fields. No range validation happens here.
func (s QueueSettings) Merge(update *SettingsUpdate) QueueSettings {
	merged := s.Clone()
	if update == nil {
		return merged
	}

	setBool(&merged.IsOpen, update.IsOpen)
	setBool(&merged.RequireMessage, update.RequireMessage)
	if update.MaxQueueSize.Present {
		merged.MaxQueueSize = nil
		if update.MaxQueueSize.Value != nil {
			maxSize := *update.MaxQueueSize.Value
			merged.MaxQueueSize = &maxSize
		}
	}

	setString(&merged.JoinMessage, update.JoinMessage)
	setString(&merged.LeaveMessage, update.LeaveMessage)
	setString(&merged.QueueFullMessage, update.QueueFullMessage)
	setString(&merged.QueueClosedMessage, update.QueueClosedMessage)
	setString(&merged.AlreadyInQueueMessage, update.AlreadyInQueueMessage)
	setString(&merged.NotInQueueMessage, update.NotInQueueMessage)
	setString(&merged.PositionMessage, update.PositionMessage)
	setString(&merged.RequireMessageText, update.RequireMessageText)

	if d := update.DisplaySettings; d != nil {
		setBool(&merged.DisplaySettings.Enabled, d.Enabled)
		if d.DisplayCount != nil {
			merged.DisplaySettings.DisplayCount = *d.DisplayCount
		}
		setBool(&merged.DisplaySettings.ShowPosition, d.ShowPosition)
		setBool(&merged.DisplaySettings.ShowMessage, d.ShowMessage)
		setBool(&merged.DisplaySettings.ShowWaitTime, d.ShowWaitTime)
		if d.BackgroundOpacity != nil {
			merged.DisplaySettings.BackgroundOpacity = *d.BackgroundOpacity
		}
	}

	return merged
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
