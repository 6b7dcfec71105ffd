package api

import (
	"errors"

	"github.com/KirkDiggler/queuebot/internal/models"
)

// ErrInvalidSettings is returned for settings edits outside their ranges
var ErrInvalidSettings = errors.New("invalid settings")

// Error codes returned in ErrorResponse.Code
const (
	CodeInvalidBody     = "INVALID_BODY"
	CodeInvalidIndex    = "INVALID_INDEX"
	CodeNotInQueue      = "NOT_IN_QUEUE"
	CodeInvalidSettings = "INVALID_SETTINGS"
	CodeInternal        = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every non-2xx reply
type ErrorResponse struct {
	// Code is stable for programmatic handling
	Code string `json:"code"`

	// Message is human readable
	Message string `json:"message"`

	// Details carries the underlying error when useful
	Details string `json:"details,omitempty"`
}

// MoveRequest reorders the queue using 0-based indices
type MoveRequest struct {
	FromIndex *int `json:"fromIndex" binding:"required"`
	ToIndex   *int `json:"toIndex" binding:"required"`
}

// CommandRequest feeds one chat line through the command parser
type CommandRequest struct {
	Username string `json:"username" binding:"required"`
	Text     string `json:"text"`
}

// CommandResponse is the chat reply the line produced
type CommandResponse struct {
	// Handled is false when the text was not a queue command
	Handled  bool   `json:"handled"`
	Response string `json:"response"`
	Changed  bool   `json:"changed"`
}

// SettingsResponse is returned from settings reads and updates
type SettingsResponse struct {
	Settings models.QueueSettings `json:"settings"`

	// Persisted is false when the update could not be saved
	Persisted bool `json:"persisted"`
}
