package messaging

import "github.com/KirkDiggler/queuebot/internal/models"

// Responses renders the chat replies for each command outcome from the
// templates in the current settings
type Responses struct {
	settings *models.QueueSettings
}

// For returns the responses built from settings
func For(settings *models.QueueSettings) *Responses {
	return &Responses{settings: settings}
}

// Closed is sent when a join arrives while the queue is closed
func (r *Responses) Closed() string {
	return Render(r.settings.QueueClosedMessage)
}

// Full is sent when a join arrives at capacity
func (r *Responses) Full() string {
	return Render(r.settings.QueueFullMessage)
}

// AlreadyInQueue is sent when the user already holds a place
func (r *Responses) AlreadyInQueue(username string, position int) string {
	return Render(r.settings.AlreadyInQueueMessage, Username(username), Position(position))
}

// RequireMessage is sent when a message is required and none was given
func (r *Responses) RequireMessage(username string) string {
	return Render(r.settings.RequireMessageText, Username(username))
}

// Joined confirms a successful join
func (r *Responses) Joined(username string, position int) string {
	return Render(r.settings.JoinMessage, Username(username), Position(position))
}

// Left confirms a successful leave
func (r *Responses) Left(username string) string {
	return Render(r.settings.LeaveMessage, Username(username))
}

// NotInQueue is sent for leave or position queries from users not queued
func (r *Responses) NotInQueue(username string) string {
	return Render(r.settings.NotInQueueMessage, Username(username))
}

// Position answers a position query
func (r *Responses) Position(username string, position, waitMinutes int) string {
	return Render(r.settings.PositionMessage, Username(username), Position(position), WaitTime(waitMinutes))
}
