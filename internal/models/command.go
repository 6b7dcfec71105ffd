package models

// CommandType is the kind of queue command a chat user issued
type CommandType string

const (
	// CommandTypeJoin adds the sender to the queue
	CommandTypeJoin CommandType = "join"

	// CommandTypeLeave removes the sender from the queue
	CommandTypeLeave CommandType = "leave"

	// CommandTypePosition reports the sender's position and wait time
	CommandTypePosition CommandType = "pos"
)

// Command is a parsed chat command
type Command struct {
	Type     CommandType
	Username string

	// Message is the free text after !join, untrimmed
	Message string
}
