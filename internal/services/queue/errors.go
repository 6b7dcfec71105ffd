package queue

// QueueError is a custom error type for queue-related errors
type QueueError string

// Error implements the error interface
func (e QueueError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidIndex     QueueError = "queue index out of range"
	ErrEntryNotFound    QueueError = "user is not in the queue"
	ErrNilInput         QueueError = "input cannot be nil"
	ErrNilConfig        QueueError = "config cannot be nil"
	ErrNilStore         QueueError = "queue store cannot be nil"
	ErrNilSettingsRepo  QueueError = "settings repository cannot be nil"
	ErrNilClock         QueueError = "clock cannot be nil"
	ErrNilUUIDGenerator QueueError = "UUID generator cannot be nil"
)
