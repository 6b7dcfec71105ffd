package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/queuebot/internal/common/clock Clock

// Clock supplies the current time to anything that stamps queue entries
// or computes wait times.
type Clock interface {
	Now() time.Time
}

// DefaultClock reads the system clock
type DefaultClock struct{}

// New returns the system clock
func New() *DefaultClock {
	return &DefaultClock{}
}

// Now returns the current time
func (c *DefaultClock) Now() time.Time {
	return time.Now()
}

// MinutesSince returns the whole minutes elapsed between then and now,
// rounded down. A then in the future yields 0.
func MinutesSince(c Clock, then time.Time) int {
	elapsed := c.Now().Sub(then)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / time.Minute)
}
