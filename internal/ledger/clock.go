package ledger

import "time"

// Clock supplies the current time for deadline checks and donation stamps.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by the standard library.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }
