// Package clock provides an abstraction for time operations to improve testability.
// Code that needs the current time takes a Clock so tests can pin it.
package clock

import (
	"fmt"
	"time"

	eqerrors "github.com/mrz1836/git-eq/internal/errors"
)

// Clock is an interface for time operations.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the actual system time.
type RealClock struct{}

// Now returns the current time from the system clock.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Ensure RealClock implements Clock.
var _ Clock = RealClock{}

// UnixEpoch returns the whole seconds elapsed since the Unix epoch according to c.
// A clock reading before 1970-01-01T00:00:00Z yields ErrClock.
func UnixEpoch(c Clock) (uint64, error) {
	now := c.Now()
	if now.Before(time.Unix(0, 0)) {
		return 0, fmt.Errorf("clock reads %s: %w", now.UTC().Format(time.RFC3339), eqerrors.ErrClock)
	}
	return uint64(now.Unix()), nil //nolint:gosec // non-negative checked above
}
