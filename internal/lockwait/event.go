package lockwait

import (
	"strings"
	"time"
)

// Op describes what happened to a path. Coalesced events may carry several
// operations at once.
type Op uint8

// Operations reported by a Subscription.
const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpChmod
)

// Has reports whether op includes every bit of other.
func (op Op) Has(other Op) bool {
	return op&other == other
}

// String returns the operations joined by "|", e.g. "CREATE|WRITE".
func (op Op) String() string {
	if op == 0 {
		return "NONE"
	}
	names := make([]string, 0, 4)
	for _, item := range []struct {
		op   Op
		name string
	}{
		{OpCreate, "CREATE"},
		{OpWrite, "WRITE"},
		{OpRemove, "REMOVE"},
		{OpChmod, "CHMOD"},
	} {
		if op.Has(item.op) {
			names = append(names, item.name)
		}
	}
	return strings.Join(names, "|")
}

// Event is a single, possibly coalesced, filesystem notification.
type Event struct {
	// Path is the cleaned path the notification refers to.
	Path string
	// Op is the set of operations observed for Path.
	Op Op
}

// Subscription is a live stream of notifications for a watched path.
type Subscription interface {
	// Events delivers notifications. It is closed when the subscription ends.
	Events() <-chan Event
	// Errors delivers watch failures. It is closed when the subscription ends.
	Errors() <-chan error
	// Close stops the subscription and releases its resources.
	Close() error
}

// Subscriber establishes subscriptions to filesystem changes.
type Subscriber interface {
	// Subscribe starts observing path. Notifications other than removals are
	// coalesced over the debounce window. An error means the path cannot be
	// observed at all.
	Subscribe(path string, debounce time.Duration) (Subscription, error)
}
