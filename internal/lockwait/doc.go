// Package lockwait blocks until a lock file owned by another process is removed.
//
// git creates .git/index.lock while it mutates the index and deletes it when
// it is done. Before git-eq runs a mutating git command it asks a Waiter to
// block until that file is gone, so the command does not fail on contention.
//
// The wait is optimistic. Every failure to observe the filesystem (the watch
// cannot be set up, the notification stream closes or reports an error)
// ends the wait and lets the caller proceed. Nothing here creates or deletes
// the lock file, and absence is only observed: another git process may take
// the lock again between the notification and the caller's own command.
//
// Filesystem access sits behind the Subscriber interface. FSNotifySubscriber
// is the production implementation; tests drive a Waiter with scripted events.
package lockwait
