// Package git drives the git executable for git-eq.
// This file defines the Runner interface: the two ways git-eq runs git.
package git

import "context"

// Runner executes the git tool with a fixed argument list.
//
// Neither mode inspects git's exit status. A command that exits non-zero is
// logged and otherwise treated like one that succeeded; only failures to start
// or wait for the process are errors.
type Runner interface {
	// Output runs git, waits for it, and returns its standard output decoded
	// as UTF-8 with one trailing line terminator removed.
	// Errors wrap ErrProcess or ErrEncoding.
	Output(ctx context.Context, args ...string) (string, error)

	// Spawn waits for the index lock to be released, then runs git with the
	// caller's stdio and waits for it to finish.
	// Errors wrap ErrProcess.
	Spawn(ctx context.Context, args ...string) error
}

// LockWaiter blocks until a lock file is removed. Implementations never fail;
// they return as soon as they can no longer observe the file.
type LockWaiter interface {
	WaitUntilReleased(path string)
}
