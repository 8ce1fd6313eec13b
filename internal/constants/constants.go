// Package constants provides centralized constant values used throughout git-eq.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Commit and branch naming.
const (
	// DefaultCommitMessage is used when no message argument is given.
	DefaultCommitMessage = "Earthquake!!! This is an emergency commit"

	// BranchPrefix is prepended to every emergency branch name.
	BranchPrefix = "earthquake/"

	// SuccessMessage is printed once every step has completed.
	SuccessMessage = "Local changes saved, now go hide in a corner!!! (don't stay in the middle of the room)"
)

// Git tool defaults.
const (
	// DefaultGitBinary is the executable driven by the runner.
	DefaultGitBinary = "git"

	// GitDirName is the metadata directory at the top of a working copy.
	GitDirName = ".git"

	// IndexLockFileName is the file git creates while it holds the index lock.
	IndexLockFileName = "index.lock"

	// GitdirPrefix starts the single line of a .git file in linked worktrees.
	GitdirPrefix = "gitdir: "
)

// Lock waiting.
const (
	// DefaultLockDebounce is the window over which filesystem notifications
	// for the lock file are coalesced.
	DefaultLockDebounce = 10 * time.Second
)
