// Package errors provides centralized error handling for git-eq.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrConfiguration indicates that required git configuration (remote
	// mapping, user identity) is absent. It is the parent of ErrNoRemote
	// and ErrNoIdentity.
	ErrConfiguration = errors.New("git configuration missing")

	// ErrNoRemote indicates that branch.<name>.remote returned nothing for
	// the current branch.
	ErrNoRemote = fmt.Errorf("no remote configured: %w", ErrConfiguration)

	// ErrNoIdentity indicates that user.email returned nothing.
	ErrNoIdentity = fmt.Errorf("no identity configured: %w", ErrConfiguration)

	// ErrProcess indicates that the git executable could not be spawned or
	// waited on. A non-zero exit status is NOT a process error.
	ErrProcess = errors.New("git process failed")

	// ErrEncoding indicates that captured git output was not valid UTF-8.
	ErrEncoding = errors.New("git output is not valid utf-8")

	// ErrClock indicates that the system clock reports a time before the Unix epoch.
	ErrClock = errors.New("system clock is before unix epoch")

	// ErrConfigNil indicates a nil settings value was passed for validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalid indicates an ambient setting (git binary, debounce
	// window) failed validation.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrUsage indicates the command line could not be parsed, usually an
	// unknown flag or a message that starts with a dash.
	ErrUsage = errors.New("invalid command-line usage")

	// ErrInvalidOutputFormat indicates the --output flag value is not supported.
	ErrInvalidOutputFormat = errors.New("invalid output format")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
