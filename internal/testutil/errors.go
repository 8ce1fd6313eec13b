// Package testutil provides testing utilities for git-eq.
//
// This package contains mock errors shared across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
// These errors are used to simulate various failure scenarios in tests.
var (
	// ErrMockSpawn simulates git failing to start.
	ErrMockSpawn = errors.New("fork/exec git: no such file or directory")

	// ErrMockWatch simulates a filesystem watcher failure.
	ErrMockWatch = errors.New("watch failed")

	// ErrMockDiskFull simulates a failing writer.
	ErrMockDiskFull = errors.New("disk full")
)
