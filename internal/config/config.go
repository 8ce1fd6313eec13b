// Package config provides the ambient settings of git-eq with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. Environment variables (GITEQ_* prefix)
//  2. Global config (~/.git-eq/config.yaml)
//  3. Built-in defaults
//
// The commit message is not a setting; it comes from the command line.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import other internal packages.
package config

import "time"

// Config is the root configuration structure for git-eq.
type Config struct {
	// Git contains settings for driving the git executable.
	Git GitConfig `yaml:"git" mapstructure:"git"`

	// Lock contains settings for waiting on the repository index lock.
	Lock LockConfig `yaml:"lock" mapstructure:"lock"`
}

// GitConfig contains settings for git invocations.
type GitConfig struct {
	// Binary is the git executable, looked up on PATH when not absolute.
	// Default: "git"
	Binary string `yaml:"binary" mapstructure:"binary"`
}

// LockConfig controls waiting for index.lock before mutating commands.
type LockConfig struct {
	// Wait enables waiting for the lock to be released.
	// Default: true
	Wait bool `yaml:"wait" mapstructure:"wait"`

	// Debounce is the window over which lock file notifications are coalesced.
	// Default: 10s
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
}
