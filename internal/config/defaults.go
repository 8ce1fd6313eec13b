package config

import "github.com/mrz1836/git-eq/internal/constants"

// DefaultConfig returns a new Config with the built-in defaults.
// These are the values used when neither a config file nor the
// environment sets a key.
func DefaultConfig() *Config {
	return &Config{
		Git: GitConfig{
			Binary: constants.DefaultGitBinary,
		},
		Lock: LockConfig{
			Wait:     true,
			Debounce: constants.DefaultLockDebounce,
		},
	}
}
