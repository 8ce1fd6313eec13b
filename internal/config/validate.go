package config

import (
	"github.com/mrz1836/git-eq/internal/errors"
)

// Validate checks the configuration for invalid values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - git.binary must not be empty
//   - lock.debounce must be positive
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if cfg.Git.Binary == "" {
		return errors.Wrap(errors.ErrConfigInvalid, "git.binary must not be empty")
	}

	if cfg.Lock.Debounce <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"lock.debounce must be positive, got %s", cfg.Lock.Debounce)
	}

	return nil
}
