package errors

import "fmt"

// Wrap adds context to errors at package boundaries.
// It returns nil if err is nil, allowing for safe inline usage:
//
//	if err := checkout(ctx); err != nil {
//	    return errors.Wrap(err, "checkout failed")
//	}
//
// The wrapped error preserves the original error chain, so callers can
// still match sentinels:
//
//	if errors.Is(err, errors.ErrProcess) {
//	    // git could not be started
//	}
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf adds formatted context to errors at package boundaries.
// It returns nil if err is nil.
//
//	return errors.Wrapf(err, "push %s to %s", branch, remote)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", msg, err)
}
