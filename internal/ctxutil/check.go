// Package ctxutil provides context utility functions.
package ctxutil

import "context"

// Canceled reports the context's error once it is done (Canceled or
// DeadlineExceeded) and nil otherwise. Git runner entry points call it
// before spawning anything.
func Canceled(ctx context.Context) error {
	return ctx.Err()
}
