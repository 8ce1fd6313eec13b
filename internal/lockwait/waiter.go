package lockwait

import (
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Waiter blocks the calling goroutine until a watched file is removed.
type Waiter struct {
	subscriber Subscriber
	debounce   time.Duration
	logger     zerolog.Logger
}

// New creates a Waiter that subscribes through sub with the given debounce window.
func New(sub Subscriber, debounce time.Duration, logger zerolog.Logger) *Waiter {
	return &Waiter{
		subscriber: sub,
		debounce:   debounce,
		logger:     logger.With().Str("component", "lockwait").Logger(),
	}
}

// WaitUntilReleased blocks until a removal of path is observed.
//
// It never fails. If path cannot be subscribed to, or the notification stream
// closes or reports an error, it returns at once. Events for other paths and
// non-removal events for path are ignored. There is no timeout and no
// cancellation.
func (w *Waiter) WaitUntilReleased(path string) {
	target := filepath.Clean(path)
	logger := w.logger.With().Str("path", target).Logger()

	sub, err := w.subscriber.Subscribe(target, w.debounce)
	if err != nil {
		logger.Debug().Err(err).Msg("cannot watch lock file, proceeding")
		return
	}
	defer func() {
		if closeErr := sub.Close(); closeErr != nil {
			logger.Debug().Err(closeErr).Msg("failed to close lock watch")
		}
	}()

	logger.Info().Msg("git lock is held by another process, waiting for release")
	start := time.Now()

	events := sub.Events()
	errs := sub.Errors()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				logger.Debug().Msg("lock watch closed, proceeding")
				return
			}
			if ev.Path == target && ev.Op.Has(OpRemove) {
				logger.Info().Dur("waited", time.Since(start)).Msg("git lock released")
				return
			}
			logger.Debug().Str("event_path", ev.Path).Stringer("op", ev.Op).Msg("ignoring lock watch event")
		case watchErr, ok := <-errs:
			if ok {
				logger.Debug().Err(watchErr).Msg("lock watch failed, proceeding")
			} else {
				logger.Debug().Msg("lock watch closed, proceeding")
			}
			return
		}
	}
}
