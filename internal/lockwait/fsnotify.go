package lockwait

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// FSNotifySubscriber implements Subscriber with fsnotify. It watches the
// directory that contains the requested path, since a watch on the file
// itself ends with the file.
type FSNotifySubscriber struct {
	logger zerolog.Logger
}

// NewFSNotifySubscriber creates a Subscriber backed by the OS notification service.
func NewFSNotifySubscriber(logger zerolog.Logger) *FSNotifySubscriber {
	return &FSNotifySubscriber{logger: logger}
}

// Compile-time interface check.
var _ Subscriber = (*FSNotifySubscriber)(nil)

// Subscribe watches filepath.Dir(path). Removals and renames are delivered as
// OpRemove as soon as they happen; every other operation is coalesced per path
// and delivered at most once per debounce window.
//
// If path is already gone once the watch is in place, a synthetic OpRemove is
// delivered first so a removal that raced the watch setup is not missed.
func (s *FSNotifySubscriber) Subscribe(path string, debounce time.Duration) (Subscription, error) {
	if debounce <= 0 {
		return nil, fmt.Errorf("debounce must be positive, got %s", debounce)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	sub := &fsSubscription{
		watcher:  watcher,
		debounce: debounce,
		events:   make(chan Event, 1),
		errors:   make(chan error, 1),
		done:     make(chan struct{}),
		logger:   s.logger,
	}

	var initial []Event
	if _, statErr := os.Lstat(target); errors.Is(statErr, fs.ErrNotExist) {
		initial = append(initial, Event{Path: target, Op: OpRemove})
	}

	go sub.run(initial)
	return sub, nil
}

// fsSubscription pumps fsnotify events through a per-path debouncer.
type fsSubscription struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	events   chan Event
	errors   chan error
	done     chan struct{}
	once     sync.Once
	logger   zerolog.Logger
}

func (s *fsSubscription) Events() <-chan Event { return s.events }

func (s *fsSubscription) Errors() <-chan error { return s.errors }

// Close stops the watcher. It is safe to call more than once.
func (s *fsSubscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.watcher.Close()
	})
	return err
}

func (s *fsSubscription) run(initial []Event) {
	defer close(s.events)
	defer close(s.errors)

	for _, ev := range initial {
		if !s.emit(ev) {
			return
		}
	}

	pending := make(map[string]Op)
	var order []string
	var flush <-chan time.Time
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-s.done:
			return

		case raw, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			path := filepath.Clean(raw.Name)
			op := translateOp(raw.Op)
			if op == 0 {
				continue
			}
			if op.Has(OpRemove) {
				if _, queued := pending[path]; queued {
					delete(pending, path)
					order = removePath(order, path)
				}
				if !s.emit(Event{Path: path, Op: OpRemove}) {
					return
				}
				continue
			}
			if _, queued := pending[path]; !queued {
				order = append(order, path)
			}
			pending[path] |= op
			if flush == nil {
				timer = time.NewTimer(s.debounce)
				flush = timer.C
			}

		case <-flush:
			flush = nil
			for _, path := range order {
				if !s.emit(Event{Path: path, Op: pending[path]}) {
					return
				}
			}
			pending = make(map[string]Op)
			order = order[:0]

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			select {
			case s.errors <- err:
			case <-s.done:
			}
			return
		}
	}
}

// emit delivers ev unless the subscription has been closed.
func (s *fsSubscription) emit(ev Event) bool {
	select {
	case s.events <- ev:
		s.logger.Trace().Str("path", ev.Path).Stringer("op", ev.Op).Msg("lock watch event")
		return true
	case <-s.done:
		return false
	}
}

// translateOp maps fsnotify operations onto Op. A rename moves the file away
// from its path, so it is reported as a removal.
func translateOp(op fsnotify.Op) Op {
	var out Op
	if op.Has(fsnotify.Create) {
		out |= OpCreate
	}
	if op.Has(fsnotify.Write) {
		out |= OpWrite
	}
	if op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
		out |= OpRemove
	}
	if op.Has(fsnotify.Chmod) {
		out |= OpChmod
	}
	return out
}

func removePath(order []string, path string) []string {
	for i, p := range order {
		if p == path {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
