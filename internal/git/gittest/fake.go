// Package gittest provides a scripted git.Runner for tests.
package gittest

import (
	"context"
	"strings"
	"sync"
)

// Mode identifies which Runner method recorded a call.
type Mode string

// Runner modes.
const (
	ModeOutput Mode = "output"
	ModeSpawn  Mode = "spawn"
)

// Call is one recorded invocation.
type Call struct {
	Mode Mode
	Args []string
}

// String renders the call as "spawn: checkout -b name".
func (c Call) String() string {
	return string(c.Mode) + ": " + strings.Join(c.Args, " ")
}

// FakeRunner records every call and answers from scripted responses keyed by
// the space-joined argument list. Unscripted Output calls return "".
type FakeRunner struct {
	mu        sync.Mutex
	calls     []Call
	outputs   map[string]string
	outputErr map[string]error
	spawnErr  map[string]error
}

// NewFakeRunner creates an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		outputs:   make(map[string]string),
		outputErr: make(map[string]error),
		spawnErr:  make(map[string]error),
	}
}

// SetOutput scripts the captured output of args.
func (f *FakeRunner) SetOutput(output string, args ...string) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outputs[key(args)] = output
	return f
}

// SetOutputError scripts an Output failure for args.
func (f *FakeRunner) SetOutputError(err error, args ...string) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outputErr[key(args)] = err
	return f
}

// SetSpawnError scripts a Spawn failure for args.
func (f *FakeRunner) SetSpawnError(err error, args ...string) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spawnErr[key(args)] = err
	return f
}

// Output implements git.Runner.
func (f *FakeRunner) Output(_ context.Context, args ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Mode: ModeOutput, Args: append([]string(nil), args...)})
	if err := f.outputErr[key(args)]; err != nil {
		return "", err
	}
	return f.outputs[key(args)], nil
}

// Spawn implements git.Runner.
func (f *FakeRunner) Spawn(_ context.Context, args ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Mode: ModeSpawn, Args: append([]string(nil), args...)})
	return f.spawnErr[key(args)]
}

// Calls returns a copy of every recorded call in order.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// SpawnCalls returns the argument lists of recorded Spawn calls in order.
func (f *FakeRunner) SpawnCalls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out [][]string
	for _, c := range f.calls {
		if c.Mode == ModeSpawn {
			out = append(out, c.Args)
		}
	}
	return out
}

func key(args []string) string {
	return strings.Join(args, " ")
}
