package cli

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/mrz1836/git-eq/internal/clock"
	"github.com/mrz1836/git-eq/internal/config"
	"github.com/mrz1836/git-eq/internal/git"
	"github.com/mrz1836/git-eq/internal/lockwait"
)

// services holds the collaborators the root command builds a run from.
// Tests replace individual fields.
type services struct {
	// workDir is the directory git runs in; empty means the process's.
	workDir string

	clock      clock.Clock
	loadConfig func(ctx context.Context) (*config.Config, error)
	initLogger func(verbose, quiet bool) (zerolog.Logger, io.Closer)
	newRunner  func(cfg *config.Config, workDir string, logger zerolog.Logger, stdout, stderr io.Writer) git.Runner
}

func defaultServices() *services {
	return &services{
		clock:      clock.RealClock{},
		loadConfig: config.Load,
		initLogger: InitLogger,
		newRunner:  newCLIRunner,
	}
}

// newCLIRunner builds the exec-backed runner. Unless lock waiting is
// disabled, every mutating command first waits for index.lock to go away.
func newCLIRunner(cfg *config.Config, workDir string, logger zerolog.Logger, stdout, stderr io.Writer) git.Runner {
	opts := git.CLIRunnerOptions{
		Binary:  cfg.Git.Binary,
		WorkDir: workDir,
		Stdout:  stdout,
		Stderr:  stderr,
		Logger:  logger,
	}
	if cfg.Lock.Wait {
		opts.Waiter = lockwait.New(lockwait.NewFSNotifySubscriber(logger), cfg.Lock.Debounce, logger)
	}
	return git.NewCLIRunner(opts)
}
