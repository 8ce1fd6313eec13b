// Package git drives the git executable for git-eq.
// This file implements CLIRunner, the os/exec backed Runner.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/mrz1836/git-eq/internal/constants"
	"github.com/mrz1836/git-eq/internal/ctxutil"
	eqerrors "github.com/mrz1836/git-eq/internal/errors"
)

// CLIRunnerOptions configures a CLIRunner. Zero values fall back to defaults.
type CLIRunnerOptions struct {
	// Binary is the git executable (default: "git").
	Binary string
	// WorkDir is the directory git runs in (default: the process's).
	WorkDir string
	// Waiter is consulted before every Spawn. Nil disables lock waiting.
	Waiter LockWaiter
	// Stdout and Stderr receive spawned git output (default: os.Stdout, os.Stderr).
	Stdout io.Writer
	Stderr io.Writer
	// Logger receives debug traces of every invocation.
	Logger zerolog.Logger
}

// CLIRunner implements Runner using the git CLI.
type CLIRunner struct {
	binary  string
	workDir string
	waiter  LockWaiter
	stdout  io.Writer
	stderr  io.Writer
	logger  zerolog.Logger
}

// Compile-time interface check.
var _ Runner = (*CLIRunner)(nil)

// NewCLIRunner creates a CLIRunner from opts.
func NewCLIRunner(opts CLIRunnerOptions) *CLIRunner {
	r := &CLIRunner{
		binary:  opts.Binary,
		workDir: opts.WorkDir,
		waiter:  opts.Waiter,
		stdout:  opts.Stdout,
		stderr:  opts.Stderr,
		logger:  opts.Logger.With().Str("component", "git").Logger(),
	}
	if r.binary == "" {
		r.binary = constants.DefaultGitBinary
	}
	if r.stdout == nil {
		r.stdout = os.Stdout
	}
	if r.stderr == nil {
		r.stderr = os.Stderr
	}
	return r
}

// Output runs git in capture mode.
func (r *CLIRunner) Output(ctx context.Context, args ...string) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, r.binary, args...) //#nosec G204 -- args are constructed internally
	cmd.Dir = r.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug().Strs("args", args).Msg("running git")
	if err := cmd.Run(); err != nil {
		if !r.tolerateExit(err, args, stderr.String()) {
			return "", processError(args, err)
		}
	}

	if !utf8.Valid(stdout.Bytes()) {
		return "", fmt.Errorf("%s %s: %w", r.binary, subcommand(args), eqerrors.ErrEncoding)
	}

	return TrimLineEnding(stdout.String()), nil
}

// Spawn runs git in fire-and-forget mode. If the index lock file exists it
// first blocks on the waiter until the file is removed.
func (r *CLIRunner) Spawn(ctx context.Context, args ...string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	if err := r.waitForLock(ctx); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, r.binary, args...) //#nosec G204 -- args are constructed internally
	cmd.Dir = r.workDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	r.logger.Debug().Strs("args", args).Msg("spawning git")
	if err := cmd.Start(); err != nil {
		return processError(args, err)
	}
	if err := cmd.Wait(); err != nil {
		if !r.tolerateExit(err, args, "") {
			return processError(args, err)
		}
	}
	return nil
}

// waitForLock blocks while the index lock exists. Failing to locate the lock
// is an error; failing to observe it is not.
func (r *CLIRunner) waitForLock(ctx context.Context) error {
	if r.waiter == nil {
		return nil
	}

	lockPath, err := LockPath(ctx, r)
	if err != nil {
		return fmt.Errorf("failed to locate index lock: %w", err)
	}

	if r.workDir != "" && !filepath.IsAbs(lockPath) {
		lockPath = filepath.Join(r.workDir, lockPath)
	}

	if _, statErr := os.Stat(lockPath); statErr != nil {
		return nil
	}

	r.waiter.WaitUntilReleased(lockPath)
	return nil
}

// tolerateExit reports whether err is only a non-zero exit status, which is
// logged and ignored.
func (r *CLIRunner) tolerateExit(err error, args []string, stderr string) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	event := r.logger.Warn().
		Strs("args", args).
		Int("exit_code", exitErr.ExitCode())
	if s := strings.TrimSpace(stderr); s != "" {
		event = event.Str("stderr", s)
	}
	event.Msg("git exited with non-zero status")
	return true
}

// TrimLineEnding removes exactly one trailing "\n", together with a "\r"
// immediately before it. Nothing else is trimmed.
func TrimLineEnding(s string) string {
	if !strings.HasSuffix(s, "\n") {
		return s
	}
	s = s[:len(s)-1]
	return strings.TrimSuffix(s, "\r")
}

func processError(args []string, err error) error {
	return fmt.Errorf("git %s: %w: %w", subcommand(args), eqerrors.ErrProcess, err)
}

func subcommand(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
