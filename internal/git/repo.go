// Package git drives the git executable for git-eq.
// This file names the git invocations git-eq issues.
package git

import (
	"context"
	"fmt"
)

// Repo issues git-eq's git commands through a Runner. Queries use capture
// mode; commands that change the repository use Spawn.
type Repo struct {
	runner Runner
}

// NewRepo creates a Repo that runs commands through r.
func NewRepo(r Runner) *Repo {
	return &Repo{runner: r}
}

// CurrentBranch returns the checked out branch name. A detached HEAD yields
// an empty string, not an error.
func (g *Repo) CurrentBranch(ctx context.Context) (string, error) {
	return g.runner.Output(ctx, "branch", "--show-current")
}

// ConfigValue returns the value of a git configuration key, or an empty
// string when the key is unset.
func (g *Repo) ConfigValue(ctx context.Context, key string) (string, error) {
	return g.runner.Output(ctx, "config", "--get", key)
}

// BranchRemote returns branch.<branch>.remote.
func (g *Repo) BranchRemote(ctx context.Context, branch string) (string, error) {
	return g.ConfigValue(ctx, fmt.Sprintf("branch.%s.remote", branch))
}

// UserEmail returns user.email.
func (g *Repo) UserEmail(ctx context.Context) (string, error) {
	return g.ConfigValue(ctx, "user.email")
}

// HasUncommittedChanges reports whether the short porcelain status lists anything.
func (g *Repo) HasUncommittedChanges(ctx context.Context) (bool, error) {
	out, err := g.runner.Output(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// CheckoutNewBranch creates name at the current position and switches to it.
func (g *Repo) CheckoutNewBranch(ctx context.Context, name string) error {
	return g.runner.Spawn(ctx, "checkout", "-b", name)
}

// AddAll stages every change in the working copy, including files outside
// the current directory.
func (g *Repo) AddAll(ctx context.Context) error {
	return g.runner.Spawn(ctx, "add", "--all")
}

// Commit records the staged changes without GPG signing and without running
// the pre-commit and commit-msg hooks.
func (g *Repo) Commit(ctx context.Context, message string) error {
	return g.runner.Spawn(ctx, "commit", "--no-gpg-sign", "--no-verify", "-m", message)
}

// Push pushes branch to remote and sets it as the upstream.
func (g *Repo) Push(ctx context.Context, remote, branch string) error {
	return g.runner.Spawn(ctx, "push", "-u", remote, branch)
}

// TopLevel returns the output of rev-parse --show-toplevel.
func TopLevel(ctx context.Context, r Runner) (string, error) {
	return r.Output(ctx, "rev-parse", "--show-toplevel")
}
