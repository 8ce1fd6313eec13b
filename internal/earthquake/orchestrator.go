// Package earthquake implements the emergency save procedure: move the work
// in progress onto a fresh branch, commit it if anything is outstanding, and
// push it.
package earthquake

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mrz1836/git-eq/internal/clock"
	eqerrors "github.com/mrz1836/git-eq/internal/errors"
	"github.com/mrz1836/git-eq/internal/git"
)

// Config is the immutable input of a run.
type Config struct {
	// CommitMessage is used for the emergency commit.
	CommitMessage string
}

// Result describes a completed run.
type Result struct {
	// Branch is the branch that was created and pushed.
	Branch BranchName
	// Remote is the remote the branch was pushed to.
	Remote string
	// Committed is true when outstanding changes were committed.
	Committed bool
}

// Orchestrator sequences the git commands of a run.
type Orchestrator struct {
	repo   *git.Repo
	clock  clock.Clock
	logger zerolog.Logger
}

// NewOrchestrator creates an Orchestrator that drives git through runner.
func NewOrchestrator(runner git.Runner, clk clock.Clock, logger zerolog.Logger) *Orchestrator {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Orchestrator{
		repo:   git.NewRepo(runner),
		clock:  clk,
		logger: logger.With().Str("component", "earthquake").Logger(),
	}
}

// step is one fallible stage of a run.
type step struct {
	name string
	run  func(ctx context.Context, st *runState) error
}

// runState carries the values steps compute for later steps.
type runState struct {
	cfg           Config
	currentBranch string
	remote        string
	identity      string
	epoch         uint64
	branch        BranchName
	dirty         bool
}

// steps lists the stages in execution order.
func (o *Orchestrator) steps() []step {
	return []step{
		{"current-branch", o.queryCurrentBranch},
		{"remote", o.queryRemote},
		{"identity", o.queryIdentity},
		{"timestamp", o.captureTimestamp},
		{"branch-name", composeBranchName},
		{"checkout", o.checkout},
		{"status", o.queryStatus},
		{"add", o.stage},
		{"commit", o.commit},
		{"push", o.push},
	}
}

// Run executes every step in order and stops at the first failure.
// Completed steps are not undone.
func (o *Orchestrator) Run(ctx context.Context, cfg Config) (*Result, error) {
	st := &runState{cfg: cfg}

	for _, s := range o.steps() {
		o.logger.Debug().Str("step", s.name).Msg("running step")
		if err := s.run(ctx, st); err != nil {
			o.logger.Debug().Str("step", s.name).Err(err).Msg("step failed")
			return nil, err
		}
	}

	o.logger.Info().
		Str("branch", st.branch.String()).
		Str("remote", st.remote).
		Bool("committed", st.dirty).
		Msg("emergency branch pushed")

	return &Result{
		Branch:    st.branch,
		Remote:    st.remote,
		Committed: st.dirty,
	}, nil
}

func (o *Orchestrator) queryCurrentBranch(ctx context.Context, st *runState) error {
	branch, err := o.repo.CurrentBranch(ctx)
	if err != nil {
		return eqerrors.Wrap(err, "failed to query current branch")
	}
	if branch == "" {
		o.logger.Debug().Msg("no current branch (detached HEAD)")
	}
	st.currentBranch = branch
	return nil
}

func (o *Orchestrator) queryRemote(ctx context.Context, st *runState) error {
	remote, err := o.repo.BranchRemote(ctx, st.currentBranch)
	if err != nil {
		return eqerrors.Wrap(err, "failed to query remote")
	}
	if remote == "" {
		return fmt.Errorf("branch.%s.remote is empty: %w", st.currentBranch, eqerrors.ErrNoRemote)
	}
	st.remote = remote
	return nil
}

func (o *Orchestrator) queryIdentity(ctx context.Context, st *runState) error {
	identity, err := o.repo.UserEmail(ctx)
	if err != nil {
		return eqerrors.Wrap(err, "failed to query user email")
	}
	if identity == "" {
		return fmt.Errorf("user.email is empty: %w", eqerrors.ErrNoIdentity)
	}
	st.identity = identity
	return nil
}

func (o *Orchestrator) captureTimestamp(_ context.Context, st *runState) error {
	epoch, err := clock.UnixEpoch(o.clock)
	if err != nil {
		return err
	}
	st.epoch = epoch
	return nil
}

func composeBranchName(_ context.Context, st *runState) error {
	st.branch = NewBranchName(st.currentBranch, st.identity, st.epoch)
	return nil
}

func (o *Orchestrator) checkout(ctx context.Context, st *runState) error {
	o.logger.Debug().Str("branch", st.branch.String()).Msg("creating emergency branch")
	return eqerrors.Wrapf(o.repo.CheckoutNewBranch(ctx, st.branch.String()), "failed to checkout %s", st.branch)
}

func (o *Orchestrator) queryStatus(ctx context.Context, st *runState) error {
	dirty, err := o.repo.HasUncommittedChanges(ctx)
	if err != nil {
		return eqerrors.Wrap(err, "failed to query status")
	}
	st.dirty = dirty
	if !dirty {
		o.logger.Debug().Msg("no uncommitted changes, skipping add and commit")
	}
	return nil
}

func (o *Orchestrator) stage(ctx context.Context, st *runState) error {
	if !st.dirty {
		return nil
	}
	return eqerrors.Wrap(o.repo.AddAll(ctx), "failed to stage changes")
}

func (o *Orchestrator) commit(ctx context.Context, st *runState) error {
	if !st.dirty {
		return nil
	}
	return eqerrors.Wrap(o.repo.Commit(ctx, st.cfg.CommitMessage), "failed to commit")
}

func (o *Orchestrator) push(ctx context.Context, st *runState) error {
	o.logger.Debug().Str("remote", st.remote).Str("branch", st.branch.String()).Msg("pushing emergency branch")
	return eqerrors.Wrapf(o.repo.Push(ctx, st.remote, st.branch.String()), "failed to push %s to %s", st.branch, st.remote)
}
