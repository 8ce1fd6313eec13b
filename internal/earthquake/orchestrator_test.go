package earthquake

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/git-eq/internal/constants"
	eqerrors "github.com/mrz1836/git-eq/internal/errors"
	"github.com/mrz1836/git-eq/internal/git/gittest"
	"github.com/mrz1836/git-eq/internal/testutil"
)

const testEpoch = 1652438295

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

// scriptedRepo returns a runner answering the read-only queries of a healthy
// working copy on branch main.
func scriptedRepo(status string) *gittest.FakeRunner {
	return gittest.NewFakeRunner().
		SetOutput("main", "branch", "--show-current").
		SetOutput("origin", "config", "--get", "branch.main.remote").
		SetOutput("bob@x.com", "config", "--get", "user.email").
		SetOutput(status, "status", "--porcelain")
}

func newTestOrchestrator(runner *gittest.FakeRunner) *Orchestrator {
	return NewOrchestrator(runner, fixedClock{at: time.Unix(testEpoch, 0)}, zerolog.Nop())
}

func TestOrchestrator_CleanWorkingCopy(t *testing.T) {
	t.Parallel()

	runner := scriptedRepo("")
	result, err := newTestOrchestrator(runner).Run(context.Background(), Config{CommitMessage: "msg"})
	require.NoError(t, err)

	assert.Equal(t, "earthquake/main-bob@x.com-1652438295", result.Branch.String())
	assert.Equal(t, "origin", result.Remote)
	assert.False(t, result.Committed)

	assert.Equal(t, [][]string{
		{"checkout", "-b", "earthquake/main-bob@x.com-1652438295"},
		{"push", "-u", "origin", "earthquake/main-bob@x.com-1652438295"},
	}, runner.SpawnCalls())
}

func TestOrchestrator_DirtyWorkingCopy(t *testing.T) {
	t.Parallel()

	runner := scriptedRepo(" M main.go")
	result, err := newTestOrchestrator(runner).Run(context.Background(), Config{CommitMessage: constants.DefaultCommitMessage})
	require.NoError(t, err)
	assert.True(t, result.Committed)

	assert.Equal(t, [][]string{
		{"checkout", "-b", "earthquake/main-bob@x.com-1652438295"},
		{"add", "--all"},
		{"commit", "--no-gpg-sign", "--no-verify", "-m", constants.DefaultCommitMessage},
		{"push", "-u", "origin", "earthquake/main-bob@x.com-1652438295"},
	}, runner.SpawnCalls())
}

func TestOrchestrator_CallOrder(t *testing.T) {
	t.Parallel()

	runner := scriptedRepo("?? new.txt")
	_, err := newTestOrchestrator(runner).Run(context.Background(), Config{CommitMessage: "m"})
	require.NoError(t, err)

	var got []string
	for _, c := range runner.Calls() {
		got = append(got, c.String())
	}
	assert.Equal(t, []string{
		"output: branch --show-current",
		"output: config --get branch.main.remote",
		"output: config --get user.email",
		"spawn: checkout -b earthquake/main-bob@x.com-1652438295",
		"output: status --porcelain",
		"spawn: add --all",
		"spawn: commit --no-gpg-sign --no-verify -m m",
		"spawn: push -u origin earthquake/main-bob@x.com-1652438295",
	}, got)
}

func TestOrchestrator_DetachedHead(t *testing.T) {
	t.Parallel()

	runner := gittest.NewFakeRunner().
		SetOutput("", "branch", "--show-current").
		SetOutput("origin", "config", "--get", "branch..remote").
		SetOutput("bob@x.com", "config", "--get", "user.email")

	result, err := newTestOrchestrator(runner).Run(context.Background(), Config{CommitMessage: "m"})
	require.NoError(t, err)
	assert.Equal(t, "earthquake/-bob@x.com-1652438295", result.Branch.String())
}

func TestOrchestrator_MissingConfiguration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		runner  *gittest.FakeRunner
		wantErr error
	}{
		{
			name: "no remote",
			runner: gittest.NewFakeRunner().
				SetOutput("main", "branch", "--show-current").
				SetOutput("bob@x.com", "config", "--get", "user.email"),
			wantErr: eqerrors.ErrNoRemote,
		},
		{
			name: "no identity",
			runner: gittest.NewFakeRunner().
				SetOutput("main", "branch", "--show-current").
				SetOutput("origin", "config", "--get", "branch.main.remote"),
			wantErr: eqerrors.ErrNoIdentity,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result, err := newTestOrchestrator(tc.runner).Run(context.Background(), Config{CommitMessage: "m"})
			require.ErrorIs(t, err, tc.wantErr)
			require.ErrorIs(t, err, eqerrors.ErrConfiguration)
			assert.Nil(t, result)
			assert.Empty(t, tc.runner.SpawnCalls(), "no mutating command may run")
		})
	}
}

func TestOrchestrator_ClockBeforeEpoch(t *testing.T) {
	t.Parallel()

	runner := scriptedRepo("")
	o := NewOrchestrator(runner, fixedClock{at: time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC)}, zerolog.Nop())

	_, err := o.Run(context.Background(), Config{CommitMessage: "m"})
	require.ErrorIs(t, err, eqerrors.ErrClock)
	assert.Empty(t, runner.SpawnCalls())
}

func TestOrchestrator_AbortsOnFirstFailure(t *testing.T) {
	t.Parallel()

	const branch = "earthquake/main-bob@x.com-1652438295"

	tests := []struct {
		name      string
		configure func(r *gittest.FakeRunner)
		wantSpawn [][]string
	}{
		{
			name: "current branch query fails",
			configure: func(r *gittest.FakeRunner) {
				r.SetOutputError(testutil.ErrMockSpawn, "branch", "--show-current")
			},
		},
		{
			name: "checkout fails",
			configure: func(r *gittest.FakeRunner) {
				r.SetSpawnError(testutil.ErrMockSpawn, "checkout", "-b", branch)
			},
			wantSpawn: [][]string{{"checkout", "-b", branch}},
		},
		{
			name: "status fails",
			configure: func(r *gittest.FakeRunner) {
				r.SetOutputError(testutil.ErrMockSpawn, "status", "--porcelain")
			},
			wantSpawn: [][]string{{"checkout", "-b", branch}},
		},
		{
			name: "add fails",
			configure: func(r *gittest.FakeRunner) {
				r.SetSpawnError(testutil.ErrMockSpawn, "add", "--all")
			},
			wantSpawn: [][]string{{"checkout", "-b", branch}, {"add", "--all"}},
		},
		{
			name: "commit fails",
			configure: func(r *gittest.FakeRunner) {
				r.SetSpawnError(testutil.ErrMockSpawn, "commit", "--no-gpg-sign", "--no-verify", "-m", "m")
			},
			wantSpawn: [][]string{
				{"checkout", "-b", branch},
				{"add", "--all"},
				{"commit", "--no-gpg-sign", "--no-verify", "-m", "m"},
			},
		},
		{
			name: "push fails",
			configure: func(r *gittest.FakeRunner) {
				r.SetSpawnError(testutil.ErrMockSpawn, "push", "-u", "origin", branch)
			},
			wantSpawn: [][]string{
				{"checkout", "-b", branch},
				{"add", "--all"},
				{"commit", "--no-gpg-sign", "--no-verify", "-m", "m"},
				{"push", "-u", "origin", branch},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			runner := scriptedRepo(" M a.go")
			tc.configure(runner)

			_, err := newTestOrchestrator(runner).Run(context.Background(), Config{CommitMessage: "m"})
			require.ErrorIs(t, err, testutil.ErrMockSpawn)
			assert.Equal(t, tc.wantSpawn, runner.SpawnCalls())
		})
	}
}

func TestOrchestrator_SameBranchForCheckoutAndPush(t *testing.T) {
	t.Parallel()

	runner := scriptedRepo("")
	o := NewOrchestrator(runner, &tickingClock{next: time.Unix(testEpoch, 0)}, zerolog.Nop())

	_, err := o.Run(context.Background(), Config{CommitMessage: "m"})
	require.NoError(t, err)

	spawns := runner.SpawnCalls()
	require.Len(t, spawns, 2)
	assert.Equal(t, spawns[0][2], spawns[1][3])
}

func TestOrchestrator_LogsSteps(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	o := NewOrchestrator(scriptedRepo(""), fixedClock{at: time.Unix(testEpoch, 0)}, zerolog.New(&buf).Level(zerolog.DebugLevel))

	_, err := o.Run(context.Background(), Config{CommitMessage: "m"})
	require.NoError(t, err)

	logs := buf.String()
	assert.Contains(t, logs, `"step":"checkout"`)
	assert.Contains(t, logs, `"step":"push"`)
	assert.Contains(t, logs, "emergency branch pushed")
}

func TestNewOrchestrator_DefaultsToRealClock(t *testing.T) {
	t.Parallel()

	o := NewOrchestrator(gittest.NewFakeRunner(), nil, zerolog.Nop())
	assert.NotNil(t, o.clock)
}

// tickingClock advances one second on every reading.
type tickingClock struct{ next time.Time }

func (c *tickingClock) Now() time.Time {
	now := c.next
	c.next = c.next.Add(time.Second)
	return now
}
