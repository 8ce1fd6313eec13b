package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eqerrors "github.com/mrz1836/git-eq/internal/errors"
)

// testError is a custom error type used to test default branches
// in Actionable without matching any sentinel.
type testError struct {
	msg string
}

func (e testError) Error() string {
	return e.msg
}

func TestSentinelErrors_Messages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"ErrConfiguration", eqerrors.ErrConfiguration, "git configuration missing"},
		{"ErrNoRemote", eqerrors.ErrNoRemote, "no remote configured: git configuration missing"},
		{"ErrNoIdentity", eqerrors.ErrNoIdentity, "no identity configured: git configuration missing"},
		{"ErrProcess", eqerrors.ErrProcess, "git process failed"},
		{"ErrEncoding", eqerrors.ErrEncoding, "git output is not valid utf-8"},
		{"ErrClock", eqerrors.ErrClock, "system clock is before unix epoch"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.err.Error())
		})
	}
}

func TestSentinelErrors_ConfigurationFamily(t *testing.T) {
	require.ErrorIs(t, eqerrors.ErrNoRemote, eqerrors.ErrConfiguration)
	require.ErrorIs(t, eqerrors.ErrNoIdentity, eqerrors.ErrConfiguration)
	assert.NotErrorIs(t, eqerrors.ErrNoRemote, eqerrors.ErrNoIdentity)
	assert.NotErrorIs(t, eqerrors.ErrProcess, eqerrors.ErrConfiguration)
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		eqerrors.ErrConfiguration,
		eqerrors.ErrProcess,
		eqerrors.ErrEncoding,
		eqerrors.ErrClock,
		eqerrors.ErrConfigInvalid,
		eqerrors.ErrInvalidOutputFormat,
		eqerrors.ErrUsage,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.NotErrorIs(t, a, b, "%v should not match %v", a, b)
		}
	}
}

func TestWrap_PreservesErrorChain(t *testing.T) {
	wrapped := eqerrors.Wrap(eqerrors.ErrNoIdentity, "query identity")

	require.ErrorIs(t, wrapped, eqerrors.ErrNoIdentity)
	require.ErrorIs(t, wrapped, eqerrors.ErrConfiguration)
	assert.Equal(t, "query identity: no identity configured: git configuration missing", wrapped.Error())
}

func TestWrap_NilError(t *testing.T) {
	assert.NoError(t, eqerrors.Wrap(nil, "should not appear"))
}

func TestWrapf_MessageFormat(t *testing.T) {
	wrapped := eqerrors.Wrapf(eqerrors.ErrProcess, "push %s to %s", "earthquake/main", "origin")

	require.ErrorIs(t, wrapped, eqerrors.ErrProcess)
	assert.Equal(t, "push earthquake/main to origin: git process failed", wrapped.Error())
}

func TestWrapf_NilError(t *testing.T) {
	assert.NoError(t, eqerrors.Wrapf(nil, "branch %s", "main"))
}

func TestActionable_Messages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"no remote", eqerrors.ErrNoRemote, "no remote"},
		{"no identity", eqerrors.ErrNoIdentity, "user email"},
		{"process", eqerrors.ErrProcess, "Could not run git"},
		{"encoding", eqerrors.ErrEncoding, "UTF-8"},
		{"clock", eqerrors.ErrClock, "1970"},
		{"usage", fmt.Errorf("%w: unknown shorthand flag: 'w' in -wip", eqerrors.ErrUsage), "could not be parsed"},
		{"wrapped remote", fmt.Errorf("step remote: %w", eqerrors.ErrNoRemote), "no remote"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msg, _ := eqerrors.Actionable(tc.err)
			assert.Contains(t, msg, tc.contains)
		})
	}
}

func TestActionable(t *testing.T) {
	msg, action := eqerrors.Actionable(fmt.Errorf("wrapped: %w", eqerrors.ErrNoIdentity))
	assert.NotEmpty(t, msg)
	assert.Contains(t, action, "user.email")

	msg, action = eqerrors.Actionable(nil)
	assert.Empty(t, msg)
	assert.Empty(t, action)

	msg, action = eqerrors.Actionable(testError{msg: "plain"})
	assert.Equal(t, "plain", msg)
	assert.Empty(t, action)
}

func TestExitCode2Error(t *testing.T) {
	inner := errors.New("bad flag") //nolint:err113 // test error
	err := eqerrors.NewExitCode2Error(inner)

	assert.Equal(t, "bad flag", err.Error())
	require.ErrorIs(t, err, inner)
	assert.True(t, eqerrors.IsExitCode2Error(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, eqerrors.IsExitCode2Error(inner))
	assert.False(t, eqerrors.IsExitCode2Error(nil))
}
