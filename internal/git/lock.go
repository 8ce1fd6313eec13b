// Package git drives the git executable for git-eq.
// This file locates the index lock file git holds while it mutates the index.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrz1836/git-eq/internal/constants"
)

// ErrInvalidGitdirFormat indicates a .git file has an invalid format.
var ErrInvalidGitdirFormat = errors.New("invalid gitdir file format")

// LockPath returns the index lock path of the working copy r runs in:
// <toplevel>/.git/index.lock, or the linked worktree's own git directory when
// .git is a file.
func LockPath(ctx context.Context, r Runner) (string, error) {
	topLevel, err := TopLevel(ctx, r)
	if err != nil {
		return "", err
	}

	dotGit := filepath.Join(topLevel, constants.GitDirName)
	gitDir, err := resolveGitDir(dotGit)
	if err != nil {
		// Missing or unreadable .git: keep the conventional location.
		gitDir = dotGit
	}

	return filepath.Join(gitDir, constants.IndexLockFileName), nil
}

// resolveGitDir resolves the actual git directory path.
// In a normal repo, path points to a .git directory and is returned as-is.
// In a linked worktree, path points to a .git file containing
// "gitdir: /path/to/actual/gitdir"; relative targets resolve against the
// directory holding the .git file.
func resolveGitDir(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	if info.IsDir() {
		return path, nil
	}

	// #nosec G304 -- path is the working copy's own .git file
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	line := strings.TrimSpace(string(content))
	if !strings.HasPrefix(line, constants.GitdirPrefix) {
		return "", fmt.Errorf("%w: %s", ErrInvalidGitdirFormat, path)
	}

	target := strings.TrimPrefix(line, constants.GitdirPrefix)
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return filepath.Clean(target), nil
}
