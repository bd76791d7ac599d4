// Package history versions a deck root in a local git repository, so every
// review session and card edit can be inspected and reverted with git.
package history

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	authorName  = "kioku"
	authorEmail = "kioku@localhost"
)

// Init makes dir a git repository unless it already is one.
func Init(dir string) error {
	_, err := git.PlainInit(dir, false)
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to init repo at %s: %w", dir, err)
	}
	slog.Info("Initialised deck history", "path", dir)
	return nil
}

// Commit stages every change under the repository containing dir and commits
// it. It returns false without error when dir is not inside a repository or
// nothing changed.
func Commit(dir, message string, when time.Time) (bool, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to open repo at %s: %w", dir, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("failed to get worktree for repo at %s: %w", dir, err)
	}

	if err := worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return false, fmt.Errorf("failed to stage changes in %s: %w", dir, err)
	}

	status, err := worktree.Status()
	if err != nil {
		return false, fmt.Errorf("failed to get status of %s: %w", dir, err)
	}
	if status.IsClean() {
		return false, nil
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: authorName, Email: authorEmail, When: when},
	})
	if err != nil {
		return false, fmt.Errorf("failed to commit in %s: %w", dir, err)
	}
	slog.Info("Committed deck history", "path", dir, "commit", hash.String()[:7])
	return true, nil
}
