package gitexec

import "errors"

// Executor errors surfaced to callers.
var (
	// ErrNotGitRepo indicates the configured directory is not a git
	// repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrCommandTimeout is returned when a git command exceeds its
	// context deadline.
	ErrCommandTimeout = errors.New("git command timed out")

	// ErrEmptyMutation indicates a mutation request with nothing to
	// apply.
	ErrEmptyMutation = errors.New("mutation request is empty")
)
