// Package application defines the ports between the drop-evaluation
// core and the version-control backend, plus the dispatcher that
// carries mutation requests across that boundary asynchronously.
package application

import (
	"context"

	"github.com/zjrosen/stax/internal/stacks/domain"
)

// MutationController executes history-editing requests against the
// version-control backend. Implementations are expected to be slow;
// callers on the UI thread should go through the Dispatcher instead of
// invoking a backend implementation directly.
type MutationController interface {
	// Amend adds the entries' changes to an existing commit.
	Amend(ctx context.Context, req domain.AmendRequest) error

	// MoveOwnership transfers the claimed changes between two commits
	// of the same stack.
	MoveOwnership(ctx context.Context, req domain.MoveOwnershipRequest) error

	// Squash merges the source commit into the destination commit.
	Squash(ctx context.Context, req domain.SquashRequest) error
}

// StackReader loads workspace state from the version-control backend.
type StackReader interface {
	// ListStacks returns every stack in the workspace with detailed
	// commit entries, newest commit first.
	ListStacks(ctx context.Context) ([]domain.Stack, error)

	// WorkingChanges returns the uncommitted file changes, one entry
	// per changed path.
	WorkingChanges(ctx context.Context) ([]domain.FileEntry, error)

	// CurrentStack returns the id of the checked-out stack. Working
	// tree changes belong to it.
	CurrentStack(ctx context.Context) (string, error)
}

// DiffReader computes hunk boundaries for uncommitted file changes.
type DiffReader interface {
	// FileHunks returns the hunks of the working-tree change to path,
	// relative to the last committed version.
	FileHunks(ctx context.Context, path string) ([]domain.HunkHeader, error)
}
