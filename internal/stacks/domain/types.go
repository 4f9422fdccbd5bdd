package domain

import "time"

// CommitID identifies a commit by content hash. The empty value is the
// uncommitted sentinel used for working-tree changes that have no
// commit yet.
type CommitID string

// Uncommitted reports whether the ID is the uncommitted sentinel.
func (id CommitID) Uncommitted() bool {
	return id == ""
}

// Short returns the 7-character abbreviated hash for display.
func (id CommitID) Short() string {
	if len(id) <= 7 {
		return string(id)
	}
	return string(id[:7])
}

// Target is the commit a payload is dropped onto. It is a closed union:
// the only implementations are Ref and Commit. A Ref is a history-only
// entry and never a valid target for amend or squash; only a Commit
// carries the mutable-state detail needed to decide a drop.
type Target interface {
	isTarget()

	// TargetID returns the commit id of the drop target.
	TargetID() CommitID
}

// Ref is a lightweight reference to a commit in history. It carries no
// conflict, remote, or integration detail and therefore rejects every
// history-editing drop.
type Ref struct {
	ID CommitID
}

func (Ref) isTarget() {}

// TargetID returns the referenced commit id.
func (r Ref) TargetID() CommitID { return r.ID }

// Commit is a detailed, currently-editable commit entry.
type Commit struct {
	ID CommitID

	// Conflicted is true while the commit has unresolved conflicts.
	Conflicted bool

	// IsRemote is true when the commit exists on the remote, i.e.
	// rewriting it rewrites published history.
	IsRemote bool

	// IsIntegrated is true when the commit is already merged into the
	// upstream target. Integrated commits are immutable.
	IsIntegrated bool

	Subject string
	Author  string
	Date    time.Time
}

func (Commit) isTarget() {}

// TargetID returns the commit id.
func (c Commit) TargetID() CommitID { return c.ID }

// Stack is an ordered, named lineage of commits manipulated as a unit.
// Commits are ordered newest first, matching the rendered card order.
type Stack struct {
	ID      string
	Name    string
	Commits []Commit
}

// Project carries workspace-level policy consulted during drop
// evaluation.
type Project struct {
	// Title is the display name of the workspace.
	Title string

	// Path is the repository root on disk.
	Path string

	// ForcePushAllowed permits rewriting commits that already exist on
	// the remote. When false, drops onto remote commits are rejected.
	ForcePushAllowed bool
}
