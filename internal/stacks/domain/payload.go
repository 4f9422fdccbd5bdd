package domain

// HunkHeader locates a single diff region by its line ranges in the old
// and new versions of a file. All four values are non-negative.
type HunkHeader struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
}

// FileOrigin distinguishes where a dragged file change came from.
type FileOrigin int

const (
	// OriginWorkingTree marks uncommitted, mutable changes.
	OriginWorkingTree FileOrigin = iota
	// OriginCommitted marks changes that belong to a prior commit.
	OriginCommitted
)

// String returns a human-readable representation of the origin.
func (o FileOrigin) String() string {
	switch o {
	case OriginWorkingTree:
		return "working-tree"
	case OriginCommitted:
		return "committed"
	default:
		return "unknown"
	}
}

// FileEntry is one whole-file change inside a FilePayload.
type FileEntry struct {
	Path string

	// PreviousPath is set when the change renames the file. Empty for
	// adds and in-place edits.
	PreviousPath string
}

// Payload describes what is being dragged. It is a closed union: the
// only implementations are HunkPayload, FilePayload, and CommitPayload.
// Evaluation fails closed, so a payload kind outside this union is
// never accepted.
type Payload interface {
	isPayload()

	// Stack returns the id of the stack the payload originates from.
	Stack() string
}

// HunkPayload is a single dragged diff region.
type HunkPayload struct {
	StackID string

	// CommitID is the source commit, or the uncommitted sentinel when
	// the hunk comes from the working tree.
	CommitID CommitID

	FilePath string
	Header   HunkHeader
}

func (HunkPayload) isPayload() {}

// Stack returns the owning stack id.
func (p HunkPayload) Stack() string { return p.StackID }

// FilePayload is one or more dragged whole-file changes.
type FilePayload struct {
	StackID string
	Origin  FileOrigin

	// Commit is the source commit for OriginCommitted payloads. It is
	// the uncommitted sentinel for working-tree payloads.
	Commit CommitID

	Files []FileEntry
}

func (FilePayload) isPayload() {}

// Stack returns the owning stack id.
func (p FilePayload) Stack() string { return p.StackID }

// CommitPayload is a dragged commit.
type CommitPayload struct {
	StackID string
	Commit  Commit
}

func (CommitPayload) isPayload() {}

// Stack returns the owning stack id.
func (p CommitPayload) Stack() string { return p.StackID }
