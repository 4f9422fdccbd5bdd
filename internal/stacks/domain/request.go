package domain

// AmendEntry is one file's contribution to an amend request.
type AmendEntry struct {
	// PreviousPath is the pre-rename path, or nil when no rename
	// information is carried. Hunk drops always pass nil.
	PreviousPath *string

	Path string

	// Headers selects the hunks to take from the file. An empty list
	// means "take the whole file".
	Headers []HunkHeader
}

// AmendRequest asks the backend to add the listed changes to an
// existing commit without creating a new one.
type AmendRequest struct {
	StackID  string
	CommitID CommitID
	Entries  []AmendEntry
}

// MoveOwnershipRequest asks the backend to transfer the claimed changes
// from one commit to another within the same stack.
type MoveOwnershipRequest struct {
	StackID   string
	Source    CommitID
	Dest      CommitID
	Ownership Ownership
}

// SquashRequest asks the backend to merge the source commit's changes
// into the destination commit, removing the source from history.
type SquashRequest struct {
	StackID string
	Source  CommitID
	Dest    CommitID
}
