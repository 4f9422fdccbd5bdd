package application

import (
	"time"

	"github.com/zjrosen/stax/internal/stacks/domain"
)

// MutationKind labels the kind of a journaled mutation.
type MutationKind string

const (
	KindAmend         MutationKind = "amend"
	KindMoveOwnership MutationKind = "move_ownership"
	KindSquash        MutationKind = "squash"
)

// MutationStatus tracks a journaled mutation through its lifecycle.
type MutationStatus string

const (
	StatusQueued  MutationStatus = "queued"
	StatusApplied MutationStatus = "applied"
	StatusFailed  MutationStatus = "failed"
)

// MutationRecord is the journal entry for one dispatched mutation.
type MutationRecord struct {
	ID      string
	Kind    MutationKind
	StackID string
	Source  domain.CommitID
	Dest    domain.CommitID

	// Detail is a JSON rendering of the full request for display and
	// debugging. The journal does not interpret it.
	Detail string

	Status     MutationStatus
	Error      string
	CreatedAt  time.Time
	FinishedAt time.Time
}

// JournalRecorder persists the lifecycle of dispatched mutations.
type JournalRecorder interface {
	// Record inserts a new entry in StatusQueued.
	Record(rec MutationRecord) error

	// MarkApplied transitions an entry to StatusApplied.
	MarkApplied(id string) error

	// MarkFailed transitions an entry to StatusFailed with the error
	// message.
	MarkFailed(id string, cause error) error

	// Recent returns the newest entries, up to limit.
	Recent(limit int) ([]MutationRecord, error)
}
