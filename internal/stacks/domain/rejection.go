package domain

// RejectionReason says why a drop was not accepted.
type RejectionReason int

const (
	// ReasonNone means the drop was accepted.
	ReasonNone RejectionReason = iota

	// ReasonNotEditable means the target is a history-only reference
	// with no mutable-state detail.
	ReasonNotEditable

	// ReasonRemoteProtected means the target exists on the remote and
	// the project disallows force-push.
	ReasonRemoteProtected

	// ReasonIntegrated means the target is already merged upstream.
	ReasonIntegrated

	// ReasonConflicted means the target or the dragged commit has
	// unresolved conflicts.
	ReasonConflicted

	// ReasonCrossStack means payload and target belong to different
	// stacks.
	ReasonCrossStack

	// ReasonSelfTarget means the payload originates from the target
	// commit itself.
	ReasonSelfTarget

	// ReasonUnsupportedPayload means the payload kind cannot serve this
	// drop.
	ReasonUnsupportedPayload
)

// String returns a human-readable representation of the reason.
func (r RejectionReason) String() string {
	switch r {
	case ReasonNone:
		return "accepted"
	case ReasonNotEditable:
		return "target is not editable"
	case ReasonRemoteProtected:
		return "target is on the remote and force-push is disallowed"
	case ReasonIntegrated:
		return "target is already integrated"
	case ReasonConflicted:
		return "commit is conflicted"
	case ReasonCrossStack:
		return "payload belongs to a different stack"
	case ReasonSelfTarget:
		return "payload originates from the target commit"
	case ReasonUnsupportedPayload:
		return "unsupported payload kind"
	default:
		return "unknown"
	}
}

// RejectionError is returned by drop actions whose guards failed.
type RejectionError struct {
	Reason RejectionReason
}

// Error implements the error interface.
func (e *RejectionError) Error() string {
	return "drop rejected: " + e.Reason.String()
}
