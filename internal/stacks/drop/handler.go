// Package drop decides whether a drag payload may be dropped onto a
// commit and, when it may, issues the resulting mutation request.
//
// A Handler is bound to one (stack, target) pair and is stateless
// across calls: every Accepts/Evaluate call is a pure function of its
// inputs, and the action methods re-run the same guards before
// dispatching, so an out-of-contract call degrades to a typed rejection
// instead of an unchecked mutation.
package drop

import (
	"context"

	"github.com/zjrosen/stax/internal/log"
	"github.com/zjrosen/stax/internal/stacks/application"
	"github.com/zjrosen/stax/internal/stacks/domain"
)

// Handler evaluates drops onto a single target commit and dispatches
// the accepted ones to the mutation controller.
type Handler struct {
	controller application.MutationController
	project    domain.Project
	stack      domain.Stack
	target     domain.Target
}

// Target returns the commit this handler evaluates drops against.
func (h *Handler) Target() domain.Target {
	return h.target
}

// EvaluateAmend runs the amend guards and returns ReasonNone when the
// payload may amend the target, or the first failing guard's reason.
// It has no side effects.
//
// Guard order: the target must be a detailed commit; remote targets
// require the force-push policy; integrated and conflicted targets are
// immutable; the payload must be a hunk or file drop from the same
// stack whose source commit differs from the target.
func (h *Handler) EvaluateAmend(p domain.Payload) domain.RejectionReason {
	commit, ok := h.target.(domain.Commit)
	if !ok {
		return domain.ReasonNotEditable
	}
	if commit.IsRemote && !h.project.ForcePushAllowed {
		return domain.ReasonRemoteProtected
	}
	if commit.IsIntegrated {
		return domain.ReasonIntegrated
	}
	if commit.Conflicted {
		return domain.ReasonConflicted
	}

	switch p := p.(type) {
	case domain.HunkPayload:
		if p.StackID != h.stack.ID {
			return domain.ReasonCrossStack
		}
		if !p.CommitID.Uncommitted() && p.CommitID == commit.ID {
			return domain.ReasonSelfTarget
		}
		return domain.ReasonNone
	case domain.FilePayload:
		if p.StackID != h.stack.ID {
			return domain.ReasonCrossStack
		}
		if !p.Commit.Uncommitted() && p.Commit == commit.ID {
			return domain.ReasonSelfTarget
		}
		return domain.ReasonNone
	default:
		return domain.ReasonUnsupportedPayload
	}
}

// AcceptsAmend reports whether the payload may amend the target.
func (h *Handler) AcceptsAmend(p domain.Payload) bool {
	return h.EvaluateAmend(p) == domain.ReasonNone
}

// Amend validates the drop and issues exactly one mutation request:
// an amend for hunk and working-tree file payloads, a move-ownership
// for committed file payloads. A committed file payload without a
// source commit is a no-op. Returns a *domain.RejectionError when any
// guard fails.
func (h *Handler) Amend(ctx context.Context, p domain.Payload) error {
	if reason := h.EvaluateAmend(p); reason != domain.ReasonNone {
		log.Debug(log.CatDrop, "Amend drop rejected", "reason", reason.String(), "target", string(h.target.TargetID()))
		return &domain.RejectionError{Reason: reason}
	}

	switch p := p.(type) {
	case domain.HunkPayload:
		// Hunk drops carry no rename information, so PreviousPath
		// stays nil and the header is copied verbatim.
		req := domain.AmendRequest{
			StackID:  h.stack.ID,
			CommitID: h.target.TargetID(),
			Entries: []domain.AmendEntry{{
				Path:    p.FilePath,
				Headers: []domain.HunkHeader{p.Header},
			}},
		}
		return h.controller.Amend(ctx, req)

	case domain.FilePayload:
		if p.Origin == domain.OriginWorkingTree {
			entries := make([]domain.AmendEntry, len(p.Files))
			for i, f := range p.Files {
				entry := domain.AmendEntry{Path: f.Path}
				if f.PreviousPath != "" {
					prev := f.PreviousPath
					entry.PreviousPath = &prev
				}
				// An empty header list takes the whole file.
				entries[i] = entry
			}
			req := domain.AmendRequest{
				StackID:  h.stack.ID,
				CommitID: h.target.TargetID(),
				Entries:  entries,
			}
			return h.controller.Amend(ctx, req)
		}

		// Committed files change ownership rather than content.
		if p.Commit.Uncommitted() {
			return nil
		}
		req := domain.MoveOwnershipRequest{
			StackID:   h.stack.ID,
			Source:    p.Commit,
			Dest:      h.target.TargetID(),
			Ownership: domain.OwnershipFromFiles(p.Files),
		}
		return h.controller.MoveOwnership(ctx, req)
	}

	// Unreachable: EvaluateAmend already rejected other payload kinds.
	return &domain.RejectionError{Reason: domain.ReasonUnsupportedPayload}
}

// EvaluateSquash runs the squash guards and returns ReasonNone when the
// dragged commit may be squashed into the target. It has no side
// effects.
func (h *Handler) EvaluateSquash(p domain.Payload) domain.RejectionReason {
	commit, ok := h.target.(domain.Commit)
	if !ok {
		return domain.ReasonNotEditable
	}
	cp, ok := p.(domain.CommitPayload)
	if !ok {
		return domain.ReasonUnsupportedPayload
	}
	if cp.StackID != h.stack.ID {
		return domain.ReasonCrossStack
	}
	if cp.Commit.Conflicted || commit.Conflicted {
		return domain.ReasonConflicted
	}
	if cp.Commit.ID == commit.ID {
		return domain.ReasonSelfTarget
	}
	return domain.ReasonNone
}

// AcceptsSquash reports whether the payload may squash into the target.
func (h *Handler) AcceptsSquash(p domain.Payload) bool {
	return h.EvaluateSquash(p) == domain.ReasonNone
}

// Squash validates the drop and issues one squash request merging the
// dragged commit into the target. Returns a *domain.RejectionError
// when any guard fails.
func (h *Handler) Squash(ctx context.Context, p domain.Payload) error {
	if reason := h.EvaluateSquash(p); reason != domain.ReasonNone {
		log.Debug(log.CatDrop, "Squash drop rejected", "reason", reason.String(), "target", string(h.target.TargetID()))
		return &domain.RejectionError{Reason: reason}
	}

	cp := p.(domain.CommitPayload)
	req := domain.SquashRequest{
		StackID: cp.StackID,
		Source:  cp.Commit.ID,
		Dest:    h.target.TargetID(),
	}
	return h.controller.Squash(ctx, req)
}
