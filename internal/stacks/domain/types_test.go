package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommitID_Uncommitted(t *testing.T) {
	require.True(t, CommitID("").Uncommitted())
	require.False(t, CommitID("abc123").Uncommitted())
}

func TestCommitID_Short(t *testing.T) {
	require.Equal(t, "abc", CommitID("abc").Short())
	require.Equal(t, "0123456", CommitID("0123456789abcdef").Short())
}

func TestTarget_Variants(t *testing.T) {
	var target Target

	target = Ref{ID: "C1"}
	require.Equal(t, CommitID("C1"), target.TargetID())

	target = Commit{ID: "C2", Conflicted: true, IsRemote: true, IsIntegrated: true}
	require.Equal(t, CommitID("C2"), target.TargetID())

	_, isCommit := target.(Commit)
	require.True(t, isCommit)
}

func TestPayload_StackAccess(t *testing.T) {
	payloads := []Payload{
		HunkPayload{StackID: "S1", CommitID: "C1", FilePath: "a.txt"},
		FilePayload{StackID: "S1", Origin: OriginWorkingTree},
		CommitPayload{StackID: "S1", Commit: Commit{ID: "C1"}},
	}

	for _, p := range payloads {
		require.Equal(t, "S1", p.Stack())
	}
}

func TestFileOrigin_String(t *testing.T) {
	require.Equal(t, "working-tree", OriginWorkingTree.String())
	require.Equal(t, "committed", OriginCommitted.String())
	require.Equal(t, "unknown", FileOrigin(99).String())
}

func TestRejectionError_Message(t *testing.T) {
	err := &RejectionError{Reason: ReasonCrossStack}
	require.EqualError(t, err, "drop rejected: payload belongs to a different stack")
}

func TestRejectionReason_String(t *testing.T) {
	reasons := []RejectionReason{
		ReasonNone, ReasonNotEditable, ReasonRemoteProtected, ReasonIntegrated,
		ReasonConflicted, ReasonCrossStack, ReasonSelfTarget, ReasonUnsupportedPayload,
	}
	seen := make(map[string]bool)
	for _, r := range reasons {
		s := r.String()
		require.NotEmpty(t, s)
		require.False(t, seen[s], "duplicate reason string %q", s)
		seen[s] = true
	}
	require.Equal(t, "unknown", RejectionReason(99).String())
}
