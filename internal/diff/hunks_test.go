package diff

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/stax/internal/stacks/domain"
)

func TestHunks_IdenticalContent(t *testing.T) {
	require.Nil(t, Hunks("a\nb\n", "a\nb\n"))
	require.Nil(t, Hunks("", ""))
}

func TestHunks_SingleLineReplace(t *testing.T) {
	old := "a\nb\nc\nd\n"
	updated := "a\nX\nc\nd\n"

	hunks := Hunks(old, updated)

	require.Equal(t, []domain.HunkHeader{
		{OldStart: 2, OldLines: 1, NewStart: 2, NewLines: 1},
	}, hunks)
}

func TestHunks_PureInsertion(t *testing.T) {
	old := "a\nb\n"
	updated := "a\nx\nb\n"

	hunks := Hunks(old, updated)

	// Insertion after old line 1: the old side is empty and reports
	// the preceding line.
	require.Equal(t, []domain.HunkHeader{
		{OldStart: 1, OldLines: 0, NewStart: 2, NewLines: 1},
	}, hunks)
}

func TestHunks_PureDeletion(t *testing.T) {
	old := "a\nb\nc\n"
	updated := "a\nc\n"

	hunks := Hunks(old, updated)

	require.Equal(t, []domain.HunkHeader{
		{OldStart: 2, OldLines: 1, NewStart: 1, NewLines: 0},
	}, hunks)
}

func TestHunks_MultipleSeparatedChanges(t *testing.T) {
	old := "a\nb\nc\nd\ne\nf\ng\n"
	updated := "a\nB\nc\nd\ne\nF\ng\n"

	hunks := Hunks(old, updated)

	require.Len(t, hunks, 2)
	require.Equal(t, domain.HunkHeader{OldStart: 2, OldLines: 1, NewStart: 2, NewLines: 1}, hunks[0])
	require.Equal(t, domain.HunkHeader{OldStart: 6, OldLines: 1, NewStart: 6, NewLines: 1}, hunks[1])
}

func TestHunks_NewFile(t *testing.T) {
	hunks := Hunks("", "a\nb\n")

	require.Equal(t, []domain.HunkHeader{
		{OldStart: 0, OldLines: 0, NewStart: 1, NewLines: 2},
	}, hunks)
}

func TestHunks_NoTrailingNewline(t *testing.T) {
	old := "a\nb"
	updated := "a\nc"

	hunks := Hunks(old, updated)

	require.Len(t, hunks, 1)
	require.Equal(t, 1, hunks[0].OldLines)
	require.Equal(t, 1, hunks[0].NewLines)
}

func TestStats(t *testing.T) {
	added, removed := Stats(Hunks("a\nb\nc\n", "a\nX\nY\nc\n"))
	require.Equal(t, 2, added)
	require.Equal(t, 1, removed)

	added, removed = Stats(nil)
	require.Zero(t, added)
	require.Zero(t, removed)
}
