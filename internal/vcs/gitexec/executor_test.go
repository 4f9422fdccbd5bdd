package gitexec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/stax/internal/stacks/domain"
)

func TestParseCommitLine(t *testing.T) {
	line := "0123456789abcdef0123456789abcdef01234567\x1fFix login redirect\x1falice\x1f1700000000"

	commit, err := parseCommitLine(line)
	require.NoError(t, err)
	require.Equal(t, domain.CommitID("0123456789abcdef0123456789abcdef01234567"), commit.ID)
	require.Equal(t, "Fix login redirect", commit.Subject)
	require.Equal(t, "alice", commit.Author)
	require.Equal(t, time.Unix(1700000000, 0), commit.Date)
}

func TestParseCommitLine_SubjectWithSpaces(t *testing.T) {
	line := "abc\x1fsubject: with colons and spaces\x1fbob smith\x1f42"

	commit, err := parseCommitLine(line)
	require.NoError(t, err)
	require.Equal(t, "subject: with colons and spaces", commit.Subject)
	require.Equal(t, "bob smith", commit.Author)
}

func TestParseCommitLine_Malformed(t *testing.T) {
	_, err := parseCommitLine("not enough fields")
	require.Error(t, err)

	_, err = parseCommitLine("abc\x1fsubject\x1fauthor\x1fnot-a-number")
	require.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	out := " M internal/app.go\n" +
		"?? notes.txt\n" +
		"R  old/name.go -> new/name.go\n"

	entries := parseStatus(out)

	require.Equal(t, []domain.FileEntry{
		{Path: "internal/app.go"},
		{Path: "notes.txt"},
		{Path: "new/name.go", PreviousPath: "old/name.go"},
	}, entries)
}

func TestParseStatus_Empty(t *testing.T) {
	require.Empty(t, parseStatus(""))
	require.Empty(t, parseStatus("\n\n"))
}

func TestSplitLines(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, splitLines("a\nb\n"))
	require.Empty(t, splitLines("\n  \n"))
}
