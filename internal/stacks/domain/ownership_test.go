package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOwnershipFromFiles_GroupsByPath(t *testing.T) {
	files := []FileEntry{
		{Path: "a.txt"},
		{Path: "b.txt", PreviousPath: "old/b.txt"},
		{Path: "a.txt"},
	}

	o := OwnershipFromFiles(files)

	require.Equal(t, []FileClaim{{Path: "a.txt"}, {Path: "b.txt"}}, o.Claims)
	require.False(t, o.IsEmpty())
}

func TestOwnershipFromFiles_Empty(t *testing.T) {
	o := OwnershipFromFiles(nil)
	require.True(t, o.IsEmpty())
	require.Empty(t, o.String())
}

func TestFileClaim_String(t *testing.T) {
	tests := []struct {
		name  string
		claim FileClaim
		want  string
	}{
		{
			name:  "whole file",
			claim: FileClaim{Path: "src/main.go"},
			want:  "src/main.go",
		},
		{
			name: "single hunk",
			claim: FileClaim{
				Path:  "a.txt",
				Hunks: []HunkHeader{{OldStart: 1, OldLines: 2, NewStart: 1, NewLines: 3}},
			},
			want: "a.txt:1-2-1-3",
		},
		{
			name: "multiple hunks",
			claim: FileClaim{
				Path: "a.txt",
				Hunks: []HunkHeader{
					{OldStart: 1, OldLines: 2, NewStart: 1, NewLines: 3},
					{OldStart: 10, OldLines: 0, NewStart: 11, NewLines: 4},
				},
			},
			want: "a.txt:1-2-1-3,10-0-11-4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.claim.String())
		})
	}
}

func TestOwnership_String(t *testing.T) {
	o := Ownership{Claims: []FileClaim{
		{Path: "a.txt"},
		{Path: "b.txt", Hunks: []HunkHeader{{OldStart: 5, OldLines: 1, NewStart: 5, NewLines: 2}}},
	}}

	require.Equal(t, "a.txt\nb.txt:5-1-5-2", o.String())
}
