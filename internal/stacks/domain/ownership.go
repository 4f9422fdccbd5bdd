package domain

import (
	"fmt"
	"strings"
)

// FileClaim identifies the hunks of a single file being transferred
// between commits. An empty Hunks list claims the whole file.
type FileClaim struct {
	Path  string
	Hunks []HunkHeader
}

// String renders the claim as "path" for whole-file claims or
// "path:oldStart-oldLines-newStart-newLines,..." for hunk claims.
func (c FileClaim) String() string {
	if len(c.Hunks) == 0 {
		return c.Path
	}
	parts := make([]string, len(c.Hunks))
	for i, h := range c.Hunks {
		parts[i] = fmt.Sprintf("%d-%d-%d-%d", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
	}
	return c.Path + ":" + strings.Join(parts, ",")
}

// Ownership is an ordered set of file claims describing what is being
// moved from one commit to another.
type Ownership struct {
	Claims []FileClaim
}

// IsEmpty reports whether the ownership claims nothing.
func (o Ownership) IsEmpty() bool {
	return len(o.Claims) == 0
}

// String renders the claims one per line.
func (o Ownership) String() string {
	parts := make([]string, len(o.Claims))
	for i, c := range o.Claims {
		parts[i] = c.String()
	}
	return strings.Join(parts, "\n")
}

// OwnershipFromFiles converts dragged file entries into whole-file
// ownership claims, grouping repeated paths into a single claim.
// Entry order is preserved for the first occurrence of each path.
func OwnershipFromFiles(files []FileEntry) Ownership {
	var o Ownership
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if seen[f.Path] {
			continue
		}
		seen[f.Path] = true
		o.Claims = append(o.Claims, FileClaim{Path: f.Path})
	}
	return o
}
