// Package diff derives hunk headers from file contents. The headers
// use git's unified-diff conventions: starts are 1-based, and a hunk
// that is empty on one side reports the line before the change on that
// side.
package diff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/zjrosen/stax/internal/stacks/domain"
)

// Hunks computes the hunk headers describing the change from oldText
// to newText. Returns nil when the contents are identical.
func Hunks(oldText, newText string) []domain.HunkHeader {
	if oldText == newText {
		return nil
	}

	dmp := diffmatchpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lineArray)

	var hunks []domain.HunkHeader
	oldLine, newLine := 1, 1
	inHunk := false
	var hunk domain.HunkHeader

	flush := func() {
		if !inHunk {
			return
		}
		// Git reports the preceding line for the empty side of a pure
		// insertion or deletion.
		if hunk.OldLines == 0 {
			hunk.OldStart--
		}
		if hunk.NewLines == 0 {
			hunk.NewStart--
		}
		hunks = append(hunks, hunk)
		inHunk = false
	}

	for _, d := range diffs {
		n := countLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			oldLine += n
			newLine += n
		case diffmatchpatch.DiffDelete:
			if !inHunk {
				hunk = domain.HunkHeader{OldStart: oldLine, NewStart: newLine}
				inHunk = true
			}
			hunk.OldLines += n
			oldLine += n
		case diffmatchpatch.DiffInsert:
			if !inHunk {
				hunk = domain.HunkHeader{OldStart: oldLine, NewStart: newLine}
				inHunk = true
			}
			hunk.NewLines += n
			newLine += n
		}
	}
	flush()

	return hunks
}

// Stats sums the added and removed line counts over the hunks.
func Stats(hunks []domain.HunkHeader) (added, removed int) {
	for _, h := range hunks {
		added += h.NewLines
		removed += h.OldLines
	}
	return added, removed
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
