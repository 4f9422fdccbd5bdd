package gitexec

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/zjrosen/stax/internal/stacks/domain"
)

var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// FilterPatch keeps only the hunks of a unified diff whose headers
// match one of the given hunk headers. File headers are preserved for
// files that retain at least one hunk. Returns an empty string when
// nothing matches.
func FilterPatch(patch string, headers []domain.HunkHeader) string {
	wanted := make(map[domain.HunkHeader]bool, len(headers))
	for _, h := range headers {
		wanted[h] = true
	}

	var out strings.Builder
	var fileHeader []string
	fileHeaderWritten := false
	keeping := false
	inHunks := false

	lines := strings.Split(patch, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "diff --git "):
			fileHeader = []string{line}
			fileHeaderWritten = false
			keeping = false
			inHunks = false
		case hunkHeaderRe.MatchString(line):
			inHunks = true
			h, ok := ParseHunkHeader(line)
			keeping = ok && wanted[h]
			if keeping {
				if !fileHeaderWritten {
					for _, fh := range fileHeader {
						out.WriteString(fh)
						out.WriteByte('\n')
					}
					fileHeaderWritten = true
				}
				out.WriteString(line)
				out.WriteByte('\n')
			}
		case keeping:
			// Skip the trailing empty element produced by splitting a
			// newline-terminated patch.
			if line == "" && i == len(lines)-1 {
				continue
			}
			out.WriteString(line)
			out.WriteByte('\n')
		default:
			// Body lines of a skipped hunk land here too; only lines
			// seen before the file's first hunk belong to its header.
			if !inHunks && !fileHeaderWritten && len(fileHeader) > 0 {
				fileHeader = append(fileHeader, line)
			}
		}
	}

	return out.String()
}

// ParseHunkHeader extracts the line ranges from a "@@ -a,b +c,d @@"
// header. A missing count defaults to 1, matching git's shorthand.
func ParseHunkHeader(line string) (domain.HunkHeader, bool) {
	m := hunkHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return domain.HunkHeader{}, false
	}
	h := domain.HunkHeader{
		OldStart: mustAtoi(m[1]),
		OldLines: 1,
		NewStart: mustAtoi(m[3]),
		NewLines: 1,
	}
	if m[2] != "" {
		h.OldLines = mustAtoi(m[2])
	}
	if m[4] != "" {
		h.NewLines = mustAtoi(m[4])
	}
	return h, true
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
