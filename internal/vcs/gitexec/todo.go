package gitexec

import (
	"fmt"
	"strings"

	"github.com/zjrosen/stax/internal/stacks/domain"
)

// RewriteSquashTodo rewrites a rebase todo list so the source commit
// becomes a fixup of the destination: the source's pick line is moved
// directly under the destination's and its command changed to fixup.
// Commit ids in the todo may be abbreviated; matching is by prefix in
// either direction.
//
// The executor invokes this through its own binary acting as
// GIT_SEQUENCE_EDITOR during Squash.
func RewriteSquashTodo(todo string, source, dest domain.CommitID) (string, error) {
	lines := strings.Split(todo, "\n")

	var sourceLine string
	rest := make([]string, 0, len(lines))
	for _, line := range lines {
		if id, ok := pickLineID(line); ok && idMatches(id, source) {
			if sourceLine != "" {
				return "", fmt.Errorf("source commit %s appears twice in todo", source.Short())
			}
			sourceLine = line
			continue
		}
		rest = append(rest, line)
	}
	if sourceLine == "" {
		return "", fmt.Errorf("source commit %s not found in todo", source.Short())
	}

	fixupLine := "fixup" + strings.TrimPrefix(sourceLine, "pick")

	var out []string
	destFound := false
	for _, line := range rest {
		out = append(out, line)
		if id, ok := pickLineID(line); ok && idMatches(id, dest) {
			out = append(out, fixupLine)
			destFound = true
		}
	}
	if !destFound {
		return "", fmt.Errorf("destination commit %s not found in todo", dest.Short())
	}

	return strings.Join(out, "\n"), nil
}

// pickLineID returns the commit id of a "pick <id> <subject>" line.
func pickLineID(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "pick" {
		return "", false
	}
	return fields[1], true
}

func idMatches(todoID string, id domain.CommitID) bool {
	return strings.HasPrefix(string(id), todoID) || strings.HasPrefix(todoID, string(id))
}
