package gitexec

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/zjrosen/stax/internal/log"
	"github.com/zjrosen/stax/internal/stacks/domain"
)

// Amend adds the entries' changes to the target commit. Content is
// taken from the working tree: whole-file entries are staged directly,
// hunk entries are staged by applying the matching slice of the
// working-tree diff to the index. The staged changes become a fixup
// commit resolved by one autosquash rebase.
func (e *Executor) Amend(ctx context.Context, req domain.AmendRequest) error {
	if len(req.Entries) == 0 {
		return ErrEmptyMutation
	}

	var wholeFiles []string
	for _, entry := range req.Entries {
		if len(entry.Headers) == 0 {
			wholeFiles = append(wholeFiles, entry.Path)
			continue
		}
		if err := e.stageHunks(ctx, entry.Path, entry.Headers); err != nil {
			return err
		}
	}
	if len(wholeFiles) > 0 {
		args := append([]string{"add", "-A", "--"}, wholeFiles...)
		if _, err := e.run(ctx, nil, args...); err != nil {
			return fmt.Errorf("staging files: %w", err)
		}
	}

	if _, err := e.run(ctx, nil, "commit", "--fixup="+string(req.CommitID)); err != nil {
		return fmt.Errorf("creating fixup commit: %w", err)
	}

	return e.autosquash(ctx, string(req.CommitID)+"^")
}

// MoveOwnership transfers the claimed paths' changes from the source
// commit to the destination commit: the source's diff for those paths
// is reverse-applied as a fixup on the source and forward-applied as a
// fixup on the destination, then both fixups are resolved by one
// autosquash rebase.
func (e *Executor) MoveOwnership(ctx context.Context, req domain.MoveOwnershipRequest) error {
	if req.Ownership.IsEmpty() {
		return ErrEmptyMutation
	}

	paths := make([]string, len(req.Ownership.Claims))
	for i, claim := range req.Ownership.Claims {
		paths[i] = claim.Path
	}

	args := append([]string{"diff", string(req.Source) + "^", string(req.Source), "--"}, paths...)
	patch, err := e.run(ctx, nil, args...)
	if err != nil {
		return fmt.Errorf("extracting source changes: %w", err)
	}
	if strings.TrimSpace(patch) == "" {
		log.Warn(log.CatVCS, "Move-ownership patch is empty", "source", string(req.Source))
		return ErrEmptyMutation
	}

	if _, err := e.run(ctx, []byte(patch), "apply", "--cached", "-R"); err != nil {
		return fmt.Errorf("removing changes from source: %w", err)
	}
	if _, err := e.run(ctx, nil, "commit", "--fixup="+string(req.Source)); err != nil {
		return fmt.Errorf("creating source fixup: %w", err)
	}

	if _, err := e.run(ctx, []byte(patch), "apply", "--cached"); err != nil {
		return fmt.Errorf("adding changes to destination: %w", err)
	}
	if _, err := e.run(ctx, nil, "commit", "--fixup="+string(req.Dest)); err != nil {
		return fmt.Errorf("creating destination fixup: %w", err)
	}

	base, err := e.mergeBase(ctx, string(req.Source)+"^", string(req.Dest)+"^")
	if err != nil {
		return err
	}
	return e.autosquash(ctx, base)
}

// Squash merges the source commit into the destination commit by
// rewriting the rebase todo list: the executor re-invokes itself as
// GIT_SEQUENCE_EDITOR to move the source line under the destination
// and mark it as a fixup.
func (e *Executor) Squash(ctx context.Context, req domain.SquashRequest) error {
	base, err := e.mergeBase(ctx, string(req.Source)+"^", string(req.Dest)+"^")
	if err != nil {
		return err
	}

	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locating own executable: %w", err)
	}
	editor := fmt.Sprintf("%s squash-todo %s %s", self, req.Source, req.Dest)

	if _, err := e.runEnv(ctx, nil, []string{"GIT_SEQUENCE_EDITOR=" + editor},
		"rebase", "-i", "--autostash", base); err != nil {
		return fmt.Errorf("squash rebase: %w", err)
	}

	e.InvalidateFlags()
	log.Info(log.CatVCS, "Squashed commit", "source", string(req.Source), "dest", string(req.Dest))
	return nil
}

// stageHunks applies the selected hunks of the working-tree diff for
// path to the index. The diff runs with zero context lines so its hunk
// headers carry the same line ranges as the headers computed from file
// contents; the context-free patch must then be applied with
// --unidiff-zero.
func (e *Executor) stageHunks(ctx context.Context, path string, headers []domain.HunkHeader) error {
	patch, err := e.run(ctx, nil, "diff", "-U0", "--", path)
	if err != nil {
		return fmt.Errorf("diffing %s: %w", path, err)
	}

	filtered := FilterPatch(patch, headers)
	if strings.TrimSpace(filtered) == "" {
		return fmt.Errorf("no hunks in %s match the requested headers", path)
	}

	if _, err := e.run(ctx, []byte(filtered), "apply", "--cached", "--unidiff-zero"); err != nil {
		return fmt.Errorf("staging hunks for %s: %w", path, err)
	}
	return nil
}

// autosquash runs a non-interactive autosquash rebase from base. The
// sequence editor is a no-op; autosquash itself arranges the fixups.
func (e *Executor) autosquash(ctx context.Context, base string) error {
	if _, err := e.runEnv(ctx, nil, []string{"GIT_SEQUENCE_EDITOR=true"},
		"rebase", "-i", "--autosquash", "--autostash", base); err != nil {
		return fmt.Errorf("autosquash rebase: %w", err)
	}
	e.InvalidateFlags()
	return nil
}

func (e *Executor) mergeBase(ctx context.Context, a, b string) (string, error) {
	out, err := e.run(ctx, nil, "merge-base", a, b)
	if err != nil {
		return "", fmt.Errorf("finding merge base: %w", err)
	}
	return strings.TrimSpace(out), nil
}
