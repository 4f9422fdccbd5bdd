// Package gitexec implements the stack reader and mutation controller
// ports by shelling out to the git CLI. History rewrites use fixup
// commits resolved by a single autosquash rebase, so a failed rebase
// leaves the repository recoverable with `git rebase --abort`.
package gitexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/stax/internal/diff"
	"github.com/zjrosen/stax/internal/log"
	"github.com/zjrosen/stax/internal/stacks/application"
	"github.com/zjrosen/stax/internal/stacks/domain"
)

const (
	// fieldSep separates fields in custom --format output. An ASCII
	// unit separator never appears in commit subjects.
	fieldSep = "\x1f"

	defaultLogLimit     = 50
	flagCacheTTL        = 2 * time.Minute
	flagCacheSweep      = 5 * time.Minute
	defaultUpstreamName = "origin/HEAD"
)

// Executor reads stacks from and applies mutations to a git
// repository.
type Executor struct {
	repoDir  string
	upstream string
	logLimit int

	// flags caches per-commit remote/integrated lookups; they require
	// a git invocation each and are queried once per rendered card.
	flags *gocache.Cache
}

var (
	_ application.StackReader        = (*Executor)(nil)
	_ application.DiffReader         = (*Executor)(nil)
	_ application.MutationController = (*Executor)(nil)
)

// Option customizes an Executor.
type Option func(*Executor)

// WithUpstream sets the integration target ref (e.g. "origin/main")
// used to decide whether a commit is integrated.
func WithUpstream(ref string) Option {
	return func(e *Executor) { e.upstream = ref }
}

// WithLogLimit bounds how many commits are loaded per stack.
func WithLogLimit(n int) Option {
	return func(e *Executor) { e.logLimit = n }
}

// New creates an Executor for the repository at repoDir. Returns
// ErrNotGitRepo when the directory is not inside a git work tree.
func New(repoDir string, opts ...Option) (*Executor, error) {
	e := &Executor{
		repoDir:  repoDir,
		upstream: defaultUpstreamName,
		logLimit: defaultLogLimit,
		flags:    gocache.New(flagCacheTTL, flagCacheSweep),
	}
	for _, opt := range opts {
		opt(e)
	}

	out, err := e.run(context.Background(), nil, "rev-parse", "--is-inside-work-tree")
	if err != nil || strings.TrimSpace(out) != "true" {
		return nil, ErrNotGitRepo
	}
	return e, nil
}

// run executes a git command in the repository directory and returns
// its stdout. stdin may be nil. Extra environment entries are appended
// to the inherited environment.
func (e *Executor) run(ctx context.Context, stdin []byte, args ...string) (string, error) {
	return e.runEnv(ctx, stdin, nil, args...)
}

func (e *Executor) runEnv(ctx context.Context, stdin []byte, env []string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.repoDir
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debug(log.CatVCS, "Running git command", "args", strings.Join(args, " "))
	err := cmd.Run()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("git %s: %w", args[0], ErrCommandTimeout)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git %s: %s", args[0], msg)
	}
	return stdout.String(), nil
}

// ListStacks returns one stack per local branch, each with detailed
// commit entries, newest first.
func (e *Executor) ListStacks(ctx context.Context) ([]domain.Stack, error) {
	out, err := e.run(ctx, nil, "for-each-ref", "refs/heads", "--format=%(refname:short)")
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}

	conflicted, err := e.conflictedHead(ctx)
	if err != nil {
		return nil, err
	}
	head, _ := e.currentBranch(ctx)

	var stacks []domain.Stack
	for _, name := range splitLines(out) {
		commits, err := e.commitLog(ctx, name, conflicted && name == head)
		if err != nil {
			return nil, fmt.Errorf("loading commits for %s: %w", name, err)
		}
		stacks = append(stacks, domain.Stack{ID: name, Name: name, Commits: commits})
	}
	return stacks, nil
}

// WorkingChanges returns the uncommitted changes as file entries,
// including rename information from status --porcelain.
func (e *Executor) WorkingChanges(ctx context.Context) ([]domain.FileEntry, error) {
	out, err := e.run(ctx, nil, "status", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("reading status: %w", err)
	}
	return parseStatus(out), nil
}

func (e *Executor) commitLog(ctx context.Context, ref string, headConflicted bool) ([]domain.Commit, error) {
	format := strings.Join([]string{"%H", "%s", "%an", "%at"}, fieldSep)
	out, err := e.run(ctx, nil, "log", ref, "--format="+format, "-n", strconv.Itoa(e.logLimit))
	if err != nil {
		return nil, err
	}

	var commits []domain.Commit
	for i, line := range splitLines(out) {
		commit, err := parseCommitLine(line)
		if err != nil {
			return nil, err
		}
		commit.IsRemote = e.isRemote(ctx, commit.ID)
		commit.IsIntegrated = e.isIntegrated(ctx, commit.ID)
		// Conflict state is a working-tree property; it is pinned to
		// the head commit of the checked-out branch.
		commit.Conflicted = headConflicted && i == 0
		commits = append(commits, commit)
	}
	return commits, nil
}

// CurrentStack returns the checked-out branch name.
func (e *Executor) CurrentStack(ctx context.Context) (string, error) {
	return e.currentBranch(ctx)
}

func (e *Executor) currentBranch(ctx context.Context) (string, error) {
	out, err := e.run(ctx, nil, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// FileHunks diffs the working-tree version of path against HEAD and
// returns the hunk boundaries. A path absent from HEAD diffs against
// nothing, so the whole file is one hunk.
func (e *Executor) FileHunks(ctx context.Context, path string) ([]domain.HunkHeader, error) {
	oldText, err := e.run(ctx, nil, "show", "HEAD:"+path)
	if err != nil {
		oldText = ""
	}
	data, err := os.ReadFile(filepath.Join(e.repoDir, path)) //nolint:gosec // G304: path comes from git status output
	if err != nil {
		if os.IsNotExist(err) {
			data = nil
		} else {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}
	return diff.Hunks(oldText, string(data)), nil
}

func (e *Executor) conflictedHead(ctx context.Context) (bool, error) {
	out, err := e.run(ctx, nil, "ls-files", "-u")
	if err != nil {
		return false, fmt.Errorf("checking conflict state: %w", err)
	}
	return strings.TrimSpace(out) != "", nil
}

// isRemote reports whether the commit is reachable from any remote
// branch, i.e. rewriting it rewrites published history.
func (e *Executor) isRemote(ctx context.Context, id domain.CommitID) bool {
	key := "remote:" + string(id)
	if v, ok := e.flags.Get(key); ok {
		return v.(bool)
	}
	out, err := e.run(ctx, nil, "branch", "-r", "--contains", string(id))
	remote := err == nil && strings.TrimSpace(out) != ""
	e.flags.SetDefault(key, remote)
	return remote
}

// isIntegrated reports whether the commit is an ancestor of the
// upstream integration target.
func (e *Executor) isIntegrated(ctx context.Context, id domain.CommitID) bool {
	key := "integrated:" + string(id)
	if v, ok := e.flags.Get(key); ok {
		return v.(bool)
	}
	_, err := e.run(ctx, nil, "merge-base", "--is-ancestor", string(id), e.upstream)
	integrated := err == nil
	e.flags.SetDefault(key, integrated)
	return integrated
}

// InvalidateFlags drops the cached remote/integrated lookups, forcing
// fresh answers on the next read. Called after fetches and rebases.
func (e *Executor) InvalidateFlags() {
	e.flags.Flush()
}

func parseCommitLine(line string) (domain.Commit, error) {
	parts := strings.SplitN(line, fieldSep, 4)
	if len(parts) != 4 {
		return domain.Commit{}, fmt.Errorf("malformed log line %q", line)
	}
	ts, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return domain.Commit{}, fmt.Errorf("malformed commit timestamp %q", parts[3])
	}
	return domain.Commit{
		ID:      domain.CommitID(parts[0]),
		Subject: parts[1],
		Author:  parts[2],
		Date:    time.Unix(ts, 0),
	}, nil
}

// parseStatus converts `git status --porcelain` output into file
// entries. Renames are reported as "XY old -> new".
func parseStatus(out string) []domain.FileEntry {
	var entries []domain.FileEntry
	for _, line := range splitLines(out) {
		if len(line) < 4 {
			continue
		}
		path := line[3:]
		var entry domain.FileEntry
		if before, after, found := strings.Cut(path, " -> "); found {
			entry = domain.FileEntry{Path: after, PreviousPath: before}
		} else {
			entry = domain.FileEntry{Path: path}
		}
		entries = append(entries, entry)
	}
	return entries
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
