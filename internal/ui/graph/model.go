// Package graph renders stacks as columns of commit cards and turns
// mouse drags between cards into history mutations.
package graph

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/stax/internal/log"
	"github.com/zjrosen/stax/internal/stacks/application"
	"github.com/zjrosen/stax/internal/stacks/domain"
	"github.com/zjrosen/stax/internal/stacks/drop"
	"github.com/zjrosen/stax/internal/ui/styles"
)

const (
	columnWidth    = 36
	changesColumn  = "Changes"
	refreshBackoff = 500 * time.Millisecond
)

// RefreshMsg asks the model to reload repository state. The repository
// watcher and post-mutation timers send it.
type RefreshMsg struct{}

type snapshotMsg struct {
	stacks  []domain.Stack
	changes []domain.FileEntry
	head    string
	err     error
}

type hunksMsg struct {
	path  string
	hunks []domain.HunkHeader
	err   error
}

type dragState struct {
	payload  domain.Payload
	label    string
	originID string
}

// Model is the drag-and-drop stack graph.
type Model struct {
	reader  application.StackReader
	diffs   application.DiffReader
	factory *drop.Factory

	zones *zone.Manager

	stacks  []domain.Stack
	changes []domain.FileEntry
	head    string

	// expanded maps a working-tree path to its hunk boundaries. Files
	// in this map render one draggable row per hunk.
	expanded map[string][]domain.HunkHeader

	drag   *dragState
	hover  string
	status string

	spin    spinner.Model
	loading bool

	width, height int
	showStatusBar bool
	showAuthors   bool
}

// Option customizes a Model.
type Option func(*Model)

// WithStatusBar toggles the bottom status bar.
func WithStatusBar(show bool) Option {
	return func(m *Model) { m.showStatusBar = show }
}

// WithAuthors toggles commit authors on cards.
func WithAuthors(show bool) Option {
	return func(m *Model) { m.showAuthors = show }
}

// New creates the graph model. The zone manager must be the one whose
// Scan wraps the program output.
func New(reader application.StackReader, diffs application.DiffReader, factory *drop.Factory, zones *zone.Manager, opts ...Option) Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(styles.StatusBusyColor)

	m := Model{
		reader:        reader,
		diffs:         diffs,
		factory:       factory,
		zones:         zones,
		expanded:      make(map[string][]domain.HunkHeader),
		spin:          sp,
		loading:       true,
		showStatusBar: true,
		showAuthors:   true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the first load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSnapshot(), m.spin.Tick)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.loading = true
			return m, tea.Batch(m.loadSnapshot(), m.spin.Tick)
		case "d":
			if path, ok := strings.CutPrefix(m.hover, "file:"); ok {
				return m, m.toggleHunks(path)
			}
		}

	case RefreshMsg:
		m.loading = true
		return m, tea.Batch(m.loadSnapshot(), m.spin.Tick)

	case snapshotMsg:
		m.loading = false
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
			return m, nil
		}
		m.stacks = msg.stacks
		m.changes = msg.changes
		m.head = msg.head
		m.pruneExpanded()

	case hunksMsg:
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
			return m, nil
		}
		m.expanded[msg.path] = msg.hunks

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionMotion:
		m.hover = m.zoneAt(msg)

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			break
		}
		id := m.zoneAt(msg)
		if payload, label, ok := m.payloadFor(id); ok {
			m.drag = &dragState{payload: payload, label: label, originID: id}
			m.status = "dragging " + label
		}

	case tea.MouseActionRelease:
		if m.drag == nil {
			break
		}
		drag := *m.drag
		m.drag = nil
		return m.completeDrop(drag, m.zoneAt(msg))
	}
	return m, nil
}

// completeDrop runs the drop through the action evaluator and reports
// the outcome in the status line.
func (m Model) completeDrop(drag dragState, zoneID string) (tea.Model, tea.Cmd) {
	stack, target, ok := m.targetFor(zoneID)
	if !ok {
		m.status = ""
		return m, nil
	}

	handler := m.factory.Build(stack, target)
	ctx := context.Background()

	var err error
	var verb string
	if _, isCommit := drag.payload.(domain.CommitPayload); isCommit {
		verb = "squash"
		if !handler.AcceptsSquash(drag.payload) {
			m.status = rejectionText(handler.EvaluateSquash(drag.payload))
			return m, nil
		}
		err = handler.Squash(ctx, drag.payload)
	} else {
		verb = "amend"
		if !handler.AcceptsAmend(drag.payload) {
			m.status = rejectionText(handler.EvaluateAmend(drag.payload))
			return m, nil
		}
		err = handler.Amend(ctx, drag.payload)
	}

	if err != nil {
		log.ErrorErr(log.CatDrop, "Drop dispatch failed", err, "verb", verb)
		m.status = "error: " + err.Error()
		return m, nil
	}

	log.Info(log.CatDrop, "Drop dispatched", "verb", verb, "target", target.TargetID().Short())
	m.status = verb + " dispatched"
	return m, tea.Tick(refreshBackoff, func(time.Time) tea.Msg { return RefreshMsg{} })
}

func rejectionText(reason domain.RejectionReason) string {
	if reason == domain.ReasonNone {
		return ""
	}
	return "rejected: " + reason.String()
}

// payloadFor builds the drag payload for the zone under the cursor.
func (m Model) payloadFor(id string) (domain.Payload, string, bool) {
	switch {
	case strings.HasPrefix(id, "file:"):
		path := strings.TrimPrefix(id, "file:")
		for _, entry := range m.changes {
			if entry.Path == path {
				payload := domain.FilePayload{
					StackID: m.head,
					Origin:  domain.OriginWorkingTree,
					Files:   []domain.FileEntry{entry},
				}
				return payload, path, true
			}
		}

	case strings.HasPrefix(id, "hunk:"):
		rest := strings.TrimPrefix(id, "hunk:")
		path, idxText, found := strings.Cut(rest, "#")
		if !found {
			break
		}
		idx, err := strconv.Atoi(idxText)
		if err != nil {
			break
		}
		hunks := m.expanded[path]
		if idx < 0 || idx >= len(hunks) {
			break
		}
		payload := domain.HunkPayload{
			StackID:  m.head,
			FilePath: path,
			Header:   hunks[idx],
		}
		return payload, fmt.Sprintf("%s hunk %d", path, idx+1), true

	case strings.HasPrefix(id, "commit:"):
		stackID, commitID, found := strings.Cut(strings.TrimPrefix(id, "commit:"), "#")
		if !found {
			break
		}
		if commit, ok := m.findCommit(stackID, domain.CommitID(commitID)); ok {
			payload := domain.CommitPayload{StackID: stackID, Commit: commit}
			return payload, commit.ID.Short(), true
		}
	}
	return nil, "", false
}

// targetFor resolves the drop zone into an evaluator target. Branch
// headers become Ref targets, cards become Commit targets.
func (m Model) targetFor(id string) (domain.Stack, domain.Target, bool) {
	switch {
	case strings.HasPrefix(id, "ref:"):
		stackID := strings.TrimPrefix(id, "ref:")
		for _, stack := range m.stacks {
			if stack.ID == stackID && len(stack.Commits) > 0 {
				return stack, domain.Ref{ID: stack.Commits[0].ID}, true
			}
		}

	case strings.HasPrefix(id, "commit:"):
		stackID, commitID, found := strings.Cut(strings.TrimPrefix(id, "commit:"), "#")
		if !found {
			break
		}
		for _, stack := range m.stacks {
			if stack.ID != stackID {
				continue
			}
			if commit, ok := m.findCommit(stackID, domain.CommitID(commitID)); ok {
				return stack, commit, true
			}
		}
	}
	return domain.Stack{}, nil, false
}

func (m Model) findCommit(stackID string, id domain.CommitID) (domain.Commit, bool) {
	for _, stack := range m.stacks {
		if stack.ID != stackID {
			continue
		}
		for _, commit := range stack.Commits {
			if commit.ID == id {
				return commit, true
			}
		}
	}
	return domain.Commit{}, false
}

// zoneAt returns the id of the zone containing the mouse event.
func (m Model) zoneAt(msg tea.MouseMsg) string {
	for _, id := range m.zoneIDs() {
		if info := m.zones.Get(id); info != nil && info.InBounds(msg) {
			return id
		}
	}
	return ""
}

// zoneIDs enumerates every marked zone, innermost first so commit
// cards win over their enclosing branch column.
func (m Model) zoneIDs() []string {
	var ids []string
	for _, stack := range m.stacks {
		for _, commit := range stack.Commits {
			ids = append(ids, "commit:"+stack.ID+"#"+string(commit.ID))
		}
	}
	for _, entry := range m.changes {
		for i := range m.expanded[entry.Path] {
			ids = append(ids, "hunk:"+entry.Path+"#"+strconv.Itoa(i))
		}
		ids = append(ids, "file:"+entry.Path)
	}
	for _, stack := range m.stacks {
		ids = append(ids, "ref:"+stack.ID)
	}
	return ids
}

func (m Model) loadSnapshot() tea.Cmd {
	reader := m.reader
	return func() tea.Msg {
		ctx := context.Background()
		stacks, err := reader.ListStacks(ctx)
		if err != nil {
			return snapshotMsg{err: err}
		}
		changes, err := reader.WorkingChanges(ctx)
		if err != nil {
			return snapshotMsg{err: err}
		}
		head, err := reader.CurrentStack(ctx)
		if err != nil {
			return snapshotMsg{err: err}
		}
		return snapshotMsg{stacks: stacks, changes: changes, head: head}
	}
}

// toggleHunks expands or collapses the per-hunk rows of a file.
func (m Model) toggleHunks(path string) tea.Cmd {
	if _, ok := m.expanded[path]; ok {
		delete(m.expanded, path)
		return nil
	}
	if m.diffs == nil {
		return nil
	}
	diffs := m.diffs
	return func() tea.Msg {
		hunks, err := diffs.FileHunks(context.Background(), path)
		if err != nil {
			return hunksMsg{path: path, err: err}
		}
		return hunksMsg{path: path, hunks: hunks}
	}
}

// dragging reports whether the zone is the origin of the active drag.
func (m Model) dragging(id string) bool {
	return m.drag != nil && m.drag.originID == id
}

// pruneExpanded drops hunk expansions for files no longer changed.
func (m *Model) pruneExpanded() {
	live := make(map[string]bool, len(m.changes))
	for _, entry := range m.changes {
		live[entry.Path] = true
	}
	for path := range m.expanded {
		if !live[path] {
			delete(m.expanded, path)
		}
	}
}
