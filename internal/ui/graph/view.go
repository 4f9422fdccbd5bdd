package graph

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/stax/internal/diff"
	"github.com/zjrosen/stax/internal/stacks/domain"
	"github.com/zjrosen/stax/internal/ui/styles"
)

// View renders the changes column and one column per stack.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	bodyHeight := m.height
	if m.showStatusBar {
		bodyHeight--
	}

	columns := []string{m.renderChanges(bodyHeight)}
	for _, stack := range m.stacks {
		columns = append(columns, m.renderStack(stack, bodyHeight))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, columns...)

	var out string
	if m.showStatusBar {
		out = lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
	} else {
		out = body
	}
	return m.zones.Scan(out)
}

// renderChanges renders the working-tree column. Expanded files list
// one draggable row per hunk below the file row.
func (m Model) renderChanges(height int) string {
	var rows []string
	if len(m.changes) == 0 {
		rows = append(rows, lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render("clean"))
	}
	for _, entry := range m.changes {
		label := entry.Path
		if entry.PreviousPath != "" {
			label = entry.PreviousPath + " → " + entry.Path
		}
		if hunks := m.expanded[entry.Path]; len(hunks) > 0 {
			added, removed := diff.Stats(hunks)
			label += fmt.Sprintf(" +%d -%d", added, removed)
		}
		label = styles.TruncateString(label, columnWidth-4)
		style := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor)
		if m.dragging("file:" + entry.Path) {
			style = styles.DragLabelStyle
		}
		rows = append(rows, m.zones.Mark("file:"+entry.Path, style.Render(label)))

		for i, h := range m.expanded[entry.Path] {
			id := "hunk:" + entry.Path + "#" + strconv.Itoa(i)
			text := fmt.Sprintf("  @@ -%d,%d +%d,%d @@", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
			hunkStyle := lipgloss.NewStyle().Foreground(styles.TextDescriptionColor)
			if m.dragging(id) {
				hunkStyle = styles.DragLabelStyle
			}
			rows = append(rows, m.zones.Mark(id, hunkStyle.Render(text)))
		}
	}

	content := strings.Join(rows, "\n")
	return styles.RenderWithTitleBorder(content, changesColumn, "", columnWidth, height,
		styles.BorderDefaultColor, styles.AccentColor)
}

// renderStack renders one branch column. The top border doubles as the
// branch drop zone, which only ever produces a lightweight-ref target.
func (m Model) renderStack(stack domain.Stack, height int) string {
	var cards []string
	for _, commit := range stack.Commits {
		cards = append(cards, m.renderCommit(stack.ID, commit))
	}
	content := strings.Join(cards, "\n")

	borderColor := styles.BorderDefaultColor
	if m.drag != nil && strings.HasPrefix(m.hover, "commit:"+stack.ID+"#") {
		borderColor = styles.BorderFocusedColor
	}

	column := styles.RenderWithTitleBorder(content, stack.Name, strconv.Itoa(len(stack.Commits)),
		columnWidth, height, borderColor, styles.AccentColor)
	return m.zones.Mark("ref:"+stack.ID, column)
}

func (m Model) renderCommit(stackID string, commit domain.Commit) string {
	id := "commit:" + stackID + "#" + string(commit.ID)

	header := commit.ID.Short()
	if badges := styles.FormatBadges(commit.IsRemote, commit.IsIntegrated, commit.Conflicted); badges != "" {
		header += " " + badges
	}

	headerStyle := lipgloss.NewStyle().Foreground(styles.AccentColor)
	if m.drag != nil && m.hover == id {
		headerStyle = headerStyle.Foreground(m.dropFeedbackColor(stackID, commit))
	}

	headerLine := headerStyle.Render(header)
	if !commit.Date.IsZero() {
		age := styles.FormatRelativeTime(commit.Date, time.Now())
		headerLine += " " + lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render(age)
	}

	lines := []string{
		headerLine,
		styles.TruncateString(commit.Subject, columnWidth-4),
	}
	if m.showAuthors {
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render(commit.Author))
	}
	return m.zones.Mark(id, strings.Join(lines, "\n"))
}

// dropFeedbackColor previews whether releasing here would be accepted.
func (m Model) dropFeedbackColor(stackID string, commit domain.Commit) lipgloss.TerminalColor {
	for _, stack := range m.stacks {
		if stack.ID != stackID {
			continue
		}
		handler := m.factory.Build(stack, commit)
		var accepted bool
		if _, isCommit := m.drag.payload.(domain.CommitPayload); isCommit {
			accepted = handler.AcceptsSquash(m.drag.payload)
		} else {
			accepted = handler.AcceptsAmend(m.drag.payload)
		}
		if accepted {
			return styles.DropAcceptColor
		}
		return styles.DropRejectColor
	}
	return styles.BorderDefaultColor
}

func (m Model) renderStatusBar() string {
	left := m.status
	style := styles.StatusBarStyle
	switch {
	case m.loading:
		left = strings.TrimSpace(m.spin.View() + " loading")
	case strings.HasPrefix(left, "error:") || strings.HasPrefix(left, "rejected:"):
		style = styles.StatusErrorStyle
	case strings.HasSuffix(left, "dispatched"):
		style = styles.StatusOkStyle
	}
	if left == "" {
		left = "drag a change onto a commit to amend, a commit onto a commit to squash"
	}
	return style.Render(styles.TruncateString(left, m.width))
}
