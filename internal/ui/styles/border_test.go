package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderPlain(content, left, right string, width, height int) string {
	return RenderWithTitleBorder(content, left, right, width, height, BorderDefaultColor, AccentColor)
}

func TestRenderWithTitleBorder_EmbedsTitles(t *testing.T) {
	out := renderPlain("hello", "feature", "3", 30, 5)

	assert.Contains(t, out, "feature")
	assert.Contains(t, out, "3")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, borderTopLeft)
	assert.Contains(t, out, borderBottomRight)
}

func TestRenderWithTitleBorder_LineWidths(t *testing.T) {
	out := renderPlain("line one\nline two", "title", "", 24, 6)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)
	for i, line := range lines {
		assert.Equal(t, 24, lipgloss.Width(line), "line %d should span the full width", i)
	}
}

func TestRenderWithTitleBorder_NoTitles(t *testing.T) {
	out := renderPlain("x", "", "", 10, 3)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, 10, lipgloss.Width(lines[0]))
	assert.NotContains(t, lines[0], " ", "plain top border has no title gaps")
}

func TestRenderWithTitleBorder_NarrowDropsRightTitle(t *testing.T) {
	out := renderPlain("x", "branch", "99 commits", 14, 3)

	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[0], "branch")
	assert.NotContains(t, lines[0], "99 commits")
}

func TestRenderWithTitleBorder_TooNarrowForAnyTitle(t *testing.T) {
	out := renderPlain("x", "very-long-branch-name", "", 8, 3)

	lines := strings.Split(out, "\n")
	assert.Equal(t, 8, lipgloss.Width(lines[0]))
	assert.NotContains(t, lines[0], "very-long")
}

func TestRenderWithTitleBorder_ContentTallerThanHeight(t *testing.T) {
	out := renderPlain("a\nb\nc\nd\ne", "t", "", 12, 4)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4, "output height is fixed")
}
