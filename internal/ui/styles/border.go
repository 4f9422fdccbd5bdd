package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderWithTitleBorder renders content inside a rounded border with
// leftTitle embedded in the top border and rightTitle right-aligned in
// it. Pass "" to omit a title. borderColor is used for the frame,
// titleColor for the embedded titles.
//
// Format: ╭─ LeftTitle ──────── RightTitle ─╮
func RenderWithTitleBorder(content, leftTitle, rightTitle string, width, height int, borderColor, titleColor lipgloss.TerminalColor) string {
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(titleColor)

	innerWidth := max(width-2, 1)
	contentHeight := max(height-2, 1)

	topBorder := buildTopBorder(leftTitle, rightTitle, innerWidth, borderStyle, titleStyle)
	bottomBorder := borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight)

	constrained := lipgloss.NewStyle().Width(innerWidth).Height(contentHeight).Render(content)
	contentLines := strings.Split(constrained, "\n")

	var body strings.Builder
	for i := range contentHeight {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		if pad := innerWidth - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		body.WriteString(borderStyle.Render(borderVertical))
		body.WriteString(line)
		body.WriteString(borderStyle.Render(borderVertical))
		body.WriteString("\n")
	}

	return topBorder + "\n" + body.String() + bottomBorder
}

func buildTopBorder(leftTitle, rightTitle string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	plain := borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	if leftTitle == "" && rightTitle == "" {
		return plain
	}

	// Each embedded title costs its width plus a dash and two spaces.
	leftWidth := lipgloss.Width(leftTitle)
	rightWidth := lipgloss.Width(rightTitle)
	needed := 1
	if leftTitle != "" {
		needed += leftWidth + 3
	}
	if rightTitle != "" {
		needed += rightWidth + 3
	}
	if innerWidth < needed {
		// Too narrow for the right title; retry with the left one only.
		if rightTitle != "" {
			return buildTopBorder(leftTitle, "", innerWidth, borderStyle, titleStyle)
		}
		// Too narrow for any title.
		if innerWidth < leftWidth+4 {
			return plain
		}
	}

	middle := innerWidth
	var b strings.Builder
	b.WriteString(borderStyle.Render(borderTopLeft))
	if leftTitle != "" {
		b.WriteString(borderStyle.Render(borderHorizontal + " "))
		b.WriteString(titleStyle.Render(leftTitle))
		b.WriteString(borderStyle.Render(" "))
		middle -= leftWidth + 3
	}
	if rightTitle != "" {
		middle -= rightWidth + 3
	}
	b.WriteString(borderStyle.Render(strings.Repeat(borderHorizontal, max(middle, 1))))
	if rightTitle != "" {
		b.WriteString(borderStyle.Render(" "))
		b.WriteString(titleStyle.Render(rightTitle))
		b.WriteString(borderStyle.Render(" " + borderHorizontal))
	}
	b.WriteString(borderStyle.Render(borderTopRight))
	return b.String()
}
