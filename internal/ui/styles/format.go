package styles

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

// FormatBadges returns the badge string for a commit's state flags.
// Returns empty string when no flag is set.
func FormatBadges(remote, integrated, conflicted bool) string {
	var out string
	if conflicted {
		out += lipgloss.NewStyle().Foreground(ConflictColor).Render("✗")
	}
	if integrated {
		out += lipgloss.NewStyle().Foreground(IntegratedColor).Render("⇣")
	}
	if remote {
		out += lipgloss.NewStyle().Foreground(RemoteColor).Render("↑")
	}
	return out
}

// FormatRelativeTime renders t relative to now ("3h", "2d", "5mo").
func FormatRelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	case d < 365*24*time.Hour:
		return fmt.Sprintf("%dmo", int(d.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy", int(d.Hours()/(24*365)))
	}
}

// TruncateString truncates a string to fit within maxWidth display
// cells, adding an ellipsis if needed.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return truncate.StringWithTail(s, uint(maxWidth), "…")
}
