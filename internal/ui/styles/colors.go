// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

// Color tokens. Adaptive pairs pick the variant matching the
// terminal's background.
var (
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#CCCCCC"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#666666"}
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#5F5F5F", Dark: "#999999"}

	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#C0C0C0", Dark: "#444444"}
	BorderFocusedColor = lipgloss.AdaptiveColor{Light: "#5F87FF", Dark: "#54A0FF"}

	AccentColor      = lipgloss.AdaptiveColor{Light: "#5F87FF", Dark: "#54A0FF"}
	StatusErrorColor = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF8787"}
	StatusOkColor    = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#73F59F"}
	StatusBusyColor  = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#F5D773"}

	// Commit badge colors.
	RemoteColor     = lipgloss.AdaptiveColor{Light: "#8700AF", Dark: "#C792EA"}
	IntegratedColor = lipgloss.AdaptiveColor{Light: "#005F87", Dark: "#89DDFF"}
	ConflictColor   = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5555"}

	// Drop feedback colors.
	DropAcceptColor = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#73F59F"}
	DropRejectColor = lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF8787"}
)

// Shared styles.
var (
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextDescriptionColor)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(StatusErrorColor)

	StatusOkStyle = lipgloss.NewStyle().
			Foreground(StatusOkColor)

	DragLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)
)
