package display

import "github.com/charmbracelet/lipgloss"

// Soft palette shared by all screens.
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true)

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	priorityStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	overlayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a")).
			Italic(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	keyHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#86efac"))
)
