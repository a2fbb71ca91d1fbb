package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorStudy     = lipgloss.Color("#FF6B6B")
	colorBreak     = lipgloss.Color("#2EC4B6")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
)

// Layout
var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	// Overlays such as the export picker.
	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(1, 2)

	headerStyle = lipgloss.NewStyle().Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	brandStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
)

// Countdown. The clock colour follows the engine: stopped, running or paused.
var (
	clockStoppedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary).
				Align(lipgloss.Center)

	clockRunningStyle = clockStoppedStyle.Foreground(colorSuccess)
	clockPausedStyle  = clockStoppedStyle.Foreground(colorWarning)

	studyLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(colorStudy)
	breakLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBreak)
)

// Text
var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorFg)
	subtitleStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	quoteStyle     = subtitleStyle.Italic(true)
	successStyle   = lipgloss.NewStyle().Foreground(colorSuccess)
	warningStyle   = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle     = lipgloss.NewStyle().Foreground(colorError)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	highlightStyle = lipgloss.NewStyle().Foreground(colorHighlight)
)

// Task and source badges
var (
	examBadgeStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorStudy)
	overdueBadgeStyle = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	onlineBadgeStyle  = lipgloss.NewStyle().Foreground(colorSuccess)
	offlineBadgeStyle = lipgloss.NewStyle().Foreground(colorWarning)
)

// List items
var (
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().Foreground(colorFg)

	completedItemStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Strikethrough(true)
)

func modeLabelStyle(study bool) lipgloss.Style {
	if study {
		return studyLabelStyle
	}
	return breakLabelStyle
}

func badgeStyle(badge string) lipgloss.Style {
	if badge == "Overdue" {
		return overdueBadgeStyle
	}
	return examBadgeStyle
}
