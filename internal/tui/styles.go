package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorPrimary   = "#4F46E5"
	colorSuccess   = "#04B575"
	colorError     = "#F87171"
	colorInfo      = "#94A3B8"
	colorHighlight = "#F8FAFC"
	colorBorder    = "#334155"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorHighlight)).
			MarginBottom(1)

	SidebarStyle = lipgloss.NewStyle().
			Width(24).
			Padding(1, 1).
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color(colorBorder))

	ActiveItemStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorHighlight)).
			Background(lipgloss.Color(colorPrimary)).
			Padding(0, 1)

	ItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorInfo)).
			Padding(0, 1)

	MainStyle = lipgloss.NewStyle().
			Padding(1, 2)

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorInfo))

	FocusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorPrimary))

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSuccess))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorError))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorPrimary)).
			Padding(1, 2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorInfo)).
			MarginTop(1)
)
