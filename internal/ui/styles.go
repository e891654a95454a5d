package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorBase    = lipgloss.Color("#1D221E")
	ColorSurface = lipgloss.Color("#2A332C")
	ColorMuted   = lipgloss.Color("#7E8C80")
	ColorText    = lipgloss.Color("#D6E0D3")
	ColorAccent  = lipgloss.Color("#8FA082")
	ColorGreen   = lipgloss.Color("#a6e3a1")
	ColorRed     = lipgloss.Color("#f38ba8")
	ColorYellow  = lipgloss.Color("#f9e2af")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ColorMuted)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorMuted)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	BreadcrumbStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	BreadcrumbActiveStyle = lipgloss.NewStyle().
				Foreground(ColorAccent)

	EmptyStateStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	// Day content

	DayDateStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	RouteStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	SectionStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Underline(true)

	ActivityNameStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Bold(true)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	CheckedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Strikethrough(true)

	TagLabelStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	ActionStyle = lipgloss.NewStyle().
			Foreground(ColorBase).
			Background(ColorSurface).
			Padding(0, 1)

	FocusedActionStyle = lipgloss.NewStyle().
				Foreground(ColorBase).
				Background(ColorAccent).
				Padding(0, 1)

	CursorStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	// Modals

	ModalStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ColorMuted)
)
