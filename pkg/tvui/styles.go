package tvui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("212")
	mutedColor   = lipgloss.Color("241")
	warningColor = lipgloss.Color("214")
	paidColor    = lipgloss.Color("220")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	statusStyle = lipgloss.NewStyle().Foreground(warningColor)

	sectionTitle       = lipgloss.NewStyle().Bold(true)
	sectionTitleActive = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Underline(true)
	mutedStyle         = lipgloss.NewStyle().Foreground(mutedColor)
	loadingStyle       = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)

	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	cellFocused = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1).
			Bold(true)

	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("250"))
	tabSelected    = lipgloss.NewStyle().Padding(0, 2).Underline(true).Foreground(lipgloss.Color("255"))
	tabFocused     = lipgloss.NewStyle().Padding(0, 2).Background(primaryColor).Foreground(lipgloss.Color("255")).Bold(true)
	crownStyle     = lipgloss.NewStyle().Foreground(paidColor)
	fieldStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	fieldFocused   = fieldStyle.BorderForeground(primaryColor)
	keyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	keyFocused     = lipgloss.NewStyle().Background(primaryColor).Foreground(lipgloss.Color("255")).Bold(true)
	keySpecial     = lipgloss.NewStyle().Foreground(warningColor)
	keyboardBorder = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
)
