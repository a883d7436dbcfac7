package modal

import "github.com/charmbracelet/lipgloss"

// Colors shared with the tvui screens
var (
	Primary      = lipgloss.Color("212")
	Error        = lipgloss.Color("196")
	Warning      = lipgloss.Color("214")
	Muted        = lipgloss.Color("241")
	BorderNormal = lipgloss.Color("240")
)

// Button styles
var (
	ButtonStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Background(lipgloss.Color("238")).
		Padding(0, 2)

	ButtonFocused = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(Primary).
			Bold(true).
			Padding(0, 2)

	ButtonAlertFocused = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(Warning).
				Bold(true).
				Padding(0, 2)
)

// Text styles
var (
	ModalTitle = lipgloss.NewStyle().Bold(true)
	MutedText  = lipgloss.NewStyle().Foreground(Muted)
)

func borderColor(v Variant) lipgloss.Color {
	if v == VariantAlert {
		return Warning
	}
	return Primary
}
