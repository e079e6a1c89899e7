package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the styles of everything drawn around the console screen.
type Theme struct {
	// Console chrome
	Title  lipgloss.Style
	Bezel  lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Help   lipgloss.Style
	Muted  lipgloss.Style

	// History screen
	Sidebar       lipgloss.Style
	Panel         lipgloss.Style
	ItemActive    lipgloss.Style
	TableHeader   lipgloss.Style
	TableSelected lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	border := lipgloss.Color("240")
	return Theme{
		Title:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		Bezel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),

		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		ItemActive: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		TableHeader: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(border).
			BorderBottom(true).
			Bold(true),
		TableSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")),
	}
}
