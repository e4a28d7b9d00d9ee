package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the visual styles of the menus and the runs board.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	ItemNormal  lipgloss.Style
	ItemActive  lipgloss.Style
	Description lipgloss.Style
	Best        lipgloss.Style
	Controls    lipgloss.Style
	Error       lipgloss.Style

	// Runs board
	Border      lipgloss.Color
	HeaderText  lipgloss.Color
	SelectedFg  lipgloss.Color
	SelectedBg  lipgloss.Color
	EmptyNotice lipgloss.Style
}

// DefaultTheme returns the chrome-and-echo palette: cyan titles, yellow
// highlights, grays for everything else.
func DefaultTheme() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		Subtitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		Best:        lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Controls:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")),

		Border:      lipgloss.Color("240"),
		HeaderText:  lipgloss.Color("229"),
		SelectedFg:  lipgloss.Color("229"),
		SelectedBg:  lipgloss.Color("57"),
		EmptyNotice: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
	}
}

// MonochromeTheme returns a grayscale theme for terminals with poor color support.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Title = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.ItemActive = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).Underline(true)
	theme.Best = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	theme.SelectedBg = lipgloss.Color("240")
	return theme
}

var currentTheme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(theme Theme) {
	currentTheme = theme
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return currentTheme
}
