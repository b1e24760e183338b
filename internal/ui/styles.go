package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Terminal palette, kept to the basic ANSI colours the scanner output uses
var (
	Red     = lipgloss.Color("1")
	Green   = lipgloss.Color("2")
	Yellow  = lipgloss.Color("3")
	Blue    = lipgloss.Color("4")
	Magenta = lipgloss.Color("5")
	Cyan    = lipgloss.Color("6")
)

var (
	PromptStyle   = lipgloss.NewStyle().Foreground(Yellow)
	SuccessStyle  = lipgloss.NewStyle().Foreground(Green)
	ErrorStyle    = lipgloss.NewStyle().Foreground(Red)
	InfoStyle     = lipgloss.NewStyle().Foreground(Blue)
	ProgressStyle = lipgloss.NewStyle().Foreground(Cyan)
	BannerStyle   = lipgloss.NewStyle().Foreground(Magenta).Bold(true)

	// Listings alternate between these two
	RowStyles = [2]lipgloss.Style{
		lipgloss.NewStyle().Foreground(Blue),
		lipgloss.NewStyle().Foreground(Green),
	}
)

// SetNoColor disables coloured output
func SetNoColor(noColor bool) {
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
