package tui

import "github.com/charmbracelet/lipgloss"

// Basic ANSI colors so the dashboard follows the terminal's palette.
var (
	colorTitle = lipgloss.Color("6") // cyan
	colorError = lipgloss.Color("1") // red
	colorFill  = lipgloss.Color("4") // blue, usage within the glide slope
	colorOver  = lipgloss.Color("3") // yellow, usage beyond the glide slope
	colorEmpty = lipgloss.Color("0")
	colorPale  = lipgloss.Color("7")
	colorInk   = lipgloss.Color("0")
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(colorTitle).Bold(true)
	labelStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Foreground(colorError)

	fillStyle  = lipgloss.NewStyle().Background(colorFill).Foreground(colorPale)
	overStyle  = lipgloss.NewStyle().Background(colorOver).Foreground(colorInk)
	emptyStyle = lipgloss.NewStyle().Background(colorEmpty)

	markerOnFillStyle  = lipgloss.NewStyle().Background(colorFill).Foreground(colorPale).Bold(true)
	markerOnEmptyStyle = lipgloss.NewStyle().Background(colorEmpty).Foreground(colorPale).Bold(true)
)
