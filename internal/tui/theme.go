package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorText     lipgloss.Color = "#cdd6f4"
	colorMuted    lipgloss.Color = "#a6adc8"
	colorBorder   lipgloss.Color = "#585b70"
	colorAccent   lipgloss.Color = "#89b4fa"
	colorSuccess  lipgloss.Color = "#a6e3a1"
	colorError    lipgloss.Color = "#f38ba8"
	colorWarn     lipgloss.Color = "#f9e2af"
	colorMantle   lipgloss.Color = "#181825"
	colorSurface0 lipgloss.Color = "#313244"
	colorSurface1 lipgloss.Color = "#45475a"
	colorCrust    lipgloss.Color = "#11111b"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true)

	cellStyle       = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface0)
	blockStyle      = lipgloss.NewStyle().Background(colorCrust)
	wordStyle       = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface1)
	cursorStyle     = lipgloss.NewStyle().Foreground(colorCrust).Background(colorAccent).Bold(true)
	errorCellStyle  = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	cheatedStyle    = lipgloss.NewStyle().Foreground(colorWarn)
	clueActiveStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	panelStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Background(colorSurface0)
	statusErrBarStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Background(colorSurface0)
	footerStyle = lipgloss.NewStyle().
			Background(colorMantle)
)
