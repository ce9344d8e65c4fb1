package ui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	// Brand colors
	Primary   = lipgloss.Color("#E4572E") // Amber/red - brand color
	Secondary = lipgloss.Color("#00D4AA") // Cyan/teal

	// Status colors
	Success = lipgloss.Color("#00D26A")
	Warning = lipgloss.Color("#FFB800")
	Error   = lipgloss.Color("#FF3838")
	Muted   = lipgloss.Color("#6B7280")

	// HTTP status code colors
	Status2xx = lipgloss.Color("#00D26A")
	Status3xx = lipgloss.Color("#4D96FF")
	Status4xx = lipgloss.Color("#FFD93D")
	Status5xx = lipgloss.Color("#FF3838")
)

// Pre-configured styles
var (
	BannerStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	VersionStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	EndpointStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Secondary)

	URLStyle = lipgloss.NewStyle().
			Foreground(Muted)

	BracketStyle = lipgloss.NewStyle().
			Foreground(Muted)

	StatStyle = lipgloss.NewStyle().
			Foreground(Muted)

	OpenStyle = lipgloss.NewStyle().
			Foreground(Warning)
)

// StatusCodeStyle returns the style for an HTTP status code.
func StatusCodeStyle(code int) lipgloss.Style {
	switch {
	case code >= 200 && code < 300:
		return lipgloss.NewStyle().Foreground(Status2xx)
	case code >= 300 && code < 400:
		return lipgloss.NewStyle().Foreground(Status3xx)
	case code >= 400 && code < 500:
		return lipgloss.NewStyle().Foreground(Status4xx)
	default:
		return lipgloss.NewStyle().Foreground(Status5xx)
	}
}
