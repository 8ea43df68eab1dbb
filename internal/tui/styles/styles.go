package styles

import "github.com/charmbracelet/lipgloss"

// Color palette: dark, music-player green with amber for the printer
// and blue for the skyblock sidebar.
var (
	Green     = lipgloss.Color("#1DB954")
	Amber     = lipgloss.Color("#E8A020")
	Blue      = lipgloss.Color("#3D8EF0")
	Red       = lipgloss.Color("#FF4444")
	White     = lipgloss.Color("#E8E8F0")
	LightGray = lipgloss.Color("#7878A0")
	DimGray   = lipgloss.Color("#404060")
	Border    = lipgloss.Color("#252535")
)

// Borders
var (
	PaneBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border)

	SidebarBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Blue)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Green)

	AmberStyle = lipgloss.NewStyle().
			Foreground(Amber)

	BlueStyle = lipgloss.NewStyle().
			Foreground(Blue)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true)

	CountdownStyle = lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true)
)
