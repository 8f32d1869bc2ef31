package ui

import "github.com/charmbracelet/lipgloss"

// Rosé Pine Moon palette
// https://rosepinetheme.com/palette/
var (
	// Base tones
	ColorBase    = lipgloss.Color("#232136")
	ColorSurface = lipgloss.Color("#2a273f")
	ColorOverlay = lipgloss.Color("#393552")
	ColorMuted   = lipgloss.Color("#6e6a86")
	ColorSubtle  = lipgloss.Color("#908caa")
	ColorText    = lipgloss.Color("#e0def4")

	// Semantic colors
	ColorLove = lipgloss.Color("#eb6f92") // error, danger
	ColorGold = lipgloss.Color("#f6c177") // warning
	ColorRose = lipgloss.Color("#ea9a97") // accent, secondary
	ColorPine = lipgloss.Color("#3e8fb0") // link
	ColorFoam = lipgloss.Color("#9ccfd8") // info, streaming
	ColorIris = lipgloss.Color("#c4a7e7") // highlight, primary
)

var (
	// PanelStyle frames a screen region.
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted)

	// FocusedPanelStyle marks the region receiving key input.
	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorIris)

	// TitleStyle renders panel titles embedded in the top border.
	TitleStyle = lipgloss.NewStyle().Foreground(ColorSubtle)

	// HintStyle renders key hints in the navigation bar.
	HintStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	// UserHeaderStyle and AssistantHeaderStyle label transcript messages.
	UserHeaderStyle      = lipgloss.NewStyle().Foreground(ColorFoam).Bold(true)
	AssistantHeaderStyle = lipgloss.NewStyle().Foreground(ColorRose).Bold(true)

	// StreamingStyle marks the partial reply still arriving.
	StreamingStyle = lipgloss.NewStyle().Foreground(ColorFoam).Italic(true)

	// ErrorStyle renders alerts.
	ErrorStyle = lipgloss.NewStyle().Foreground(ColorLove).Bold(true)

	// SelectionStyle highlights the selected sidebar row.
	SelectionStyle = lipgloss.NewStyle().
			Foreground(ColorBase).
			Background(ColorIris).
			Bold(true)

	// CursorStyle renders the editor cursor cell.
	CursorStyle = lipgloss.NewStyle().Reverse(true)
)

// ModeColor returns the accent color for a vi mode name as produced by the
// editor's status line.
func ModeColor(mode string) lipgloss.Color {
	switch mode {
	case "INSERT":
		return ColorFoam
	case "VISUAL":
		return ColorGold
	case "NORMAL":
		return ColorSubtle
	default:
		return ColorIris
	}
}
