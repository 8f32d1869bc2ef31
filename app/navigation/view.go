package navigation

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/seracht/gpterm/ui"
)

var (
	activeTabStyle   = lipgloss.NewStyle().Foreground(ui.ColorIris).Bold(true)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(ui.ColorMuted)
)

// View renders the tab strip.
func View(s State, width int) string {
	tabs := []Screen{ScreenChat, ScreenConfig}
	var row string
	for i, tab := range tabs {
		label := "[" + strconv.Itoa(i+1) + "] " + tab.String()
		style := inactiveTabStyle
		if tab == s.Current {
			style = activeTabStyle
		}
		row += style.Render(label) + "  "
	}
	return ui.Clip(row, width)
}
