package apikey

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/seracht/gpterm/ui"
)

// View renders the config screen. hasKey reports whether a key is already
// stored so the screen can say so without holding the config itself.
func View(s State, hasKey bool, width, height int) string {
	if s.Editing {
		return viewEditing(s, width, height)
	}

	status := "No API key is configured."
	if hasKey {
		status = "An API key is configured."
	}
	body := strings.Join([]string{
		status,
		"",
		ui.HintStyle.Render("e: enter a new key    1: back to chat    q: quit"),
	}, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func viewEditing(s State, width, height int) string {
	inner := width - 4

	// The key is secret; render a mask the same width as the entry.
	entry := s.Input.Field.Text()
	masked := strings.Repeat("*", len(strings.TrimRight(entry, "\n")))
	_, col := s.Input.Field.Buffer.Cursor()
	line := maskedCursorLine(masked, col, inner)

	panel := ui.Panel("OpenAI API key", line, width-2, 3, true)
	hint := ui.HintStyle.Render("Enter: save    Esc then q: cancel")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		ui.JoinVertical(panel, hint))
}

func maskedCursorLine(masked string, col, width int) string {
	if col > len(masked) {
		col = len(masked)
	}
	cell := " "
	if col < len(masked) {
		cell = "*"
	}
	before := ui.Clip(masked[:col], width-1)
	var after string
	if col < len(masked) {
		after = masked[col+1:]
	}
	return before + ui.CursorStyle.Render(cell) + after
}
