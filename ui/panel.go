package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Panel frames content with a rounded border and an embedded title. Focused
// panels use the highlight border color.
func Panel(title, content string, width, height int, focused bool) string {
	style := PanelStyle
	if focused {
		style = FocusedPanelStyle
	}
	inner := style.
		Width(width - 2).
		Height(height - 2).
		Render(content)
	if title == "" {
		return inner
	}
	// The title is spliced in unstyled; styling it would put escape codes
	// inside the border line.
	return overlayTitle(inner, " "+title+" ")
}

// overlayTitle splices a title into the top border line.
func overlayTitle(panel, title string) string {
	lines := strings.SplitN(panel, "\n", 2)
	if len(lines) < 2 {
		return panel
	}
	top := []rune(lines[0])
	if len(top) < 4 {
		return panel
	}
	titleRunes := []rune(title)
	max := len(top) - 2
	if len(titleRunes) > max {
		titleRunes = titleRunes[:max]
	}
	spliced := append([]rune{}, top[:2]...)
	spliced = append(spliced, titleRunes...)
	spliced = append(spliced, top[2+len(titleRunes):]...)
	return string(spliced) + "\n" + lines[1]
}

// StatusBar joins hint segments into the one-line bar under each screen.
func StatusBar(width int, segments ...string) string {
	bar := HintStyle.Render(strings.Join(segments, "  •  "))
	return lipgloss.NewStyle().Width(width).Render(bar)
}

// JoinVertical stacks blocks left-aligned.
func JoinVertical(blocks ...string) string {
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

// JoinHorizontal places blocks side by side, top-aligned.
func JoinHorizontal(blocks ...string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}
