package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/seracht/gpterm/gpt"
	"github.com/seracht/gpterm/ui"
)

const (
	sidebarWidth   = 30
	inputHeight    = 7
	minFrameWidth  = 40
	minFrameHeight = 12
)

// View renders the chat screen into a frame of the given size. It is a pure
// function of the state; the markdown renderer is the one piece of shared
// machinery and the caller owns it.
func View(s State, md *ui.Markdown, width, height int) string {
	if width < minFrameWidth || height < minFrameHeight {
		return ui.HintStyle.Render("Terminal too small")
	}
	if s.Conv == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			ui.HintStyle.Render("No API key configured. Press 2 and enter one."))
	}
	scr := *s.Conv

	bodyWidth := width - sidebarWidth
	transcriptHeight := height - inputHeight - 1

	sidebarView := viewSidebar(scr, sidebarWidth, height-1)
	transcript := viewTranscript(scr, md, bodyWidth, transcriptHeight)
	input := viewInput(scr, bodyWidth, inputHeight)
	status := viewStatus(scr, width)

	body := ui.JoinHorizontal(sidebarView, ui.JoinVertical(transcript, input))
	return ui.JoinVertical(body, status)
}

func viewSidebar(scr Screen, width, height int) string {
	inner := width - 2
	var lines []string
	for i, entry := range scr.Sidebar.List.Items {
		line := ui.Clip(entry.Display(), inner)
		if i == scr.Sidebar.List.Selected {
			line = ui.SelectionStyle.Render(ui.Pad(line, inner))
		}
		lines = append(lines, line)
	}
	content := strings.Join(ui.Window(lines, 0, height-2), "\n")
	return ui.Panel("History", content, width, height, scr.Focus == FocusSidebar)
}

func viewTranscript(scr Screen, md *ui.Markdown, width, height int) string {
	conv := scr.Conversation
	inner := width - 4

	var blocks []string
	for i, msg := range conv.History {
		header := roleHeader(msg.Role)
		if scr.Focus == FocusTranscript && i == conv.Selected {
			header = ui.SelectionStyle.Render(" " + msg.Role.Display() + " ")
		}
		blocks = append(blocks, header+"\n"+md.Render(msg.Content))
	}
	if conv.IsStreaming {
		partial := conv.Partial
		if partial == "" {
			partial = "…"
		}
		blocks = append(blocks,
			roleHeader(gpt.RoleAssistant)+"\n"+ui.StreamingStyle.Render(ui.Wrap(partial, inner)))
	}
	if conv.Alert != nil {
		style := ui.ErrorStyle
		if conv.Alert.Kind == AlertSuccess {
			style = ui.StreamingStyle
		}
		blocks = append(blocks, style.Render(conv.Alert.Text))
	}

	lines := strings.Split(strings.Join(blocks, "\n\n"), "\n")
	visible := height - 2
	offset := len(lines) - visible
	if scr.Focus == FocusTranscript {
		offset = offsetForSelected(blocks, conv.Selected, visible)
	}
	if offset < 0 {
		offset = 0
	}
	content := strings.Join(ui.Window(lines, offset, visible), "\n")
	return ui.Panel("Conversation", content, width, height, scr.Focus == FocusTranscript)
}

// offsetForSelected scrolls so the selected message's header is in view,
// preferring to show as much below it as fits.
func offsetForSelected(blocks []string, selected, visible int) int {
	if selected < 0 || selected >= len(blocks) {
		return 0
	}
	top := 0
	for i := 0; i < selected; i++ {
		top += len(strings.Split(blocks[i], "\n")) + 1
	}
	total := 0
	for _, b := range blocks {
		total += len(strings.Split(b, "\n")) + 1
	}
	max := total - 1 - visible
	if top > max {
		top = max
	}
	if top < 0 {
		top = 0
	}
	return top
}

func roleHeader(role gpt.Role) string {
	switch role {
	case gpt.RoleUser:
		return ui.UserHeaderStyle.Render(role.Display())
	default:
		return ui.AssistantHeaderStyle.Render(role.Display())
	}
}

func viewInput(scr Screen, width, height int) string {
	conv := scr.Conversation
	inner := width - 4
	focused := scr.Focus == FocusField

	row, col := conv.Field.Buffer.Cursor()
	lines := conv.Field.Buffer.Lines()
	var out []string
	for i, line := range lines {
		if focused && i == row {
			out = append(out, renderCursorLine(line, col, inner))
			continue
		}
		out = append(out, ui.Clip(line, inner))
	}

	visible := height - 2
	offset := 0
	if row >= visible {
		offset = row - visible + 1
	}
	content := strings.Join(ui.Window(out, offset, visible), "\n")
	return ui.Panel("Message", content, width, height, focused)
}

// renderCursorLine paints the cursor cell in reverse video.
func renderCursorLine(line string, col, width int) string {
	runes := []rune(line)
	if col > len(runes) {
		col = len(runes)
	}
	cell := " "
	if col < len(runes) {
		cell = string(runes[col])
	}
	before := ui.Clip(string(runes[:col]), width-1)
	var after string
	if col < len(runes) {
		after = string(runes[col+1:])
	}
	return before + ui.CursorStyle.Render(cell) + ui.Clip(after, width-col-1)
}

func viewStatus(scr Screen, width int) string {
	mode := scr.Conversation.Field.Vim.StatusLine()
	modeSeg := lipgloss.NewStyle().Foreground(ui.ModeColor(mode)).Bold(true).Render(mode)
	segments := []string{modeSeg, "focus: " + scr.Focus.String()}
	if scr.Conversation.IsStreaming {
		segments = append(segments, ui.StreamingStyle.Render("streaming"))
	}
	segments = append(segments, ui.HintStyle.Render(scr.Conversation.Field.Vim.Mode.Help()))
	return ui.StatusBar(width, segments...)
}
