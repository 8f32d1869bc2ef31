package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
)

// Wrap word-wraps text to the given display width.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// Clip truncates a single line to the given display width, accounting for
// wide runes.
func Clip(line string, width int) string {
	return runewidth.Truncate(line, width, "…")
}

// Pad right-pads a line with spaces to exactly the given display width.
func Pad(line string, width int) string {
	gap := width - runewidth.StringWidth(line)
	if gap <= 0 {
		return line
	}
	return line + strings.Repeat(" ", gap)
}

// Window returns the slice of lines visible in a viewport of height lines
// starting at offset.
func Window(lines []string, offset, height int) []string {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(lines) {
		return nil
	}
	end := offset + height
	if end > len(lines) {
		end = len(lines)
	}
	return lines[offset:end]
}

// LineCount reports how many terminal lines text occupies after wrapping.
func LineCount(text string, width int) int {
	return len(strings.Split(Wrap(text, width), "\n"))
}
