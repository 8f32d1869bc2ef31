package term

import (
	"fmt"
	"io"
	"strings"
)

const (
	enterAltScreen = "\x1b[?1049h\x1b[?25l"
	exitAltScreen  = "\x1b[?1049l\x1b[?25h"
	clearScreen    = "\x1b[2J\x1b[H"
)

// Screen writes full frames to the alternate screen buffer. Each Draw call
// replaces the previous frame; there is no diffing, the app redraws rarely
// enough that full repaints are fine.
type Screen struct {
	w      io.Writer
	active bool
}

// NewScreen wraps w, usually os.Stdout.
func NewScreen(w io.Writer) *Screen {
	return &Screen{w: w}
}

// Enter switches to the alternate screen and hides the cursor.
func (s *Screen) Enter() {
	if s.active {
		return
	}
	fmt.Fprint(s.w, enterAltScreen)
	s.active = true
}

// Exit restores the main screen and the cursor.
func (s *Screen) Exit() {
	if !s.active {
		return
	}
	fmt.Fprint(s.w, exitAltScreen)
	s.active = false
}

// Draw clears the screen and paints frame. Raw mode disables output
// post-processing, so bare newlines are rewritten to CRLF here.
func (s *Screen) Draw(frame string) {
	var b strings.Builder
	b.Grow(len(frame) + len(clearScreen) + 64)
	b.WriteString(clearScreen)
	b.WriteString(strings.ReplaceAll(frame, "\n", "\r\n"))
	fmt.Fprint(s.w, b.String())
}
