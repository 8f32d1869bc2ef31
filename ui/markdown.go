package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/seracht/gpterm/log"
)

// minRenderWidth is the narrowest column glamour output stays legible at;
// below it Render hands back the raw text instead.
const minRenderWidth = 20

// Markdown renders transcript messages as terminal markdown, caching the
// renderer per wrap width because building one is expensive.
type Markdown struct {
	width    int
	renderer *glamour.TermRenderer
}

// NewMarkdown returns a renderer wrapping at the given column.
func NewMarkdown(width int) *Markdown {
	return &Markdown{width: width}
}

// SetWidth rewraps future renders at the given column, rebuilding the cached
// renderer on the next Render. Call on terminal resize.
func (m *Markdown) SetWidth(width int) {
	if width == m.width {
		return
	}
	m.width = width
	m.renderer = nil
}

// Render converts markdown to styled terminal text. On a frame too narrow to
// style, or on renderer failure, the raw text comes back unstyled; a
// transcript must never fail to display.
func (m *Markdown) Render(text string) string {
	if m.width < minRenderWidth {
		return text
	}
	if m.renderer == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(m.width),
		)
		if err != nil {
			log.WarningLog.Printf("could not create markdown renderer: %v", err)
			return text
		}
		m.renderer = r
	}

	rendered, err := m.renderer.Render(text)
	if err != nil {
		log.WarningLog.Printf("could not render markdown: %v", err)
		return text
	}
	return strings.Trim(rendered, "\n")
}
