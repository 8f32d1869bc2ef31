package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	wrapped := Wrap("one two three four", 9)
	for _, line := range strings.Split(wrapped, "\n") {
		assert.LessOrEqual(t, len(line), 9)
	}

	assert.Equal(t, "untouched", Wrap("untouched", 0))
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", Clip("short", 10))
	assert.Equal(t, "long…", Clip("long line", 5))
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab   ", Pad("ab", 5))
	assert.Equal(t, "toolong", Pad("toolong", 3))
}

func TestWindow(t *testing.T) {
	lines := []string{"a", "b", "c", "d"}
	assert.Equal(t, []string{"b", "c"}, Window(lines, 1, 2))
	assert.Equal(t, []string{"d"}, Window(lines, 3, 5))
	assert.Nil(t, Window(lines, 9, 2))
	assert.Equal(t, []string{"a", "b"}, Window(lines, -1, 2))
}

func TestLineCount(t *testing.T) {
	assert.Equal(t, 1, LineCount("short", 40))
	assert.GreaterOrEqual(t, LineCount("one two three four five", 8), 3)
}

func TestPanel_EmbedsTitle(t *testing.T) {
	p := Panel("chat", "body", 20, 5, false)
	first := strings.SplitN(p, "\n", 2)[0]
	assert.Contains(t, first, "chat")
}

func TestMarkdown_FallsBackToRawOnTinyWidth(t *testing.T) {
	m := NewMarkdown(0)
	out := m.Render("plain text")
	assert.Contains(t, out, "plain text")
}

func TestMarkdown_SetWidthTakesEffect(t *testing.T) {
	m := NewMarkdown(80)
	assert.Contains(t, m.Render("wide"), "wide")

	// Shrinking below the styling minimum flips to the raw fallback even
	// though a renderer was already built for the old width.
	m.SetWidth(4)
	assert.Equal(t, "plain text", m.Render("plain text"))

	m.SetWidth(80)
	assert.Contains(t, m.Render("resized"), "resized")
}
