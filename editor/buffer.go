// Package editor implements the multiline text buffer and the vi-style modal
// state machine driving it. The buffer is a plain value type so feature state
// snapshots stay comparable; all methods mutate in place.
package editor

import (
	"strings"
	"unicode"
)

// position addresses a rune in the buffer.
type position struct {
	row, col int
}

func (p position) before(q position) bool {
	return p.row < q.row || (p.row == q.row && p.col < q.col)
}

// Buffer holds editable text as lines of runes, a cursor, an optional
// selection anchor, and a yank register. The zero value is not usable;
// construct with NewBuffer.
type Buffer struct {
	lines    [][]rune
	cursor   position
	anchor   *position
	register string

	undo []snapshot
	redo []snapshot
}

type snapshot struct {
	lines  [][]rune
	cursor position
}

// NewBuffer returns an empty single-line buffer.
func NewBuffer() *Buffer {
	return &Buffer{lines: [][]rune{{}}}
}

// NewBufferFromString seeds the buffer with text, cursor at the origin.
func NewBufferFromString(text string) *Buffer {
	b := NewBuffer()
	b.SetText(text)
	return b
}

// Clone returns an independent copy sharing no mutable storage. Reducers
// clone before editing so earlier state snapshots keep comparing against
// untouched data.
func (b *Buffer) Clone() *Buffer {
	s := b.capture()
	out := &Buffer{lines: s.lines, cursor: s.cursor, register: b.register}
	if b.anchor != nil {
		a := *b.anchor
		out.anchor = &a
	}
	out.undo = append([]snapshot(nil), b.undo...)
	out.redo = append([]snapshot(nil), b.redo...)
	return out
}

// Text returns the buffer contents joined with newlines.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// Lines returns the buffer contents line by line.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, line := range b.lines {
		out[i] = string(line)
	}
	return out
}

// SetText replaces the contents and moves the cursor to the origin.
func (b *Buffer) SetText(text string) {
	raw := strings.Split(text, "\n")
	b.lines = make([][]rune, len(raw))
	for i, l := range raw {
		b.lines[i] = []rune(l)
	}
	b.cursor = position{}
	b.anchor = nil
}

// IsEmpty reports whether the buffer holds no text.
func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 1 && len(b.lines[0]) == 0
}

// Cursor returns the current row and rune column.
func (b *Buffer) Cursor() (row, col int) {
	return b.cursor.row, b.cursor.col
}

// Register returns the current yank register contents.
func (b *Buffer) Register() string {
	return b.register
}

func (b *Buffer) line() []rune {
	return b.lines[b.cursor.row]
}

func (b *Buffer) clampCol() {
	if max := len(b.line()); b.cursor.col > max {
		b.cursor.col = max
	}
}

// --- cursor movement ---

func (b *Buffer) MoveBack() {
	if b.cursor.col > 0 {
		b.cursor.col--
	}
}

func (b *Buffer) MoveForward() {
	if b.cursor.col < len(b.line()) {
		b.cursor.col++
	}
}

func (b *Buffer) MoveUp() {
	if b.cursor.row > 0 {
		b.cursor.row--
		b.clampCol()
	}
}

func (b *Buffer) MoveDown() {
	if b.cursor.row < len(b.lines)-1 {
		b.cursor.row++
		b.clampCol()
	}
}

// MoveStartOfLine moves to column zero.
func (b *Buffer) MoveStartOfLine() {
	b.cursor.col = 0
}

// MoveFirstNonBlank moves to the first non-whitespace rune of the line.
func (b *Buffer) MoveFirstNonBlank() {
	for i, r := range b.line() {
		if !unicode.IsSpace(r) {
			b.cursor.col = i
			return
		}
	}
	b.cursor.col = 0
}

// MoveEndOfLine moves past the last rune of the line.
func (b *Buffer) MoveEndOfLine() {
	b.cursor.col = len(b.line())
}

// MoveTop moves to the first line, column zero.
func (b *Buffer) MoveTop() {
	b.cursor = position{}
}

// MoveBottom moves to the last line, column zero.
func (b *Buffer) MoveBottom() {
	b.cursor = position{row: len(b.lines) - 1}
}

// runeClass buckets runes the way vi word motions do.
func runeClass(r rune) int {
	switch {
	case unicode.IsSpace(r):
		return 0
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
		return 1
	default:
		return 2
	}
}

// MoveWordForward advances to the start of the next word, crossing line
// boundaries.
func (b *Buffer) MoveWordForward() {
	line := b.line()
	col := b.cursor.col
	if col < len(line) {
		class := runeClass(line[col])
		for col < len(line) && runeClass(line[col]) == class {
			col++
		}
	}
	for {
		for col < len(line) && unicode.IsSpace(line[col]) {
			col++
		}
		if col < len(line) || b.cursor.row == len(b.lines)-1 {
			break
		}
		b.cursor.row++
		line = b.line()
		col = 0
		if len(line) == 0 {
			break
		}
	}
	b.cursor.col = col
	b.clampCol()
}

// MoveWordBack retreats to the start of the previous word, crossing line
// boundaries.
func (b *Buffer) MoveWordBack() {
	col := b.cursor.col
	for {
		line := b.line()
		for col > 0 && unicode.IsSpace(line[col-1]) {
			col--
		}
		if col > 0 {
			class := runeClass(line[col-1])
			for col > 0 && runeClass(line[col-1]) == class {
				col--
			}
			b.cursor.col = col
			return
		}
		if b.cursor.row == 0 {
			b.cursor.col = 0
			return
		}
		b.cursor.row--
		col = len(b.line())
	}
}

// --- editing ---

// PushUndo records the current contents for a later Undo. The vi layer calls
// this once per edit group, so a whole insert session undoes in one step.
func (b *Buffer) PushUndo() {
	b.undo = append(b.undo, b.capture())
	b.redo = nil
}

func (b *Buffer) capture() snapshot {
	lines := make([][]rune, len(b.lines))
	for i, l := range b.lines {
		lines[i] = append([]rune(nil), l...)
	}
	return snapshot{lines: lines, cursor: b.cursor}
}

func (b *Buffer) restore(s snapshot) {
	// Copy the snapshot's storage so clones holding the same undo history
	// never share mutable lines.
	lines := make([][]rune, len(s.lines))
	for i, l := range s.lines {
		lines[i] = append([]rune(nil), l...)
	}
	b.lines = lines
	b.cursor = s.cursor
	if b.cursor.row >= len(b.lines) {
		b.cursor.row = len(b.lines) - 1
	}
	b.clampCol()
	b.anchor = nil
}

// Undo reverts to the last recorded snapshot.
func (b *Buffer) Undo() {
	if len(b.undo) == 0 {
		return
	}
	last := b.undo[len(b.undo)-1]
	b.undo = b.undo[:len(b.undo)-1]
	b.redo = append(b.redo, b.capture())
	b.restore(last)
}

// Redo reapplies the last undone snapshot.
func (b *Buffer) Redo() {
	if len(b.redo) == 0 {
		return
	}
	last := b.redo[len(b.redo)-1]
	b.redo = b.redo[:len(b.redo)-1]
	b.undo = append(b.undo, b.capture())
	b.restore(last)
}

// InsertRune inserts r at the cursor and advances.
func (b *Buffer) InsertRune(r rune) {
	line := b.line()
	col := b.cursor.col
	newLine := make([]rune, 0, len(line)+1)
	newLine = append(newLine, line[:col]...)
	newLine = append(newLine, r)
	newLine = append(newLine, line[col:]...)
	b.lines[b.cursor.row] = newLine
	b.cursor.col++
}

// InsertString inserts s at the cursor; newlines split lines.
func (b *Buffer) InsertString(s string) {
	for _, r := range s {
		if r == '\n' {
			b.InsertNewline()
		} else {
			b.InsertRune(r)
		}
	}
}

// InsertNewline splits the current line at the cursor.
func (b *Buffer) InsertNewline() {
	line := b.line()
	col := b.cursor.col
	rest := append([]rune(nil), line[col:]...)
	b.lines[b.cursor.row] = line[:col]
	b.lines = append(b.lines, nil)
	copy(b.lines[b.cursor.row+2:], b.lines[b.cursor.row+1:])
	b.lines[b.cursor.row+1] = rest
	b.cursor.row++
	b.cursor.col = 0
}

// DeleteBack removes the rune before the cursor, joining lines at column
// zero.
func (b *Buffer) DeleteBack() {
	if b.cursor.col > 0 {
		line := b.line()
		b.lines[b.cursor.row] = append(line[:b.cursor.col-1], line[b.cursor.col:]...)
		b.cursor.col--
		return
	}
	if b.cursor.row == 0 {
		return
	}
	prev := b.lines[b.cursor.row-1]
	b.cursor.col = len(prev)
	b.lines[b.cursor.row-1] = append(prev, b.line()...)
	b.lines = append(b.lines[:b.cursor.row], b.lines[b.cursor.row+1:]...)
	b.cursor.row--
}

// DeleteNextChar removes the rune under the cursor.
func (b *Buffer) DeleteNextChar() {
	line := b.line()
	if b.cursor.col < len(line) {
		b.lines[b.cursor.row] = append(line[:b.cursor.col], line[b.cursor.col+1:]...)
	}
}

// DeleteToLineEnd removes from the cursor to the end of the line and yanks
// the removed text.
func (b *Buffer) DeleteToLineEnd() {
	line := b.line()
	if b.cursor.col < len(line) {
		b.register = string(line[b.cursor.col:])
		b.lines[b.cursor.row] = line[:b.cursor.col]
	}
}

// --- selection ---

// StartSelection anchors a selection at the cursor.
func (b *Buffer) StartSelection() {
	p := b.cursor
	b.anchor = &p
}

// CancelSelection drops the selection anchor.
func (b *Buffer) CancelSelection() {
	b.anchor = nil
}

// HasSelection reports whether a selection is active.
func (b *Buffer) HasSelection() bool {
	return b.anchor != nil
}

// selectionBounds returns the selection ordered start before end. The end
// position is exclusive: the region is the text between the two cursor
// positions, which is what makes operator+motion edits like dw behave.
func (b *Buffer) selectionBounds() (position, position, bool) {
	if b.anchor == nil {
		return position{}, position{}, false
	}
	start, end := *b.anchor, b.cursor
	if end.before(start) {
		start, end = end, start
	}
	return start, end, true
}

func (b *Buffer) selectedText() (string, position, position, bool) {
	start, end, ok := b.selectionBounds()
	if !ok {
		return "", position{}, position{}, false
	}
	if start.row == end.row {
		return string(b.lines[start.row][start.col:end.col]), start, end, true
	}
	var sb strings.Builder
	sb.WriteString(string(b.lines[start.row][start.col:]))
	for r := start.row + 1; r < end.row; r++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[r]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[end.row][:end.col]))
	return sb.String(), start, end, true
}

// Copy yanks the selection into the register and cancels it.
func (b *Buffer) Copy() {
	text, start, _, ok := b.selectedText()
	if !ok {
		return
	}
	b.register = text
	b.cursor = start
	b.clampCol()
	b.anchor = nil
}

// Cut yanks the selection into the register and deletes it.
func (b *Buffer) Cut() {
	text, start, end, ok := b.selectedText()
	if !ok {
		return
	}
	b.register = text
	head := b.lines[start.row][:start.col]
	tail := append([]rune(nil), b.lines[end.row][end.col:]...)
	b.lines[start.row] = append(head, tail...)
	b.lines = append(b.lines[:start.row+1], b.lines[end.row+1:]...)
	b.cursor = start
	b.clampCol()
	b.anchor = nil
}

// Paste inserts the register contents at the cursor.
func (b *Buffer) Paste() {
	if b.register == "" {
		return
	}
	b.InsertString(b.register)
}
