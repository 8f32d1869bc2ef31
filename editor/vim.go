package editor

import (
	"fmt"

	"github.com/seracht/gpterm/term"
)

// Mode is the current vi emulation mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeVisual
	ModeOperator
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeVisual:
		return "VISUAL"
	case ModeOperator:
		return "OPERATOR"
	default:
		return "UNKNOWN"
	}
}

// Help returns the hint line shown under the input field for each mode.
func (m Mode) Help() string {
	switch m {
	case ModeNormal:
		return "type i to enter insert mode, Enter to send"
	case ModeInsert:
		return "type Esc to back to normal mode"
	case ModeVisual:
		return "type y to yank, type d to delete, type Esc to back to normal mode"
	case ModeOperator:
		return "move cursor to apply operator"
	default:
		return ""
	}
}

// TransitionKind classifies the outcome of feeding a key to the state
// machine.
type TransitionKind int

const (
	// TransitionNop means the key was not handled; the caller may treat it
	// as its own input.
	TransitionNop TransitionKind = iota
	// TransitionMode means the key was consumed; Mode carries the (possibly
	// unchanged) resulting mode.
	TransitionMode
	// TransitionQuit is emitted for q in normal mode.
	TransitionQuit
	// TransitionCommit is emitted for Enter in normal mode; the owner reads
	// the buffer and decides what submitting means.
	TransitionCommit
)

// Transition is the result of Vim.Handle. When Kind is TransitionMode the
// owner replaces its machine with Next.
type Transition struct {
	Kind TransitionKind
	Next Vim
}

func nop() Transition          { return Transition{Kind: TransitionNop} }
func toMode(m Mode) Transition { return Transition{Kind: TransitionMode, Next: Vim{Mode: m}} }
func toOperator(op rune) Transition {
	return Transition{Kind: TransitionMode, Next: Vim{Mode: ModeOperator, Pending: op}}
}
func quit() Transition   { return Transition{Kind: TransitionQuit} }
func commit() Transition { return Transition{Kind: TransitionCommit} }

// Vim is the modal state machine. It owns no text; each Handle call mutates
// the buffer it is given.
type Vim struct {
	Mode Mode
	// Pending is the operator awaiting a motion while Mode == ModeOperator.
	Pending rune
}

// NewVim returns a machine starting in the given mode.
func NewVim(mode Mode) Vim {
	return Vim{Mode: mode}
}

// StatusLine renders the mode for display, e.g. "OPERATOR(d)".
func (v Vim) StatusLine() string {
	if v.Mode == ModeOperator {
		return fmt.Sprintf("OPERATOR(%c)", v.Pending)
	}
	return v.Mode.String()
}

// Handle feeds one key event through the state machine, mutating buf.
func (v Vim) Handle(ev term.KeyEvent, buf *Buffer) Transition {
	if v.Mode == ModeInsert {
		return v.handleInsert(ev, buf)
	}
	return v.handleCommand(ev, buf)
}

func (v Vim) handleInsert(ev term.KeyEvent, buf *Buffer) Transition {
	switch {
	case ev.Key == term.KeyEsc, ev.IsCtrl('c'):
		return toMode(ModeNormal)
	case ev.Key == term.KeyEnter:
		buf.InsertNewline()
	case ev.Key == term.KeyBackspace:
		buf.DeleteBack()
	case ev.Key == term.KeyDelete:
		buf.DeleteNextChar()
	case ev.Key == term.KeyLeft:
		buf.MoveBack()
	case ev.Key == term.KeyRight:
		buf.MoveForward()
	case ev.Key == term.KeyUp:
		buf.MoveUp()
	case ev.Key == term.KeyDown:
		buf.MoveDown()
	case ev.Key == term.KeyTab:
		buf.InsertString("    ")
	case ev.Key == term.KeyRune && !ev.Ctrl && !ev.Alt:
		buf.InsertRune(ev.Rune)
	default:
		return nop()
	}
	return toMode(ModeInsert)
}

// handleCommand covers normal, visual and operator-pending modes. Motions
// fall through to resolvePending so a started operator applies right after
// its motion.
func (v Vim) handleCommand(ev term.KeyEvent, buf *Buffer) Transition {
	switch {
	case ev.IsChar('h'), ev.Key == term.KeyLeft:
		buf.MoveBack()
	case ev.IsChar('j'), ev.Key == term.KeyDown:
		buf.MoveDown()
	case ev.IsChar('k'), ev.Key == term.KeyUp:
		buf.MoveUp()
	case ev.IsChar('l'), ev.Key == term.KeyRight:
		buf.MoveForward()
	case ev.IsChar('w'):
		buf.MoveWordForward()
	case ev.IsChar('b'):
		buf.MoveWordBack()
	case ev.IsChar('0'):
		buf.MoveStartOfLine()
	case ev.IsChar('^'):
		buf.MoveFirstNonBlank()
	case ev.IsChar('$'), ev.Key == term.KeyEnd:
		buf.MoveEndOfLine()
	case ev.IsChar('G'):
		buf.MoveBottom()

	case ev.IsChar('D'):
		buf.PushUndo()
		buf.DeleteToLineEnd()
		return toMode(ModeNormal)
	case ev.IsChar('C'):
		buf.PushUndo()
		buf.DeleteToLineEnd()
		buf.CancelSelection()
		return toMode(ModeInsert)
	case ev.IsChar('x'):
		buf.PushUndo()
		buf.DeleteNextChar()
		return toMode(ModeNormal)
	case ev.IsChar('p'):
		buf.PushUndo()
		buf.Paste()
		return toMode(ModeNormal)
	case ev.IsChar('u'):
		buf.Undo()
		return toMode(ModeNormal)
	case ev.IsCtrl('r'):
		buf.Redo()
		return toMode(ModeNormal)

	case ev.IsChar('i'):
		buf.CancelSelection()
		buf.PushUndo()
		return toMode(ModeInsert)
	case ev.IsChar('a'):
		buf.CancelSelection()
		buf.PushUndo()
		buf.MoveForward()
		return toMode(ModeInsert)
	case ev.IsChar('A'):
		buf.CancelSelection()
		buf.PushUndo()
		buf.MoveEndOfLine()
		return toMode(ModeInsert)
	case ev.IsChar('I'):
		buf.CancelSelection()
		buf.PushUndo()
		buf.MoveStartOfLine()
		return toMode(ModeInsert)
	case ev.IsChar('o'):
		buf.PushUndo()
		buf.MoveEndOfLine()
		buf.InsertNewline()
		return toMode(ModeInsert)
	case ev.IsChar('O'):
		buf.PushUndo()
		buf.MoveStartOfLine()
		buf.InsertNewline()
		buf.MoveUp()
		return toMode(ModeInsert)

	case ev.IsChar('q'):
		return quit()
	case ev.Key == term.KeyEnter && v.Mode == ModeNormal:
		return commit()

	case ev.IsChar('v') && v.Mode == ModeNormal:
		buf.StartSelection()
		return toMode(ModeVisual)
	case ev.IsChar('V') && v.Mode == ModeNormal:
		buf.MoveStartOfLine()
		buf.StartSelection()
		buf.MoveEndOfLine()
		return toMode(ModeVisual)
	case (ev.Key == term.KeyEsc || ev.IsChar('v')) && v.Mode == ModeVisual:
		buf.CancelSelection()
		return toMode(ModeNormal)

	case ev.IsChar('g') && v.Mode == ModeNormal:
		return toOperator('g')

	case v.Mode == ModeOperator && ev.Key == term.KeyRune && ev.Rune == v.Pending:
		// yy, dd, cc operate on the whole line.
		buf.MoveStartOfLine()
		buf.StartSelection()
		row, _ := buf.Cursor()
		buf.MoveDown()
		if r, _ := buf.Cursor(); r == row {
			buf.MoveEndOfLine()
		}

	case (ev.IsChar('y') || ev.IsChar('d') || ev.IsChar('c')) && v.Mode == ModeNormal:
		buf.StartSelection()
		return toOperator(ev.Rune)

	case ev.IsChar('y') && v.Mode == ModeVisual:
		buf.Copy()
		return toMode(ModeNormal)
	case ev.IsChar('d') && v.Mode == ModeVisual:
		buf.PushUndo()
		buf.Cut()
		return toMode(ModeNormal)
	case ev.IsChar('c') && v.Mode == ModeVisual:
		buf.PushUndo()
		buf.Cut()
		return toMode(ModeInsert)

	case ev.Key == term.KeyEsc:
		return toMode(ModeNormal)

	default:
		return nop()
	}

	return v.resolvePending(buf)
}

// resolvePending applies the operator waiting on the motion that just ran.
func (v Vim) resolvePending(buf *Buffer) Transition {
	if v.Mode != ModeOperator {
		return toMode(v.Mode)
	}
	switch v.Pending {
	case 'y':
		buf.Copy()
		return toMode(ModeNormal)
	case 'd':
		buf.PushUndo()
		buf.Cut()
		return toMode(ModeNormal)
	case 'c':
		buf.PushUndo()
		buf.Cut()
		return toMode(ModeInsert)
	case 'g':
		buf.MoveTop()
		return toMode(ModeNormal)
	default:
		return nop()
	}
}
