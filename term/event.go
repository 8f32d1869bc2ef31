// Package term owns the terminal boundary: raw-mode key input decoded into
// events, and an alternate-screen frame writer for redraws. Nothing in here
// knows about application state; features receive KeyEvents as opaque input.
package term

// Key identifies a decoded key.
type Key int

const (
	KeyRune Key = iota
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyDelete
)

func (k Key) String() string {
	switch k {
	case KeyRune:
		return "rune"
	case KeyEnter:
		return "enter"
	case KeyEsc:
		return "esc"
	case KeyBackspace:
		return "backspace"
	case KeyTab:
		return "tab"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeyDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// KeyEvent is one decoded key press.
type KeyEvent struct {
	Key  Key
	Rune rune // valid when Key == KeyRune
	Ctrl bool
	Alt  bool
}

// Char builds a plain rune event; the common case in tests and keymaps.
func Char(r rune) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: r}
}

// CtrlChar builds a ctrl-modified rune event, e.g. CtrlChar('c').
func CtrlChar(r rune) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: r, Ctrl: true}
}

// IsChar reports whether e is the unmodified rune r.
func (e KeyEvent) IsChar(r rune) bool {
	return e.Key == KeyRune && e.Rune == r && !e.Ctrl && !e.Alt
}

// IsCtrl reports whether e is ctrl plus the rune r.
func (e KeyEvent) IsCtrl(r rune) bool {
	return e.Key == KeyRune && e.Rune == r && e.Ctrl
}
