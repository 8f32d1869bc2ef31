package term

import (
	"unicode/utf8"
)

// decode parses one key event from the head of buf and returns it together
// with the number of bytes consumed. A zero count means buf holds an
// incomplete sequence and the caller should read more input first.
func decode(buf []byte) (KeyEvent, int) {
	if len(buf) == 0 {
		return KeyEvent{}, 0
	}

	switch b := buf[0]; {
	case b == 0x1b:
		return decodeEscape(buf)
	case b == '\r' || b == '\n':
		return KeyEvent{Key: KeyEnter}, 1
	case b == '\t':
		return KeyEvent{Key: KeyTab}, 1
	case b == 0x7f || b == 0x08:
		return KeyEvent{Key: KeyBackspace}, 1
	case b < 0x20:
		// Ctrl-a..Ctrl-z arrive as bytes 1..26.
		return KeyEvent{Key: KeyRune, Rune: rune(b) + 'a' - 1, Ctrl: true}, 1
	}

	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError && size <= 1 {
		if !utf8.FullRune(buf) && len(buf) < utf8.UTFMax {
			return KeyEvent{}, 0
		}
		// Skip the malformed byte rather than stalling the reader.
		return KeyEvent{Key: KeyRune, Rune: utf8.RuneError}, 1
	}
	return KeyEvent{Key: KeyRune, Rune: r}, size
}

func decodeEscape(buf []byte) (KeyEvent, int) {
	if len(buf) == 1 {
		// A bare escape is delivered as-is; the reader only calls us with a
		// lone 0x1b once the read that produced it is fully consumed.
		return KeyEvent{Key: KeyEsc}, 1
	}

	if buf[1] == '[' || buf[1] == 'O' {
		if len(buf) < 3 {
			return KeyEvent{}, 0
		}
		switch buf[2] {
		case 'A':
			return KeyEvent{Key: KeyUp}, 3
		case 'B':
			return KeyEvent{Key: KeyDown}, 3
		case 'C':
			return KeyEvent{Key: KeyRight}, 3
		case 'D':
			return KeyEvent{Key: KeyLeft}, 3
		case 'H':
			return KeyEvent{Key: KeyHome}, 3
		case 'F':
			return KeyEvent{Key: KeyEnd}, 3
		case '3':
			if len(buf) < 4 {
				return KeyEvent{}, 0
			}
			if buf[3] == '~' {
				return KeyEvent{Key: KeyDelete}, 4
			}
			return KeyEvent{Key: KeyEsc}, 1
		default:
			// Unrecognized CSI sequence; swallow the introducer and let the
			// remaining bytes decode as plain input.
			return KeyEvent{Key: KeyEsc}, 2
		}
	}

	// Alt-modified rune: ESC followed by a printable byte.
	r, size := utf8.DecodeRune(buf[1:])
	if r == utf8.RuneError && size <= 1 {
		return KeyEvent{Key: KeyEsc}, 1
	}
	return KeyEvent{Key: KeyRune, Rune: r, Alt: true}, 1 + size
}
