package term

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Input reads raw terminal bytes and yields decoded KeyEvents. It implements
// the event source contract used by the store's run loop: Next blocks until a
// key arrives, the context is cancelled, or the underlying reader fails.
type Input struct {
	r       io.Reader
	buf     []byte
	pending []byte

	events chan KeyEvent
	errs   chan error
	stop   chan struct{}
}

// NewInput wraps r in a decoding event source. The reader goroutine starts
// immediately; callers stop it with Close.
func NewInput(r io.Reader) *Input {
	in := &Input{
		r:      r,
		buf:    make([]byte, 256),
		events: make(chan KeyEvent, 16),
		errs:   make(chan error, 1),
		stop:   make(chan struct{}),
	}
	go in.readLoop()
	return in
}

func (in *Input) readLoop() {
	for {
		n, err := in.r.Read(in.buf)
		if n > 0 {
			in.pending = append(in.pending, in.buf[:n]...)
			in.drainPending()
		}
		if err != nil {
			select {
			case in.errs <- err:
			case <-in.stop:
			}
			return
		}
		select {
		case <-in.stop:
			return
		default:
		}
	}
}

func (in *Input) drainPending() {
	for len(in.pending) > 0 {
		ev, n := decode(in.pending)
		if n == 0 {
			return
		}
		in.pending = in.pending[n:]
		select {
		case in.events <- ev:
		case <-in.stop:
			return
		}
	}
}

// Next returns the next key event. Decoded events drain before the reader's
// error surfaces, so keys buffered ahead of EOF are not lost; ctx.Err wins
// when the context ends first.
func (in *Input) Next(ctx context.Context) (KeyEvent, error) {
	select {
	case ev := <-in.events:
		return ev, nil
	default:
	}
	select {
	case ev := <-in.events:
		return ev, nil
	case err := <-in.errs:
		return KeyEvent{}, err
	case <-ctx.Done():
		return KeyEvent{}, ctx.Err()
	}
}

// Close stops the reader goroutine. The underlying reader is not closed;
// os.Stdin stays open for the process.
func (in *Input) Close() {
	close(in.stop)
}

// RawMode puts the controlling terminal into raw mode and returns a restore
// function. Callers must invoke restore before the process exits.
func RawMode() (restore func(), err error) {
	fd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	return func() {
		_ = term.Restore(fd, state)
	}, nil
}

// Size reports the terminal dimensions, falling back to 80x24 when the
// output is not a terminal.
func Size() (width, height int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}
