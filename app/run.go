package app

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/seracht/gpterm/app/chat"
	"github.com/seracht/gpterm/history"
	"github.com/seracht/gpterm/log"
	"github.com/seracht/gpterm/store"
	"github.com/seracht/gpterm/term"
	"github.com/seracht/gpterm/ui"
)

// Run owns the terminal for the program's lifetime: it enters raw mode and
// the alternate screen, drives the store from key input, and redraws on
// every state change. It returns when the user quits or the context is
// cancelled.
func Run(ctx context.Context) error {
	st, err := history.NewStore()
	if err != nil {
		return err
	}

	restore, err := term.RawMode()
	if err != nil {
		return err
	}
	defer restore()

	screen := term.NewScreen(os.Stdout)
	screen.Enter()
	defer screen.Exit()

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	input := term.NewInput(os.Stdin)
	defer input.Close()

	width, height := term.Size()
	s := store.New[State, Action](NewState(width, height), NewFeature(st))
	s.Send(ChatAction{Action: chat.ReloadConfigAction{}})

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	defer signal.Stop(winch)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-winch:
				w, h := term.Size()
				s.Send(ResizeAction{Width: w, Height: h})
			}
		}
	}()

	md := ui.NewMarkdown(width - sidebarReserve)
	redraw := func(state State) {
		md.SetWidth(state.Width - sidebarReserve)
		screen.Draw(View(state, md))
	}

	err = store.Run(ctx, s, redraw, func(ev term.KeyEvent) Action {
		return KeyAction{Event: ev}
	}, input)
	if errors.Is(err, io.EOF) || errors.Is(err, store.ErrSourceClosed) || errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		log.ErrorLog.Printf("event loop: %v", err)
	}
	return err
}

// sidebarReserve keeps markdown wrapping clear of the sidebar column.
const sidebarReserve = 36
