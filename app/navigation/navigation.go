// Package navigation owns screen switching and application exit. It only
// ever sees keys that the focused screen declined to handle.
package navigation

import (
	"github.com/seracht/gpterm/store"
	"github.com/seracht/gpterm/term"
)

// Screen identifies a top-level screen.
type Screen int

const (
	ScreenChat Screen = iota
	ScreenConfig
)

func (s Screen) String() string {
	switch s {
	case ScreenConfig:
		return "Configure"
	default:
		return "AI"
	}
}

// screenForKey maps number keys to screens.
func screenForKey(ev term.KeyEvent) (Screen, bool) {
	switch {
	case ev.IsChar('1'):
		return ScreenChat, true
	case ev.IsChar('2'):
		return ScreenConfig, true
	default:
		return 0, false
	}
}

// State is the currently visible screen.
type State struct {
	Current Screen
}

// Action is the feature's action type.
type Action interface{ isAction() }

// KeyAction feeds one unclaimed key event.
type KeyAction struct {
	Event term.KeyEvent
}

// DelegatedAction surfaces a navigation decision to the root.
type DelegatedAction struct {
	Delegated Delegated
}

func (KeyAction) isAction()       {}
func (DelegatedAction) isAction() {}

// Delegated enumerates navigation outcomes.
type Delegated interface{ isDelegated() }

// DelegatedNoop marks a key nobody wanted.
type DelegatedNoop struct {
	Event term.KeyEvent
}

// DelegatedChangeScreen asks the root to switch screens.
type DelegatedChangeScreen struct {
	Screen Screen
}

// DelegatedExit asks the root to terminate.
type DelegatedExit struct{}

func (DelegatedNoop) isDelegated()         {}
func (DelegatedChangeScreen) isDelegated() {}
func (DelegatedExit) isDelegated()         {}

// Feature is the navigation reducer.
type Feature struct{}

func (Feature) Reduce(state *State, action Action) store.Effect[Action] {
	switch a := action.(type) {
	case KeyAction:
		switch {
		case a.Event.IsChar('q'), a.Event.IsCtrl('c'):
			return store.Send[Action](DelegatedAction{DelegatedExit{}})
		default:
			if screen, ok := screenForKey(a.Event); ok {
				return store.Send[Action](DelegatedAction{DelegatedChangeScreen{screen}})
			}
			return store.Send[Action](DelegatedAction{DelegatedNoop{a.Event}})
		}
	default:
		return store.None[Action]()
	}
}
