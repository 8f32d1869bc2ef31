// Package scrollview translates movement keys into scroll intents. The owner
// keeps the offset because only it knows the rendered content height.
package scrollview

import (
	"github.com/seracht/gpterm/store"
	"github.com/seracht/gpterm/term"
)

// State is the current scroll offset in lines from the top.
type State struct {
	Offset int
}

// ScrollUp moves one line toward the top.
func (s *State) ScrollUp() {
	if s.Offset > 0 {
		s.Offset--
	}
}

// ScrollDown moves one line toward the bottom; the owner clamps against
// content height.
func (s *State) ScrollDown() {
	s.Offset++
}

// ClampTo bounds the offset so the viewport never scrolls past the content.
func (s *State) ClampTo(contentHeight, frameHeight int) {
	max := contentHeight - frameHeight
	if max < 0 {
		max = 0
	}
	if s.Offset > max {
		s.Offset = max
	}
	if s.Offset < 0 {
		s.Offset = 0
	}
}

// ScrollToBottom pins the viewport to the end of the content.
func (s *State) ScrollToBottom(contentHeight, frameHeight int) {
	s.Offset = contentHeight
	s.ClampTo(contentHeight, frameHeight)
}

// Action is the feature's action type.
type Action interface{ isAction() }

// KeyAction feeds one key event into the view.
type KeyAction struct {
	Event term.KeyEvent
}

// DelegatedAction surfaces a scroll intent to the owner.
type DelegatedAction struct {
	Delegated Delegated
}

func (KeyAction) isAction()       {}
func (DelegatedAction) isAction() {}

// Delegated enumerates the intents the view hands back.
type Delegated interface{ isDelegated() }

// DelegatedNoop carries a key the view did not consume.
type DelegatedNoop struct {
	Event term.KeyEvent
}

// DelegatedUp asks the owner to scroll up one line.
type DelegatedUp struct{}

// DelegatedDown asks the owner to scroll down one line.
type DelegatedDown struct{}

func (DelegatedNoop) isDelegated() {}
func (DelegatedUp) isDelegated()   {}
func (DelegatedDown) isDelegated() {}

// Feature is the scrollview reducer.
type Feature struct{}

func (Feature) Reduce(state *State, action Action) store.Effect[Action] {
	switch a := action.(type) {
	case KeyAction:
		switch {
		case a.Event.IsChar('j'), a.Event.Key == term.KeyDown:
			return store.Send[Action](DelegatedAction{DelegatedDown{}})
		case a.Event.IsChar('k'), a.Event.Key == term.KeyUp:
			return store.Send[Action](DelegatedAction{DelegatedUp{}})
		default:
			return store.Send[Action](DelegatedAction{DelegatedNoop{a.Event}})
		}
	default:
		return store.None[Action]()
	}
}
