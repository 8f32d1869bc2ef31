// Package apikey is the Config screen: a single-line input for the OpenAI
// API key. A committed key is delegated for the root to persist.
package apikey

import (
	"strings"

	"github.com/seracht/gpterm/store"
	"github.com/seracht/gpterm/term"
	"github.com/seracht/gpterm/textinput"
)

// State is the key entry field plus whether it is open for editing.
type State struct {
	Input   textinput.State
	Editing bool
}

// NewState returns the Config screen with the field closed.
func NewState() State {
	return State{Input: textinput.NewState()}
}

// Action is the feature's action type.
type Action interface{ isAction() }

// KeyAction feeds one key event.
type KeyAction struct {
	Event term.KeyEvent
}

// InputAction wraps an action for the embedded textinput.
type InputAction struct {
	Action textinput.Action
}

// DelegatedAction surfaces an outcome to the root.
type DelegatedAction struct {
	Delegated Delegated
}

func (KeyAction) isAction()       {}
func (InputAction) isAction()     {}
func (DelegatedAction) isAction() {}

// Delegated enumerates what the screen hands back.
type Delegated interface{ isDelegated() }

// DelegatedNoop carries an unhandled key.
type DelegatedNoop struct {
	Event term.KeyEvent
}

// DelegatedFinished carries an entered API key for the root to save.
type DelegatedFinished struct {
	APIKey string
}

func (DelegatedNoop) isDelegated()     {}
func (DelegatedFinished) isDelegated() {}

// Feature is the apikey reducer.
type Feature struct{}

func (Feature) Reduce(state *State, action Action) store.Effect[Action] {
	switch a := action.(type) {
	case KeyAction:
		if state.Editing {
			return store.Send[Action](InputAction{textinput.KeyAction{Event: a.Event}})
		}
		if a.Event.Key == term.KeyEnter || a.Event.IsChar('e') {
			state.Editing = true
			state.Input = textinput.NewState()
			return store.None[Action]()
		}
		return store.Send[Action](DelegatedAction{DelegatedNoop{a.Event}})
	case InputAction:
		if d, ok := a.Action.(textinput.DelegatedAction); ok {
			switch del := d.Delegated.(type) {
			case textinput.DelegatedEnter:
				key := strings.TrimSpace(state.Input.Text())
				if key == "" {
					return store.None[Action]()
				}
				state.Editing = false
				return store.Send[Action](DelegatedAction{DelegatedFinished{APIKey: key}})
			case textinput.DelegatedExit:
				state.Editing = false
				return store.None[Action]()
			case textinput.DelegatedNoop:
				return store.Send[Action](DelegatedAction{DelegatedNoop{del.Event}})
			default:
				return store.None[Action]()
			}
		}
		eff := textinput.Feature{}.Reduce(&state.Input, a.Action)
		return store.Map(eff, func(ia textinput.Action) Action { return InputAction{ia} })
	default:
		return store.None[Action]()
	}
}
