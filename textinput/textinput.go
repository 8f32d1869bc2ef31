// Package textinput is a single-line input built on the textfield feature.
// Newlines never survive an edit, Enter delegates the committed value, and q
// delegates an exit.
package textinput

import (
	"github.com/seracht/gpterm/editor"
	"github.com/seracht/gpterm/store"
	"github.com/seracht/gpterm/term"
	"github.com/seracht/gpterm/textfield"
)

// State wraps a textfield constrained to one line.
type State struct {
	Field textfield.State
}

// NewState returns an empty single-line input.
func NewState() State {
	return State{Field: textfield.NewState()}
}

// Text returns the input contents.
func (s State) Text() string {
	return s.Field.Text()
}

// Action is the feature's action type.
type Action interface{ isAction() }

// KeyAction feeds one key event into the input.
type KeyAction struct {
	Event term.KeyEvent
}

// FieldAction wraps an action for the embedded textfield.
type FieldAction struct {
	Action textfield.Action
}

// DelegatedAction surfaces an outcome to the owner.
type DelegatedAction struct {
	Delegated Delegated
}

func (KeyAction) isAction()       {}
func (FieldAction) isAction()     {}
func (DelegatedAction) isAction() {}

// Delegated enumerates what the input hands back to its owner.
type Delegated interface{ isDelegated() }

// DelegatedNoop carries a key the input did not consume.
type DelegatedNoop struct {
	Event term.KeyEvent
}

// DelegatedEnter reports a committed value.
type DelegatedEnter struct{}

// DelegatedExit reports q in normal mode.
type DelegatedExit struct{}

func (DelegatedNoop) isDelegated()  {}
func (DelegatedEnter) isDelegated() {}
func (DelegatedExit) isDelegated()  {}

// Feature is the textinput reducer.
type Feature struct{}

func (Feature) Reduce(state *State, action Action) store.Effect[Action] {
	switch a := action.(type) {
	case KeyAction:
		return store.Send[Action](FieldAction{textfield.KeyAction{Event: a.Event}})
	case FieldAction:
		if d, ok := a.Action.(textfield.DelegatedAction); ok {
			switch del := d.Delegated.(type) {
			case textfield.DelegatedUpdated:
				collapseToSingleLine(state)
				return store.None[Action]()
			case textfield.DelegatedQuit:
				return store.Send[Action](DelegatedAction{DelegatedExit{}})
			case textfield.DelegatedCommit:
				return store.Send[Action](DelegatedAction{DelegatedEnter{}})
			case textfield.DelegatedNoop:
				return store.Send[Action](DelegatedAction{DelegatedNoop{del.Event}})
			default:
				return store.None[Action]()
			}
		}
		eff := textfield.Feature{}.Reduce(&state.Field, a.Action)
		return store.Map(eff, func(fa textfield.Action) Action { return FieldAction{fa} })
	default:
		return store.None[Action]()
	}
}

// collapseToSingleLine drops everything past the first newline, which only
// appears through o/O or a paste.
func collapseToSingleLine(state *State) {
	lines := state.Field.Buffer.Lines()
	if len(lines) <= 1 {
		return
	}
	buf := editor.NewBufferFromString(lines[0])
	buf.MoveEndOfLine()
	state.Field.Buffer = buf
}
