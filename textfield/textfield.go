// Package textfield wraps the modal editor as a reusable feature: key events
// go in, buffer edits happen, and everything the field does not consume is
// delegated back to the owning feature.
package textfield

import (
	"github.com/seracht/gpterm/editor"
	"github.com/seracht/gpterm/store"
	"github.com/seracht/gpterm/term"
)

// State is the editable field: the vi machine plus its buffer. Owners read
// Buffer directly and replace the whole State to reset the field.
type State struct {
	Vim    editor.Vim
	Buffer *editor.Buffer
}

// NewState returns an empty field in normal mode.
func NewState() State {
	return State{
		Vim:    editor.NewVim(editor.ModeNormal),
		Buffer: editor.NewBuffer(),
	}
}

// Text returns the field contents.
func (s State) Text() string {
	return s.Buffer.Text()
}

// Action is the feature's action type.
type Action interface{ isAction() }

// KeyAction feeds one key event into the editor.
type KeyAction struct {
	Event term.KeyEvent
}

// DelegatedAction surfaces an outcome the owner must handle.
type DelegatedAction struct {
	Delegated Delegated
}

func (KeyAction) isAction()       {}
func (DelegatedAction) isAction() {}

// Delegated enumerates what the field hands back to its owner.
type Delegated interface{ isDelegated() }

// DelegatedNoop carries a key the editor did not consume.
type DelegatedNoop struct {
	Event term.KeyEvent
}

// DelegatedUpdated signals the buffer contents changed.
type DelegatedUpdated struct{}

// DelegatedQuit signals q was pressed in normal mode.
type DelegatedQuit struct{}

// DelegatedCommit signals Enter was pressed in normal mode.
type DelegatedCommit struct{}

func (DelegatedNoop) isDelegated()    {}
func (DelegatedUpdated) isDelegated() {}
func (DelegatedQuit) isDelegated()    {}
func (DelegatedCommit) isDelegated()  {}

// Feature is the textfield reducer.
type Feature struct{}

func (Feature) Reduce(state *State, action Action) store.Effect[Action] {
	switch a := action.(type) {
	case KeyAction:
		// Clone before editing so the engine's change detection compares
		// against untouched data.
		buf := state.Buffer.Clone()
		tr := state.Vim.Handle(a.Event, buf)
		switch tr.Kind {
		case editor.TransitionNop:
			return store.Send[Action](DelegatedAction{DelegatedNoop{a.Event}})
		case editor.TransitionQuit:
			return store.Send[Action](DelegatedAction{DelegatedQuit{}})
		case editor.TransitionCommit:
			return store.Send[Action](DelegatedAction{DelegatedCommit{}})
		case editor.TransitionMode:
			state.Buffer = buf
			state.Vim = tr.Next
			return store.Send[Action](DelegatedAction{DelegatedUpdated{}})
		default:
			return store.None[Action]()
		}
	case DelegatedAction:
		return store.None[Action]()
	default:
		return store.None[Action]()
	}
}
