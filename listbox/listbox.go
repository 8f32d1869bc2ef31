// Package listbox is a generic selectable list feature: j/k move the
// highlight, Enter and Space delegate the selected index to the owner.
package listbox

import (
	"github.com/seracht/gpterm/store"
	"github.com/seracht/gpterm/term"
)

// State holds the items and the highlighted index. Selected is -1 until the
// first movement key lands on an item.
type State[T any] struct {
	Items    []T
	Selected int
}

// NewState returns a list with nothing highlighted.
func NewState[T any](items []T) State[T] {
	return State[T]{Items: items, Selected: -1}
}

// SelectedItem returns the highlighted item, if any.
func (s State[T]) SelectedItem() (T, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Items) {
		var zero T
		return zero, false
	}
	return s.Items[s.Selected], true
}

// Action is the feature's action type.
type Action interface{ isAction() }

// KeyAction feeds one key event into the list.
type KeyAction struct {
	Event term.KeyEvent
}

// DelegatedAction surfaces a selection event to the owner.
type DelegatedAction struct {
	Delegated Delegated
}

func (KeyAction) isAction()       {}
func (DelegatedAction) isAction() {}

// Delegated enumerates what the list hands back to its owner.
type Delegated interface{ isDelegated() }

// DelegatedNoop carries a key the list did not consume.
type DelegatedNoop struct {
	Event term.KeyEvent
}

// DelegatedToggle reports Space on the highlighted index.
type DelegatedToggle struct {
	Index int
}

// DelegatedEnter reports Enter on the highlighted index.
type DelegatedEnter struct {
	Index int
}

func (DelegatedNoop) isDelegated()   {}
func (DelegatedToggle) isDelegated() {}
func (DelegatedEnter) isDelegated()  {}

// Feature is the listbox reducer.
type Feature[T any] struct{}

func (Feature[T]) Reduce(state *State[T], action Action) store.Effect[Action] {
	switch a := action.(type) {
	case KeyAction:
		switch {
		case a.Event.IsChar('j'), a.Event.Key == term.KeyDown:
			if len(state.Items) == 0 {
				return store.None[Action]()
			}
			if state.Selected < 0 {
				state.Selected = 0
			} else if state.Selected < len(state.Items)-1 {
				state.Selected++
			}
			return store.None[Action]()
		case a.Event.IsChar('k'), a.Event.Key == term.KeyUp:
			if len(state.Items) == 0 {
				return store.None[Action]()
			}
			if state.Selected <= 0 {
				state.Selected = 0
			} else {
				state.Selected--
			}
			return store.None[Action]()
		case a.Event.IsChar(' '):
			if state.Selected < 0 {
				return store.None[Action]()
			}
			return store.Send[Action](DelegatedAction{DelegatedToggle{state.Selected}})
		case a.Event.Key == term.KeyEnter:
			if state.Selected < 0 {
				return store.None[Action]()
			}
			return store.Send[Action](DelegatedAction{DelegatedEnter{state.Selected}})
		default:
			return store.Send[Action](DelegatedAction{DelegatedNoop{a.Event}})
		}
	default:
		return store.None[Action]()
	}
}
