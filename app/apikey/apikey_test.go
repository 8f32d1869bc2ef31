package apikey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seracht/gpterm/term"
)

// apply feeds keys through the reducer, following chained actions, and
// collects delegations.
func apply(t *testing.T, state *State, events ...term.KeyEvent) []Delegated {
	t.Helper()
	var delegated []Delegated
	f := Feature{}
	for _, ev := range events {
		eff := f.Reduce(state, KeyAction{Event: ev})
		for {
			next, ok := eff.SendAction()
			if !ok {
				break
			}
			if d, isDelegated := next.(DelegatedAction); isDelegated {
				delegated = append(delegated, d.Delegated)
			}
			eff = f.Reduce(state, next)
		}
	}
	return delegated
}

func typeKey(key string) []term.KeyEvent {
	events := []term.KeyEvent{term.Char('i')}
	for _, r := range key {
		events = append(events, term.Char(r))
	}
	events = append(events, term.KeyEvent{Key: term.KeyEsc}, term.KeyEvent{Key: term.KeyEnter})
	return events
}

func TestFeature_EKeyOpensEditing(t *testing.T) {
	state := NewState()
	apply(t, &state, term.Char('e'))
	assert.True(t, state.Editing)
}

func TestFeature_EnteredKeyIsDelegated(t *testing.T) {
	state := NewState()
	apply(t, &state, term.Char('e'))

	delegated := apply(t, &state, typeKey("sk-secret")...)
	require.NotEmpty(t, delegated)
	last := delegated[len(delegated)-1]
	assert.Equal(t, DelegatedFinished{APIKey: "sk-secret"}, last)
	assert.False(t, state.Editing)
}

func TestFeature_EmptyEntryIsNotDelegated(t *testing.T) {
	state := NewState()
	apply(t, &state, term.Char('e'))

	delegated := apply(t, &state, term.KeyEvent{Key: term.KeyEnter})
	for _, d := range delegated {
		assert.NotEqual(t, DelegatedFinished{}, d)
	}
	assert.True(t, state.Editing, "an empty entry keeps the editor open")
}

func TestFeature_QuitLeavesEditing(t *testing.T) {
	state := NewState()
	apply(t, &state, term.Char('e'))
	apply(t, &state, term.Char('q'))
	assert.False(t, state.Editing)
}

func TestFeature_KeysOutsideEditingBubble(t *testing.T) {
	state := NewState()
	ev := term.Char('2')
	delegated := apply(t, &state, ev)
	require.Len(t, delegated, 1)
	assert.Equal(t, DelegatedNoop{Event: ev}, delegated[0])
}
