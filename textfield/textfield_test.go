package textfield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seracht/gpterm/editor"
	"github.com/seracht/gpterm/term"
)

// apply drives the reducer exactly like a parent feature would, feeding
// chained delegated actions back in.
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

func TestFeature_TypingUpdatesBuffer(t *testing.T) {
	state := NewState()
	delegated := apply(t, &state, term.Char('i'), term.Char('h'), term.Char('i'))

	assert.Equal(t, "hi", state.Text())
	assert.Equal(t, editor.ModeInsert, state.Vim.Mode)
	for _, d := range delegated {
		assert.IsType(t, DelegatedUpdated{}, d)
	}
}

func TestFeature_CommitDelegation(t *testing.T) {
	state := NewState()
	apply(t, &state, term.Char('i'), term.Char('x'), term.KeyEvent{Key: term.KeyEsc})

	delegated := apply(t, &state, term.KeyEvent{Key: term.KeyEnter})
	require.Len(t, delegated, 1)
	assert.IsType(t, DelegatedCommit{}, delegated[0])
	assert.Equal(t, "x", state.Text(), "commit leaves the buffer for the owner to read")
}

func TestFeature_QuitDelegation(t *testing.T) {
	state := NewState()
	delegated := apply(t, &state, term.Char('q'))

	require.Len(t, delegated, 1)
	assert.IsType(t, DelegatedQuit{}, delegated[0])
}

func TestFeature_UnhandledKeyDelegatesNoop(t *testing.T) {
	state := NewState()
	tab := term.KeyEvent{Key: term.KeyTab}
	delegated := apply(t, &state, tab)

	require.Len(t, delegated, 1)
	noop, ok := delegated[0].(DelegatedNoop)
	require.True(t, ok)
	assert.Equal(t, tab, noop.Event)
}

func TestFeature_EditsDoNotAliasOldState(t *testing.T) {
	state := NewState()
	apply(t, &state, term.Char('i'), term.Char('a'))
	before := state

	apply(t, &state, term.Char('b'))
	assert.Equal(t, "a", before.Text(), "previous snapshot must not see later edits")
	assert.Equal(t, "ab", state.Text())
}
