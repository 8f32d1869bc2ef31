package textinput

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seracht/gpterm/term"
)

func press(t *testing.T, state *State, events ...term.KeyEvent) []Delegated {
	t.Helper()
	var out []Delegated
	f := Feature{}
	for _, ev := range events {
		eff := f.Reduce(state, KeyAction{Event: ev})
		for {
			next, ok := eff.SendAction()
			if !ok {
				break
			}
			if d, isDelegated := next.(DelegatedAction); isDelegated {
				out = append(out, d.Delegated)
			}
			eff = f.Reduce(state, next)
		}
	}
	return out
}

func chars(s string) []term.KeyEvent {
	out := make([]term.KeyEvent, 0, len(s))
	for _, r := range s {
		out = append(out, term.Char(r))
	}
	return out
}

func TestFeature_Typing(t *testing.T) {
	state := NewState()
	press(t, &state, append([]term.KeyEvent{term.Char('i')}, chars("sk-123")...)...)
	assert.Equal(t, "sk-123", state.Text())
}

func TestFeature_NewlinesCollapseToOneLine(t *testing.T) {
	state := NewState()
	press(t, &state, term.Char('i'))
	press(t, &state, chars("abc")...)
	press(t, &state, term.KeyEvent{Key: term.KeyEnter})
	press(t, &state, chars("def")...)

	assert.Equal(t, "abcdef", state.Text(), "the newline is discarded and typing continues at the end")
}

func TestFeature_EnterInNormalModeDelegates(t *testing.T) {
	state := NewState()
	press(t, &state, term.Char('i'))
	press(t, &state, chars("value")...)
	press(t, &state, term.KeyEvent{Key: term.KeyEsc})

	delegated := press(t, &state, term.KeyEvent{Key: term.KeyEnter})
	require.Len(t, delegated, 1)
	assert.IsType(t, DelegatedEnter{}, delegated[0])
	assert.Equal(t, "value", state.Text())
}

func TestFeature_QuitDelegatesExit(t *testing.T) {
	state := NewState()
	delegated := press(t, &state, term.Char('q'))
	require.Len(t, delegated, 1)
	assert.IsType(t, DelegatedExit{}, delegated[0])
}
