package scrollview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seracht/gpterm/term"
)

func TestFeature_MovementKeysDelegateIntents(t *testing.T) {
	var state State
	f := Feature{}

	eff := f.Reduce(&state, KeyAction{Event: term.Char('j')})
	a, ok := eff.SendAction()
	require.True(t, ok)
	assert.Equal(t, DelegatedAction{DelegatedDown{}}, a)

	eff = f.Reduce(&state, KeyAction{Event: term.KeyEvent{Key: term.KeyUp}})
	a, ok = eff.SendAction()
	require.True(t, ok)
	assert.Equal(t, DelegatedAction{DelegatedUp{}}, a)

	eff = f.Reduce(&state, KeyAction{Event: term.Char('z')})
	a, ok = eff.SendAction()
	require.True(t, ok)
	assert.IsType(t, DelegatedAction{}, a)
	assert.IsType(t, DelegatedNoop{}, a.(DelegatedAction).Delegated)
}

func TestState_OffsetClamping(t *testing.T) {
	s := State{Offset: 50}
	s.ClampTo(30, 10)
	assert.Equal(t, 20, s.Offset)

	s.ClampTo(5, 10)
	assert.Equal(t, 0, s.Offset, "short content pins to the top")

	s.ScrollUp()
	assert.Equal(t, 0, s.Offset)

	s.ScrollDown()
	assert.Equal(t, 1, s.Offset)
}

func TestState_ScrollToBottom(t *testing.T) {
	var s State
	s.ScrollToBottom(100, 24)
	assert.Equal(t, 76, s.Offset)
}
