package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScope_TranslatesAtSendTime(t *testing.T) {
	var got []parentAction
	scoped := Scope(collect(&got), wrap)

	scoped.Send(childAction{N: 3})

	assert.Equal(t, []parentAction{{Child: childAction{N: 3}}}, got)
}

type grandAction struct{ Parent parentAction }

func TestScope_IsTransitive(t *testing.T) {
	var got []grandAction
	parent := Scope(collect(&got), func(p parentAction) grandAction { return grandAction{Parent: p} })
	child := Scope(parent, wrap)

	child.Send(childAction{N: 9})

	require.Len(t, got, 1)
	assert.Equal(t, 9, got[0].Parent.Child.N)
}

// TestScope_StoreHandle drives a scoped send through a live store: the
// parent reducer must observe exactly one action equal to the translation
// of the child action.
func TestScope_StoreHandle(t *testing.T) {
	var seen []parentAction
	reducer := ReducerFunc[counterState, parentAction](func(state *counterState, action parentAction) Effect[parentAction] {
		seen = append(seen, action)
		return Quit[parentAction]()
	})
	s := New(counterState{}, reducer)

	scoped := Scope[childAction, parentAction](s, wrap)
	scoped.Send(childAction{N: 4})

	err := Run(context.Background(), s, func(counterState) {}, func(e struct{}) parentAction { return parentAction{} }, blockedSource())
	require.NoError(t, err)

	assert.Equal(t, []parentAction{{Child: childAction{N: 4}}}, seen)
}
