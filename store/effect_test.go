package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type childAction struct{ N int }

type parentAction struct{ Child childAction }

func wrap(c childAction) parentAction { return parentAction{Child: c} }

func collect[A any](actions *[]A) Sender[A] {
	return SenderFunc[A](func(a A) { *actions = append(*actions, a) })
}

func TestMap_SendTranslatesAction(t *testing.T) {
	e := Map(Send(childAction{N: 7}), wrap)
	assert.Equal(t, effectSend, e.kind)
	assert.Equal(t, parentAction{Child: childAction{N: 7}}, e.action)
}

func TestMap_NoneAndQuitPassThrough(t *testing.T) {
	assert.Equal(t, effectNone, Map(None[childAction](), wrap).kind)
	assert.Equal(t, effectQuit, Map(Quit[childAction](), wrap).kind)
}

// TestMap_AsyncRewrapsSender pins the composition rule: mapping an async
// effect re-wraps the sender the job receives, so every send the job makes
// over its lifetime is translated, not just one value.
func TestMap_AsyncRewrapsSender(t *testing.T) {
	child := Async(func(ctx context.Context, send Sender[childAction]) {
		send.Send(childAction{N: 1})
		send.Send(childAction{N: 2})
	})
	mapped := Map(child, wrap)

	var got []parentAction
	mapped.job(context.Background(), collect(&got))

	assert.Equal(t, []parentAction{
		{Child: childAction{N: 1}},
		{Child: childAction{N: 2}},
	}, got)
}
