package sidebar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seracht/gpterm/gpt"
	"github.com/seracht/gpterm/history"
	"github.com/seracht/gpterm/store"
	"github.com/seracht/gpterm/term"
)

// drive reduces an action to completion, running async jobs inline, and
// returns any delegations in order.
func drive(t *testing.T, f Feature, state *State, action Action) []Delegated {
	t.Helper()
	var delegated []Delegated
	var step func(eff store.Effect[Action])
	step = func(eff store.Effect[Action]) {
		if next, ok := eff.SendAction(); ok {
			if d, isDelegated := next.(DelegatedAction); isDelegated {
				delegated = append(delegated, d.Delegated)
			}
			step(f.Reduce(state, next))
			return
		}
		if job, ok := eff.AsyncJob(); ok {
			job(context.Background(), store.SenderFunc[Action](func(a Action) {
				step(f.Reduce(state, a))
			}))
		}
	}
	step(f.Reduce(state, action))
	return delegated
}

func seedStore(t *testing.T) (*history.Store, history.Item) {
	t.Helper()
	st, err := history.NewStoreAt(t.TempDir())
	require.NoError(t, err)
	item := history.NewItem("stored chat")
	transcript := history.Transcript{History: []gpt.Message{
		gpt.UserMessage("hi"),
		gpt.AssistantMessage("hello"),
	}}
	require.NoError(t, st.SaveTranscript(item, transcript))
	return st, item
}

func TestFeature_ReloadListsNewRowFirst(t *testing.T) {
	st, item := seedStore(t)
	f := Feature{Store: st}
	state := NewState()

	drive(t, f, &state, ReloadAction{})

	require.Len(t, state.List.Items, 2)
	assert.True(t, state.List.Items[0].IsNew)
	assert.Equal(t, item.ID, state.List.Items[1].Item.ID)
}

func TestFeature_EnterOnNewRowDelegates(t *testing.T) {
	st, _ := seedStore(t)
	f := Feature{Store: st}
	state := NewState()
	drive(t, f, &state, ReloadAction{})

	drive(t, f, &state, KeyAction{Event: term.Char('j')})
	delegated := drive(t, f, &state, KeyAction{Event: term.KeyEvent{Key: term.KeyEnter}})

	require.Len(t, delegated, 1)
	assert.IsType(t, DelegatedNewConversation{}, delegated[0])
}

func TestFeature_EnterOnStoredRowLoadsTranscript(t *testing.T) {
	st, item := seedStore(t)
	f := Feature{Store: st}
	state := NewState()
	drive(t, f, &state, ReloadAction{})

	drive(t, f, &state, KeyAction{Event: term.Char('j')})
	drive(t, f, &state, KeyAction{Event: term.Char('j')})
	delegated := drive(t, f, &state, KeyAction{Event: term.KeyEvent{Key: term.KeyEnter}})

	require.Len(t, delegated, 1)
	sel, ok := delegated[0].(DelegatedSelect)
	require.True(t, ok)
	assert.Equal(t, item.ID, sel.Item.ID)
	require.Len(t, sel.Transcript.History, 2)
	assert.Equal(t, "hi", sel.Transcript.History[0].Content)
}

func TestFeature_MissingTranscriptIsSwallowed(t *testing.T) {
	st, err := history.NewStoreAt(t.TempDir())
	require.NoError(t, err)
	f := Feature{Store: st}
	state := NewState()
	// An index entry with no transcript behind it.
	state.List.Items = append(state.List.Items, Entry{Item: history.NewItem("ghost")})
	state.List.Selected = 1

	delegated := drive(t, f, &state, KeyAction{Event: term.KeyEvent{Key: term.KeyEnter}})
	assert.Empty(t, delegated)
}

func TestFeature_UnhandledKeysBubble(t *testing.T) {
	st, _ := seedStore(t)
	f := Feature{Store: st}
	state := NewState()

	ev := term.Char('q')
	delegated := drive(t, f, &state, KeyAction{Event: ev})
	require.Len(t, delegated, 1)
	assert.Equal(t, DelegatedNoop{Event: ev}, delegated[0])
}

func TestEntry_Display(t *testing.T) {
	assert.Equal(t, "* New conversation", Entry{IsNew: true}.Display())
	assert.Equal(t, "stored chat", Entry{Item: history.NewItem("stored chat")}.Display())
}
