package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seracht/gpterm/app/chat"
	"github.com/seracht/gpterm/app/navigation"
	"github.com/seracht/gpterm/config"
	"github.com/seracht/gpterm/gpt"
	"github.com/seracht/gpterm/history"
	"github.com/seracht/gpterm/store"
	"github.com/seracht/gpterm/term"
)

type appHarness struct {
	t         *testing.T
	f         Feature
	state     State
	savedKeys []string
	quit      bool
}

func newAppHarness(t *testing.T, cfg *config.Config) *appHarness {
	t.Helper()
	st, err := history.NewStoreAt(t.TempDir())
	require.NoError(t, err)

	h := &appHarness{t: t, state: NewState(120, 40)}
	h.f = NewFeature(st)
	h.f.SaveAPIKey = func(key string) error {
		h.savedKeys = append(h.savedKeys, key)
		cfg.APIKey = key
		return nil
	}
	h.f.chat.LoadConfig = func() *config.Config { return cfg }
	h.f.chat.NewCompleter = func(apiKey, model string) chat.Completer {
		return scriptedCompleter{}
	}
	h.f.chat.WriteClipboard = func(string) error { return nil }
	return h
}

type scriptedCompleter struct{}

func (scriptedCompleter) StreamCompletion(ctx context.Context, messages []gpt.Message, onPartial func(string)) (gpt.Message, error) {
	return gpt.AssistantMessage("ok"), nil
}

func (h *appHarness) dispatch(a Action) {
	h.t.Helper()
	eff := h.f.Reduce(&h.state, a)
	for {
		if eff.IsQuit() {
			h.quit = true
			return
		}
		if job, ok := eff.AsyncJob(); ok {
			job(context.Background(), store.SenderFunc[Action](func(a Action) { h.dispatch(a) }))
			return
		}
		next, ok := eff.SendAction()
		if !ok {
			return
		}
		eff = h.f.Reduce(&h.state, next)
	}
}

func (h *appHarness) key(ev term.KeyEvent) { h.dispatch(KeyAction{Event: ev}) }

func TestFeature_StartsOnChatScreen(t *testing.T) {
	h := newAppHarness(t, &config.Config{})
	assert.Equal(t, navigation.ScreenChat, h.state.Nav.Current)
}

func TestFeature_NumberKeySwitchesScreens(t *testing.T) {
	h := newAppHarness(t, &config.Config{})
	h.dispatch(ChatAction{Action: chat.ReloadConfigAction{}})

	h.key(term.Char('2'))
	assert.Equal(t, navigation.ScreenConfig, h.state.Nav.Current)

	h.key(term.Char('1'))
	assert.Equal(t, navigation.ScreenChat, h.state.Nav.Current)
}

func TestFeature_QuitKeyEndsTheProgram(t *testing.T) {
	h := newAppHarness(t, &config.Config{})
	h.dispatch(ChatAction{Action: chat.ReloadConfigAction{}})

	h.key(term.Char('q'))
	assert.True(t, h.quit)
}

func TestFeature_SavedKeyConfiguresChat(t *testing.T) {
	cfg := &config.Config{}
	h := newAppHarness(t, cfg)
	h.dispatch(ChatAction{Action: chat.ReloadConfigAction{}})
	require.False(t, h.state.Chat.Ready())

	h.key(term.Char('2'))
	h.key(term.Char('e'))
	h.key(term.Char('i'))
	for _, r := range "sk-new" {
		h.key(term.Char(r))
	}
	h.key(term.KeyEvent{Key: term.KeyEsc})
	h.key(term.KeyEvent{Key: term.KeyEnter})

	require.Equal(t, []string{"sk-new"}, h.savedKeys)
	assert.Equal(t, navigation.ScreenChat, h.state.Nav.Current)
	assert.True(t, h.state.Chat.Ready(), "entering a key builds the chat screen")
}

func TestFeature_ChatKeysFlowEndToEnd(t *testing.T) {
	h := newAppHarness(t, &config.Config{APIKey: "sk-test"})
	h.dispatch(ChatAction{Action: chat.ReloadConfigAction{}})
	require.True(t, h.state.Chat.Ready())

	h.key(term.Char('i'))
	for _, r := range "hello" {
		h.key(term.Char(r))
	}
	h.key(term.KeyEvent{Key: term.KeyEsc})
	h.key(term.KeyEvent{Key: term.KeyEnter})

	conv := h.state.Chat.Conv.Conversation
	require.Len(t, conv.History, 2)
	assert.Equal(t, "hello", conv.History[0].Content)
	assert.Equal(t, "ok", conv.History[1].Content)
}

func TestFeature_ResizeUpdatesFrame(t *testing.T) {
	h := newAppHarness(t, &config.Config{})
	h.dispatch(ResizeAction{Width: 80, Height: 24})
	assert.Equal(t, 80, h.state.Width)
	assert.Equal(t, 24, h.state.Height)
}
