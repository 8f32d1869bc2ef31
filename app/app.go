// Package app composes the screens into the running program: a tab strip at
// the top, the chat screen and the config screen behind it, and the store
// loop that drives them from terminal input.
package app

import (
	"github.com/seracht/gpterm/app/apikey"
	"github.com/seracht/gpterm/app/chat"
	"github.com/seracht/gpterm/app/navigation"
	"github.com/seracht/gpterm/config"
	"github.com/seracht/gpterm/history"
	"github.com/seracht/gpterm/log"
	"github.com/seracht/gpterm/store"
	"github.com/seracht/gpterm/term"
)

// State is the root application state.
type State struct {
	Nav    navigation.State
	Chat   chat.State
	APIKey apikey.State
	Width  int
	Height int
}

// NewState sizes the frame and parks the UI on the chat screen.
func NewState(width, height int) State {
	return State{
		APIKey: apikey.NewState(),
		Width:  width,
		Height: height,
	}
}

// Action is the root action type.
type Action interface{ isAction() }

// KeyAction feeds one terminal key into the active screen.
type KeyAction struct {
	Event term.KeyEvent
}

// ResizeAction records a new terminal size.
type ResizeAction struct {
	Width  int
	Height int
}

// NavAction wraps the tab strip.
type NavAction struct {
	Action navigation.Action
}

// ChatAction wraps the chat screen.
type ChatAction struct {
	Action chat.Action
}

// APIKeyAction wraps the config screen.
type APIKeyAction struct {
	Action apikey.Action
}

func (KeyAction) isAction()    {}
func (ResizeAction) isAction() {}
func (NavAction) isAction()    {}
func (ChatAction) isAction()   {}
func (APIKeyAction) isAction() {}

// Feature is the root reducer.
type Feature struct {
	chat   chat.Feature
	nav    navigation.Feature
	apikey apikey.Feature

	// SaveAPIKey persists a key entered on the config screen. Tests
	// substitute it.
	SaveAPIKey func(key string) error
}

// NewFeature wires the root against the real config file and history store.
func NewFeature(st *history.Store) Feature {
	return Feature{
		chat: chat.NewFeature(st),
		SaveAPIKey: func(key string) error {
			cfg := config.LoadConfig()
			cfg.APIKey = key
			return config.SaveConfig(cfg)
		},
	}
}

func (f Feature) Reduce(state *State, action Action) store.Effect[Action] {
	switch a := action.(type) {
	case KeyAction:
		switch state.Nav.Current {
		case navigation.ScreenConfig:
			return store.Send(Action(APIKeyAction{Action: apikey.KeyAction{Event: a.Event}}))
		default:
			return store.Send(Action(ChatAction{Action: chat.KeyAction{Event: a.Event}}))
		}

	case ResizeAction:
		state.Width, state.Height = a.Width, a.Height
		return store.None[Action]()

	case NavAction:
		return f.reduceNav(state, a.Action)

	case ChatAction:
		return f.reduceChat(state, a.Action)

	case APIKeyAction:
		return f.reduceAPIKey(state, a.Action)
	}
	return store.None[Action]()
}

func (f Feature) reduceNav(state *State, action navigation.Action) store.Effect[Action] {
	eff := f.nav.Reduce(&state.Nav, action)
	if d, ok := eff.SendAction(); ok {
		if del, ok := d.(navigation.DelegatedAction); ok {
			switch del := del.Delegated.(type) {
			case navigation.DelegatedExit:
				return store.Quit[Action]()
			case navigation.DelegatedChangeScreen:
				if state.Nav.Current == del.Screen {
					return store.None[Action]()
				}
				state.Nav.Current = del.Screen
				if del.Screen == navigation.ScreenChat {
					return store.Send(Action(ChatAction{Action: chat.ReloadConfigAction{}}))
				}
				return store.None[Action]()
			case navigation.DelegatedNoop:
				return store.None[Action]()
			}
		}
	}
	return store.Map(eff, func(a navigation.Action) Action { return NavAction{Action: a} })
}

func (f Feature) reduceChat(state *State, action chat.Action) store.Effect[Action] {
	eff := f.chat.Reduce(&state.Chat, action)
	if d, ok := eff.SendAction(); ok {
		if del, ok := d.(chat.DelegatedAction); ok {
			if noop, ok := del.Delegated.(chat.DelegatedNoop); ok {
				return store.Send(Action(NavAction{Action: navigation.KeyAction{Event: noop.Event}}))
			}
		}
	}
	return store.Map(eff, func(a chat.Action) Action { return ChatAction{Action: a} })
}

func (f Feature) reduceAPIKey(state *State, action apikey.Action) store.Effect[Action] {
	eff := f.apikey.Reduce(&state.APIKey, action)
	if d, ok := eff.SendAction(); ok {
		if del, ok := d.(apikey.DelegatedAction); ok {
			switch del := del.Delegated.(type) {
			case apikey.DelegatedFinished:
				if err := f.SaveAPIKey(del.APIKey); err != nil {
					log.ErrorLog.Printf("saving API key: %v", err)
					return store.None[Action]()
				}
				state.Nav.Current = navigation.ScreenChat
				return store.Send(Action(ChatAction{Action: chat.ReloadConfigAction{}}))
			case apikey.DelegatedNoop:
				return store.Send(Action(NavAction{Action: navigation.KeyAction{Event: del.Event}}))
			}
		}
	}
	return store.Map(eff, func(a apikey.Action) Action { return APIKeyAction{Action: a} })
}
