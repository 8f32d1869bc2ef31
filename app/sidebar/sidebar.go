// Package sidebar lists stored conversations next to the chat. The first
// entry always starts a fresh conversation; the rest load from history.
package sidebar

import (
	"context"

	"github.com/seracht/gpterm/history"
	"github.com/seracht/gpterm/listbox"
	"github.com/seracht/gpterm/log"
	"github.com/seracht/gpterm/store"
	"github.com/seracht/gpterm/term"
)

// Entry is one sidebar row.
type Entry struct {
	IsNew bool
	Item  history.Item
}

// Display returns the row label.
func (e Entry) Display() string {
	if e.IsNew {
		return "* New conversation"
	}
	return e.Item.Title
}

// State is the sidebar's list of entries.
type State struct {
	List listbox.State[Entry]
}

// NewState returns a sidebar holding only the new-conversation row until a
// Reload lands.
func NewState() State {
	return State{List: listbox.NewState([]Entry{{IsNew: true}})}
}

// Action is the feature's action type.
type Action interface{ isAction() }

// ReloadAction re-reads the conversation index from disk.
type ReloadAction struct{}

// UpdateListAction replaces the entries with a freshly loaded index.
type UpdateListAction struct {
	Metadata history.Metadata
}

// KeyAction feeds one key event.
type KeyAction struct {
	Event term.KeyEvent
}

// ListAction wraps an action for the embedded listbox.
type ListAction struct {
	Action listbox.Action
}

// DelegatedAction surfaces a selection to the owner.
type DelegatedAction struct {
	Delegated Delegated
}

func (ReloadAction) isAction()     {}
func (UpdateListAction) isAction() {}
func (KeyAction) isAction()        {}
func (ListAction) isAction()       {}
func (DelegatedAction) isAction()  {}

// Delegated enumerates what the sidebar hands back.
type Delegated interface{ isDelegated() }

// DelegatedNoop carries an unhandled key.
type DelegatedNoop struct {
	Event term.KeyEvent
}

// DelegatedNewConversation asks the owner to start a blank conversation.
type DelegatedNewConversation struct{}

// DelegatedSelect asks the owner to open a stored conversation.
type DelegatedSelect struct {
	Item       history.Item
	Transcript history.Transcript
}

func (DelegatedNoop) isDelegated()            {}
func (DelegatedNewConversation) isDelegated() {}
func (DelegatedSelect) isDelegated()          {}

// Feature is the sidebar reducer.
type Feature struct {
	Store *history.Store
}

func (f Feature) Reduce(state *State, action Action) store.Effect[Action] {
	switch a := action.(type) {
	case ReloadAction:
		st := f.Store
		return store.Async(func(ctx context.Context, send store.Sender[Action]) {
			meta, err := st.LoadMetadata()
			if err != nil {
				log.WarningLog.Printf("could not load conversation index: %v", err)
				meta = history.Metadata{}
			}
			send.Send(UpdateListAction{Metadata: meta})
		})
	case UpdateListAction:
		entries := make([]Entry, 0, len(a.Metadata.List)+1)
		entries = append(entries, Entry{IsNew: true})
		for _, item := range a.Metadata.List {
			entries = append(entries, Entry{Item: item})
		}
		state.List = listbox.NewState(entries)
		return store.None[Action]()
	case KeyAction:
		return store.Send[Action](ListAction{listbox.KeyAction{Event: a.Event}})
	case ListAction:
		if d, ok := a.Action.(listbox.DelegatedAction); ok {
			switch del := d.Delegated.(type) {
			case listbox.DelegatedEnter:
				entry, ok := state.List.SelectedItem()
				if !ok {
					return store.None[Action]()
				}
				if entry.IsNew {
					return store.Send[Action](DelegatedAction{DelegatedNewConversation{}})
				}
				transcript, err := f.Store.LoadTranscript(entry.Item.ID)
				if err != nil {
					log.ErrorLog.Printf("could not open conversation %s: %v", entry.Item.ID, err)
					return store.None[Action]()
				}
				return store.Send[Action](DelegatedAction{DelegatedSelect{Item: entry.Item, Transcript: transcript}})
			case listbox.DelegatedNoop:
				return store.Send[Action](DelegatedAction{DelegatedNoop{del.Event}})
			default:
				return store.None[Action]()
			}
		}
		eff := listbox.Feature[Entry]{}.Reduce(&state.List, a.Action)
		return store.Map(eff, func(la listbox.Action) Action { return ListAction{la} })
	default:
		return store.None[Action]()
	}
}
