// Package chat is the main screen: the conversation transcript, the vi
// input field, and the conversation sidebar. The screen only exists once an
// API key is configured; until then it is a placeholder that lets every key
// bubble up.
package chat

import (
	"github.com/google/uuid"

	"github.com/seracht/gpterm/app/sidebar"
	"github.com/seracht/gpterm/gpt"
	"github.com/seracht/gpterm/history"
	"github.com/seracht/gpterm/scrollview"
	"github.com/seracht/gpterm/term"
	"github.com/seracht/gpterm/textfield"
)

// Focus identifies which pane of the chat screen receives keys. It lives
// here, on the screen state, and is projected into the panes at render time;
// the panes themselves never share it.
type Focus int

const (
	FocusField Focus = iota
	FocusTranscript
	FocusSidebar
)

func (f Focus) String() string {
	switch f {
	case FocusTranscript:
		return "transcript"
	case FocusSidebar:
		return "sidebar"
	default:
		return "input"
	}
}

// next cycles Tab order: field, transcript, sidebar.
func (f Focus) next() Focus {
	switch f {
	case FocusField:
		return FocusTranscript
	case FocusTranscript:
		return FocusSidebar
	default:
		return FocusField
	}
}

// AlertKind classifies a transient alert.
type AlertKind int

const (
	AlertSuccess AlertKind = iota
	AlertError
)

// Alert is a transient message shown over the transcript.
type Alert struct {
	Kind AlertKind
	Text string
}

// Conversation is the active transcript and everything editing it.
type Conversation struct {
	Item    history.Item
	History []gpt.Message
	// Partial is the streaming assistant reply accumulated so far; empty
	// when nothing is in flight.
	Partial     string
	IsStreaming bool
	// Selected is the transcript message the cursor is on, -1 when the
	// transcript was never focused.
	Selected int
	Scroll   scrollview.State
	Field    textfield.State
	Alert    *Alert
	// AlertSeq numbers scheduled alerts so a superseded alert's delayed
	// clear cannot wipe a newer one.
	AlertSeq int
}

// NewConversation returns an empty conversation with a fresh id.
func NewConversation() Conversation {
	return Conversation{
		Item:     history.NewItem(""),
		Selected: -1,
		Field:    textfield.NewState(),
	}
}

// OpenConversation returns a conversation resumed from history.
func OpenConversation(item history.Item, transcript history.Transcript) Conversation {
	c := NewConversation()
	c.Item = item
	c.History = transcript.History
	return c
}

// Screen is the configured chat screen.
type Screen struct {
	Focus        Focus
	Sidebar      sidebar.State
	Conversation Conversation
	// APIKey and Model snapshot the config the screen was built from.
	APIKey string
	Model  string
}

// State is the loader: nil Conv means no API key is configured and the
// screen shows a pointer to the Config tab instead.
type State struct {
	Conv *Screen
}

// Ready reports whether the chat screen is configured.
func (s State) Ready() bool {
	return s.Conv != nil
}

// Action is the feature's action type.
type Action interface{ isAction() }

// ReloadConfigAction re-reads the config and (re)builds the screen.
type ReloadConfigAction struct{}

// KeyAction feeds one key event, routed by the current focus.
type KeyAction struct {
	Event term.KeyEvent
}

// SidebarAction wraps an action for the embedded sidebar.
type SidebarAction struct {
	Action sidebar.Action
}

// FieldAction wraps an action for the input field.
type FieldAction struct {
	Action textfield.Action
}

// ScrollAction wraps an action for the transcript scroller.
type ScrollAction struct {
	Action scrollview.Action
}

// SubmitAction starts a completion for the drafted message.
type SubmitAction struct {
	Message string
}

// The streaming protocol actions all carry the conversation id they belong
// to; a reducer receiving one for a conversation that is no longer current
// drops it.

// BeganStreamingAction marks the start of a completion stream.
type BeganStreamingAction struct {
	ConversationID uuid.UUID
}

// StoppedStreamingAction marks the end of a completion stream.
type StoppedStreamingAction struct {
	ConversationID uuid.UUID
}

// CommitMessageAction appends a finished message to the transcript.
type CommitMessageAction struct {
	ConversationID uuid.UUID
	Message        gpt.Message
}

// UpdatePartialAction replaces the in-flight assistant reply text.
type UpdatePartialAction struct {
	ConversationID uuid.UUID
	Content        string
}

// UpdateTitleAction installs a model-generated conversation title.
type UpdateTitleAction struct {
	ConversationID uuid.UUID
	Title          string
	MessageCount   int
}

// ScheduleAlertAction shows an alert and clears it after a delay.
type ScheduleAlertAction struct {
	Alert Alert
}

// SetAlertAction installs or clears the visible alert. Seq identifies the
// schedule it belongs to; actions from superseded schedules are dropped.
type SetAlertAction struct {
	Alert *Alert
	Seq   int
}

// DelegatedAction surfaces an unhandled key to the root.
type DelegatedAction struct {
	Delegated Delegated
}

func (ReloadConfigAction) isAction()    {}
func (KeyAction) isAction()             {}
func (SidebarAction) isAction()         {}
func (FieldAction) isAction()           {}
func (ScrollAction) isAction()          {}
func (SubmitAction) isAction()          {}
func (BeganStreamingAction) isAction()  {}
func (StoppedStreamingAction) isAction() {}
func (CommitMessageAction) isAction()   {}
func (UpdatePartialAction) isAction()   {}
func (UpdateTitleAction) isAction()     {}
func (ScheduleAlertAction) isAction()   {}
func (SetAlertAction) isAction()        {}
func (DelegatedAction) isAction()       {}

// Delegated enumerates what the chat screen hands back.
type Delegated interface{ isDelegated() }

// DelegatedNoop carries a key nobody on the screen wanted.
type DelegatedNoop struct {
	Event term.KeyEvent
}

func (DelegatedNoop) isDelegated() {}
