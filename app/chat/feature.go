package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/seracht/gpterm/app/sidebar"
	"github.com/seracht/gpterm/config"
	"github.com/seracht/gpterm/editor"
	"github.com/seracht/gpterm/gpt"
	"github.com/seracht/gpterm/history"
	"github.com/seracht/gpterm/log"
	"github.com/seracht/gpterm/scrollview"
	"github.com/seracht/gpterm/store"
	"github.com/seracht/gpterm/term"
	"github.com/seracht/gpterm/textfield"
)

// titlePrompt asks the model to summarize the conversation so far; the reply
// becomes the sidebar title.
const titlePrompt = "Summarize our conversation so far in five words or fewer. " +
	"Reply with the summary only, no quotes and no trailing punctuation."

const defaultAlertDuration = 3 * time.Second

// Completer produces assistant replies. *gpt.Client satisfies it; tests
// substitute a scripted one.
type Completer interface {
	StreamCompletion(ctx context.Context, messages []gpt.Message, onPartial func(string)) (gpt.Message, error)
}

// Feature reduces the chat screen. The function fields default to the real
// thing in NewFeature and exist so tests can intercept the edges.
type Feature struct {
	Store          *history.Store
	LoadConfig     func() *config.Config
	NewCompleter   func(apiKey, model string) Completer
	WriteClipboard func(text string) error
	AlertDuration  time.Duration

	sidebar    sidebar.Feature
	field      textfield.Feature
	scrollview scrollview.Feature
}

// NewFeature wires the chat screen against the real config, OpenAI client
// and system clipboard.
func NewFeature(st *history.Store) Feature {
	return Feature{
		Store:      st,
		LoadConfig: config.LoadConfig,
		NewCompleter: func(apiKey, model string) Completer {
			return gpt.NewClient(apiKey, model)
		},
		WriteClipboard: clipboard.WriteAll,
		AlertDuration:  defaultAlertDuration,
		sidebar:        sidebar.Feature{Store: st},
	}
}

// Reduce advances the chat screen. Child and streaming actions arriving
// while the screen is not configured are a wiring bug, not a state: the
// router must never scope them here before ReloadConfigAction built the
// screen, so that case panics.
func (f Feature) Reduce(state *State, action Action) store.Effect[Action] {
	switch a := action.(type) {
	case ReloadConfigAction:
		return f.reloadConfig(state)
	case KeyAction:
		if state.Conv == nil {
			return store.Send(Action(DelegatedAction{Delegated: DelegatedNoop{Event: a.Event}}))
		}
		return f.routeKey(detach(state), a.Event)
	case DelegatedAction:
		return store.None[Action]()
	}

	if state.Conv == nil {
		panic(fmt.Sprintf("chat: %T arrived before the screen was configured", action))
	}
	return f.reduceScreen(detach(state), action)
}

// detach replaces the screen pointer with a copy before mutation so the
// store's previous snapshot stays intact for change detection. Reference
// values inside are handled by their own reducers the same way.
func detach(state *State) *Screen {
	scr := *state.Conv
	state.Conv = &scr
	return &scr
}

func (f Feature) reloadConfig(state *State) store.Effect[Action] {
	cfg := f.LoadConfig()
	key := cfg.ResolveAPIKey()
	if key == "" {
		state.Conv = nil
		return store.None[Action]()
	}
	if state.Conv != nil && state.Conv.APIKey == key && state.Conv.Model == cfg.ModelName() {
		return store.None[Action]()
	}
	state.Conv = &Screen{
		Sidebar:      sidebar.NewState(),
		Conversation: NewConversation(),
		APIKey:       key,
		Model:        cfg.ModelName(),
	}
	return store.Send(Action(SidebarAction{Action: sidebar.ReloadAction{}}))
}

// routeKey dispatches a key to the focused pane. Tab rotates the focus
// whenever the field is not mid-edit; everything else belongs to the pane.
func (f Feature) routeKey(scr *Screen, ev term.KeyEvent) store.Effect[Action] {
	if ev.Key == term.KeyTab && !ev.Ctrl && !ev.Alt {
		if scr.Focus != FocusField || scr.Conversation.Field.Vim.Mode == editor.ModeNormal {
			scr.Focus = scr.Focus.next()
			if scr.Focus == FocusTranscript && scr.Conversation.Selected < 0 && len(scr.Conversation.History) > 0 {
				scr.Conversation.Selected = len(scr.Conversation.History) - 1
			}
			return store.None[Action]()
		}
	}
	switch scr.Focus {
	case FocusSidebar:
		return store.Send(Action(SidebarAction{Action: sidebar.KeyAction{Event: ev}}))
	case FocusTranscript:
		return store.Send(Action(ScrollAction{Action: scrollview.KeyAction{Event: ev}}))
	default:
		return store.Send(Action(FieldAction{Action: textfield.KeyAction{Event: ev}}))
	}
}

func (f Feature) reduceScreen(scr *Screen, action Action) store.Effect[Action] {
	conv := &scr.Conversation
	switch a := action.(type) {
	case SidebarAction:
		return f.reduceSidebar(scr, a.Action)

	case FieldAction:
		return f.reduceField(scr, a.Action)

	case ScrollAction:
		return f.reduceScroll(scr, a.Action)

	case SubmitAction:
		return f.submit(scr, a.Message)

	case BeganStreamingAction:
		if a.ConversationID != conv.Item.ID {
			return store.None[Action]()
		}
		conv.IsStreaming = true
		conv.Partial = ""
		return store.None[Action]()

	case StoppedStreamingAction:
		if a.ConversationID != conv.Item.ID {
			return store.None[Action]()
		}
		conv.IsStreaming = false
		conv.Partial = ""
		return store.None[Action]()

	case UpdatePartialAction:
		if a.ConversationID != conv.Item.ID || !conv.IsStreaming {
			return store.None[Action]()
		}
		conv.Partial = a.Content
		return store.None[Action]()

	case CommitMessageAction:
		if a.ConversationID != conv.Item.ID {
			return store.None[Action]()
		}
		return f.commitMessage(scr, a.Message)

	case UpdateTitleAction:
		if a.ConversationID != conv.Item.ID {
			return f.saveStaleTitle(a)
		}
		conv.Item.Title = a.Title
		conv.Item.TitleUpdatedAt = a.MessageCount
		item := conv.Item
		st := f.Store
		return store.Async(func(ctx context.Context, send store.Sender[Action]) {
			if err := st.SaveItem(item); err != nil {
				log.WarningLog.Printf("saving conversation title: %v", err)
			}
			send.Send(SidebarAction{Action: sidebar.ReloadAction{}})
		})

	case ScheduleAlertAction:
		conv.AlertSeq++
		return f.scheduleAlert(a.Alert, conv.AlertSeq)

	case SetAlertAction:
		if a.Seq != conv.AlertSeq {
			return store.None[Action]()
		}
		conv.Alert = a.Alert
		return store.None[Action]()
	}
	return store.None[Action]()
}

func (f Feature) reduceSidebar(scr *Screen, action sidebar.Action) store.Effect[Action] {
	eff := f.sidebar.Reduce(&scr.Sidebar, action)
	if d, ok := eff.SendAction(); ok {
		if del, ok := d.(sidebar.DelegatedAction); ok {
			switch del := del.Delegated.(type) {
			case sidebar.DelegatedNewConversation:
				scr.Conversation = NewConversation()
				scr.Focus = FocusField
				return store.None[Action]()
			case sidebar.DelegatedSelect:
				scr.Conversation = OpenConversation(del.Item, del.Transcript)
				scr.Focus = FocusField
				return store.None[Action]()
			case sidebar.DelegatedNoop:
				return store.Send(Action(DelegatedAction{Delegated: DelegatedNoop{Event: del.Event}}))
			}
		}
	}
	return store.Map(eff, func(a sidebar.Action) Action { return SidebarAction{Action: a} })
}

func (f Feature) reduceField(scr *Screen, action textfield.Action) store.Effect[Action] {
	eff := f.field.Reduce(&scr.Conversation.Field, action)
	if d, ok := eff.SendAction(); ok {
		if del, ok := d.(textfield.DelegatedAction); ok {
			switch del := del.Delegated.(type) {
			case textfield.DelegatedCommit:
				return store.Send(Action(SubmitAction{Message: scr.Conversation.Field.Text()}))
			case textfield.DelegatedQuit:
				scr.Focus = FocusTranscript
				if scr.Conversation.Selected < 0 && len(scr.Conversation.History) > 0 {
					scr.Conversation.Selected = len(scr.Conversation.History) - 1
				}
				return store.None[Action]()
			case textfield.DelegatedNoop:
				return store.Send(Action(DelegatedAction{Delegated: DelegatedNoop{Event: del.Event}}))
			case textfield.DelegatedUpdated:
				return store.None[Action]()
			}
		}
	}
	return store.Map(eff, func(a textfield.Action) Action { return FieldAction{Action: a} })
}

// reduceScroll drives transcript navigation. The scroller translates keys
// into movement; message selection and yanking happen here.
func (f Feature) reduceScroll(scr *Screen, action scrollview.Action) store.Effect[Action] {
	conv := &scr.Conversation
	eff := f.scrollview.Reduce(&conv.Scroll, action)
	if d, ok := eff.SendAction(); ok {
		if del, ok := d.(scrollview.DelegatedAction); ok {
			switch del := del.Delegated.(type) {
			case scrollview.DelegatedUp:
				if conv.Selected > 0 {
					conv.Selected--
				}
				return store.None[Action]()
			case scrollview.DelegatedDown:
				if conv.Selected < len(conv.History)-1 {
					conv.Selected++
				}
				return store.None[Action]()
			case scrollview.DelegatedNoop:
				return f.transcriptKey(conv, del.Event)
			}
		}
	}
	return store.Map(eff, func(a scrollview.Action) Action { return ScrollAction{Action: a} })
}

func (f Feature) transcriptKey(conv *Conversation, ev term.KeyEvent) store.Effect[Action] {
	switch {
	case ev.IsChar('y'):
		return f.yankSelected(conv)
	case ev.IsChar('G'):
		if n := len(conv.History); n > 0 {
			conv.Selected = n - 1
		}
		return store.None[Action]()
	case ev.IsChar('g'):
		if len(conv.History) > 0 {
			conv.Selected = 0
		}
		return store.None[Action]()
	}
	return store.Send(Action(DelegatedAction{Delegated: DelegatedNoop{Event: ev}}))
}

// yankSelected copies the selected message to the system clipboard and
// confirms with a short-lived alert.
func (f Feature) yankSelected(conv *Conversation) store.Effect[Action] {
	if conv.Selected < 0 || conv.Selected >= len(conv.History) {
		return store.None[Action]()
	}
	if err := f.WriteClipboard(conv.History[conv.Selected].Content); err != nil {
		log.ErrorLog.Printf("copying message to clipboard: %v", err)
		return store.Send(Action(ScheduleAlertAction{Alert: Alert{Kind: AlertError, Text: "Clipboard unavailable"}}))
	}
	return store.Send(Action(ScheduleAlertAction{Alert: Alert{Kind: AlertSuccess, Text: "Yanked!"}}))
}

// submit starts a completion stream for the drafted message. A stream
// already in flight wins; the draft stays in the field.
func (f Feature) submit(scr *Screen, message string) store.Effect[Action] {
	conv := &scr.Conversation
	message = strings.TrimSpace(message)
	if message == "" || conv.IsStreaming {
		return store.None[Action]()
	}
	conv.Field = textfield.NewState()

	id := conv.Item.ID
	past := append([]gpt.Message(nil), conv.History...)
	completer := f.NewCompleter(scr.APIKey, scr.Model)

	return store.Async(func(ctx context.Context, send store.Sender[Action]) {
		user := gpt.UserMessage(message)
		send.Send(BeganStreamingAction{ConversationID: id})
		send.Send(CommitMessageAction{ConversationID: id, Message: user})

		reply, err := completer.StreamCompletion(ctx, append(past, user), func(partial string) {
			send.Send(UpdatePartialAction{ConversationID: id, Content: partial})
		})
		if err != nil {
			log.ErrorLog.Printf("streaming completion: %v", err)
			send.Send(StoppedStreamingAction{ConversationID: id})
			send.Send(ScheduleAlertAction{Alert: Alert{Kind: AlertError, Text: "Request failed, see the log for details"}})
			return
		}
		send.Send(CommitMessageAction{ConversationID: id, Message: reply})
		send.Send(StoppedStreamingAction{ConversationID: id})
	})
}

// commitMessage appends a finished message, persists the transcript and, at
// the title refresh thresholds, asks the model to retitle the conversation.
func (f Feature) commitMessage(scr *Screen, msg gpt.Message) store.Effect[Action] {
	conv := &scr.Conversation
	conv.Partial = ""
	conv.History = append(append([]gpt.Message(nil), conv.History...), msg)
	conv.Selected = len(conv.History) - 1

	item := conv.Item
	if item.Title == "" {
		item.Title = history.TitleFor(conv.History[0].Content)
		conv.Item.Title = item.Title
	}
	transcript := history.Transcript{History: conv.History}
	count := len(conv.History)
	refresh := msg.Role == gpt.RoleAssistant && item.NeedsTitleRefresh(count)
	st := f.Store
	completer := f.NewCompleter(scr.APIKey, scr.Model)

	return store.Async(func(ctx context.Context, send store.Sender[Action]) {
		if err := st.SaveTranscript(item, transcript); err != nil {
			log.ErrorLog.Printf("saving transcript %s: %v", item.ID, err)
			send.Send(ScheduleAlertAction{Alert: Alert{Kind: AlertError, Text: "Could not save the conversation"}})
		}
		send.Send(SidebarAction{Action: sidebar.ReloadAction{}})
		if !refresh {
			return
		}
		title, err := completer.StreamCompletion(ctx, append(transcript.History, gpt.UserMessage(titlePrompt)), nil)
		if err != nil {
			log.WarningLog.Printf("generating conversation title: %v", err)
			return
		}
		send.Send(UpdateTitleAction{
			ConversationID: item.ID,
			Title:          strings.TrimSpace(title.Content),
			MessageCount:   count,
		})
	})
}

// saveStaleTitle persists a title that finished after the user moved to
// another conversation. The sidebar still wants it.
func (f Feature) saveStaleTitle(a UpdateTitleAction) store.Effect[Action] {
	st := f.Store
	return store.Async(func(ctx context.Context, send store.Sender[Action]) {
		item, err := st.FindItem(a.ConversationID)
		if err != nil {
			log.WarningLog.Printf("saving title for %s: %v", a.ConversationID, err)
			return
		}
		item.Title = a.Title
		item.TitleUpdatedAt = a.MessageCount
		if err := st.SaveItem(item); err != nil {
			log.WarningLog.Printf("saving title for %s: %v", a.ConversationID, err)
			return
		}
		send.Send(SidebarAction{Action: sidebar.ReloadAction{}})
	})
}

func (f Feature) scheduleAlert(alert Alert, seq int) store.Effect[Action] {
	delay := f.AlertDuration
	if delay <= 0 {
		delay = defaultAlertDuration
	}
	a := alert
	return store.Async(func(ctx context.Context, send store.Sender[Action]) {
		send.Send(SetAlertAction{Alert: &a, Seq: seq})
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		send.Send(SetAlertAction{Alert: nil, Seq: seq})
	})
}
