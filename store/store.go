// Package store is a unidirectional state-management engine. Feature state
// lives behind a single-writer lock and changes only through pure reducer
// transitions; reducers declare follow-up work as effects, and asynchronous
// jobs feed further actions back through the engine's queue. Independent
// features compose through scoped senders and mapped effects without knowing
// about each other's types.
//
// State types must support structural comparison with reflect.DeepEqual and
// shallow copying by assignment: reducers replace nested reference values
// rather than mutating them through retained aliases, so a value snapshot of
// the state struct is a usable before-image.
package store

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/seracht/gpterm/log"
)

// maxSendDepth bounds synchronous Send chains. A chain this long is a
// reducer cycle, not real work, and overflowing it is a programming error.
const maxSendDepth = 1000

type eventKind int

const (
	eventDispatch eventKind = iota
	eventRedraw
	eventQuit
)

// event is the engine-internal unit flowing through the queue. It is
// distinct from the public action type so redraw/quit bookkeeping never
// leaks into feature logic.
type event[A any] struct {
	kind   eventKind
	action A
}

// Store owns feature state and the root reducer, interprets effects, and
// emits redraw notifications when observable state changes.
type Store[S, A any] struct {
	mu      sync.Mutex
	state   S
	reducer Reducer[S, A]
	queue   *eventQueue[event[A]]
}

// New constructs the root engine around an initial state and root reducer.
func New[S, A any](initial S, reducer Reducer[S, A]) *Store[S, A] {
	return &Store[S, A]{
		state:   initial,
		reducer: reducer,
		queue:   newEventQueue[event[A]](),
	}
}

// Send enqueues an action for asynchronous processing. It is safe from any
// goroutine and usable before Run, e.g. for bootstrap actions. After the run
// loop has terminated, Send has no observable effect.
func (s *Store[S, A]) Send(action A) {
	s.queue.push(event[A]{kind: eventDispatch, action: action})
}

// State returns a value snapshot of current state.
func (s *Store[S, A]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// dispatch resolves one queued action: the reducer call, the returned effect
// and any synchronous Send chain it opens, all before the run loop touches
// the next event.
func (s *Store[S, A]) dispatch(ctx context.Context, action A) {
	s.handle(ctx, Send(action), 0)
}

func (s *Store[S, A]) handle(ctx context.Context, e Effect[A], depth int) {
	if depth > maxSendDepth {
		panic(fmt.Sprintf("store: send chain exceeded %d transitions, reducer cycle suspected", maxSendDepth))
	}
	log.DebugLog.Printf("store: handling %s effect", e.kind)
	switch e.kind {
	case effectSend:
		s.handle(ctx, s.reduce(e.action), depth+1)
	case effectAsync:
		job := e.job
		go job(ctx, s)
	case effectQuit:
		s.queue.push(event[A]{kind: eventQuit})
	}
}

// reduce runs a single transition under the single-writer lock and enqueues
// a redraw notification iff the transition changed state.
func (s *Store[S, A]) reduce(action A) Effect[A] {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.state
	e := s.reducer.Reduce(&s.state, action)
	if !reflect.DeepEqual(before, s.state) {
		s.queue.push(event[A]{kind: eventRedraw})
	}
	return e
}

type sourceResult[E any] struct {
	event E
	err   error
}

// Run drives the store until a reducer quits or the input source ends. It is
// the sole blocking entry point: external input events are mapped to actions
// with toAction and merged with the engine's internal queue into one ordered
// consumption loop. redraw executes inline on the loop with a read-only
// state snapshot and must return promptly.
//
// Run returns nil after a Quit effect, without draining further queued
// events. A source error (including ErrSourceClosed and context
// cancellation) is returned as-is; that is the caller's shutdown path.
func Run[S, A, E any](ctx context.Context, s *Store[S, A], redraw func(S), toAction func(E) A, source Source[E]) error {
	defer s.queue.close()

	pumpCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	inputs := make(chan sourceResult[E])
	go func() {
		for {
			e, err := source.Next(pumpCtx)
			select {
			case inputs <- sourceResult[E]{event: e, err: err}:
			case <-pumpCtx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	redraw(s.State())
	for {
		select {
		case evt := <-s.queue.out:
			switch evt.kind {
			case eventRedraw:
				redraw(s.State())
			case eventDispatch:
				s.dispatch(ctx, evt.action)
			case eventQuit:
				return nil
			}
		case in := <-inputs:
			if in.err != nil {
				return in.err
			}
			s.Send(toAction(in.event))
		case <-ctx.Done():
			// The pump goroutine may have consumed the cancellation error
			// and exited without delivering it; surface it here so the
			// loop never outlives its context.
			return ctx.Err()
		}
	}
}
