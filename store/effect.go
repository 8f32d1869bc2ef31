package store

import "context"

// Job is a unit of asynchronous work scheduled by a reducer. It runs
// concurrently with subsequent event processing and communicates back into
// the system exclusively through the sender it is given. Jobs are never
// cancelled; a reducer receiving a late action is responsible for checking
// current state before honoring it.
type Job[A any] func(ctx context.Context, send Sender[A])

type effectKind int

const (
	effectNone effectKind = iota
	effectSend
	effectAsync
	effectQuit
)

func (k effectKind) String() string {
	switch k {
	case effectSend:
		return "send"
	case effectAsync:
		return "async"
	case effectQuit:
		return "quit"
	default:
		return "none"
	}
}

// Effect is the declared consequence of one state transition: nothing, an
// immediate follow-up action, an asynchronous job, or termination. An effect
// is consumed exactly once by the engine that interprets it.
type Effect[A any] struct {
	kind   effectKind
	action A
	job    Job[A]
}

// None declares that a transition has no follow-up work.
func None[A any]() Effect[A] {
	return Effect[A]{kind: effectNone}
}

// Send causes an immediate, synchronous re-entry into the reducer with the
// given action before the outer dispatch returns. Chains of Send effects run
// as one atomic burst with no other queued event interleaved.
func Send[A any](action A) Effect[A] {
	return Effect[A]{kind: effectSend, action: action}
}

// Async schedules job to run concurrently. Scheduling never blocks the
// engine; the job may send zero or more actions over an unbounded period.
func Async[A any](job Job[A]) Effect[A] {
	return Effect[A]{kind: effectAsync, job: job}
}

// Quit signals the run loop to terminate.
func Quit[A any]() Effect[A] {
	return Effect[A]{kind: effectQuit}
}

// SendAction returns the follow-up action of a Send effect, and whether the
// effect is one. It lets reducer tests walk a Send chain by hand.
func (e Effect[A]) SendAction() (A, bool) {
	return e.action, e.kind == effectSend
}

// AsyncJob returns the scheduled job of an Async effect, and whether the
// effect is one. Reducer tests run the job inline with their own sender.
func (e Effect[A]) AsyncJob() (Job[A], bool) {
	if e.kind != effectAsync {
		return nil, false
	}
	return e.job, true
}

// IsNone reports whether the effect carries no follow-up work.
func (e Effect[A]) IsNone() bool {
	return e.kind == effectNone
}

// IsQuit reports whether the effect terminates the run loop.
func (e Effect[A]) IsQuit() bool {
	return e.kind == effectQuit
}

// Map translates an effect over child actions into one over parent actions.
// For Async effects the job's sender is re-wrapped, not the job's output:
// every Send the job performs over its lifetime is translated identically.
// translate must be pure and total.
func Map[A, B any](e Effect[A], translate func(A) B) Effect[B] {
	switch e.kind {
	case effectSend:
		return Send(translate(e.action))
	case effectAsync:
		job := e.job
		return Async(func(ctx context.Context, send Sender[B]) {
			job(ctx, Scope(send, translate))
		})
	case effectQuit:
		return Quit[B]()
	default:
		return None[B]()
	}
}
