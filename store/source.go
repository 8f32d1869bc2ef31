package store

import (
	"context"
	"errors"
)

// ErrSourceClosed is returned by Run when the input source is exhausted.
var ErrSourceClosed = errors.New("store: input source closed")

// Source is an externally owned stream of input events merged into the run
// loop alongside the engine's internal queue.
type Source[E any] interface {
	// Next blocks until the next event is available, the source ends, or ctx
	// is done. A non-nil error terminates the run loop.
	Next(ctx context.Context) (E, error)
}

// ChanSource adapts a receive channel to the Source interface. A closed
// channel reports ErrSourceClosed.
type ChanSource[E any] struct {
	C <-chan E
}

func (s ChanSource[E]) Next(ctx context.Context) (E, error) {
	var zero E
	select {
	case e, ok := <-s.C:
		if !ok {
			return zero, ErrSourceClosed
		}
		return e, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
