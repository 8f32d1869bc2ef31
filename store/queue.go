package store

// eventQueue is an unbounded FIFO with a single consumer and any number of
// producers. Producers never block: a pump goroutine buffers pending events
// in a slice between the in and out channels. After close, pushes are
// silently dropped.
type eventQueue[T any] struct {
	in   chan T
	out  chan T
	done chan struct{}
}

func newEventQueue[T any]() *eventQueue[T] {
	q := &eventQueue[T]{
		in:   make(chan T),
		out:  make(chan T),
		done: make(chan struct{}),
	}
	go q.pump()
	return q
}

func (q *eventQueue[T]) pump() {
	var buf []T
	for {
		if len(buf) == 0 {
			select {
			case e := <-q.in:
				buf = append(buf, e)
			case <-q.done:
				return
			}
		}
		select {
		case e := <-q.in:
			buf = append(buf, e)
		case q.out <- buf[0]:
			buf = buf[1:]
		case <-q.done:
			return
		}
	}
}

func (q *eventQueue[T]) push(e T) {
	select {
	case q.in <- e:
	case <-q.done:
	}
}

func (q *eventQueue[T]) close() {
	close(q.done)
}
