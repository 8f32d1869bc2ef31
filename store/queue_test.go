package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventQueue_FIFO(t *testing.T) {
	q := newEventQueue[int]()
	defer q.close()

	for i := 0; i < 100; i++ {
		q.push(i)
	}
	for i := 0; i < 100; i++ {
		assert.Equal(t, i, <-q.out)
	}
}

// TestEventQueue_ProducersNeverBlock pushes far more events than any channel
// buffer would hold, with no consumer attached.
func TestEventQueue_ProducersNeverBlock(t *testing.T) {
	q := newEventQueue[int]()
	defer q.close()

	var wg sync.WaitGroup
	for p := 0; p < 8; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10_000; i++ {
				q.push(i)
			}
		}()
	}
	wg.Wait()
}

func TestEventQueue_PushAfterCloseIsDropped(t *testing.T) {
	q := newEventQueue[int]()
	q.close()
	q.push(1) // must not block or panic
}
