package gesture

import (
	"sync"
	"time"
)

// defaultQueueCapacity bounds the number of bridge events buffered between
// two frames. Ten fingers moving at a 240 Hz sample rate stay well below it
// at 60 frames per second.
const defaultQueueCapacity = 512

// bridgeEvent is one event delivered by a platform bridge. Raw touch events
// and host gesture events share the queue so their order is kept.
type bridgeEvent struct {
	host bool

	// raw touch
	kind     TouchEventKind
	id       int
	pos      Vec2
	pressure float64
	ts       time.Duration

	// host gesture
	gesture  GestureKind
	phase    Phase
	scale    float64
	rotation float64
}

// eventQueue is the hand-off between bridge goroutines and the frame driver.
// Producers push under the lock; the driver swaps the whole buffer out once
// per frame.
type eventQueue struct {
	mu      sync.Mutex
	open    bool
	buf     []bridgeEvent
	cap     int
	dropped int
}

func (q *eventQueue) reset(capacity int) {
	q.mu.Lock()
	q.open = true
	q.cap = capacity
	q.buf = make([]bridgeEvent, 0, capacity)
	q.dropped = 0
	q.mu.Unlock()
}

func (q *eventQueue) close() {
	q.mu.Lock()
	q.open = false
	q.buf = q.buf[:0]
	q.dropped = 0
	q.mu.Unlock()
}

// push appends ev. It returns false if the queue is closed or full; a full
// queue drops the new event and keeps what is already buffered. End and
// cancel events are never dropped for lack of room: they replace a buffered
// move, or use the headroom above the capacity, so no contact stays active
// after its finger lifted.
func (q *eventQueue) push(ev bridgeEvent) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.open {
		return false
	}
	if len(q.buf) >= q.cap && !q.makeRoom(ev) {
		q.dropped++
		return false
	}
	q.buf = append(q.buf, ev)
	return true
}

// makeRoom frees space for a lift event in a full queue. The latest move of
// the same contact goes first, then the latest move of any contact.
func (q *eventQueue) makeRoom(ev bridgeEvent) bool {
	if ev.host || (ev.kind != TouchEnd && ev.kind != TouchCancel) {
		return false
	}
	i := q.lastMove(ev.id, false)
	if i < 0 {
		i = q.lastMove(0, true)
	}
	if i < 0 {
		return len(q.buf) < q.cap+MaxTouchPoints
	}
	q.buf = append(q.buf[:i], q.buf[i+1:]...)
	q.dropped++
	return true
}

// lastMove returns the index of the latest buffered move for id, or for any
// contact when anyID is set. It returns -1 if there is none.
func (q *eventQueue) lastMove(id int, anyID bool) int {
	for i := len(q.buf) - 1; i >= 0; i-- {
		ev := &q.buf[i]
		if !ev.host && ev.kind == TouchMove && (anyID || ev.id == id) {
			return i
		}
	}
	return -1
}

// drain moves the buffered events into dst and returns it together with the
// number of events dropped since the previous drain.
func (q *eventQueue) drain(dst []bridgeEvent) ([]bridgeEvent, int) {
	q.mu.Lock()
	dst = append(dst[:0], q.buf...)
	q.buf = q.buf[:0]
	dropped := q.dropped
	q.dropped = 0
	q.mu.Unlock()
	return dst, dropped
}
