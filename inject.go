package gesture

import (
	"math"
	"time"
)

// injectIDBase keeps synthetic touch ids clear of platform ids.
const injectIDBase = 1 << 20

// injectBatch is one frame of synthetic touch events. A batch with a delay
// is held until that much engine time has passed since it reached the head
// of the queue.
type injectBatch struct {
	events []bridgeEvent
	delay  time.Duration
}

type injectState struct {
	queue     []injectBatch
	nextID    int
	waiting   bool
	waitStart time.Duration
}

func (e *Engine) injectID() int {
	e.inject.nextID++
	return injectIDBase + e.inject.nextID
}

func (e *Engine) queueBatch(delay time.Duration, events ...bridgeEvent) {
	e.inject.queue = append(e.inject.queue, injectBatch{events: events, delay: delay})
}

func synthetic(kind TouchEventKind, id int, p Vec2) bridgeEvent {
	return bridgeEvent{kind: kind, id: id, pos: p, pressure: 1}
}

// InjectTap queues a touch down and up at (x, y). Consumes two frames.
func (e *Engine) InjectTap(x, y float64) {
	id := e.injectID()
	p := Vec2{x, y}
	e.queueBatch(0, synthetic(TouchBegin, id, p))
	e.queueBatch(0, synthetic(TouchEnd, id, p))
}

// InjectDoubleTap queues two taps at (x, y). Consumes four frames.
func (e *Engine) InjectDoubleTap(x, y float64) {
	e.InjectTap(x, y)
	e.InjectTap(x, y)
}

// InjectLongPress queues a touch at (x, y) that is held for hold on the
// engine clock before it lifts.
func (e *Engine) InjectLongPress(x, y float64, hold time.Duration) {
	id := e.injectID()
	p := Vec2{x, y}
	e.queueBatch(0, synthetic(TouchBegin, id, p))
	e.queueBatch(hold, synthetic(TouchEnd, id, p))
}

// InjectDrag queues a single-finger drag from (fromX, fromY) to (toX, toY):
// a touch down, linearly interpolated moves over frames-2 intermediate
// frames, and a touch up at the end point. Minimum frames is 2.
func (e *Engine) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	id := e.injectID()
	from, to := Vec2{fromX, fromY}, Vec2{toX, toY}
	e.queueBatch(0, synthetic(TouchBegin, id, from))
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		e.queueBatch(0, synthetic(TouchMove, id, lerpVec(from, to, t)))
	}
	e.queueBatch(0, synthetic(TouchMove, id, to), synthetic(TouchEnd, id, to))
}

// InjectPan queues a two-finger pan whose center moves from (fromX, fromY)
// to (toX, toY). The fingers are held 80 pixels apart horizontally.
func (e *Engine) InjectPan(fromX, fromY, toX, toY float64, frames int) {
	offset := Vec2{40, 0}
	from, to := Vec2{fromX, fromY}, Vec2{toX, toY}
	e.injectTwoFinger(frames, func(t float64) (Vec2, Vec2) {
		c := lerpVec(from, to, t)
		return c.Sub(offset), c.Add(offset)
	})
}

// InjectPinch queues a horizontal two-finger pinch around (cx, cy) whose
// finger distance changes from fromDist to toDist.
func (e *Engine) InjectPinch(cx, cy, fromDist, toDist float64, frames int) {
	c := Vec2{cx, cy}
	e.injectTwoFinger(frames, func(t float64) (Vec2, Vec2) {
		half := (fromDist + (toDist-fromDist)*t) / 2
		return Vec2{c.X - half, c.Y}, Vec2{c.X + half, c.Y}
	})
}

// InjectRotate queues a two-finger rotation around (cx, cy) with the fingers
// radius pixels from the center, turning from fromAngle to toAngle radians.
func (e *Engine) InjectRotate(cx, cy, radius, fromAngle, toAngle float64, frames int) {
	c := Vec2{cx, cy}
	e.injectTwoFinger(frames, func(t float64) (Vec2, Vec2) {
		a := fromAngle + (toAngle-fromAngle)*t
		d := Vec2{math.Cos(a) * radius, math.Sin(a) * radius}
		return c.Sub(d), c.Add(d)
	})
}

// injectTwoFinger queues both fingers down on the first frame, interpolated
// moves on the following frames, and both fingers up on the last frame.
// Minimum frames is 3.
func (e *Engine) injectTwoFinger(frames int, at func(t float64) (Vec2, Vec2)) {
	if frames < 3 {
		frames = 3
	}
	a, b := e.injectID(), e.injectID()
	pa, pb := at(0)
	e.queueBatch(0, synthetic(TouchBegin, a, pa), synthetic(TouchBegin, b, pb))
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		pa, pb = at(float64(i) / float64(steps))
		e.queueBatch(0, synthetic(TouchMove, a, pa), synthetic(TouchMove, b, pb))
	}
	e.queueBatch(0, synthetic(TouchEnd, a, pa), synthetic(TouchEnd, b, pb))
}

// InjectPending reports whether synthetic input is still queued.
func (e *Engine) InjectPending() bool {
	return len(e.inject.queue) > 0
}

// processInjected applies at most one batch from the inject queue and
// returns the number of events applied.
func (e *Engine) processInjected() int {
	if len(e.inject.queue) == 0 {
		return 0
	}
	head := e.inject.queue[0]
	if head.delay > 0 {
		if !e.inject.waiting {
			e.inject.waiting = true
			e.inject.waitStart = e.now
		}
		if e.now-e.inject.waitStart < head.delay {
			return 0
		}
	}
	e.inject.waiting = false
	copy(e.inject.queue, e.inject.queue[1:])
	e.inject.queue[len(e.inject.queue)-1] = injectBatch{}
	e.inject.queue = e.inject.queue[:len(e.inject.queue)-1]

	if len(head.events) > 0 {
		e.touchMode.Store(true)
	}
	for i := range head.events {
		ev := head.events[i]
		ev.ts = e.now
		e.apply(&ev)
	}
	return len(head.events)
}

func lerpVec(a, b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}
