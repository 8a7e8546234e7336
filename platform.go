package gesture

import "time"

// Bridge is the ingestion surface a platform uses to feed an [Engine]. Every
// method is safe to call from any goroutine; events are buffered and only
// consumed by the next [Engine.Update].
type Bridge interface {
	// OnTouchEvent delivers a raw touch lifecycle event. It reports whether
	// the event was queued.
	OnTouchEvent(kind TouchEventKind, id int, x, y, pressure float64, ts time.Duration) bool
	// OnGestureEvent delivers a gesture the host runtime recognized natively.
	// kind and phase use the same numbering as GestureKind and Phase.
	OnGestureEvent(kind GestureKind, phase Phase, x, y, scale, rotation float64) bool
	// OnPointerInput reports mouse or pen input, switching the engine out of
	// touch mode until the next touch.
	OnPointerInput()
	// Now returns the engine clock used to stamp events.
	Now() time.Duration
}

// Platform connects a raw event source to a Bridge. BeginPlatform is called
// once from [Engine.Initialize]; an error marks the engine unavailable.
// EndPlatform is called from [Engine.Shutdown].
type Platform interface {
	BeginPlatform(b Bridge) error
	EndPlatform()
}

// Poller is implemented by platforms that sample input on the frame
// goroutine instead of receiving callbacks. Poll runs at the start of every
// [Engine.Update], before queued events are drained.
type Poller interface {
	Poll(b Bridge)
}

// platformName returns a short name for logging.
func platformName(p Platform) string {
	if n, ok := p.(interface{ Name() string }); ok {
		return n.Name()
	}
	return "custom"
}
