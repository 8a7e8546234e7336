package gesture

import "golang.org/x/mobile/event/touch"

// HandleMobileTouch forwards a golang.org/x/mobile touch event to b. The
// event's Sequence becomes the touch id. It reports whether the event was
// queued; unknown event types are ignored.
func HandleMobileTouch(b Bridge, e touch.Event) bool {
	var kind TouchEventKind
	switch e.Type {
	case touch.TypeBegin:
		kind = TouchBegin
	case touch.TypeMove:
		kind = TouchMove
	case touch.TypeEnd:
		kind = TouchEnd
	default:
		return false
	}
	return b.OnTouchEvent(kind, int(e.Sequence), float64(e.X), float64(e.Y), 1, b.Now())
}
