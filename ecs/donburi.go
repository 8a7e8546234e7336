package ecs

import (
	"github.com/phanxgames/gesture"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType carries one gesture.GestureEvent per engine frame that
// reports a gesture: every began and changed frame of a continuous gesture,
// its single ended or cancelled frame, and one GestureNone event on the frame
// after. Idle frames publish nothing.
var GestureEventType = events.NewEventType[gesture.GestureEvent]()

// worldSink publishes into a world, optionally limited to a set of kinds.
type worldSink struct {
	world donburi.World
	kinds map[gesture.GestureKind]bool
}

// NewDonburiSink returns a gesture.GestureSink that publishes to
// GestureEventType in world. When kinds is non-empty only those gesture kinds
// are published; the terminal frame of a filtered-out gesture is skipped too.
//
// Published events are delivered when the world processes its events, so
// systems see the gestures of the frame in which Engine.Update ran.
func NewDonburiSink(world donburi.World, kinds ...gesture.GestureKind) gesture.GestureSink {
	s := &worldSink{world: world}
	if len(kinds) > 0 {
		s.kinds = make(map[gesture.GestureKind]bool, len(kinds))
		for _, k := range kinds {
			s.kinds[k] = true
		}
	}
	return s
}

func (s *worldSink) EmitGesture(ev gesture.GestureEvent) {
	if s.kinds != nil && !s.kinds[ev.Gesture.Kind] {
		return
	}
	GestureEventType.Publish(s.world, ev)
}
