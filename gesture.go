package gesture

import "math"

// Vec2 is a 2D vector used for positions, offsets, velocities, and sizes
// throughout the API. Screen space has its origin at the top-left with Y
// increasing downward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// IsZero reports whether every field of r is zero.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// GestureKind identifies the dominant gesture recognized in a frame.
// The numeric values match the host gesture protocol accepted by
// [Engine.OnGestureEvent].
type GestureKind uint8

const (
	GestureNone      GestureKind = iota // no classified gesture
	GestureTap                          // short stationary single touch, reported on release
	GestureDoubleTap                    // second tap close in time and space to the first
	GestureLongPress                    // single touch held stationary past the long-press duration
	GesturePan                          // two-finger translation
	GesturePinchZoom                    // two-finger distance change
	GestureRotate                       // two-finger angle change
	GestureDrag                         // single-finger drag; only reported when Config.EmitDrag is set
)

var gestureKindNames = [...]string{
	GestureNone:      "none",
	GestureTap:       "tap",
	GestureDoubleTap: "double-tap",
	GestureLongPress: "long-press",
	GesturePan:       "pan",
	GesturePinchZoom: "pinch-zoom",
	GestureRotate:    "rotate",
	GestureDrag:      "drag",
}

func (k GestureKind) String() string {
	if int(k) < len(gestureKindNames) {
		return gestureKindNames[k]
	}
	return "unknown"
}

// twoFinger reports whether k is produced from two active touches.
func (k GestureKind) twoFinger() bool {
	return k == GesturePan || k == GesturePinchZoom || k == GestureRotate
}

// Phase describes the progress of a classified gesture within its lifetime.
type Phase uint8

const (
	PhaseBegan     Phase = iota // first frame the gesture kind is reported
	PhaseChanged                // subsequent frames while the gesture continues
	PhaseEnded                  // terminal frame, reported exactly once
	PhaseCancelled              // terminal frame after a cancelled contact
)

var phaseNames = [...]string{
	PhaseBegan:     "began",
	PhaseChanged:   "changed",
	PhaseEnded:     "ended",
	PhaseCancelled: "cancelled",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// terminal reports whether p ends a gesture.
func (p Phase) terminal() bool {
	return p == PhaseEnded || p == PhaseCancelled
}

// TouchEventKind identifies a raw touch lifecycle event delivered by a platform bridge.
type TouchEventKind uint8

const (
	TouchBegin  TouchEventKind = iota // a finger made contact
	TouchMove                         // an active finger moved
	TouchEnd                          // a finger lifted
	TouchCancel                       // the platform aborted the contact
)

var touchEventKindNames = [...]string{
	TouchBegin:  "begin",
	TouchMove:   "move",
	TouchEnd:    "end",
	TouchCancel: "cancel",
}

func (k TouchEventKind) String() string {
	if int(k) < len(touchEventKindNames) {
		return touchEventKindNames[k]
	}
	return "unknown"
}

// --- Geometry helpers ---

func distance(a, b Vec2) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// angleBetween returns the angle of the vector from a to b, in radians.
func angleBetween(a, b Vec2) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

func midpoint(a, b Vec2) Vec2 {
	return Vec2{(a.X + b.X) * 0.5, (a.Y + b.Y) * 0.5}
}

// normalizeAngle wraps a into [-π, π].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
