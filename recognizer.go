package gesture

import (
	"math"
	"time"
)

// GestureState is the gesture classified for one frame. It is recomputed by
// every [Engine.Update]; only the previous frame's value is retained.
type GestureState struct {
	Kind GestureKind
	// Phase is meaningful only while Kind is not GestureNone. A none state
	// keeps the zero Phase, which is PhaseBegan.
	Phase Phase

	// Position is the gesture center: the touch position for single-touch
	// gestures, the midpoint of the first two touches otherwise.
	Position Vec2
	// StartPosition is where the gesture started.
	StartPosition Vec2
	// Translation is this frame's pan movement.
	Translation Vec2
	// Velocity is the tracked pan velocity in pixels per frame.
	Velocity Vec2

	// Scale is the pinch scale accumulated since the gesture began.
	Scale float64
	// ScaleDelta is the factor applied to the engine zoom this frame, minus
	// one. It is zero once the zoom sits at a bound.
	ScaleDelta float64
	// ScaleRatio is this frame's finger distance ratio before the engine's
	// zoom bounds are applied, 1 when no pinch was applied. Canvases scale by
	// it so each keeps its own zoom.
	ScaleRatio float64
	// Rotation is the rotation accumulated since the gesture began, in radians.
	Rotation float64
	// RotationDelta is this frame's rotation in radians.
	RotationDelta float64

	// TouchCount is the number of active touches this frame.
	TouchCount int
	// Duration is the time since the gesture's contact began.
	Duration time.Duration
}

// InProgress reports whether a gesture is classified and not yet terminal.
func (g GestureState) InProgress() bool {
	return g.Kind != GestureNone && !g.Phase.terminal()
}

// sequence tracks one contact sequence: from the first finger down with no
// other finger active until every finger is up again.
type sequence struct {
	open       bool
	start      time.Duration
	startPos   Vec2
	lastPos    Vec2
	released   bool
	releasedAt time.Duration

	tapCandidate bool
	longPressed  bool
	dragging     bool
	multi        bool
	cancelled    bool
}

// tapRecord remembers the last resolved tap for double-tap detection.
type tapRecord struct {
	armed bool
	at    time.Duration
	pos   Vec2
}

// recognizer classifies the touch set once per frame and applies the
// resulting pan, zoom, and rotation to the viewport.
type recognizer struct {
	cur  GestureState
	prev GestureState

	seq     sequence
	lastTap tapRecord

	// Two-finger reference values. They are latched on the first frame two
	// touches are seen and reset each frame the matching gesture is applied,
	// so deltas are per frame.
	refLatched   bool
	pairA, pairB int
	refDistance  float64
	refAngle     float64
	refCenter    Vec2
	startCenter  Vec2
	velocity     Vec2
}

func newRecognizer() recognizer {
	none := GestureState{Scale: 1, ScaleRatio: 1}
	return recognizer{cur: none, prev: none}
}

// --- Event hooks, called while the bridge queue is drained ---

func (r *recognizer) touchBegan(p TouchPoint, activeAfter int) {
	if activeAfter == 1 && (!r.seq.open || r.seq.released) {
		r.seq = sequence{
			open:         true,
			start:        p.StartTime,
			startPos:     p.StartPosition,
			lastPos:      p.Position,
			tapCandidate: true,
		}
		return
	}
	if activeAfter >= 2 {
		r.seq.open = true
		r.seq.multi = true
		r.seq.tapCandidate = false
	}
}

func (r *recognizer) touchMoved(p TouchPoint, active int) {
	if active == 1 {
		r.seq.lastPos = p.Position
	}
}

func (r *recognizer) touchEnded(p TouchPoint, activeAfter int, ts time.Duration, cancelled bool) {
	if cancelled {
		r.seq.cancelled = true
	}
	if activeAfter > 0 {
		return
	}
	r.seq.lastPos = p.Position
	r.seq.released = true
	r.seq.releasedAt = ts
}

// --- Per-frame classification ---

// update classifies the current touch set. It is called exactly once per frame.
func (r *recognizer) update(store *TouchPointStore, view *ViewportTransform, cfg *Config, now time.Duration) {
	r.prev = r.cur
	g := &r.cur
	g.Translation = Vec2{}
	g.ScaleDelta = 0
	g.ScaleRatio = 1
	g.RotationDelta = 0

	n := store.ActiveCount()
	g.TouchCount = n
	if n < 2 {
		r.refLatched = false
	}

	switch {
	case n == 0:
		r.updateReleased(view, cfg)
	case n == 1:
		r.updateSingle(store.first(), cfg, now)
	default:
		a, b := store.firstTwo()
		r.updateMulti(a, b, view, cfg, now)
	}
}

// clear resets the current gesture to none, keeping the touch count.
func (r *recognizer) clear() {
	r.cur = GestureState{Scale: 1, ScaleRatio: 1, TouchCount: r.cur.TouchCount}
}

// terminate reports the in-progress gesture with a terminal phase.
func (r *recognizer) terminate(phase Phase) {
	r.cur.Kind = r.prev.Kind
	r.cur.Phase = phase
}

func (r *recognizer) updateReleased(view *ViewportTransform, cfg *Config) {
	prev := r.prev
	seq := r.seq
	r.seq = sequence{}

	switch {
	case seq.cancelled && prev.InProgress():
		r.terminate(PhaseCancelled)
	case prev.InProgress():
		r.terminate(PhaseEnded)
		if prev.Kind == GesturePan && cfg.EnableInertia {
			view.inertia.start(r.velocity, cfg.InertiaMinVelocity)
		}
	case seq.released && !seq.cancelled && r.isTap(seq, cfg):
		r.resolveTap(seq, cfg)
	default:
		r.clear()
	}
}

func (r *recognizer) isTap(seq sequence, cfg *Config) bool {
	return seq.tapCandidate && !seq.longPressed && !seq.dragging && !seq.multi &&
		distance(seq.lastPos, seq.startPos) <= cfg.TapMaxMovement &&
		seq.releasedAt-seq.start <= cfg.TapMaxDuration.D()
}

func (r *recognizer) resolveTap(seq sequence, cfg *Config) {
	r.clear()
	g := &r.cur
	g.Phase = PhaseEnded
	g.Position = seq.lastPos
	g.StartPosition = seq.startPos
	g.Duration = seq.releasedAt - seq.start

	last := r.lastTap
	if last.armed &&
		seq.start-last.at <= cfg.DoubleTapMaxDelay.D() &&
		distance(seq.startPos, last.pos) <= cfg.TapMaxMovement {
		g.Kind = GestureDoubleTap
		r.lastTap = tapRecord{}
		return
	}
	g.Kind = GestureTap
	r.lastTap = tapRecord{armed: true, at: seq.releasedAt, pos: seq.startPos}
}

func (r *recognizer) updateSingle(p *TouchPoint, cfg *Config, now time.Duration) {
	prev := r.prev
	g := &r.cur

	// One finger of a two-finger gesture lifted. The gesture holds without
	// movement until the last finger lifts, keeping its velocity for inertia.
	if prev.Kind.twoFinger() && prev.InProgress() {
		g.Kind = prev.Kind
		g.Phase = PhaseChanged
		g.Duration = now - r.seq.start
		return
	}
	if prev.Kind != GestureNone && prev.Phase.terminal() {
		r.clear()
	}

	r.seq.lastPos = p.Position
	movement := distance(p.Position, p.StartPosition)
	duration := now - p.StartTime

	g.Position = p.Position
	g.StartPosition = p.StartPosition
	g.Duration = duration

	if r.seq.multi {
		// The remaining finger of a multi-touch sequence is never a tap,
		// long-press, or drag.
		g.Kind = GestureNone
		return
	}

	if r.seq.longPressed {
		g.Kind = GestureLongPress
		g.Phase = PhaseChanged
		return
	}
	if !r.seq.dragging && duration >= cfg.LongPressDuration.D() && movement <= cfg.TapMaxMovement {
		r.seq.longPressed = true
		r.seq.tapCandidate = false
		g.Kind = GestureLongPress
		g.Phase = PhaseBegan
		return
	}
	if !r.seq.dragging && movement <= cfg.TapMaxMovement && duration <= cfg.TapMaxDuration.D() {
		// Still a tap candidate; resolved when the finger lifts.
		g.Kind = GestureNone
		return
	}

	r.seq.tapCandidate = false
	if movement > cfg.TapMaxMovement {
		r.seq.dragging = true
	}
	if !r.seq.dragging || !cfg.EmitDrag {
		g.Kind = GestureNone
		return
	}
	g.Phase = phaseFor(prev, GestureDrag)
	g.Kind = GestureDrag
	g.Translation = p.Position.Sub(p.PreviousPosition)
	g.Velocity = g.Translation
}

func (r *recognizer) updateMulti(a, b *TouchPoint, view *ViewportTransform, cfg *Config, now time.Duration) {
	prev := r.prev
	g := &r.cur

	r.seq.multi = true
	r.seq.tapCandidate = false
	r.seq.longPressed = false

	center := midpoint(a.Position, b.Position)
	dist := distance(a.Position, b.Position)
	angle := angleBetween(a.Position, b.Position)

	g.Position = center
	g.Duration = now - minTime(a.StartTime, b.StartTime)

	// Latch references on the first two-touch frame, or when the tracked
	// pair changes because one of the first two fingers lifted.
	if !r.refLatched || r.pairA != a.ID || r.pairB != b.ID {
		r.refLatched = true
		r.pairA, r.pairB = a.ID, b.ID
		r.refDistance = dist
		r.refAngle = angle
		r.refCenter = center
		r.startCenter = center
		r.velocity = Vec2{}
		switch {
		case prev.InProgress() && !prev.Kind.twoFinger():
			r.terminate(PhaseCancelled)
		case prev.InProgress():
			// Continue the gesture from the new pair without a jump.
			g.Kind = prev.Kind
			g.Phase = PhaseChanged
		default:
			g.Kind = GestureNone
			g.Scale = 1
			g.Rotation = 0
		}
		g.StartPosition = r.startCenter
		return
	}

	scaleRatio := 1.0
	if r.refDistance > 0 {
		scaleRatio = dist / r.refDistance
	}
	rotationDelta := normalizeAngle(angle - r.refAngle)
	panDistance := distance(center, r.refCenter)

	isPinch := cfg.EnablePanZoom && math.Abs(scaleRatio-1) > cfg.PinchThreshold
	isRotate := cfg.EnableRotation && math.Abs(rotationDelta) > cfg.RotationThreshold
	isPan := cfg.EnablePanZoom && panDistance > cfg.PanThreshold

	active := GestureNone
	if prev.Kind.twoFinger() && prev.InProgress() {
		active = prev.Kind
	}

	// Priority: pinch wins over rotate wins over pan, decided again every
	// frame. A gesture in progress continues below its threshold until
	// another one crosses its own. Rotation does not interrupt a pinch.
	kind := active
	switch {
	case isPinch:
		kind = GesturePinchZoom
	case isRotate:
		if active != GesturePinchZoom {
			kind = GestureRotate
		}
	case isPan:
		kind = GesturePan
	}

	if kind == GestureNone {
		if prev.InProgress() && !prev.Kind.twoFinger() {
			r.terminate(PhaseCancelled)
		} else {
			g.Kind = GestureNone
		}
		g.StartPosition = r.startCenter
		return
	}

	g.Phase = phaseFor(prev, kind)
	g.Kind = kind
	if g.Phase == PhaseBegan {
		g.Scale = 1
		g.Rotation = 0
		g.StartPosition = center
		r.velocity = Vec2{}
	}

	switch kind {
	case GesturePinchZoom:
		applied := view.zoomBy(scaleRatio, center, cfg.MinZoom, cfg.MaxZoom)
		g.ScaleDelta = applied - 1
		g.ScaleRatio = scaleRatio
		g.Scale *= scaleRatio
		r.refDistance = dist
		r.refCenter = center
	case GestureRotate:
		g.RotationDelta = rotationDelta
		g.Rotation += rotationDelta
		view.rotation += rotationDelta
		r.refAngle = angle
		r.refCenter = center
	case GesturePan:
		delta := center.Sub(r.refCenter)
		g.Translation = delta
		view.pan(delta)
		raw := center.Sub(midpoint(a.PreviousPosition, b.PreviousPosition))
		s := cfg.VelocitySmoothing
		r.velocity = r.velocity.Scale(1 - s).Add(raw.Scale(s))
		g.Velocity = r.velocity
		r.refCenter = center
	}
}

// phaseFor returns began when kind starts this frame, changed otherwise.
func phaseFor(prev GestureState, kind GestureKind) Phase {
	if prev.Kind == kind && !prev.Phase.terminal() {
		return PhaseChanged
	}
	return PhaseBegan
}

func minTime(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
