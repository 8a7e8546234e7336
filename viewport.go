package gesture

// ViewportTransform is the accumulated pan, zoom, and rotation produced by
// the recognizer. It is owned by an [Engine]; consumers read it through the
// engine's getters and change it only through the engine's setters.
type ViewportTransform struct {
	panOffset  Vec2
	zoom       float64
	rotation   float64
	zoomCenter Vec2
	inertia    inertia
}

func newViewportTransform() ViewportTransform {
	return ViewportTransform{zoom: 1}
}

// PanOffset returns the accumulated pan offset in pixels.
func (v ViewportTransform) PanOffset() Vec2 { return v.panOffset }

// Zoom returns the accumulated zoom scale.
func (v ViewportTransform) Zoom() float64 { return v.zoom }

// Rotation returns the accumulated rotation in radians.
func (v ViewportTransform) Rotation() float64 { return v.rotation }

// ZoomCenter returns the pivot of the most recent zoom change.
func (v ViewportTransform) ZoomCenter() Vec2 { return v.zoomCenter }

// InertiaActive reports whether the pan offset is still coasting.
func (v ViewportTransform) InertiaActive() bool { return v.inertia.active }

// InertiaVelocity returns the current coasting velocity in pixels per frame.
func (v ViewportTransform) InertiaVelocity() Vec2 { return v.inertia.velocity }

// zoomBy multiplies the zoom by factor, clamped to [minZoom, maxZoom], and
// records pivot as the zoom center. It returns the factor actually applied.
func (v *ViewportTransform) zoomBy(factor float64, pivot Vec2, minZoom, maxZoom float64) float64 {
	old := v.zoom
	v.zoom = clamp(old*factor, minZoom, maxZoom)
	v.zoomCenter = pivot
	if old == 0 {
		return 1
	}
	return v.zoom / old
}

func (v *ViewportTransform) pan(delta Vec2) {
	v.panOffset = v.panOffset.Add(delta)
}

// stepInertia advances coasting by one frame.
func (v *ViewportTransform) stepInertia(deceleration, minVelocity float64) {
	if delta, ok := v.inertia.step(deceleration, minVelocity); ok {
		v.pan(delta)
	}
}

func (v *ViewportTransform) reset() {
	*v = newViewportTransform()
}
