package gesture

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// CanvasConfig tunes how a [Canvas] reacts to gestures.
type CanvasConfig struct {
	EnablePan  bool `toml:"enable_pan"`
	EnableZoom bool `toml:"enable_zoom"`

	// SmoothZoom eases the scale toward its target by ZoomSmoothing of the
	// remaining distance each frame instead of snapping.
	SmoothZoom    bool    `toml:"smooth_zoom"`
	ZoomSmoothing float64 `toml:"zoom_smoothing"`

	MinZoom float64 `toml:"min_zoom"`
	MaxZoom float64 `toml:"max_zoom"`

	EnableInertia       bool    `toml:"enable_inertia"`
	InertiaDeceleration float64 `toml:"inertia_deceleration"`
	InertiaMinVelocity  float64 `toml:"inertia_min_velocity"`

	// PanLimits bounds the scroll offset: X within [X, X+Width] and Y within
	// [Y, Y+Height]. The zero Rect disables clamping.
	PanLimits Rect `toml:"pan_limits"`

	// DoubleTapZoom is the scale a double-tap zooms to; a second double-tap
	// returns to 1. Zero disables double-tap zoom.
	DoubleTapZoom         float64  `toml:"double_tap_zoom"`
	DoubleTapZoomDuration Duration `toml:"double_tap_zoom_duration"`

	// FrameTime is the time one Update advances animations by.
	FrameTime Duration `toml:"frame_time"`
}

// DefaultCanvasConfig returns the default canvas configuration.
func DefaultCanvasConfig() CanvasConfig {
	return CanvasConfig{
		EnablePan:             true,
		EnableZoom:            true,
		SmoothZoom:            true,
		ZoomSmoothing:         0.2,
		MinZoom:               0.25,
		MaxZoom:               4.0,
		EnableInertia:         true,
		InertiaDeceleration:   0.92,
		InertiaMinVelocity:    1.0,
		DoubleTapZoom:         2.0,
		DoubleTapZoomDuration: Duration(250 * time.Millisecond),
		FrameTime:             Duration(time.Second / 60),
	}
}

// zoomSnapEpsilon is the distance at which smoothed zoom snaps to its target.
const zoomSnapEpsilon = 1e-3

// zoomAnim is an active animated zoom around a fixed pivot.
type zoomAnim struct {
	tween *gween.Tween
	pivot Vec2
}

// scrollAnim holds active scroll-to tweens for the offset X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Canvas applies engine gestures to one on-screen canvas: a local scroll
// offset and zoom scale with smoothing, inertia, and clamping. Several
// canvases can share an engine; only a hovered canvas in which a gesture
// began reacts to it.
//
// Screen positions map to canvas space as (screen - origin - offset) / scale.
type Canvas struct {
	id     string
	engine *Engine
	cfg    CanvasConfig

	origin  Vec2
	size    Vec2
	hovered bool

	offset      Vec2
	scale       float64
	targetScale float64
	pivot       Vec2
	inertia     inertia

	claimed bool

	tapped       bool
	doubleTapped bool
	longPressed  bool
	gesturePos   Vec2

	zoomTween   *zoomAnim
	scrollTween *scrollAnim

	stepped   bool
	lastFrame uint64
}

// NewCanvas creates a canvas driven by engine.
func NewCanvas(id string, engine *Engine, cfg CanvasConfig) *Canvas {
	c := &Canvas{engine: engine, cfg: cfg}
	c.Initialize(id)
	return c
}

// Initialize resets the canvas state and assigns its id.
func (c *Canvas) Initialize(id string) {
	*c = Canvas{
		id:          id,
		engine:      c.engine,
		cfg:         c.cfg,
		scale:       1,
		targetScale: 1,
	}
}

// ProcessForCanvas records the canvas's screen rectangle and hover state,
// then runs Update.
func (c *Canvas) ProcessForCanvas(origin, size Vec2, hovered bool) {
	c.origin = origin
	c.size = size
	c.hovered = hovered
	c.Update()
}

// Update applies this frame's gesture. It runs at most once per engine
// frame; further calls in the same frame do nothing.
func (c *Canvas) Update() {
	frame := c.engine.Frame()
	if c.stepped && frame == c.lastFrame {
		return
	}
	c.stepped = true
	c.lastFrame = frame

	c.tapped = false
	c.doubleTapped = false
	c.longPressed = false

	c.applyGesture(c.engine.Gesture())
	c.updateTweens()

	if c.cfg.EnableInertia {
		if delta, ok := c.inertia.step(c.cfg.InertiaDeceleration, c.cfg.InertiaMinVelocity); ok {
			c.offset = c.offset.Add(delta)
		}
	} else {
		c.inertia.stop()
	}

	if c.scale != c.targetScale {
		next := c.targetScale
		if c.cfg.SmoothZoom {
			next = c.scale + (c.targetScale-c.scale)*c.cfg.ZoomSmoothing
			if math.Abs(next-c.targetScale) < zoomSnapEpsilon {
				next = c.targetScale
			}
		}
		c.offset = zoomAtPoint(c.offset, c.pivot, c.scale, next)
		c.scale = next
	}

	c.clampOffset()
}

// applyGesture reacts to g when this canvas owns it.
func (c *Canvas) applyGesture(g GestureState) {
	if g.Kind == GestureNone {
		c.claimed = false
		return
	}
	if !c.hovered {
		// Effects stay global; the canvas is left untouched.
		return
	}
	if !c.claimed {
		if !c.inBounds(g.StartPosition) {
			return
		}
		c.claimed = true
	}
	if g.Phase.terminal() {
		defer func() { c.claimed = false }()
	}

	c.gesturePos = g.Position.Sub(c.origin)

	switch g.Kind {
	case GestureTap:
		c.tapped = g.Phase == PhaseEnded
	case GestureDoubleTap:
		if g.Phase == PhaseEnded {
			c.doubleTapped = true
			c.doubleTapZoom(c.gesturePos)
		}
	case GestureLongPress:
		c.longPressed = g.Phase == PhaseBegan
	case GesturePan:
		if !c.cfg.EnablePan {
			return
		}
		switch g.Phase {
		case PhaseBegan, PhaseChanged:
			c.inertia.stop()
			c.scrollTween = nil
			c.offset = c.offset.Add(g.Translation)
		case PhaseEnded:
			if c.cfg.EnableInertia {
				c.inertia.start(g.Velocity, c.cfg.InertiaMinVelocity)
			}
		}
	case GesturePinchZoom:
		if !c.cfg.EnableZoom || g.Phase.terminal() {
			return
		}
		c.zoomTween = nil
		if g.ScaleRatio > 0 {
			c.targetScale = clamp(c.targetScale*g.ScaleRatio, c.cfg.MinZoom, c.cfg.MaxZoom)
		}
		c.pivot = c.gesturePos
	}
}

func (c *Canvas) doubleTapZoom(pivot Vec2) {
	if !c.cfg.EnableZoom || c.cfg.DoubleTapZoom <= 0 {
		return
	}
	target := c.cfg.DoubleTapZoom
	if c.targetScale >= target-zoomSnapEpsilon {
		target = 1
	}
	d := float32(c.cfg.DoubleTapZoomDuration.D().Seconds())
	c.animateZoom(target, pivot, d, ease.OutQuad)
}

func (c *Canvas) animateZoom(scale float64, pivot Vec2, duration float32, easeFn ease.TweenFunc) {
	scale = clamp(scale, c.cfg.MinZoom, c.cfg.MaxZoom)
	if duration <= 0 {
		c.zoomTween = nil
		c.offset = zoomAtPoint(c.offset, pivot, c.scale, scale)
		c.scale, c.targetScale = scale, scale
		return
	}
	c.zoomTween = &zoomAnim{
		tween: gween.New(float32(c.scale), float32(scale), duration, easeFn),
		pivot: pivot,
	}
}

// updateTweens advances zoom and scroll animations by one frame.
func (c *Canvas) updateTweens() {
	dt := float32(c.cfg.FrameTime.D().Seconds())

	if c.zoomTween != nil {
		val, done := c.zoomTween.tween.Update(dt)
		next := float64(val)
		c.offset = zoomAtPoint(c.offset, c.zoomTween.pivot, c.scale, next)
		c.scale, c.targetScale = next, next
		if done {
			c.zoomTween = nil
		}
	}

	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			c.offset.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			c.offset.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}
}

// zoomAtPoint returns the offset that keeps the canvas-space point under
// pivot fixed when the scale changes from oldScale to newScale.
func zoomAtPoint(offset, pivot Vec2, oldScale, newScale float64) Vec2 {
	if oldScale == 0 {
		return offset
	}
	return pivot.Sub(pivot.Sub(offset).Scale(newScale / oldScale))
}

func (c *Canvas) clampOffset() {
	l := c.cfg.PanLimits
	if l.IsZero() {
		return
	}
	c.offset.X = clamp(c.offset.X, l.X, l.X+l.Width)
	c.offset.Y = clamp(c.offset.Y, l.Y, l.Y+l.Height)
}

// inBounds reports whether screen position p lies inside the canvas. A
// canvas with no size accepts every position.
func (c *Canvas) inBounds(p Vec2) bool {
	if c.size.X <= 0 || c.size.Y <= 0 {
		return true
	}
	return c.Bounds().Contains(p.X, p.Y)
}

// --- Getters ---

// ID returns the canvas id.
func (c *Canvas) ID() string { return c.id }

// Offset returns the local scroll offset.
func (c *Canvas) Offset() Vec2 { return c.offset }

// Scale returns the current zoom scale.
func (c *Canvas) Scale() float64 { return c.scale }

// TargetScale returns the scale smoothed zoom is approaching.
func (c *Canvas) TargetScale() float64 { return c.targetScale }

// Bounds returns the canvas's screen rectangle.
func (c *Canvas) Bounds() Rect {
	return Rect{X: c.origin.X, Y: c.origin.Y, Width: c.size.X, Height: c.size.Y}
}

// Hovered reports the hover state passed to the latest ProcessForCanvas.
func (c *Canvas) Hovered() bool { return c.hovered }

// Config returns the canvas configuration.
func (c *Canvas) Config() CanvasConfig { return c.cfg }

// InertiaActive reports whether the offset is still coasting.
func (c *Canvas) InertiaActive() bool { return c.inertia.active }

// Animating reports whether a zoom or scroll animation is running.
func (c *Canvas) Animating() bool { return c.zoomTween != nil || c.scrollTween != nil }

// WasTapped reports whether a tap ended on this canvas this frame.
func (c *Canvas) WasTapped() bool { return c.tapped }

// WasDoubleTapped reports whether a double-tap ended on this canvas this frame.
func (c *Canvas) WasDoubleTapped() bool { return c.doubleTapped }

// WasLongPressed reports whether a long-press began on this canvas this frame.
func (c *Canvas) WasLongPressed() bool { return c.longPressed }

// GesturePosition returns the latest gesture position relative to the
// canvas origin.
func (c *Canvas) GesturePosition() Vec2 { return c.gesturePos }

// ScreenToCanvas converts a screen position to canvas space.
func (c *Canvas) ScreenToCanvas(p Vec2) Vec2 {
	return p.Sub(c.origin).Sub(c.offset).Scale(1 / c.scale)
}

// CanvasToScreen converts a canvas-space position to screen space.
func (c *Canvas) CanvasToScreen(p Vec2) Vec2 {
	return p.Scale(c.scale).Add(c.offset).Add(c.origin)
}

// --- Setters ---

// SetConfig replaces the canvas configuration.
func (c *Canvas) SetConfig(cfg CanvasConfig) { c.cfg = cfg }

// SetOffset sets the local scroll offset and stops inertia.
func (c *Canvas) SetOffset(offset Vec2) {
	c.offset = offset
	c.inertia.stop()
	c.clampOffset()
}

// ScrollBy adds delta to the local scroll offset.
func (c *Canvas) ScrollBy(delta Vec2) {
	c.offset = c.offset.Add(delta)
	c.clampOffset()
}

// SetScale sets the zoom scale immediately, clamped to the configured
// bounds, keeping the offset unchanged.
func (c *Canvas) SetScale(scale float64) {
	scale = clamp(scale, c.cfg.MinZoom, c.cfg.MaxZoom)
	c.zoomTween = nil
	c.scale, c.targetScale = scale, scale
}

// ZoomAt sets the zoom scale immediately, keeping the canvas point under
// the screen position pivot fixed.
func (c *Canvas) ZoomAt(pivot Vec2, scale float64) {
	c.animateZoom(scale, pivot.Sub(c.origin), 0, nil)
	c.clampOffset()
}

// AnimateZoomTo animates the zoom scale to scale over duration seconds,
// keeping the canvas point under the screen position pivot fixed.
func (c *Canvas) AnimateZoomTo(scale float64, pivot Vec2, duration float32, easeFn ease.TweenFunc) {
	c.animateZoom(scale, pivot.Sub(c.origin), duration, easeFn)
}

// ScrollTo animates the scroll offset to offset over duration seconds.
func (c *Canvas) ScrollTo(offset Vec2, duration float32, easeFn ease.TweenFunc) {
	c.inertia.stop()
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.offset.X), float32(offset.X), duration, easeFn),
		tweenY: gween.New(float32(c.offset.Y), float32(offset.Y), duration, easeFn),
	}
}

// ZoomToFit scales and centers content of the given size inside the canvas.
func (c *Canvas) ZoomToFit(content Vec2, padding float64) {
	res := ComputeZoomToFit(content, c.size, padding)
	c.zoomTween = nil
	c.scrollTween = nil
	c.inertia.stop()
	c.scale, c.targetScale = res.Scale, res.Scale
	c.offset = res.Scroll
}

// ClampToContent clamps the offset so content of the given unscaled size
// covers the canvas wherever it is large enough to.
func (c *Canvas) ClampToContent(content Vec2) {
	c.offset = ClampScroll(c.offset, content.Scale(c.scale), c.size)
}

// Reset restores identity scale and offset and stops every animation.
func (c *Canvas) Reset() {
	c.offset = Vec2{}
	c.scale, c.targetScale = 1, 1
	c.inertia.stop()
	c.zoomTween = nil
	c.scrollTween = nil
	c.claimed = false
}
