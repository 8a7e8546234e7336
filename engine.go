package gesture

import (
	"sync/atomic"
	"time"
)

// GestureEvent is a snapshot delivered to a [GestureSink] every frame a
// gesture is reported.
type GestureEvent struct {
	Frame      uint64
	Gesture    GestureState
	PanOffset  Vec2
	Zoom       float64
	Rotation   float64
	ZoomCenter Vec2
}

// GestureSink receives gesture events, for example to forward them into an
// ECS world. See the ecs submodule for a donburi implementation.
type GestureSink interface {
	EmitGesture(event GestureEvent)
}

// --- Handler registry ---

type gestureHandler struct {
	id uint32
	fn func(GestureState)
}

// CallbackHandle allows removing a registered gesture callback.
type CallbackHandle struct {
	id uint32
	e  *Engine
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.e == nil {
		return
	}
	s := h.e.handlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = gestureHandler{}
			h.e.handlers = s[:len(s)-1]
			return
		}
	}
}

// Engine turns raw touch events into gestures and a viewport transform.
// Create one per window or input surface with [NewEngine], call
// [Engine.Initialize] once, then [Engine.Update] once per frame.
//
// Bridge methods (OnTouchEvent, OnGestureEvent, OnPointerInput, Now) are safe
// from any goroutine. Everything else must be called from the goroutine that
// calls Update.
type Engine struct {
	cfg      Config
	platform Platform
	clock    func() time.Duration

	initialized bool
	available   bool

	queue       eventQueue
	events      []bridgeEvent
	overflowing bool

	store TouchPointStore
	rec   recognizer
	view  ViewportTransform

	touchMode atomic.Bool

	// Host gesture state for the current frame.
	host        GestureState
	hostPending bool
	hostCenter  Vec2

	handlers      []gestureHandler
	nextHandlerID uint32
	sink          GestureSink

	inject injectState
	runner *ScriptRunner

	frame uint64
	now   time.Duration
	debug bool
}

// NewEngine creates an engine with cfg. platform may be nil, in which case
// events arrive only through the [Bridge] methods and the Inject helpers.
func NewEngine(cfg Config, platform Platform) *Engine {
	start := time.Now()
	return &Engine{
		cfg:      cfg,
		platform: platform,
		clock:    func() time.Duration { return time.Since(start) },
		rec:      newRecognizer(),
		view:     newViewportTransform(),
	}
}

// SetClock replaces the engine clock. It must be called before Initialize.
func (e *Engine) SetClock(clock func() time.Duration) {
	e.clock = clock
}

// Initialize opens the bridge queue and starts the platform. Calling it
// again while initialized does nothing.
func (e *Engine) Initialize() {
	if e.initialized {
		return
	}
	e.initialized = true
	e.available = true
	e.queue.reset(defaultQueueCapacity)

	name := "none"
	if e.platform != nil {
		name = platformName(e.platform)
		if err := e.platform.BeginPlatform(e); err != nil {
			e.available = false
			Logger().Warn("touch platform unavailable", "platform", name, "err", err)
		}
	}
	if e.debug && e.cfg.MinZoom > e.cfg.MaxZoom {
		Logger().Warn("zoom bounds inverted", "min", e.cfg.MinZoom, "max", e.cfg.MaxZoom)
	}
	Logger().Info("gesture engine initialized", "platform", name, "available", e.available)
}

// Shutdown stops the platform and discards all touch, gesture, and viewport
// state. Calling it while not initialized does nothing.
func (e *Engine) Shutdown() {
	if !e.initialized {
		return
	}
	if e.platform != nil && e.available {
		e.platform.EndPlatform()
	}
	e.queue.close()
	e.Reset()
	e.initialized = false
	e.available = false
	Logger().Info("gesture engine shut down")
}

// Available reports whether the platform started successfully.
func (e *Engine) Available() bool {
	return e.available
}

// Initialized reports whether Initialize has been called without a matching Shutdown.
func (e *Engine) Initialized() bool {
	return e.initialized
}

// Update drains pending input and recomputes the gesture and viewport. Call
// it exactly once per frame before reading any getter.
func (e *Engine) Update() {
	if !e.initialized {
		return
	}
	var started time.Time
	if e.debug {
		started = time.Now()
	}

	e.now = e.clock()
	e.frame++

	if e.runner != nil {
		e.runner.step(e)
	}

	e.store.markFrame()
	e.hostPending = false

	if p, ok := e.platform.(Poller); ok && e.available {
		p.Poll(e)
	}

	injected := e.processInjected()

	events, dropped := e.queue.drain(e.events)
	e.events = events
	e.reportOverflow(dropped)
	for i := range events {
		e.apply(&events[i])
	}

	if e.cfg.EnableInertia {
		e.view.stepInertia(e.cfg.InertiaDeceleration, e.cfg.InertiaMinVelocity)
	} else {
		e.view.inertia.stop()
	}

	if e.hostPending {
		e.rec.prev = e.rec.cur
		e.rec.cur = e.host
		e.rec.cur.TouchCount = e.store.ActiveCount()
	} else {
		e.rec.update(&e.store, &e.view, &e.cfg, e.now)
	}

	e.dispatch()

	if e.debug {
		e.debugLog(frameStats{
			drained:  len(events),
			injected: injected,
			dropped:  dropped,
			elapsed:  time.Since(started),
		})
	}
}

// apply feeds one bridge event to the store and recognizer.
func (e *Engine) apply(ev *bridgeEvent) {
	if ev.host {
		e.applyHost(ev)
		return
	}
	switch ev.kind {
	case TouchBegin:
		if !e.store.BeginTouch(ev.id, ev.pos, ev.pressure, ev.ts) {
			if e.debug {
				Logger().Debug("touch dropped, no free slot", "id", ev.id)
			}
			return
		}
		e.view.inertia.stop()
		e.rec.touchBegan(e.store.points[e.store.find(ev.id)], e.store.ActiveCount())
	case TouchMove:
		if e.store.MoveTouch(ev.id, ev.pos, ev.pressure) {
			e.rec.touchMoved(e.store.points[e.store.find(ev.id)], e.store.ActiveCount())
		}
	case TouchEnd, TouchCancel:
		if p, ok := e.store.EndTouch(ev.id); ok {
			e.rec.touchEnded(p, e.store.ActiveCount(), ev.ts, ev.kind == TouchCancel)
		}
	}
}

// applyHost takes a natively recognized gesture as this frame's gesture and
// applies its viewport effect.
func (e *Engine) applyHost(ev *bridgeEvent) {
	prev := e.host
	if !e.hostPending {
		prev = e.rec.cur
	}
	g := GestureState{
		Kind:       ev.gesture,
		Phase:      ev.phase,
		Position:   ev.pos,
		Scale:      ev.scale,
		ScaleRatio: 1,
		Rotation:   ev.rotation,
	}
	switch ev.gesture {
	case GesturePinchZoom:
		if e.cfg.EnablePanZoom {
			applied := e.view.zoomBy(ev.scale, ev.pos, e.cfg.MinZoom, e.cfg.MaxZoom)
			g.ScaleDelta = applied - 1
			g.ScaleRatio = ev.scale
		}
	case GestureRotate:
		e.view.rotation = ev.rotation
	case GesturePan:
		if ev.phase != PhaseBegan && prev.Kind == GesturePan && e.cfg.EnablePanZoom {
			g.Translation = ev.pos.Sub(e.hostCenter)
			e.view.pan(g.Translation)
		}
	}
	if ev.phase == PhaseBegan {
		g.StartPosition = ev.pos
	} else {
		g.StartPosition = prev.StartPosition
	}
	e.hostCenter = ev.pos
	e.host = g
	e.hostPending = true
}

// dispatch fires gesture callbacks and the sink.
func (e *Engine) dispatch() {
	cur, prev := e.rec.cur, e.rec.prev
	if cur.Kind == GestureNone && prev.Kind == GestureNone {
		return
	}
	if e.debug && (cur.Kind != prev.Kind || cur.Phase != prev.Phase) {
		Logger().Debug("gesture",
			"frame", e.frame,
			"kind", cur.Kind.String(),
			"phase", cur.Phase.String(),
			"touches", cur.TouchCount,
		)
	}
	for _, h := range e.handlers {
		h.fn(cur)
	}
	if e.sink != nil {
		e.sink.EmitGesture(GestureEvent{
			Frame:      e.frame,
			Gesture:    cur,
			PanOffset:  e.view.panOffset,
			Zoom:       e.view.zoom,
			Rotation:   e.view.rotation,
			ZoomCenter: e.view.zoomCenter,
		})
	}
}

func (e *Engine) reportOverflow(dropped int) {
	if dropped == 0 {
		e.overflowing = false
		return
	}
	if !e.overflowing {
		Logger().Warn("touch event queue full, dropping events", "dropped", dropped)
		e.overflowing = true
	}
}

// --- Bridge ---

// OnTouchEvent queues a raw touch event for the next Update.
func (e *Engine) OnTouchEvent(kind TouchEventKind, id int, x, y, pressure float64, ts time.Duration) bool {
	e.touchMode.Store(true)
	return e.queue.push(bridgeEvent{
		kind:     kind,
		id:       id,
		pos:      Vec2{x, y},
		pressure: pressure,
		ts:       ts,
	})
}

// OnGestureEvent queues a natively recognized gesture for the next Update.
// A host gesture replaces recognition for the frame it is consumed in.
func (e *Engine) OnGestureEvent(kind GestureKind, phase Phase, x, y, scale, rotation float64) bool {
	e.touchMode.Store(true)
	return e.queue.push(bridgeEvent{
		host:     true,
		gesture:  kind,
		phase:    phase,
		pos:      Vec2{x, y},
		scale:    scale,
		rotation: rotation,
	})
}

// OnPointerInput switches the engine to pointer mode until the next touch.
func (e *Engine) OnPointerInput() {
	e.touchMode.Store(false)
}

// Now returns the engine clock.
func (e *Engine) Now() time.Duration {
	return e.clock()
}

// --- Getters ---

// Gesture returns this frame's gesture.
func (e *Engine) Gesture() GestureState { return e.rec.cur }

// PreviousGesture returns the previous frame's gesture.
func (e *Engine) PreviousGesture() GestureState { return e.rec.prev }

// ActiveTouchCount returns the number of active touches.
func (e *Engine) ActiveTouchCount() int { return e.store.ActiveCount() }

// TouchPoints appends the active touches to buf and returns the result.
func (e *Engine) TouchPoints(buf []TouchPoint) []TouchPoint { return e.store.AppendActive(buf) }

// IsTouchActive reports whether any finger is down.
func (e *Engine) IsTouchActive() bool { return e.store.ActiveCount() > 0 }

// IsTouchMode reports whether the most recent input came from touch rather
// than a mouse or pen.
func (e *Engine) IsTouchMode() bool { return e.touchMode.Load() }

// Viewport returns a copy of the accumulated viewport transform.
func (e *Engine) Viewport() ViewportTransform { return e.view }

// PanOffset returns the accumulated pan offset.
func (e *Engine) PanOffset() Vec2 { return e.view.panOffset }

// Zoom returns the accumulated zoom scale.
func (e *Engine) Zoom() float64 { return e.view.zoom }

// Rotation returns the accumulated rotation in radians.
func (e *Engine) Rotation() float64 { return e.view.rotation }

// ZoomCenter returns the pivot of the most recent zoom change.
func (e *Engine) ZoomCenter() Vec2 { return e.view.zoomCenter }

// Frame returns the number of Update calls since Initialize.
func (e *Engine) Frame() uint64 { return e.frame }

// FrameTime returns the clock value sampled by the latest Update.
func (e *Engine) FrameTime() time.Duration { return e.now }

// Config returns the current configuration.
func (e *Engine) Config() Config { return e.cfg }

// IsPanZoomEnabled reports whether two-finger pan and pinch are recognized.
func (e *Engine) IsPanZoomEnabled() bool { return e.cfg.EnablePanZoom }

// --- Setters ---

// SetConfig replaces the configuration. It takes effect on the next Update.
func (e *Engine) SetConfig(cfg Config) { e.cfg = cfg }

// SetPanZoomEnabled turns two-finger pan and pinch recognition on or off.
func (e *Engine) SetPanZoomEnabled(enabled bool) { e.cfg.EnablePanZoom = enabled }

// SetPanOffset sets the accumulated pan offset.
func (e *Engine) SetPanOffset(offset Vec2) { e.view.panOffset = offset }

// ApplyPanOffset adds delta to the accumulated pan offset.
func (e *Engine) ApplyPanOffset(delta Vec2) { e.view.pan(delta) }

// SetZoom sets the zoom scale, clamped to the configured bounds.
func (e *Engine) SetZoom(zoom float64) {
	e.view.zoom = clamp(zoom, e.cfg.MinZoom, e.cfg.MaxZoom)
}

// SetRotation sets the accumulated rotation in radians.
func (e *Engine) SetRotation(rotation float64) { e.view.rotation = rotation }

// ResetCanvasState restores the viewport to identity and stops inertia.
func (e *Engine) ResetCanvasState() { e.view.reset() }

// Reset discards all touches, gesture history, pending injections, and the
// viewport transform. Configuration, callbacks, and the sink are kept.
func (e *Engine) Reset() {
	e.store.Reset()
	e.rec = newRecognizer()
	e.view.reset()
	e.host = GestureState{}
	e.hostPending = false
	e.inject = injectState{}
}

// SetGestureSink sets the sink that receives gesture events. nil disables it.
func (e *Engine) SetGestureSink(sink GestureSink) { e.sink = sink }

// OnGesture registers fn to be called every frame the current or previous
// gesture kind is not none.
func (e *Engine) OnGesture(fn func(GestureState)) CallbackHandle {
	e.nextHandlerID++
	id := e.nextHandlerID
	e.handlers = append(e.handlers, gestureHandler{id: id, fn: fn})
	return CallbackHandle{id: id, e: e}
}

// SetDebugMode enables debug logging of gesture transitions and frame stats.
func (e *Engine) SetDebugMode(enabled bool) { e.debug = enabled }
