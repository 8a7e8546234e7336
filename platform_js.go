//go:build js && wasm

package gesture

import (
	"errors"
	"math"
	"syscall/js"
)

// DefaultPlatform returns the platform for the current build target: DOM
// touch listeners on the first canvas of the page.
func DefaultPlatform() Platform {
	return NewBrowserPlatform("")
}

// BrowserPlatform listens for DOM touch events on a canvas element. Events
// arrive on the browser event loop and are handed to the engine through its
// bridge queue.
type BrowserPlatform struct {
	// HostGestures forwards Safari's gesturestart/gesturechange/gestureend
	// events as host pinch and rotate gestures. Leave it off unless raw
	// touch events are unavailable, or zoom is applied twice.
	HostGestures bool
	// PositionSmoothing blends each touchmove position into the previous
	// one to reduce jitter: 1 passes positions through unchanged.
	PositionSmoothing float64

	canvasID   string
	canvas     js.Value
	bridge     Bridge
	cleanfuncs []func()
	lastScale  float64
	positions  map[int]Vec2
}

// NewBrowserPlatform creates a platform bound to the canvas with the given
// element id. An empty id selects the first canvas on the page.
func NewBrowserPlatform(canvasID string) *BrowserPlatform {
	return &BrowserPlatform{
		PositionSmoothing: 1,
		canvasID:          canvasID,
		positions:         make(map[int]Vec2, MaxTouchPoints),
	}
}

// Name returns "browser".
func (p *BrowserPlatform) Name() string { return "browser" }

// BeginPlatform implements Platform.
func (p *BrowserPlatform) BeginPlatform(b Bridge) error {
	doc := js.Global().Get("document")
	if p.canvasID != "" {
		p.canvas = doc.Call("getElementById", p.canvasID)
	} else {
		p.canvas = doc.Call("querySelector", "canvas")
	}
	if p.canvas.IsNull() || p.canvas.IsUndefined() {
		return errors.New("browser platform: canvas not found")
	}
	win := js.Global().Get("window")
	nav := js.Global().Get("navigator")
	if win.Get("ontouchstart").IsUndefined() && nav.Get("maxTouchPoints").Int() == 0 {
		return errors.New("browser platform: touch events not supported")
	}
	p.bridge = b

	p.addTouchListener("touchstart", TouchBegin)
	p.addTouchListener("touchmove", TouchMove)
	p.addTouchListener("touchend", TouchEnd)
	p.addTouchListener("touchcancel", TouchCancel)
	for _, ev := range []string{"mousedown", "mousemove", "wheel"} {
		p.addEventListener(ev, func(this js.Value, args []js.Value) any {
			b.OnPointerInput()
			return nil
		})
	}
	if p.HostGestures {
		p.addGestureListener("gesturestart", PhaseBegan)
		p.addGestureListener("gesturechange", PhaseChanged)
		p.addGestureListener("gestureend", PhaseEnded)
	}
	return nil
}

// EndPlatform implements Platform. It removes every listener and releases
// the Go callbacks.
func (p *BrowserPlatform) EndPlatform() {
	for _, f := range p.cleanfuncs {
		f()
	}
	p.cleanfuncs = nil
	p.bridge = nil
	clear(p.positions)
}

func (p *BrowserPlatform) addTouchListener(event string, kind TouchEventKind) {
	p.addEventListener(event, func(this js.Value, args []js.Value) any {
		e := args[0]
		e.Call("preventDefault")
		now := p.bridge.Now()
		rect := p.canvas.Call("getBoundingClientRect")
		left, top := rect.Get("left").Float(), rect.Get("top").Float()
		changed := e.Get("changedTouches")
		for i := 0; i < changed.Length(); i++ {
			t := changed.Index(i)
			pressure := 1.0
			if f := t.Get("force"); f.Type() == js.TypeNumber && f.Float() > 0 {
				pressure = f.Float()
			}
			id := t.Get("identifier").Int()
			pos := p.smooth(kind, id, Vec2{t.Get("clientX").Float() - left, t.Get("clientY").Float() - top})
			p.bridge.OnTouchEvent(kind, id, pos.X, pos.Y, pressure, now)
		}
		return nil
	})
}

// smooth applies PositionSmoothing to move events and tracks positions per
// touch identifier.
func (p *BrowserPlatform) smooth(kind TouchEventKind, id int, pos Vec2) Vec2 {
	switch kind {
	case TouchBegin:
		p.positions[id] = pos
	case TouchMove:
		if last, ok := p.positions[id]; ok && p.PositionSmoothing > 0 && p.PositionSmoothing < 1 {
			pos = last.Add(pos.Sub(last).Scale(p.PositionSmoothing))
		}
		p.positions[id] = pos
	case TouchEnd, TouchCancel:
		if last, ok := p.positions[id]; ok {
			pos = last
		}
		delete(p.positions, id)
	}
	return pos
}

func (p *BrowserPlatform) addGestureListener(event string, phase Phase) {
	p.addEventListener(event, func(this js.Value, args []js.Value) any {
		e := args[0]
		e.Call("preventDefault")
		rect := p.canvas.Call("getBoundingClientRect")
		x := e.Get("clientX").Float() - rect.Get("left").Float()
		y := e.Get("clientY").Float() - rect.Get("top").Float()
		scale := e.Get("scale").Float()
		if phase == PhaseBegan || p.lastScale == 0 {
			p.lastScale = 1
		}
		ratio := scale / p.lastScale
		p.lastScale = scale
		rotation := e.Get("rotation").Float() * math.Pi / 180
		p.bridge.OnGestureEvent(GesturePinchZoom, phase, x, y, ratio, rotation)
		return nil
	})
}

func (p *BrowserPlatform) addEventListener(event string, f func(this js.Value, args []js.Value) any) {
	jsf := js.FuncOf(f)
	opts := js.Global().Get("Object").New()
	opts.Set("passive", false)
	p.canvas.Call("addEventListener", event, jsf, opts)
	canvas := p.canvas
	p.cleanfuncs = append(p.cleanfuncs, func() {
		canvas.Call("removeEventListener", event, jsf, opts)
		jsf.Release()
	})
}
