// Package gesture recognizes touch gestures and drives a 2D pan/zoom
// viewport for [Ebitengine] games and tools.
//
// Raw touch samples go in; out come disambiguated gestures (tap, double-tap,
// long-press, pan, pinch-zoom, rotate) and an accumulated viewport transform
// with momentum. A [Canvas] turns that into a per-canvas scroll offset and
// zoom scale with smoothing, zoom-to-point, and clamping.
//
// # Quick start
//
// Create an [Engine] with a platform, initialize it once, and call
// [Engine.Update] at the start of every frame:
//
//	engine := gesture.NewEngine(gesture.DefaultConfig(), gesture.DefaultPlatform())
//	engine.Initialize()
//	defer engine.Shutdown()
//
//	canvas := gesture.NewCanvas("map", engine, gesture.DefaultCanvasConfig())
//
//	func (g *Game) Update() error {
//		engine.Update()
//		canvas.ProcessForCanvas(gesture.Vec2{X: 0, Y: 0}, gesture.Vec2{X: 640, Y: 480}, true)
//		if canvas.WasDoubleTapped() {
//			// ...
//		}
//		return nil
//	}
//
// # Gestures
//
// The engine classifies the active touches once per frame. With one finger
// it waits for a tap (reported on release) or a long-press (reported while
// held). With two fingers it measures the change in distance, angle, and
// center since the previous frame; pinch wins over rotate, which wins over
// pan. Each gesture reports [PhaseBegan], then [PhaseChanged], and finally a
// single [PhaseEnded] or [PhaseCancelled] frame.
//
// Read the result with [Engine.Gesture], or register a callback with
// [Engine.OnGesture]. A [GestureSink] receives the same events; the ecs
// submodule publishes them into a [Donburi] world.
//
// # Platforms
//
// A [Platform] feeds raw events through the [Bridge] methods on Engine.
// [EbitenPlatform] polls ebiten's touch state; on js/wasm builds
// BrowserPlatform listens for DOM touch events; [HandleMobileTouch] adapts
// golang.org/x/mobile events. Bridge methods may be called from any
// goroutine; events are queued and consumed by the next Update.
//
// # Configuration
//
// [Config] holds the recognition thresholds and [CanvasConfig] the canvas
// behavior. Both load from TOML with [LoadConfigFile]:
//
//	[touch]
//	tap_max_duration = "300ms"
//	enable_rotation = true
//
//	[canvas]
//	double_tap_zoom = 3.0
//
// # Testing
//
// The Inject methods ([Engine.InjectTap], [Engine.InjectPinch], ...) queue
// synthetic touches consumed one frame at a time, and [LoadScript] runs a
// JSON sequence of them. Replace the clock with [Engine.SetClock] for
// deterministic timing.
//
// # Logging
//
// The package logs through [log/slog] and is silent by default; see
// [SetLogger].
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package gesture
