package gesture

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// frameStats holds per-frame ingestion metrics.
// Only populated when Engine.debug is true.
type frameStats struct {
	drained  int
	injected int
	dropped  int
	elapsed  time.Duration
}

// debugLog records frame stats at debug level.
func (e *Engine) debugLog(stats frameStats) {
	if !e.debug {
		return
	}
	Logger().Debug("frame",
		"frame", e.frame,
		"drained", stats.drained,
		"injected", stats.injected,
		"dropped", stats.dropped,
		"touches", e.store.ActiveCount(),
		"elapsed", stats.elapsed,
	)
}

const debugMarkerSize = 24

var debugMarker *ebiten.Image

// DrawDebugOverlay draws a marker on every active touch and a status line
// with the current gesture and viewport.
func DrawDebugOverlay(screen *ebiten.Image, e *Engine) {
	if debugMarker == nil {
		debugMarker = ebiten.NewImage(debugMarkerSize, debugMarkerSize)
		debugMarker.Fill(color.RGBA{255, 255, 255, 255})
	}
	var buf [MaxTouchPoints]TouchPoint
	for _, p := range e.TouchPoints(buf[:0]) {
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(p.Position.X-debugMarkerSize/2, p.Position.Y-debugMarkerSize/2)
		op.ColorScale.ScaleWithColor(color.RGBA{64, 160, 255, 160})
		screen.DrawImage(debugMarker, &op)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", p.ID),
			int(p.Position.X)+debugMarkerSize/2, int(p.Position.Y)-debugMarkerSize/2)
	}

	g := e.Gesture()
	pan := e.PanOffset()
	mode := "pointer"
	if e.IsTouchMode() {
		mode = "touch"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %s  touches: %d  zoom: %.2f  pan: (%.0f, %.0f)  %s",
		g.Kind, g.Phase, e.ActiveTouchCount(), e.Zoom(), pan.X, pan.Y, mode), 4, 4)
}
