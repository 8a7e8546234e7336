package gesture

import "math"

// ZoomToFitResult is the scale and scroll offset that fit content inside a
// canvas.
type ZoomToFitResult struct {
	Scale  float64
	Scroll Vec2
}

// ComputeZoomToFit returns the largest scale at which content fits inside
// canvas with padding on every side, and the scroll offset that centers it.
// Degenerate sizes yield scale 1 and no scroll.
func ComputeZoomToFit(content, canvas Vec2, padding float64) ZoomToFitResult {
	res := ZoomToFitResult{Scale: 1}
	if content.X <= 0 || content.Y <= 0 {
		return res
	}
	availX := canvas.X - padding*2
	availY := canvas.Y - padding*2
	if availX <= 0 || availY <= 0 {
		return res
	}
	res.Scale = math.Min(availX/content.X, availY/content.Y)
	res.Scroll = Vec2{
		X: (canvas.X - content.X*res.Scale) / 2,
		Y: (canvas.Y - content.Y*res.Scale) / 2,
	}
	return res
}

// ClampScroll clamps scroll so scaled content of size content never leaves a
// gap at the top-left or bottom-right of canvas. Scroll is zero or negative:
// at 0 the content's top-left is at the canvas's top-left.
func ClampScroll(scroll, content, canvas Vec2) Vec2 {
	maxX := math.Max(0, content.X-canvas.X)
	maxY := math.Max(0, content.Y-canvas.Y)
	return Vec2{
		X: clamp(scroll.X, -maxX, 0),
		Y: clamp(scroll.Y, -maxY, 0),
	}
}
