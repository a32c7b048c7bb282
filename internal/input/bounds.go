// Package input is the event-ingestion boundary between the hosting view and
// the drawing surface. It turns screen-space pointer events into
// surface-local coordinates and coerces raw settings input.
package input

import "MyLocalSketch/internal/state"

// Rect is the surface's bounding rectangle in screen coordinates.
type Rect struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// Contains reports whether the screen point lies on the surface.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Local converts a screen point to surface-local coordinates.
func (r Rect) Local(screenX, screenY float32) state.Point {
	return state.Point{
		X: float64(screenX - r.X),
		Y: float64(screenY - r.Y),
	}
}
