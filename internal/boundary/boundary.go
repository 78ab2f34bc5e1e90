// Package boundary decides whether a figure fits on the canvas and how to
// pull it back inside when boundary checking gets switched on.
package boundary

import "github.com/inamate/ellipse/internal/figure"

// Overlaps reports whether centering f at (x, y) would push any part of its
// bounding box past a canvas edge.
func Overlaps(f figure.Figure, x, y float64, canvas figure.Canvas) bool {
	return !f.BoundsAt(x, y).Inside(canvas.Rect())
}

// ClampOnEnable snaps an out-of-bounds figure back to the nearest edge, each
// axis independently. The left/top edge wins when the figure is larger than
// the canvas on that axis.
func ClampOnEnable(f figure.Figure, canvas figure.Canvas) figure.Figure {
	cx := clampAxis(f.CX, f.HalfWidth(), canvas.Width)
	cy := clampAxis(f.CY, f.HalfHeight(), canvas.Height)
	return f.WithCenter(cx, cy)
}

func clampAxis(center, half, limit float64) float64 {
	switch {
	case center-half < 0:
		return half
	case center+half > limit:
		return limit - half
	default:
		return center
	}
}
