// Package geometry applies move and resize requests to a figure.
//
// Requests that cannot be parsed, or moves rejected by the boundary policy,
// leave the figure as it was. Nothing here returns an error.
package geometry

import (
	"github.com/inamate/ellipse/internal/boundary"
	"github.com/inamate/ellipse/internal/figure"
)

// Dimension selects which side of the bounding box a resize changes.
type Dimension int

const (
	DimensionWidth Dimension = iota
	DimensionHeight
)

func (d Dimension) String() string {
	switch d {
	case DimensionWidth:
		return "width"
	case DimensionHeight:
		return "height"
	default:
		return "unknown"
	}
}

// ApplyMove recenters f at (x, y).
//
// The payload is validated as integers, and with boundaries enabled the
// integer position must keep the figure on the canvas. The stored center is
// the payload's own value, so a fractional drag position survives as is.
func ApplyMove(f figure.Figure, x, y Value, boundariesEnabled bool, canvas figure.Canvas) figure.Figure {
	ix, okX := x.ParseInt()
	iy, okY := y.ParseInt()
	if !okX || !okY {
		return f
	}

	if boundariesEnabled && boundary.Overlaps(f, ix, iy, canvas) {
		return f
	}

	return f.WithCenter(rawOr(x, ix), rawOr(y, iy))
}

// ApplyResize sets the width or height of f to the integer value of v.
// Resizes are never boundary checked.
func ApplyResize(f figure.Figure, dim Dimension, v Value) figure.Figure {
	n, ok := v.ParseInt()
	if !ok {
		return f
	}

	switch dim {
	case DimensionWidth:
		return f.WithWidth(n)
	case DimensionHeight:
		return f.WithHeight(n)
	default:
		return f
	}
}

// rawOr returns the payload's full numeric value, or parsed when the payload
// only has a numeric prefix ("120px").
func rawOr(v Value, parsed float64) float64 {
	if f, ok := v.ParseFloat(); ok {
		return f
	}
	return parsed
}
