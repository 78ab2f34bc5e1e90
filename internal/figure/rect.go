package figure

// Rect represents an axis-aligned bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Left returns the minimum x edge.
func (r Rect) Left() float64 { return r.X }

// Top returns the minimum y edge.
func (r Rect) Top() float64 { return r.Y }

// Right returns the maximum x edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the maximum y edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Inside reports whether r lies entirely within outer. Touching edges count as inside.
func (r Rect) Inside(outer Rect) bool {
	return r.Left() >= outer.Left() && r.Top() >= outer.Top() &&
		r.Right() <= outer.Right() && r.Bottom() <= outer.Bottom()
}
