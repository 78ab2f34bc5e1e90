package figure

// Figure is an ellipse described by its center and bounding-box size.
// Values are never mutated in place; the With* helpers return copies.
type Figure struct {
	CX     float64 `json:"cx"`
	CY     float64 `json:"cy"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Canvas is the drawable area, with its origin at (0, 0).
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

const (
	DefaultCanvasWidth  = 700
	DefaultCanvasHeight = 500
)

// DefaultCanvas is the 700x500 editing surface.
var DefaultCanvas = Canvas{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight}

// Initial returns the figure every new editor starts with.
func Initial() Figure {
	return Figure{CX: 100, CY: 100, Width: 200, Height: 100}
}

// Equal reports whether two figures have identical fields.
func (f Figure) Equal(other Figure) bool {
	return f == other
}

// HalfWidth returns the horizontal radius.
func (f Figure) HalfWidth() float64 {
	return f.Width / 2
}

// HalfHeight returns the vertical radius.
func (f Figure) HalfHeight() float64 {
	return f.Height / 2
}

// WithCenter returns a copy centered at (cx, cy).
func (f Figure) WithCenter(cx, cy float64) Figure {
	f.CX = cx
	f.CY = cy
	return f
}

// WithWidth returns a copy with the given width.
func (f Figure) WithWidth(w float64) Figure {
	f.Width = w
	return f
}

// WithHeight returns a copy with the given height.
func (f Figure) WithHeight(h float64) Figure {
	f.Height = h
	return f
}

// Bounds returns the figure's bounding box.
func (f Figure) Bounds() Rect {
	return f.BoundsAt(f.CX, f.CY)
}

// BoundsAt returns the bounding box the figure would have if centered at (x, y).
func (f Figure) BoundsAt(x, y float64) Rect {
	return Rect{
		X:      x - f.HalfWidth(),
		Y:      y - f.HalfHeight(),
		Width:  f.Width,
		Height: f.Height,
	}
}

// Rect returns the canvas as a rect anchored at the origin.
func (c Canvas) Rect() Rect {
	return Rect{Width: c.Width, Height: c.Height}
}
