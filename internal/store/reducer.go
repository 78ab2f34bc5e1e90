package store

import (
	"github.com/inamate/ellipse/internal/boundary"
	"github.com/inamate/ellipse/internal/figure"
	"github.com/inamate/ellipse/internal/geometry"
	"github.com/inamate/ellipse/internal/history"
)

// Reducer turns (State, Action) into the next State for a given canvas.
type Reducer struct {
	Canvas figure.Canvas
}

// NewReducer returns a reducer bound to canvas.
func NewReducer(canvas figure.Canvas) Reducer {
	return Reducer{Canvas: canvas}
}

// Reduce applies a to s on the default 700x500 canvas.
func Reduce(s State, a Action) State {
	return NewReducer(figure.DefaultCanvas).Reduce(s, a)
}

// Effect reports what a transition did to history.
type Effect struct {
	// Commit is set when the action asked for the figure to be saved.
	Commit *history.Outcome
}

// Reduce applies a to s. Unknown actions return s unchanged.
func (r Reducer) Reduce(s State, a Action) State {
	next, _ := r.Apply(s, a)
	return next
}

// Apply is Reduce that also reports the history effect.
func (r Reducer) Apply(s State, a Action) (State, Effect) {
	switch a.Type {
	case ActionMoveFigure:
		f := geometry.ApplyMove(s.Figure, a.X, a.Y, s.Boundaries, r.Canvas)
		next, outcome := commit(s, f, a.Save)
		return next, Effect{Commit: outcome}

	case ActionChangeWidth:
		f := geometry.ApplyResize(s.Figure, geometry.DimensionWidth, a.Width)
		next, outcome := commit(s, f, true)
		return next, Effect{Commit: outcome}

	case ActionChangeHeight:
		f := geometry.ApplyResize(s.Figure, geometry.DimensionHeight, a.Height)
		next, outcome := commit(s, f, true)
		return next, Effect{Commit: outcome}

	case ActionToggleBoundaries:
		return r.toggleBoundaries(s, a.Toggle), Effect{}

	case ActionUndoRedo:
		switch a.Direction {
		case DirectionUndo:
			return Undo(s), Effect{}
		case DirectionRedo:
			return Redo(s), Effect{}
		}
		return s, Effect{}

	default:
		return s, Effect{}
	}
}

// toggleBoundaries sets the flag and, when turning it on, pulls the figure
// back onto the canvas. The clamped figure is not committed.
func (r Reducer) toggleBoundaries(s State, on bool) State {
	s.Boundaries = on
	if on {
		s.Figure = boundary.ClampOnEnable(s.Figure, r.Canvas)
	}
	return s
}
