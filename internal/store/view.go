package store

import "github.com/inamate/ellipse/internal/figure"

// View is what a UI needs to render the editor: the figure and its bounding
// box, the boundary flag, and enough of the history to enable or disable undo
// and redo.
type View struct {
	Figure        figure.Figure `json:"figure"`
	Bounds        figure.Rect   `json:"bounds"`
	HistoryLength int           `json:"historyLength"`
	Cursor        *int          `json:"cursor"`
	CanUndo       bool          `json:"canUndo"`
	CanRedo       bool          `json:"canRedo"`
	Boundaries    bool          `json:"boundaries"`
}

// HistoryView lists the committed figures with the cursor.
type HistoryView struct {
	Entries []figure.Figure `json:"entries"`
	Cursor  *int            `json:"cursor"`
}

// View projects s for rendering.
func (s State) View() View {
	v := View{
		Figure:        s.Figure,
		Bounds:        s.Figure.Bounds(),
		HistoryLength: s.History.Len(),
		CanUndo:       s.History.CanUndo(),
		CanRedo:       s.History.CanRedo(),
		Boundaries:    s.Boundaries,
	}
	if i, ok := s.History.Cursor(); ok {
		v.Cursor = &i
	}
	return v
}

// HistoryView projects the history log of s.
func (s State) HistoryView() HistoryView {
	hv := HistoryView{Entries: s.History.Entries()}
	if i, ok := s.History.Cursor(); ok {
		hv.Cursor = &i
	}
	return hv
}
