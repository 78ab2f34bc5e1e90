package store

import (
	"github.com/inamate/ellipse/internal/figure"
	"github.com/inamate/ellipse/internal/history"
)

// State is the whole editor state. It is replaced, never modified, on every
// transition.
type State struct {
	Figure     figure.Figure
	History    history.Log
	Boundaries bool
}

// Initial returns the state a new editor starts in.
func Initial() State {
	f := figure.Initial()
	return State{
		Figure:  f,
		History: history.New(f),
	}
}

// Commit replaces the current figure and, when save is set, records it in history.
func Commit(s State, f figure.Figure, save bool) State {
	next, _ := commit(s, f, save)
	return next
}

func commit(s State, f figure.Figure, save bool) (State, *history.Outcome) {
	s.Figure = f
	if !save {
		return s, nil
	}
	log, outcome := s.History.Commit(f)
	s.History = log
	return s, &outcome
}

// Undo shows the previous history entry. It is a no-op at the oldest entry.
func Undo(s State) State {
	f, log, ok := s.History.Undo()
	if !ok {
		return s
	}
	s.Figure = f
	s.History = log
	return s
}

// Redo shows the next history entry after an undo. It is a no-op without a
// prior undo or at the newest entry.
func Redo(s State) State {
	f, log, ok := s.History.Redo()
	if !ok {
		return s
	}
	s.Figure = f
	s.History = log
	return s
}
