package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/inamate/ellipse/internal/geometry"
)

var (
	// ErrUnknownAction is returned for an action type outside the vocabulary.
	ErrUnknownAction = errors.New("unknown action type")
	// ErrInvalidAction is returned when an action cannot be decoded.
	ErrInvalidAction = errors.New("invalid action")
)

// ActionType names one of the editor's actions.
type ActionType string

const (
	ActionMoveFigure       ActionType = "MOVE_FIGURE"
	ActionChangeWidth      ActionType = "CHANGE_WIDTH"
	ActionChangeHeight     ActionType = "CHANGE_HEIGHT"
	ActionToggleBoundaries ActionType = "TOGGLE_BOUNDARIES"
	ActionUndoRedo         ActionType = "UNDO_REDO"
)

const (
	DirectionUndo = "undo"
	DirectionRedo = "redo"
)

// Action is a request to change the editor state. Only the fields that
// belong to Type are read.
type Action struct {
	ID   string     `json:"id,omitempty" yaml:"id,omitempty"`
	Type ActionType `json:"type" yaml:"type"`

	// For MOVE_FIGURE
	X    geometry.Value `json:"x,omitempty" yaml:"x,omitempty"`
	Y    geometry.Value `json:"y,omitempty" yaml:"y,omitempty"`
	Save bool           `json:"save,omitempty" yaml:"save,omitempty"`

	// For CHANGE_WIDTH / CHANGE_HEIGHT
	Width  geometry.Value `json:"width,omitempty" yaml:"width,omitempty"`
	Height geometry.Value `json:"height,omitempty" yaml:"height,omitempty"`

	// For TOGGLE_BOUNDARIES
	Toggle bool `json:"toggle,omitempty" yaml:"toggle,omitempty"`

	// For UNDO_REDO: "undo" or "redo"
	Direction string `json:"action,omitempty" yaml:"action,omitempty"`
}

// MoveFigure moves the figure. save marks the end of a drag and commits the
// position to history; intermediate drag positions pass save=false.
func MoveFigure(x, y geometry.Value, save bool) Action {
	return Action{Type: ActionMoveFigure, X: x, Y: y, Save: save}
}

// ChangeWidth sets the figure's width. It always commits.
func ChangeWidth(width geometry.Value) Action {
	return Action{Type: ActionChangeWidth, Width: width}
}

// ChangeHeight sets the figure's height. It always commits.
func ChangeHeight(height geometry.Value) Action {
	return Action{Type: ActionChangeHeight, Height: height}
}

// ToggleBoundaries turns the canvas boundary check on or off. Turning it on
// pulls the figure back onto the canvas.
func ToggleBoundaries(toggle bool) Action {
	return Action{Type: ActionToggleBoundaries, Toggle: toggle}
}

// UndoRedo steps through history; direction is DirectionUndo or DirectionRedo.
func UndoRedo(direction string) Action {
	return Action{Type: ActionUndoRedo, Direction: direction}
}

// Validate checks that the action type is one the reducer handles.
func (a Action) Validate() error {
	switch a.Type {
	case ActionMoveFigure, ActionChangeWidth, ActionChangeHeight, ActionToggleBoundaries, ActionUndoRedo:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
}

// DecodeAction parses a JSON action and validates its type.
func DecodeAction(data []byte) (Action, error) {
	var a Action
	if err := json.Unmarshal(data, &a); err != nil {
		return Action{}, fmt.Errorf("%w: %w", ErrInvalidAction, err)
	}
	if err := a.Validate(); err != nil {
		return Action{}, err
	}
	return a, nil
}
