// Package script replays a YAML list of actions through the reducer. It is
// used to reproduce editing sessions outside a browser.
package script

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inamate/ellipse/internal/figure"
	"github.com/inamate/ellipse/internal/store"
)

// Script is a recorded editing session.
//
//	canvas: {width: 700, height: 500}
//	actions:
//	  - {type: MOVE_FIGURE, x: 300, y: 200, save: true}
//	  - {type: UNDO_REDO, action: undo}
type Script struct {
	Canvas  *figure.Canvas `yaml:"canvas,omitempty"`
	Actions []store.Action `yaml:"actions"`
}

// Step is the outcome of one replayed action.
type Step struct {
	Index  int          `json:"index"`
	Action store.Action `json:"action"`
	View   store.View   `json:"view"`
}

// Result is the outcome of a full replay.
type Result struct {
	Canvas  figure.Canvas     `json:"canvas"`
	Steps   []Step            `json:"steps"`
	Final   store.View        `json:"final"`
	History store.HistoryView `json:"history"`
}

// Parse decodes a script and checks every action type.
func Parse(r io.Reader) (*Script, error) {
	var s Script
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("decode script: %w", err)
	}

	for i, a := range s.Actions {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
	}
	return &s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Run replays the actions from the initial state. The script's own canvas
// wins over fallback.
func (s *Script) Run(fallback figure.Canvas) Result {
	canvas := fallback
	if s.Canvas != nil {
		canvas = *s.Canvas
	}
	reducer := store.NewReducer(canvas)

	state := store.Initial()
	steps := make([]Step, 0, len(s.Actions))
	for i, a := range s.Actions {
		state = reducer.Reduce(state, a)
		steps = append(steps, Step{Index: i, Action: a, View: state.View()})
	}

	return Result{
		Canvas:  canvas,
		Steps:   steps,
		Final:   state.View(),
		History: state.HistoryView(),
	}
}
