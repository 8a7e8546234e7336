package gesture

import (
	"encoding/json"
	"fmt"
	"time"
)

// scriptStep represents a single action in a gesture script.
type scriptStep struct {
	Action    string  `json:"action"`
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	FromX     float64 `json:"fromX,omitempty"`
	FromY     float64 `json:"fromY,omitempty"`
	ToX       float64 `json:"toX,omitempty"`
	ToY       float64 `json:"toY,omitempty"`
	FromDist  float64 `json:"fromDist,omitempty"`
	ToDist    float64 `json:"toDist,omitempty"`
	Radius    float64 `json:"radius,omitempty"`
	FromAngle float64 `json:"fromAngle,omitempty"`
	ToAngle   float64 `json:"toAngle,omitempty"`
	Frames    int     `json:"frames,omitempty"`
	Ms        int     `json:"ms,omitempty"`
}

// script is the top-level JSON structure for a gesture script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"tap": true, "doubletap": true, "longpress": true, "drag": true,
	"pan": true, "pinch": true, "rotate": true, "wait": true, "reset": true,
}

// ScriptRunner sequences injected gestures across frames for automated
// testing and demos. Attach to an Engine via SetScriptRunner.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON gesture script and returns a ScriptRunner ready
// to be attached to an Engine via SetScriptRunner.
//
//	{"steps": [
//	  {"action": "tap", "x": 100, "y": 100},
//	  {"action": "wait", "frames": 10},
//	  {"action": "pinch", "x": 200, "y": 200, "fromDist": 100, "toDist": 200, "frames": 12},
//	  {"action": "longpress", "x": 50, "y": 50, "ms": 700}
//	]}
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for i, st := range s.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// SetScriptRunner attaches a ScriptRunner to the engine. The runner's step
// method is called from Engine.Update before input is processed each frame.
func (e *Engine) SetScriptRunner(runner *ScriptRunner) {
	e.runner = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Engine.Update.
func (r *ScriptRunner) step(e *Engine) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if e.InjectPending() {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "tap":
		e.InjectTap(st.X, st.Y)
	case "doubletap":
		e.InjectDoubleTap(st.X, st.Y)
	case "longpress":
		hold := time.Duration(st.Ms) * time.Millisecond
		if hold <= 0 {
			hold = e.cfg.LongPressDuration.D() + 100*time.Millisecond
		}
		e.InjectLongPress(st.X, st.Y, hold)
	case "drag":
		e.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "pan":
		e.InjectPan(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "pinch":
		e.InjectPinch(st.X, st.Y, st.FromDist, st.ToDist, st.Frames)
	case "rotate":
		e.InjectRotate(st.X, st.Y, st.Radius, st.FromAngle, st.ToAngle, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "reset":
		e.ResetCanvasState()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !e.InjectPending() {
		r.done = true
	}
}
