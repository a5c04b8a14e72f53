package arbor

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Source string  `json:"source,omitempty"`
	Button string  `json:"button,omitempty"`
	ID     int     `json:"id,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Delta  float64 `json:"delta,omitempty"`
	Frames int     `json:"frames,omitempty"`

	src    inputSource
	button MouseButton
}

// inputScript is the top-level JSON structure for an input script.
type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

// InputScript sequences injected input across frames for automated testing
// and demos. Attach to a Scene via SetInputScript.
type InputScript struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

var buttonNames = map[string]MouseButton{
	"":        MouseButtonLeft,
	"left":    MouseButtonLeft,
	"right":   MouseButtonRight,
	"middle":  MouseButtonMiddle,
	"back":    MouseButtonBack,
	"forward": MouseButtonForward,
}

var sourceNames = map[string]inputSource{
	"":        sourceMouse,
	"mouse":   sourceMouse,
	"pointer": sourcePointer,
	"touch":   sourceTouch,
}

// LoadInputScript parses a JSON input script of the form
//
//	{"steps": [{"action": "click", "x": 10, "y": 20}, ...]}
//
// Actions are press, move, release, click, drag, wheel and wait. The source
// field selects mouse (default), pointer or touch; touch steps take an id.
func LoadInputScript(jsonData []byte) (*InputScript, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		switch st.Action {
		case "press", "move", "release", "click", "drag", "wait":
		case "wheel":
			if st.Source != "" && st.Source != "mouse" {
				return nil, fmt.Errorf("parse input script: step %d: wheel requires mouse source", i)
			}
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
		src, ok := sourceNames[st.Source]
		if !ok {
			return nil, fmt.Errorf("parse input script: step %d: unknown source %q", i, st.Source)
		}
		b, ok := buttonNames[st.Button]
		if !ok {
			return nil, fmt.Errorf("parse input script: step %d: unknown button %q", i, st.Button)
		}
		st.src, st.button = src, b
	}
	return &InputScript{steps: script.Steps}, nil
}

// SetInputScript attaches an InputScript to the scene. The script advances
// from Scene.Update, before queued input is processed.
func (s *Scene) SetInputScript(script *InputScript) {
	s.script = script
}

// Done reports whether all steps in the script have been executed and their
// input consumed.
func (r *InputScript) Done() bool {
	return r.done
}

// step advances the script by one frame. Called from Scene.Update.
func (r *InputScript) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
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

	ev := syntheticEvent{source: st.src, x: st.X, y: st.Y, button: st.button, id: st.ID}
	switch st.Action {
	case "press":
		ev.action = injectPress
		s.inject(ev)
	case "move":
		ev.action = injectMove
		s.inject(ev)
	case "release":
		ev.action = injectRelease
		s.inject(ev)
	case "click":
		ev.action = injectPress
		s.inject(ev)
		ev.action = injectRelease
		s.inject(ev)
	case "drag":
		s.injectDrag(st.src, st.button, st.ID, st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wheel":
		ev.action = injectWheel
		ev.delta = st.Delta
		s.inject(ev)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
