package curtain

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action   string `json:"action"`
	Scene    string `json:"scene,omitempty"`
	Mode     string `json:"mode,omitempty"`
	Manual   bool   `json:"manual,omitempty"`
	KeepUp   bool   `json:"keepOverlay,omitempty"`
	Animated bool   `json:"animated,omitempty"`
	State    string `json:"state,omitempty"`
	Frames   int    `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner replays a scripted sequence of requests against an
// Orchestrator, one action per frame, for automated testing of overlays and
// loaders.
//
// Actions: "load" (scene, mode "replace"|"additive", manual, keepOverlay),
// "activate", "hide" (animated), "wait" (frames) and "until" (state, frames as
// an upper bound).
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	until     *testStep
	done      bool
	err       error
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "load":
			if st.Scene == "" {
				return nil, fmt.Errorf("parse test script: step %d: load without scene", i)
			}
			if _, err := parseLoadMode(st.Mode); err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
		case "until":
			if _, ok := parseState(st.State); !ok {
				return nil, fmt.Errorf("parse test script: step %d: unknown state %q", i, st.State)
			}
		case "activate", "hide", "wait":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps have run or the runner failed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Err returns the error that stopped the runner, if any.
func (r *TestRunner) Err() error {
	return r.err
}

// Step runs the next action, if any is due, then advances o by dt. Call it
// once per frame in place of o.Advance.
func (r *TestRunner) Step(o *Orchestrator, dt float32) error {
	if !r.done {
		if err := r.step(o); err != nil {
			r.err = err
			r.done = true
			return err
		}
	}
	if err := o.Advance(dt); err != nil {
		return err
	}
	if r.until != nil {
		if want, _ := parseState(r.until.State); o.State() == want {
			r.until = nil
			r.waitCount = 0
		}
	}
	if !r.done && r.until == nil && r.waitCount == 0 && r.cursor >= len(r.steps) {
		r.done = true
	}
	return nil
}

func (r *TestRunner) step(o *Orchestrator) error {
	if r.until != nil {
		if r.waitCount == 0 {
			return fmt.Errorf("test script: state %q not reached", r.until.State)
		}
		r.waitCount--
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "load":
		mode, _ := parseLoadMode(st.Mode)
		var opts []RequestOption
		if st.Manual {
			opts = append(opts, WithManualActivation())
		}
		if st.KeepUp {
			opts = append(opts, WithManualHide())
		}
		return o.LoadScene(st.Scene, mode, opts...)
	case "activate":
		return o.ActivateScene()
	case "hide":
		o.HideUI(st.Animated, nil)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "until":
		frames := st.Frames
		if frames <= 0 {
			frames = 600
		}
		r.until = &st
		r.waitCount = frames
	}
	return nil
}

func parseLoadMode(s string) (LoadMode, error) {
	switch s {
	case "", "replace":
		return LoadReplace, nil
	case "additive":
		return LoadAdditive, nil
	default:
		return 0, fmt.Errorf("unknown load mode %q", s)
	}
}

func parseState(s string) (State, bool) {
	for st := StateIdle; st <= StateFadingOut; st++ {
		if st.String() == s {
			return st, true
		}
	}
	return 0, false
}
