package curtain

import "fmt"

// ScriptedLoader is a LoadProvider that replays canned progress sequences.
// It drives tests and demos without real content: each handle reports one
// queued value per Progress call, one per poll tick.
type ScriptedLoader struct {
	// Steps is the default progress sequence for scenes without their own.
	Steps []float64

	scenes map[string][]float64
	errs   map[string]error
	begun  []string
	last   *ScriptedHandle
}

// NewScriptedLoader returns a loader whose handles replay steps.
func NewScriptedLoader(steps ...float64) *ScriptedLoader {
	return &ScriptedLoader{Steps: steps}
}

// InjectProgress sets the progress sequence used for the named scene.
func (l *ScriptedLoader) InjectProgress(name string, steps ...float64) {
	if l.scenes == nil {
		l.scenes = make(map[string][]float64)
	}
	l.scenes[name] = steps
}

// InjectError makes BeginLoad fail for the named scene.
func (l *ScriptedLoader) InjectError(name string, err error) {
	if l.errs == nil {
		l.errs = make(map[string]error)
	}
	l.errs[name] = err
}

// BeginLoad returns a fresh handle for name, with the gate open.
func (l *ScriptedLoader) BeginLoad(name string, mode LoadMode) (LoadHandle, error) {
	if err, ok := l.errs[name]; ok {
		return nil, fmt.Errorf("begin load %q: %w", name, err)
	}
	steps, ok := l.scenes[name]
	if !ok {
		steps = l.Steps
	}
	l.begun = append(l.begun, name)
	h := &ScriptedHandle{Name: name, Mode: mode, steps: steps, allow: true}
	l.last = h
	return h, nil
}

// Begun returns the names passed to BeginLoad, oldest first.
func (l *ScriptedLoader) Begun() []string {
	return l.begun
}

// Last returns the most recently created handle, or nil.
func (l *ScriptedLoader) Last() *ScriptedHandle {
	return l.last
}

// ScriptedHandle replays a progress sequence. The last value sticks once the
// sequence is exhausted. With the gate open after the sequence, progress
// reports 1 and the handle is done.
type ScriptedHandle struct {
	Name string
	Mode LoadMode

	steps   []float64
	cursor  int
	current float64
	allow   bool
	err     error
	reads   int
}

// Progress pops the next queued value.
func (h *ScriptedHandle) Progress() float64 {
	h.reads++
	if h.cursor < len(h.steps) {
		if p := h.steps[h.cursor]; p > h.current {
			h.current = p
		}
		h.cursor++
		return h.current
	}
	if h.allow {
		h.current = 1
	}
	return h.current
}

// IsDone reports whether the sequence has been consumed with the gate open.
func (h *ScriptedHandle) IsDone() bool {
	return h.allow && h.err == nil && h.cursor >= len(h.steps)
}

func (h *ScriptedHandle) AllowActivation() bool { return h.allow }

func (h *ScriptedHandle) SetAllowActivation(allow bool) { h.allow = allow }

func (h *ScriptedHandle) Err() error { return h.err }

// Fail makes the handle report err from now on.
func (h *ScriptedHandle) Fail(err error) { h.err = err }

// Reads returns how many times Progress was called.
func (h *ScriptedHandle) Reads() int { return h.reads }
