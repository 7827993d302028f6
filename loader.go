package curtain

import (
	"context"
	"fmt"
	"math"
	"sync"
)

// belowThreshold is the highest progress a running load may report.
var belowThreshold = math.Nextafter(LoadedThreshold, 0)

// LoadProvider begins asynchronous scene loads.
type LoadProvider interface {
	BeginLoad(name string, mode LoadMode) (LoadHandle, error)
}

// LoadHandle tracks one in-flight load. Progress is non-decreasing in [0, 1].
// While the activation gate is closed the load stops short of finishing and
// IsDone stays false.
type LoadHandle interface {
	Progress() float64
	IsDone() bool
	AllowActivation() bool
	SetAllowActivation(allow bool)
	// Err returns the error that stopped the load, if any.
	Err() error
}

// LoadFunc performs the slow part of a load. It reports completion fractions
// in [0, 1] through report and runs on its own goroutine.
type LoadFunc func(ctx context.Context, name string, mode LoadMode, report func(fraction float64)) error

// ActivateFunc swaps the loaded content in. It runs on the goroutine that
// polls the handle, which is the host's update loop.
type ActivateFunc func(name string, mode LoadMode) error

// AsyncLoader is a LoadProvider that runs Load on a goroutine. Reported
// fractions map just below LoadedThreshold; progress reaches the threshold
// only when Load returns without error. Activate runs once the gate is open
// and lifts progress to 1.
type AsyncLoader struct {
	ctx      context.Context
	load     LoadFunc
	activate ActivateFunc
}

// NewAsyncLoader returns an AsyncLoader whose loads observe ctx. activate may
// be nil.
func NewAsyncLoader(ctx context.Context, load LoadFunc, activate ActivateFunc) *AsyncLoader {
	return &AsyncLoader{ctx: ctx, load: load, activate: activate}
}

// BeginLoad starts loading name. The returned handle's gate is open.
func (l *AsyncLoader) BeginLoad(name string, mode LoadMode) (LoadHandle, error) {
	if l.load == nil {
		return nil, fmt.Errorf("begin load %q: no load func", name)
	}
	h := &asyncHandle{
		name:     name,
		mode:     mode,
		activate: l.activate,
		allow:    true,
	}
	go h.run(l.ctx, l.load)
	return h, nil
}

type asyncHandle struct {
	name     string
	mode     LoadMode
	activate ActivateFunc

	mu       sync.Mutex
	progress float64
	loaded   bool
	done     bool
	allow    bool
	err      error
}

func (h *asyncHandle) run(ctx context.Context, load LoadFunc) {
	err := load(ctx, h.name, h.mode, h.report)

	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		h.err = fmt.Errorf("load %q: %w", h.name, err)
		return
	}
	h.loaded = true
	if h.progress < LoadedThreshold {
		h.progress = LoadedThreshold
	}
}

func (h *asyncHandle) report(fraction float64) {
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}
	// Only a returned load counts as loaded.
	p := min(fraction*LoadedThreshold, belowThreshold)

	h.mu.Lock()
	if p > h.progress && !h.loaded {
		h.progress = p
	}
	h.mu.Unlock()
}

func (h *asyncHandle) Progress() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.progress
}

// IsDone runs the activation step the first time it sees a loaded scene with
// an open gate.
func (h *asyncHandle) IsDone() bool {
	h.mu.Lock()
	if h.done || !h.loaded || !h.allow || h.err != nil {
		done := h.done
		h.mu.Unlock()
		return done
	}
	h.mu.Unlock()

	var err error
	if h.activate != nil {
		err = h.activate(h.name, h.mode)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err != nil {
		h.err = fmt.Errorf("activate %q: %w", h.name, err)
		return false
	}
	h.done = true
	h.progress = 1
	return true
}

func (h *asyncHandle) AllowActivation() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.allow
}

func (h *asyncHandle) SetAllowActivation(allow bool) {
	h.mu.Lock()
	h.allow = allow
	h.mu.Unlock()
}

func (h *asyncHandle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}
