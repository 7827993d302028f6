package curtain

// EventSink receives transition events. Set one on an Orchestrator with
// WithEventSink to forward transitions to an ECS world or a metrics backend.
type EventSink interface {
	EmitEvent(event Event)
}

// EventType identifies a point in a transition.
type EventType uint8

const (
	EventTransitionStart EventType = iota // request accepted, fade in begins
	EventLoadStart                        // load provider started
	EventLoadComplete                     // progress reached LoadedThreshold
	EventActivate                         // activation gate opened by ActivateScene
	EventFadeOutStart                     // overlay starts hiding after a transition
	EventTransitionEnd                    // overlay hidden after a finished load, orchestrator idle
	EventLoadError                        // load provider reported an error
	EventTransitionAbort                  // overlay hidden before the load finished, orchestrator idle
)

func (t EventType) String() string {
	switch t {
	case EventTransitionStart:
		return "transition-start"
	case EventLoadStart:
		return "load-start"
	case EventLoadComplete:
		return "load-complete"
	case EventActivate:
		return "activate"
	case EventFadeOutStart:
		return "fade-out-start"
	case EventTransitionEnd:
		return "transition-end"
	case EventLoadError:
		return "load-error"
	case EventTransitionAbort:
		return "transition-abort"
	default:
		return "unknown"
	}
}

// Event carries one transition notification.
type Event struct {
	Type  EventType
	Scene string
	Mode  LoadMode
	State State
	// Progress is the last polled load progress.
	Progress float64
	// Elapsed is the game time in seconds since the request was accepted.
	Elapsed float32
	// Err is set for EventLoadError.
	Err error
}

func (o *Orchestrator) emit(typ EventType, err error) {
	if o.sink == nil {
		return
	}
	o.sink.EmitEvent(Event{
		Type:     typ,
		Scene:    o.req.Scene,
		Mode:     o.req.Mode,
		State:    o.state,
		Progress: o.progress,
		Elapsed:  o.elapsed,
		Err:      err,
	})
}
