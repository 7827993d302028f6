package curtain

import "errors"

// LoadedThreshold is the progress value at which a load is considered
// content-ready with only finalization pending. Overlays scale their displayed
// progress by dividing by it, so it must stay 0.9.
const LoadedThreshold = 0.9

// DefaultFadeSeconds is the default duration of both the fade in and the fade
// out of the overlay.
const DefaultFadeSeconds float32 = 0.2

// preLoadDelayEpsilon is the largest before-load delay treated as zero.
const preLoadDelayEpsilon = 1e-6

// alphaKey addresses the overlay opacity animation in the tween provider.
const alphaKey = "alpha"

// LoadMode selects whether a load replaces the current content or is added
// next to it.
type LoadMode uint8

const (
	LoadReplace  LoadMode = iota // unload everything, then show the new scene
	LoadAdditive                 // keep current scenes and add the new one
)

func (m LoadMode) String() string {
	switch m {
	case LoadReplace:
		return "replace"
	case LoadAdditive:
		return "additive"
	default:
		return "unknown"
	}
}

// State is the orchestrator's position in a transition.
type State uint8

const (
	StateIdle                 State = iota // overlay hidden, no load
	StateFadingIn                          // overlay opacity animating 0 -> 1
	StateAwaitingPreLoadDelay              // before-load action ran, waiting on its delay
	StateLoading                           // polling the load handle once per tick
	StateAwaitingHide                      // load finished, overlay held until HideUI
	StateFadingOut                         // overlay opacity animating to 0
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFadingIn:
		return "fading-in"
	case StateAwaitingPreLoadDelay:
		return "awaiting-pre-load-delay"
	case StateLoading:
		return "loading"
	case StateAwaitingHide:
		return "awaiting-hide"
	case StateFadingOut:
		return "fading-out"
	default:
		return "unknown"
	}
}

var (
	// ErrNilTarget is returned when a nil Target is bound.
	ErrNilTarget = errors.New("curtain: target can not be nil")
	// ErrNilLoader is returned when the orchestrator is built without a LoadProvider.
	ErrNilLoader = errors.New("curtain: load provider can not be nil")
	// ErrBusy is returned when a request arrives while a transition is running.
	ErrBusy = errors.New("curtain: transition already in progress")
	// ErrNotStarted is returned for requests made before Start or after Stop.
	ErrNotStarted = errors.New("curtain: orchestrator not started")
	// ErrNoLoad is returned by ActivateScene when no load is in flight.
	ErrNoLoad = errors.New("curtain: no load in flight")
)
