package curtain

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/tanema/gween/ease"
)

// Orchestrator sequences a scene transition: it fades the bound Target in,
// loads the scene through a LoadProvider, waits for activation when asked to,
// and fades the Target out again. All methods must be called from the same
// goroutine as Advance, typically the game's update loop.
type Orchestrator struct {
	target Target
	loader LoadProvider
	tweens TweenProvider
	owned  *Tweener // set when the orchestrator updates its own tweens
	easing ease.TweenFunc
	sink   EventSink
	log    zerolog.Logger
	debug  bool

	fadeIn  float32
	fadeOut float32

	started     bool
	unsubscribe func()

	// Transition state, reset by Load and finish.
	state       State
	req         LoadRequest
	handle      LoadHandle
	loadedEdge  bool
	loadDone    bool
	progress    float64
	elapsed     float32
	errReported bool
	pendingErr  error
	hideDone    func()
}

// Option configures an Orchestrator in New.
type Option func(*Orchestrator)

// WithTweens makes the orchestrator animate through p instead of its own
// Tweener. The caller is then responsible for updating p every frame.
func WithTweens(p TweenProvider) Option {
	return func(o *Orchestrator) { o.tweens = p }
}

// WithLogger sets the logger used for diagnostics. The default discards
// everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

// WithEventSink forwards transition events to sink.
func WithEventSink(sink EventSink) Option {
	return func(o *Orchestrator) { o.sink = sink }
}

// WithEasing sets the easing curve of both fades. The default is ease.InOutQuad.
func WithEasing(fn ease.TweenFunc) Option {
	return func(o *Orchestrator) {
		if fn != nil {
			o.easing = fn
		}
	}
}

// WithFades sets the fade in and fade out durations in seconds. Negative
// values are clamped to 0.
func WithFades(in, out float32) Option {
	return func(o *Orchestrator) {
		o.SetFadeIn(in)
		o.SetFadeOut(out)
	}
}

// New creates an orchestrator bound to target and hides the target. It must
// be started with Start before it accepts requests.
func New(target Target, loader LoadProvider, opts ...Option) (*Orchestrator, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	if loader == nil {
		return nil, ErrNilLoader
	}
	o := &Orchestrator{
		target:  target,
		loader:  loader,
		easing:  ease.InOutQuad,
		log:     zerolog.Nop(),
		fadeIn:  DefaultFadeSeconds,
		fadeOut: DefaultFadeSeconds,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.tweens == nil {
		o.owned = NewTweener()
		o.tweens = o.owned
	}
	o.hideNow()
	return o, nil
}

// Start subscribes to the target's activation control. Requests are rejected
// until Start is called.
func (o *Orchestrator) Start() {
	if o.started {
		return
	}
	o.started = true
	o.subscribe()
}

// Stop unsubscribes from the target and cancels the orchestrator's
// animations and timers. A running transition is abandoned and the overlay
// hidden; an in-flight load itself is not cancelled. Abandoning a transition
// whose load was not done emits EventTransitionAbort.
func (o *Orchestrator) Stop() {
	if !o.started {
		return
	}
	o.unsubscribeTarget()
	o.started = false
	o.tweens.ClearAll(o)
	if o.state != StateIdle {
		o.log.Warn().Str("scene", o.req.Scene).Stringer("state", o.state).Msg("stop: abandoning transition")
		o.hideNow()
		o.hideDone = nil
		o.finish()
	}
}

// Started reports whether Start has been called without a matching Stop.
func (o *Orchestrator) Started() bool {
	return o.started
}

// LoadScene starts a transition to scene. By default the scene activates as
// soon as it is loaded and the overlay hides itself afterwards; see
// WithManualActivation, WithManualHide and WithBeforeLoad.
func (o *Orchestrator) LoadScene(scene string, mode LoadMode, opts ...RequestOption) error {
	return o.Load(NewLoadRequest(scene, mode, opts...))
}

// Load starts the transition described by req. It fails with ErrBusy unless
// the orchestrator is idle. An error from the load provider is returned when
// the load begins within this call; otherwise it surfaces from Advance.
func (o *Orchestrator) Load(req LoadRequest) error {
	if !o.started {
		return fmt.Errorf("load %q: %w", req.Scene, ErrNotStarted)
	}
	if o.state != StateIdle {
		o.log.Warn().Str("scene", req.Scene).Str("current", o.req.Scene).Stringer("state", o.state).Msg("load rejected")
		return fmt.Errorf("load %q: %w", req.Scene, ErrBusy)
	}
	if req.BeforeLoadDelay < 0 {
		req.BeforeLoadDelay = 0
	}

	o.req = req
	o.handle = nil
	o.loadedEdge = false
	o.loadDone = false
	o.progress = 0
	o.elapsed = 0
	o.errReported = false
	o.pendingErr = nil
	o.hideDone = nil

	o.setState(StateFadingIn)
	o.emit(EventTransitionStart, nil)
	o.showUI()
	return o.takeErr()
}

// ActivateScene opens the activation gate of the current load. Without a
// load in flight, including once the load is done, it logs a warning and
// returns ErrNoLoad. An already open gate is left as is.
func (o *Orchestrator) ActivateScene() error {
	if o.handle == nil || o.state != StateLoading {
		o.log.Warn().Stringer("state", o.state).Msg("activate scene: no load in flight")
		return ErrNoLoad
	}
	if o.handle.AllowActivation() {
		return nil
	}
	o.handle.SetAllowActivation(true)
	o.emit(EventActivate, nil)
	return nil
}

// HideUI hides the overlay and returns the orchestrator to idle, whatever
// the request's AutoHide said. Pending fades and before-load timers are
// dropped. From idle it hides synchronously without notifying the target.
// onComplete, if set, runs once the overlay is hidden.
func (o *Orchestrator) HideUI(animated bool, onComplete func()) {
	if o.state == StateIdle {
		o.hideNow()
		if onComplete != nil {
			onComplete()
		}
		return
	}
	o.hideUI(animated, onComplete)
}

// Advance moves the transition forward by dt seconds. Call it once per
// frame. It updates the orchestrator's own tweens (not a provider passed
// with WithTweens) and polls the load. It returns load provider errors once.
func (o *Orchestrator) Advance(dt float32) error {
	if o.state != StateIdle {
		o.elapsed += dt
	}
	if o.owned != nil {
		o.owned.Update(dt)
	}
	if o.state == StateLoading {
		o.poll()
	}
	return o.takeErr()
}

// SetTarget binds a new target. The previous target loses its activation
// subscription and the new one is hidden. Rebinding is only allowed while
// idle.
func (o *Orchestrator) SetTarget(t Target) error {
	if t == nil {
		return ErrNilTarget
	}
	if o.state != StateIdle {
		return fmt.Errorf("set target: %w", ErrBusy)
	}
	if o.started {
		o.unsubscribeTarget()
	}
	o.target = t
	if o.started {
		o.subscribe()
	}
	o.hideNow()
	return nil
}

// Target returns the bound target.
func (o *Orchestrator) Target() Target { return o.target }

// State returns the current transition state.
func (o *Orchestrator) State() State { return o.state }

// Request returns the request of the current or most recent transition.
func (o *Orchestrator) Request() LoadRequest { return o.req }

// Handle returns the in-flight load handle, or nil.
func (o *Orchestrator) Handle() LoadHandle { return o.handle }

// Progress returns the last polled load progress.
func (o *Orchestrator) Progress() float64 { return o.progress }

// Loaded reports whether the current load has crossed LoadedThreshold.
func (o *Orchestrator) Loaded() bool { return o.loadedEdge }

// FadeIn returns the fade in duration in seconds.
func (o *Orchestrator) FadeIn() float32 { return o.fadeIn }

// FadeOut returns the fade out duration in seconds.
func (o *Orchestrator) FadeOut() float32 { return o.fadeOut }

// SetFadeIn sets the fade in duration. Negative values are clamped to 0.
func (o *Orchestrator) SetFadeIn(seconds float32) {
	o.fadeIn = max(seconds, 0)
}

// SetFadeOut sets the fade out duration. Negative values are clamped to 0.
func (o *Orchestrator) SetFadeOut(seconds float32) {
	o.fadeOut = max(seconds, 0)
}

func (o *Orchestrator) showUI() {
	o.target.SetActive(true)
	o.target.OnFadeIn(o.fadeIn)
	if o.fadeIn <= 0 {
		o.target.SetOpacity(1)
		o.afterFadeIn()
		return
	}
	o.tweens.Animate(o, alphaKey, o.target.SetOpacity, 0, 1, o.fadeIn, o.easing, TimeUnscaled, o.afterFadeIn)
}

func (o *Orchestrator) afterFadeIn() {
	if o.state != StateFadingIn {
		return
	}
	if o.req.BeforeLoad == nil {
		o.beginLoad()
		return
	}
	o.setState(StateAwaitingPreLoadDelay)
	o.req.BeforeLoad()
	if o.state != StateAwaitingPreLoadDelay {
		return
	}
	if o.req.BeforeLoadDelay <= preLoadDelayEpsilon {
		o.beginLoad()
		return
	}
	o.tweens.Timer(o, o.req.BeforeLoadDelay, o.beginLoad)
}

func (o *Orchestrator) beginLoad() {
	if o.state != StateFadingIn && o.state != StateAwaitingPreLoadDelay {
		return
	}
	o.setState(StateLoading)
	o.target.OnLoadStart()

	h, err := o.loader.BeginLoad(o.req.Scene, o.req.Mode)
	if err != nil {
		o.fail(err)
		return
	}
	h.SetAllowActivation(o.req.AutoActivate)
	o.handle = h
	o.emit(EventLoadStart, nil)
}

// poll runs once per tick while loading. The overlay stays up on errors.
func (o *Orchestrator) poll() {
	h := o.handle
	if h == nil {
		return
	}
	if err := h.Err(); err != nil {
		if !o.errReported {
			o.fail(err)
		}
		return
	}

	p := h.Progress()
	o.progress = p
	o.target.OnLoadProgress(p)
	if p >= LoadedThreshold && !o.loadedEdge {
		o.loadedEdge = true
		o.target.OnLoadComplete()
		o.emit(EventLoadComplete, nil)
	}

	done := h.IsDone()
	o.debugPoll(p, done)
	if !done {
		return
	}
	o.loadDone = true
	if o.req.AutoHide {
		o.hideUI(true, nil)
		return
	}
	o.setState(StateAwaitingHide)
}

func (o *Orchestrator) hideUI(animated bool, onComplete func()) {
	o.tweens.ClearAll(o)
	o.hideDone = onComplete
	if !animated {
		o.hideNow()
		o.finish()
		return
	}

	o.setState(StateFadingOut)
	o.emit(EventFadeOutStart, nil)
	o.target.OnFadeOut(o.fadeOut)
	if o.fadeOut <= 0 {
		o.hideNow()
		o.finish()
		return
	}
	o.tweens.Animate(o, alphaKey, o.target.SetOpacity, o.target.Opacity(), 0, o.fadeOut, o.easing, TimeUnscaled, o.afterFadeOut)
}

func (o *Orchestrator) afterFadeOut() {
	if o.state != StateFadingOut {
		return
	}
	o.target.SetOpacity(0)
	o.target.SetActive(false)
	o.finish()
}

func (o *Orchestrator) hideNow() {
	o.target.SetOpacity(0)
	o.target.SetActive(false)
}

// finish returns to idle. A transition hidden before its load was done
// ends with EventTransitionAbort.
func (o *Orchestrator) finish() {
	end := EventTransitionEnd
	if !o.loadDone {
		end = EventTransitionAbort
	}
	o.loadedEdge = false
	o.loadDone = false
	o.handle = nil
	o.setState(StateIdle)
	o.emit(end, nil)

	done := o.hideDone
	o.hideDone = nil
	if done != nil {
		done()
	}
}

func (o *Orchestrator) fail(err error) {
	o.errReported = true
	o.pendingErr = err
	o.log.Error().Err(err).Str("scene", o.req.Scene).Msg("load failed")
	o.emit(EventLoadError, err)
}

func (o *Orchestrator) takeErr() error {
	err := o.pendingErr
	o.pendingErr = nil
	return err
}

func (o *Orchestrator) subscribe() {
	if ac := o.target.ActivationControl(); ac != nil {
		o.unsubscribe = ac.OnActivate(o.activateSignal)
	}
}

func (o *Orchestrator) unsubscribeTarget() {
	if o.unsubscribe != nil {
		o.unsubscribe()
		o.unsubscribe = nil
	}
}

func (o *Orchestrator) activateSignal() {
	_ = o.ActivateScene()
}
