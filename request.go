package curtain

// LoadRequest describes one transition. It is copied when accepted and never
// changed afterwards.
type LoadRequest struct {
	Scene string
	Mode  LoadMode
	// AutoActivate lets the scene finish as soon as it is loaded. When false,
	// the load waits for ActivateScene.
	AutoActivate bool
	// AutoHide fades the overlay out once the load is done. When false, the
	// overlay stays up until HideUI.
	AutoHide bool
	// BeforeLoad, if set, runs once after the fade in and before the load.
	BeforeLoad func()
	// BeforeLoadDelay is the time in seconds between BeforeLoad and the load.
	BeforeLoadDelay float32
}

// RequestOption customizes a LoadRequest built by LoadScene.
type RequestOption func(*LoadRequest)

// NewLoadRequest returns a request that activates and hides automatically.
func NewLoadRequest(scene string, mode LoadMode, opts ...RequestOption) LoadRequest {
	req := LoadRequest{
		Scene:        scene,
		Mode:         mode,
		AutoActivate: true,
		AutoHide:     true,
	}
	for _, opt := range opts {
		opt(&req)
	}
	if req.BeforeLoadDelay < 0 {
		req.BeforeLoadDelay = 0
	}
	return req
}

// WithManualActivation keeps the activation gate closed until ActivateScene.
func WithManualActivation() RequestOption {
	return func(r *LoadRequest) { r.AutoActivate = false }
}

// WithManualHide keeps the overlay up after the load until HideUI.
func WithManualHide() RequestOption {
	return func(r *LoadRequest) { r.AutoHide = false }
}

// WithBeforeLoad runs fn after the fade in, then waits delay seconds before
// loading.
func WithBeforeLoad(fn func(), delay float32) RequestOption {
	return func(r *LoadRequest) {
		r.BeforeLoad = fn
		r.BeforeLoadDelay = delay
	}
}
