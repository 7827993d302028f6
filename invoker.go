package curtain

// Invoker stores the parameters of a scene load so menus, buttons and boot
// code can trigger it without building a request each time.
type Invoker struct {
	Scene        string
	Mode         LoadMode
	AutoActivate bool
	AutoHide     bool
	// LoadOnStart makes Start trigger the load.
	LoadOnStart bool
}

// NewInvoker returns an Invoker for scene that activates and hides
// automatically.
func NewInvoker(scene string, mode LoadMode) *Invoker {
	return &Invoker{
		Scene:        scene,
		Mode:         mode,
		AutoActivate: true,
		AutoHide:     true,
	}
}

// Request builds the LoadRequest the invoker describes.
func (inv *Invoker) Request() LoadRequest {
	req := NewLoadRequest(inv.Scene, inv.Mode)
	req.AutoActivate = inv.AutoActivate
	req.AutoHide = inv.AutoHide
	return req
}

// Load asks o to load the scene.
func (inv *Invoker) Load(o *Orchestrator) error {
	return o.Load(inv.Request())
}

// Start loads the scene if LoadOnStart is set. It is meant to be called once
// when the owning screen is set up.
func (inv *Invoker) Start(o *Orchestrator) error {
	if !inv.LoadOnStart {
		return nil
	}
	return inv.Load(o)
}
