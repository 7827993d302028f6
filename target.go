package curtain

// Hooks are the lifecycle notifications an overlay receives during a
// transition. They must return promptly; none of them may block.
type Hooks interface {
	// OnFadeIn is called when the overlay becomes visible, before the opacity
	// animation starts.
	OnFadeIn(duration float32)
	// OnLoadStart is called after the fade in, right before the load begins.
	OnLoadStart()
	// OnLoadProgress is called on every poll tick with the raw load progress.
	// Values below LoadedThreshold mean content is still loading.
	OnLoadProgress(progress float64)
	// OnLoadComplete is called once, on the first tick where progress reaches
	// LoadedThreshold. The scene may still be waiting for activation.
	OnLoadComplete()
	// OnFadeOut is called before the overlay fades out.
	OnFadeOut(duration float32)
}

// NopHooks implements Hooks with empty methods. Embed it in a Target to
// override only the hooks you need.
type NopHooks struct{}

func (NopHooks) OnFadeIn(float32)       {}
func (NopHooks) OnLoadStart()           {}
func (NopHooks) OnLoadProgress(float64) {}
func (NopHooks) OnLoadComplete()        {}
func (NopHooks) OnFadeOut(float32)      {}

// Target is the visual surface bound to an Orchestrator.
type Target interface {
	Hooks

	// Opacity returns the current value of the fade channel in [0, 1].
	Opacity() float64
	// SetOpacity sets the fade channel.
	SetOpacity(alpha float64)
	// SetActive shows and enables the overlay, or hides and disables it.
	SetActive(active bool)
	// ActivationControl returns the control that lets a user activate a
	// loaded scene, or nil when the overlay has none.
	ActivationControl() ActivationControl
}

// ActivationControl is a signal source that asks for the loaded scene to be
// activated.
type ActivationControl interface {
	// OnActivate registers fn and returns a function that removes it.
	OnActivate(fn func()) (remove func())
}

// Button is a minimal ActivationControl. Click notifies every registered
// listener in registration order.
type Button struct {
	listeners []buttonListener
	nextID    int
}

type buttonListener struct {
	id int
	fn func()
}

// OnActivate registers fn to run on Click.
func (b *Button) OnActivate(fn func()) func() {
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, buttonListener{id: id, fn: fn})
	return func() {
		for i, l := range b.listeners {
			if l.id == id {
				b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

// Click invokes every listener. Listeners removed during Click still run for
// this click.
func (b *Button) Click() {
	ls := make([]buttonListener, len(b.listeners))
	copy(ls, b.listeners)
	for _, l := range ls {
		l.fn()
	}
}

// Listeners returns the number of registered listeners.
func (b *Button) Listeners() int {
	return len(b.listeners)
}
