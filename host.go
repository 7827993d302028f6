package curtain

import "github.com/hajimehoshi/ebiten/v2"

// Host is an ebiten.Game that drives an Orchestrator and its Overlay around
// the game's own update and draw functions.
type Host struct {
	Orchestrator *Orchestrator
	Overlay      *Overlay
	// Watcher, if set, has its reloaded configs applied at the start of a frame.
	Watcher *ConfigWatcher
	// AdjustConfig, if set, rewrites each reloaded config before it is
	// applied, for example to keep command line overrides.
	AdjustConfig func(Config) Config

	// UpdateFunc runs every frame before the orchestrator advances.
	UpdateFunc func() error
	// DrawFunc draws the game under the overlay.
	DrawFunc func(screen *ebiten.Image)

	width, height int
}

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title         string
	Width, Height int
}

// NewHost returns a Host for an orchestrator whose target is ov.
func NewHost(o *Orchestrator, ov *Overlay, width, height int) *Host {
	return &Host{Orchestrator: o, Overlay: ov, width: width, height: height}
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	return h.step(dt)
}

// step runs one frame with an explicit dt.
func (h *Host) step(dt float32) error {
	if h.Watcher != nil {
		select {
		case cfg := <-h.Watcher.Updates():
			if h.AdjustConfig != nil {
				cfg = h.AdjustConfig(cfg)
			}
			if err := h.Orchestrator.ApplyConfig(cfg); err != nil {
				return err
			}
		default:
		}
	}
	if h.UpdateFunc != nil {
		if err := h.UpdateFunc(); err != nil {
			return err
		}
	}
	if err := h.Orchestrator.Advance(dt); err != nil {
		return err
	}
	if h.Overlay != nil {
		h.Overlay.Update()
	}
	return nil
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	if h.DrawFunc != nil {
		h.DrawFunc(screen)
	}
	if h.Overlay != nil {
		h.Overlay.Draw(screen)
	}
}

// Layout implements ebiten.Game with a fixed logical screen size.
func (h *Host) Layout(_, _ int) (int, int) {
	return h.width, h.height
}

// Run opens a window and runs h until the window closes or Update fails.
// The orchestrator is started before the first frame and stopped afterwards.
func Run(h *Host, cfg RunConfig) error {
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	h.Orchestrator.Start()
	defer h.Orchestrator.Stop()
	return ebiten.RunGame(h)
}
