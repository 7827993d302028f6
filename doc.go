// Package curtain runs scene transitions for [Ebitengine] games: it fades a
// loading overlay in, loads the next scene while reporting progress, waits
// for the player to continue when asked to, and fades the overlay out again.
//
// # Quick start
//
// Bind an [Orchestrator] to a [Target] (the stock [Overlay] or your own) and
// a [LoadProvider], start it, and request scenes:
//
//	overlay := curtain.NewOverlay(640, 480)
//	loader := curtain.NewAsyncLoader(ctx, loadLevel, swapLevel)
//	o, err := curtain.New(overlay, loader)
//	if err != nil {
//		return err
//	}
//	host := curtain.NewHost(o, overlay, 640, 480)
//	host.UpdateFunc = game.Update
//	host.DrawFunc = game.Draw
//	return curtain.Run(host, curtain.RunConfig{Title: "My Game", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself, call [Orchestrator.Start]
// once and [Orchestrator.Advance] every frame:
//
//	func (g *Game) Update() error {
//		return g.curtain.Advance(1.0 / float32(ebiten.TPS()))
//	}
//
// # Transitions
//
// A transition moves through the states fading-in, an optional
// awaiting-pre-load-delay, loading, an optional awaiting-hide and fading-out
// before returning to idle. Only one transition runs at a time; requests made
// while busy fail with [ErrBusy].
//
// The target is notified through its [Hooks]. OnLoadComplete fires once,
// when progress first reaches [LoadedThreshold]. Loads requested with
// [WithManualActivation] stop there until [Orchestrator.ActivateScene] is
// called, or the target's [ActivationControl] fires. Loads requested with
// [WithManualHide] keep the overlay up until [Orchestrator.HideUI].
//
// Embed [NopHooks] in a custom target to implement only the hooks it needs.
//
// # Ecosystem
//
// Fades run on [gween] through a [Tweener]. Events can be forwarded to a
// [Donburi] world (curtain/ecs) or to Prometheus (curtain/metrics). Fade
// settings load from TOML or YAML files with [LoadConfig], and
// [ConfigWatcher] reloads them while the game runs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package curtain
