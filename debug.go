package curtain

import "github.com/rs/zerolog"

// SetDebugMode enables or disables debug mode. When enabled, every state
// change and every poll is logged at debug level on the orchestrator's
// logger, whose level is lowered to debug if needed.
func (o *Orchestrator) SetDebugMode(enabled bool) {
	o.debug = enabled
	if enabled && o.log.GetLevel() > zerolog.DebugLevel {
		o.log = o.log.Level(zerolog.DebugLevel)
	}
}

// setState switches state and traces the change in debug mode.
func (o *Orchestrator) setState(s State) {
	prev := o.state
	o.state = s
	if !o.debug || prev == s {
		return
	}
	o.log.Debug().
		Str("scene", o.req.Scene).
		Stringer("from", prev).
		Stringer("to", s).
		Float32("elapsed", o.elapsed).
		Msg("transition state")
}

// debugPoll traces one poll tick in debug mode.
func (o *Orchestrator) debugPoll(progress float64, done bool) {
	if !o.debug {
		return
	}
	o.log.Debug().
		Str("scene", o.req.Scene).
		Float64("progress", progress).
		Bool("loaded", o.loadedEdge).
		Bool("done", done).
		Msg("load poll")
}
