package curtain

import (
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TimeMode selects which clock an animation follows.
type TimeMode uint8

const (
	TimeScaled   TimeMode = iota // dt multiplied by Tweener.TimeScale
	TimeUnscaled                 // raw dt, unaffected by slow motion or pause
)

// TweenProvider animates scalar values and runs one-shot timers on behalf of
// an owner. Starting an animation with an (owner, key) pair that is already
// animating replaces the running animation.
type TweenProvider interface {
	Animate(owner any, key string, set func(float64), from, to float64, duration float32, fn ease.TweenFunc, mode TimeMode, onComplete func())
	Timer(owner any, duration float32, onComplete func())
	ClearAll(owner any)
}

// motion is one keyed gween animation.
type motion struct {
	owner      any
	key        string
	tween      *gween.Tween
	set        func(float64)
	mode       TimeMode
	onComplete func()
	cancelled  bool
}

// timer is a one-shot delay. It reuses gween as a clock.
type timer struct {
	owner      any
	clock      *gween.Tween
	onComplete func()
	cancelled  bool
}

// Tweener is the default TweenProvider, built on gween. Call Update(dt) once
// per frame. There is no global instance.
type Tweener struct {
	// TimeScale multiplies dt for TimeScaled animations and timers.
	TimeScale float32

	motions  []*motion
	timers   []*timer
	finished []func()
}

// NewTweener returns a Tweener with a TimeScale of 1.
func NewTweener() *Tweener {
	return &Tweener{TimeScale: 1}
}

// Animate starts animating from -> to over duration seconds, writing each
// value through set. A non-positive duration writes to and completes
// immediately.
func (tw *Tweener) Animate(owner any, key string, set func(float64), from, to float64, duration float32, fn ease.TweenFunc, mode TimeMode, onComplete func()) {
	tw.cancel(owner, key)
	if duration <= 0 {
		set(to)
		if onComplete != nil {
			onComplete()
		}
		return
	}
	if fn == nil {
		fn = ease.Linear
	}
	set(from)
	tw.motions = append(tw.motions, &motion{
		owner:      owner,
		key:        key,
		tween:      gween.New(float32(from), float32(to), duration, fn),
		set:        set,
		mode:       mode,
		onComplete: onComplete,
	})
}

// Timer calls onComplete after duration seconds of scaled time. A
// non-positive duration fires immediately.
func (tw *Tweener) Timer(owner any, duration float32, onComplete func()) {
	if duration <= 0 {
		if onComplete != nil {
			onComplete()
		}
		return
	}
	tw.timers = append(tw.timers, &timer{
		owner:      owner,
		clock:      gween.New(0, duration, duration, ease.Linear),
		onComplete: onComplete,
	})
}

// ClearAll cancels every animation and timer started by owner without
// calling their completion callbacks.
func (tw *Tweener) ClearAll(owner any) {
	for _, m := range tw.motions {
		if m.owner == owner {
			m.cancelled = true
		}
	}
	for _, t := range tw.timers {
		if t.owner == owner {
			t.cancelled = true
		}
	}
	tw.compact()
}

// Active reports whether owner has a running animation under key.
func (tw *Tweener) Active(owner any, key string) bool {
	for _, m := range tw.motions {
		if !m.cancelled && m.owner == owner && m.key == key {
			return true
		}
	}
	return false
}

// Len returns the number of running animations and pending timers.
func (tw *Tweener) Len() int {
	return len(tw.motions) + len(tw.timers)
}

// Update advances every animation and timer by dt seconds. Completion
// callbacks run after all values are written, so they may start new
// animations on the same keys.
func (tw *Tweener) Update(dt float32) {
	scaled := dt * tw.TimeScale

	tw.finished = tw.finished[:0]
	for _, m := range tw.motions {
		if m.cancelled {
			continue
		}
		step := scaled
		if m.mode == TimeUnscaled {
			step = dt
		}
		val, done := m.tween.Update(step)
		m.set(float64(val))
		if done {
			m.cancelled = true
			if m.onComplete != nil {
				tw.finished = append(tw.finished, m.onComplete)
			}
		}
	}
	for _, t := range tw.timers {
		if t.cancelled {
			continue
		}
		if _, done := t.clock.Update(scaled); done {
			t.cancelled = true
			if t.onComplete != nil {
				tw.finished = append(tw.finished, t.onComplete)
			}
		}
	}
	tw.compact()

	// Callbacks may call Animate, which appends to tw.motions but never
	// touches tw.finished.
	callbacks := tw.finished
	for i, fn := range callbacks {
		callbacks[i] = nil
		fn()
	}
}

func (tw *Tweener) cancel(owner any, key string) {
	for _, m := range tw.motions {
		if m.owner == owner && m.key == key {
			m.cancelled = true
		}
	}
	tw.compact()
}

func (tw *Tweener) compact() {
	n := 0
	for _, m := range tw.motions {
		if !m.cancelled {
			tw.motions[n] = m
			n++
		}
	}
	for i := n; i < len(tw.motions); i++ {
		tw.motions[i] = nil
	}
	tw.motions = tw.motions[:n]

	n = 0
	for _, t := range tw.timers {
		if !t.cancelled {
			tw.timers[n] = t
			n++
		}
	}
	for i := n; i < len(tw.timers); i++ {
		tw.timers[i] = nil
	}
	tw.timers = tw.timers[:n]
}

var easings = map[string]ease.TweenFunc{
	"linear":         ease.Linear,
	"in-quad":        ease.InQuad,
	"out-quad":       ease.OutQuad,
	"in-out-quad":    ease.InOutQuad,
	"in-cubic":       ease.InCubic,
	"out-cubic":      ease.OutCubic,
	"in-out-cubic":   ease.InOutCubic,
	"in-sine":        ease.InSine,
	"out-sine":       ease.OutSine,
	"in-out-sine":    ease.InOutSine,
	"in-expo":        ease.InExpo,
	"out-expo":       ease.OutExpo,
	"in-out-expo":    ease.InOutExpo,
	"out-bounce":     ease.OutBounce,
	"out-back":       ease.OutBack,
	"in-out-back":    ease.InOutBack,
	"out-elastic":    ease.OutElastic,
	"in-out-elastic": ease.InOutElastic,
}

// EasingByName looks up a gween easing by its kebab-case name, for example
// "in-out-quad". Lookup ignores case and surrounding spaces.
func EasingByName(name string) (ease.TweenFunc, bool) {
	fn, ok := easings[strings.ToLower(strings.TrimSpace(name))]
	return fn, ok
}
