package curtain

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

type owner struct{ name string }

func TestAnimateReachesTarget(t *testing.T) {
	tw := NewTweener()
	o := &owner{"a"}
	var v float64
	done := 0

	tw.Animate(o, "alpha", func(x float64) { v = x }, 0, 1, 1.0, ease.Linear, TimeScaled, func() { done++ })
	if v != 0 {
		t.Errorf("start value = %f, want 0", v)
	}

	// Exact halves avoid float32 accumulation drift.
	tw.Update(0.5)
	if math.Abs(v-0.5) > 0.01 {
		t.Errorf("midpoint = %f, want ~0.5", v)
	}
	if done != 0 {
		t.Fatal("completed early")
	}
	tw.Update(0.5)

	if v != 1 {
		t.Errorf("end value = %f, want 1", v)
	}
	if done != 1 {
		t.Errorf("onComplete called %d times, want 1", done)
	}
	if tw.Len() != 0 {
		t.Errorf("Len = %d after completion, want 0", tw.Len())
	}

	tw.Update(0.5)
	if done != 1 {
		t.Error("onComplete called again after completion")
	}
}

func TestAnimateReverse(t *testing.T) {
	tw := NewTweener()
	var v float64
	tw.Animate(&owner{}, "alpha", func(x float64) { v = x }, 1, 0, 0.5, ease.InOutQuad, TimeUnscaled, nil)
	tw.Update(0.25)
	tw.Update(0.25)
	if v != 0 {
		t.Errorf("end value = %f, want 0", v)
	}
}

func TestAnimateZeroDuration(t *testing.T) {
	tw := NewTweener()
	var writes []float64
	done := false

	tw.Animate(&owner{}, "alpha", func(x float64) { writes = append(writes, x) }, 0, 1, 0, ease.Linear, TimeScaled, func() { done = true })

	if len(writes) != 1 || writes[0] != 1 {
		t.Errorf("writes = %v, want [1]", writes)
	}
	if !done {
		t.Error("zero duration should complete synchronously")
	}
	if tw.Len() != 0 {
		t.Errorf("Len = %d, want 0", tw.Len())
	}
}

func TestAnimateSupersedesSameKey(t *testing.T) {
	tw := NewTweener()
	o := &owner{}
	var v float64
	firstDone := false

	tw.Animate(o, "alpha", func(x float64) { v = x }, 0, 1, 1, ease.Linear, TimeScaled, func() { firstDone = true })
	tw.Update(0.5)
	tw.Animate(o, "alpha", func(x float64) { v = x }, 0.5, 0, 0.5, ease.Linear, TimeScaled, nil)

	if tw.Len() != 1 {
		t.Fatalf("Len = %d, want 1", tw.Len())
	}
	tw.Update(0.5)
	if firstDone {
		t.Error("superseded animation completed")
	}
	if v != 0 {
		t.Errorf("value = %f, want 0", v)
	}
}

func TestAnimateDistinctOwners(t *testing.T) {
	tw := NewTweener()
	a, b := &owner{"a"}, &owner{"b"}
	tw.Animate(a, "alpha", func(float64) {}, 0, 1, 1, ease.Linear, TimeScaled, nil)
	tw.Animate(b, "alpha", func(float64) {}, 0, 1, 1, ease.Linear, TimeScaled, nil)
	if tw.Len() != 2 {
		t.Errorf("Len = %d, want 2", tw.Len())
	}
	if !tw.Active(a, "alpha") || !tw.Active(b, "alpha") {
		t.Error("both owners should be animating")
	}
	if tw.Active(a, "scale") {
		t.Error("unknown key reported active")
	}
}

func TestTimer(t *testing.T) {
	tw := NewTweener()
	fired := 0
	tw.Timer(&owner{}, 0.5, func() { fired++ })

	tw.Update(0.25)
	if fired != 0 {
		t.Fatal("timer fired early")
	}
	tw.Update(0.25)
	if fired != 1 {
		t.Errorf("fired %d times, want 1", fired)
	}
	tw.Update(1)
	if fired != 1 {
		t.Error("timer fired twice")
	}
}

func TestTimerZeroDuration(t *testing.T) {
	tw := NewTweener()
	fired := false
	tw.Timer(&owner{}, 0, func() { fired = true })
	if !fired {
		t.Error("zero timer should fire immediately")
	}
	if tw.Len() != 0 {
		t.Errorf("Len = %d, want 0", tw.Len())
	}
}

func TestClearAll(t *testing.T) {
	tw := NewTweener()
	a, b := &owner{"a"}, &owner{"b"}
	fired := false

	tw.Animate(a, "alpha", func(float64) {}, 0, 1, 1, ease.Linear, TimeScaled, func() { fired = true })
	tw.Timer(a, 1, func() { fired = true })
	tw.Animate(b, "alpha", func(float64) {}, 0, 1, 1, ease.Linear, TimeScaled, nil)

	tw.ClearAll(a)
	if tw.Len() != 1 {
		t.Fatalf("Len = %d, want 1", tw.Len())
	}
	tw.Update(1)
	if fired {
		t.Error("cleared callbacks must not run")
	}
}

func TestTimeScaleAffectsOnlyScaled(t *testing.T) {
	tw := NewTweener()
	tw.TimeScale = 0
	o := &owner{}
	scaledDone, unscaledDone, timerDone := false, false, false

	tw.Animate(o, "scaled", func(float64) {}, 0, 1, 0.5, ease.Linear, TimeScaled, func() { scaledDone = true })
	tw.Animate(o, "unscaled", func(float64) {}, 0, 1, 0.5, ease.Linear, TimeUnscaled, func() { unscaledDone = true })
	tw.Timer(o, 0.5, func() { timerDone = true })

	tw.Update(0.25)
	tw.Update(0.25)

	if !unscaledDone {
		t.Error("unscaled animation should ignore TimeScale")
	}
	if scaledDone || timerDone {
		t.Error("scaled animation and timer should be paused")
	}

	tw.TimeScale = 2
	tw.Update(0.25)
	if !scaledDone || !timerDone {
		t.Error("scaled animation and timer should finish at double speed")
	}
}

func TestCallbackMayAnimateSameKey(t *testing.T) {
	tw := NewTweener()
	o := &owner{}
	var v float64
	set := func(x float64) { v = x }
	back := false

	tw.Animate(o, "alpha", set, 0, 1, 0.5, ease.Linear, TimeScaled, func() {
		tw.Animate(o, "alpha", set, 1, 0, 0.5, ease.Linear, TimeScaled, func() { back = true })
	})

	tw.Update(0.5)
	if v != 1 || tw.Len() != 1 {
		t.Fatalf("v = %f len = %d, want 1 and a chained animation", v, tw.Len())
	}
	tw.Update(0.5)
	if !back || v != 0 {
		t.Errorf("chained animation: back=%v v=%f", back, v)
	}
}

func TestNilEasingIsLinear(t *testing.T) {
	tw := NewTweener()
	var v float64
	tw.Animate(&owner{}, "alpha", func(x float64) { v = x }, 0, 1, 1, nil, TimeScaled, nil)
	tw.Update(0.5)
	if math.Abs(v-0.5) > 0.01 {
		t.Errorf("v = %f, want ~0.5", v)
	}
}

func TestEasingByName(t *testing.T) {
	for _, name := range []string{"linear", "in-out-quad", "out-cubic", "out-bounce", "in-out-elastic"} {
		if _, ok := EasingByName(name); !ok {
			t.Errorf("EasingByName(%q) not found", name)
		}
	}
	if _, ok := EasingByName("  In-Out-Quad "); !ok {
		t.Error("lookup should ignore case and spaces")
	}
	if _, ok := EasingByName("wobble"); ok {
		t.Error("unknown easing found")
	}
}
