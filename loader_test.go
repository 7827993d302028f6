package curtain

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

// controlledLoad returns a LoadFunc driven by the test through reports and
// finish.
func controlledLoad(reports <-chan float64, finish <-chan error) LoadFunc {
	return func(ctx context.Context, name string, mode LoadMode, report func(float64)) error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case f := <-reports:
				report(f)
			case err := <-finish:
				return err
			}
		}
	}
}

// eventually polls cond until it holds or a second passes.
func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal(msg)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestAsyncLoaderProgressScaled(t *testing.T) {
	reports := make(chan float64)
	finish := make(chan error)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewAsyncLoader(ctx, controlledLoad(reports, finish), nil)
	h, err := l.BeginLoad("Level1", LoadReplace)
	if err != nil {
		t.Fatal(err)
	}

	reports <- 0.5
	eventually(t, func() bool { return math.Abs(h.Progress()-0.45) < 1e-9 }, "progress never reached 0.45")

	// Progress never goes backwards and stays below the threshold while the
	// load func runs.
	reports <- 0.2
	reports <- 5
	eventually(t, func() bool { return h.Progress() > 0.89 }, "progress never clamped near the threshold")
	if p := h.Progress(); p >= LoadedThreshold {
		t.Fatalf("progress = %v before the load func returned, want < %v", p, LoadedThreshold)
	}
	if h.IsDone() {
		t.Fatal("done before the load func returned")
	}

	finish <- nil
	eventually(t, func() bool { return h.Progress() >= LoadedThreshold }, "progress never reached the threshold")
	eventually(t, func() bool { return h.IsDone() }, "load never finished")
	if h.Progress() != 1 {
		t.Errorf("progress = %v after activation, want 1", h.Progress())
	}
	if h.Err() != nil {
		t.Errorf("err = %v", h.Err())
	}
}

func TestAsyncLoaderGate(t *testing.T) {
	finish := make(chan error)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	activated := 0
	l := NewAsyncLoader(ctx, controlledLoad(nil, finish), func(name string, mode LoadMode) error {
		activated++
		if name != "Level1" || mode != LoadAdditive {
			t.Errorf("activate(%q, %v)", name, mode)
		}
		return nil
	})
	h, err := l.BeginLoad("Level1", LoadAdditive)
	if err != nil {
		t.Fatal(err)
	}
	if !h.AllowActivation() {
		t.Error("gate should default to open")
	}
	h.SetAllowActivation(false)

	finish <- nil
	eventually(t, func() bool { return h.Progress() >= LoadedThreshold }, "load never reached the threshold")
	for i := 0; i < 5; i++ {
		if h.IsDone() {
			t.Fatal("done with the gate closed")
		}
	}
	if activated != 0 {
		t.Fatal("activated with the gate closed")
	}

	h.SetAllowActivation(true)
	if !h.IsDone() {
		t.Fatal("not done with the gate open")
	}
	h.IsDone()
	if activated != 1 {
		t.Errorf("activate ran %d times, want 1", activated)
	}
}

func TestAsyncLoaderLoadError(t *testing.T) {
	errIO := errors.New("io")
	finish := make(chan error, 1)
	finish <- errIO

	l := NewAsyncLoader(context.Background(), controlledLoad(nil, finish), nil)
	h, err := l.BeginLoad("Level1", LoadReplace)
	if err != nil {
		t.Fatal(err)
	}
	eventually(t, func() bool { return h.Err() != nil }, "error never reported")
	if !errors.Is(h.Err(), errIO) {
		t.Errorf("err = %v, want wrapped io", h.Err())
	}
	if h.IsDone() {
		t.Error("failed load reported done")
	}
}

func TestAsyncLoaderActivateError(t *testing.T) {
	errSwap := errors.New("swap")
	finish := make(chan error, 1)
	finish <- nil

	l := NewAsyncLoader(context.Background(), controlledLoad(nil, finish), func(string, LoadMode) error { return errSwap })
	h, err := l.BeginLoad("Level1", LoadReplace)
	if err != nil {
		t.Fatal(err)
	}
	eventually(t, func() bool { return h.Progress() >= LoadedThreshold }, "load never finished")
	if h.IsDone() {
		t.Fatal("done despite activation error")
	}
	if !errors.Is(h.Err(), errSwap) {
		t.Errorf("err = %v, want wrapped swap", h.Err())
	}
}

func TestAsyncLoaderCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := NewAsyncLoader(ctx, controlledLoad(nil, nil), nil)
	h, err := l.BeginLoad("Level1", LoadReplace)
	if err != nil {
		t.Fatal(err)
	}
	cancel()
	eventually(t, func() bool { return h.Err() != nil }, "cancel never surfaced")
	if !errors.Is(h.Err(), context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", h.Err())
	}
}

func TestAsyncLoaderNilLoadFunc(t *testing.T) {
	l := NewAsyncLoader(context.Background(), nil, nil)
	if _, err := l.BeginLoad("Level1", LoadReplace); err == nil {
		t.Error("expected an error without a load func")
	}
}

func TestAsyncLoaderThroughOrchestrator(t *testing.T) {
	finish := make(chan error, 1)
	finish <- nil
	swapped := ""
	l := NewAsyncLoader(context.Background(), controlledLoad(nil, finish), func(name string, _ LoadMode) error {
		swapped = name
		return nil
	})

	target := newRecordTarget(false)
	o := newTestOrchestrator(t, target, l, WithFades(0, 0))
	if err := o.LoadScene("Level1", LoadReplace); err != nil {
		t.Fatal(err)
	}
	eventually(t, func() bool {
		if err := o.Advance(1.0 / 60); err != nil {
			t.Fatal(err)
		}
		return o.State() == StateIdle
	}, "transition never finished")

	if swapped != "Level1" {
		t.Errorf("swapped = %q, want Level1", swapped)
	}
	if target.counts["complete"] != 1 {
		t.Errorf("complete called %d times, want 1", target.counts["complete"])
	}
}

func TestAsyncLoaderFullReportIsNotLoaded(t *testing.T) {
	reports := make(chan float64)
	finish := make(chan error)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	target := newRecordTarget(false)
	l := NewAsyncLoader(ctx, controlledLoad(reports, finish), nil)
	o := newTestOrchestrator(t, target, l, WithFades(0, 0))
	if err := o.LoadScene("Level1", LoadReplace); err != nil {
		t.Fatal(err)
	}

	reports <- 1
	eventually(t, func() bool { return o.Handle().Progress() > 0.89 }, "report never arrived")
	if err := o.Advance(0.1); err != nil {
		t.Fatal(err)
	}
	if target.counts["complete"] != 0 || o.Loaded() {
		t.Fatal("load reported complete while the load func was still running")
	}

	errDisk := errors.New("disk read failed")
	finish <- errDisk
	h := o.Handle()
	eventually(t, func() bool { return h.Err() != nil }, "error never reported")
	if err := o.Advance(0.1); !errors.Is(err, errDisk) {
		t.Fatalf("err = %v, want disk read failed", err)
	}
	if target.counts["complete"] != 0 {
		t.Errorf("complete called %d times for a failed load, want 0", target.counts["complete"])
	}
	if h.Progress() >= LoadedThreshold {
		t.Errorf("progress = %v for a failed load, want < %v", h.Progress(), LoadedThreshold)
	}
}
