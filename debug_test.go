package curtain

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDebugMode_LogsStateChanges(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	o := newTestOrchestrator(t, newRecordTarget(false), NewScriptedLoader(0.5, 1), WithLogger(log), WithFades(0, 0))
	o.SetDebugMode(true)

	if err := o.LoadScene("Level1", LoadReplace); err != nil {
		t.Fatal(err)
	}
	advanceUntil(t, o, 0.1, StateIdle, 10)

	out := buf.String()
	for _, want := range []string{
		`"message":"transition state"`,
		`"to":"fading-in"`,
		`"to":"loading"`,
		`"to":"fading-out"`,
		`"to":"idle"`,
		`"message":"load poll"`,
		`"scene":"Level1"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("debug output missing %s\n%s", want, out)
		}
	}
}

func TestDebugMode_OffIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	o := newTestOrchestrator(t, newRecordTarget(false), NewScriptedLoader(1), WithLogger(zerolog.New(&buf)), WithFades(0, 0))

	if err := o.LoadScene("Level1", LoadReplace); err != nil {
		t.Fatal(err)
	}
	advanceUntil(t, o, 0.1, StateIdle, 10)
	if buf.Len() != 0 {
		t.Errorf("expected no output without debug mode, got:\n%s", buf.String())
	}
}

func TestRejectedLoadIsLogged(t *testing.T) {
	var buf bytes.Buffer
	o := newTestOrchestrator(t, newRecordTarget(false), NewScriptedLoader(1), WithLogger(zerolog.New(&buf)))

	_ = o.LoadScene("Level1", LoadReplace)
	_ = o.LoadScene("Level2", LoadReplace)
	if !strings.Contains(buf.String(), `"level":"warn"`) || !strings.Contains(buf.String(), "load rejected") {
		t.Errorf("expected a warning for the rejected load, got:\n%s", buf.String())
	}
}

func TestDebugMode_LowersLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.InfoLevel)
	o := newTestOrchestrator(t, newRecordTarget(false), NewScriptedLoader(1), WithLogger(log), WithFades(0, 0))

	if err := o.ApplyConfig(Config{Debug: true}); err != nil {
		t.Fatal(err)
	}
	if err := o.LoadScene("Level1", LoadReplace); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"message":"transition state"`) {
		t.Errorf("debug mode on an info logger logged nothing:\n%s", buf.String())
	}
}
