// Curtaindemo opens a window with three fake scenes and switches between them
// through a curtain.Orchestrator. Press 1, 2 or 3 to load a scene, Space (or
// the Continue button) to activate a manually activated scene and H to hide a
// held overlay.
package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"net/http"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/phanxgames/curtain"
	"github.com/phanxgames/curtain/metrics"
)

type options struct {
	configPath  string
	watch       bool
	fadeIn      float32
	fadeOut     float32
	easing      string
	manual      bool
	keepOverlay bool
	loadTime    time.Duration
	metricsAddr string
	debug       bool
	width       int
	height      int
}

// demoScene is a stand-in for real content: a named, colored backdrop.
type demoScene struct {
	name  string
	color color.RGBA
}

var scenes = []demoScene{
	{name: "Meadow", color: color.RGBA{R: 60, G: 140, B: 70, A: 255}},
	{name: "Cavern", color: color.RGBA{R: 70, G: 60, B: 90, A: 255}},
	{name: "Harbor", color: color.RGBA{R: 40, G: 90, B: 150, A: 255}},
}

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	opts := options{
		fadeIn:   curtain.DefaultFadeSeconds,
		fadeOut:  curtain.DefaultFadeSeconds,
		easing:   "in-out-quad",
		loadTime: 2 * time.Second,
		width:    640,
		height:   480,
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	root := &cobra.Command{
		Use:     "curtaindemo",
		Short:   "Scene transitions with a fading loading overlay",
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
			return run(opts, changed, log)
		},
	}

	root.Flags().StringVar(&opts.configPath, "config", "", "path to a TOML or YAML config file")
	root.Flags().BoolVar(&opts.watch, "watch", false, "reload the config file when it changes")
	root.Flags().Float32Var(&opts.fadeIn, "fade-in", opts.fadeIn, "fade in duration in seconds")
	root.Flags().Float32Var(&opts.fadeOut, "fade-out", opts.fadeOut, "fade out duration in seconds")
	root.Flags().StringVar(&opts.easing, "easing", opts.easing, "fade easing, e.g. linear, in-out-quad, out-cubic")
	root.Flags().BoolVar(&opts.manual, "manual", false, "wait for Space or the Continue button before activating")
	root.Flags().BoolVar(&opts.keepOverlay, "keep-overlay", false, "keep the overlay up after loading until H is pressed")
	root.Flags().DurationVar(&opts.loadTime, "load-time", opts.loadTime, "simulated load duration")
	root.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :2112")
	root.Flags().BoolVar(&opts.debug, "debug", false, "log every transition state change")
	root.Flags().IntVar(&opts.width, "width", opts.width, "window width")
	root.Flags().IntVar(&opts.height, "height", opts.height, "window height")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("curtaindemo")
		os.Exit(1)
	}
}

// resolveConfig layers flags that were set explicitly over the config file.
func resolveConfig(opts options, changed map[string]bool) (curtain.Config, error) {
	if opts.configPath == "" {
		cfg := curtain.Config{FadeIn: opts.fadeIn, FadeOut: opts.fadeOut, Easing: opts.easing, Debug: opts.debug}
		return cfg, cfg.Validate()
	}
	cfg, err := curtain.LoadConfig(opts.configPath)
	if err != nil {
		return cfg, err
	}
	cfg = overrideConfig(cfg, opts, changed)
	return cfg, cfg.Validate()
}

// overrideConfig applies the explicitly set flags to a config read from file.
// Reloaded configs go through it too, so flags keep winning.
func overrideConfig(cfg curtain.Config, opts options, changed map[string]bool) curtain.Config {
	if changed["fade-in"] {
		cfg.FadeIn = opts.fadeIn
	}
	if changed["fade-out"] {
		cfg.FadeOut = opts.fadeOut
	}
	if changed["easing"] {
		cfg.Easing = opts.easing
	}
	if changed["debug"] {
		cfg.Debug = opts.debug
	}
	return cfg
}

func run(opts options, changed map[string]bool, log zerolog.Logger) error {
	cfg, err := resolveConfig(opts, changed)
	if err != nil {
		return err
	}
	if cfg.Debug {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	current := 0
	loader := curtain.NewAsyncLoader(ctx, simulateLoad(opts.loadTime), func(name string, mode curtain.LoadMode) error {
		for i, s := range scenes {
			if s.name == name {
				current = i
				log.Info().Str("scene", name).Stringer("mode", mode).Msg("scene activated")
				return nil
			}
		}
		return fmt.Errorf("unknown scene %q", name)
	})

	overlay := curtain.NewOverlay(opts.width, opts.height)
	orchOpts := []curtain.Option{curtain.WithLogger(log)}
	if opts.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		orchOpts = append(orchOpts, curtain.WithEventSink(metrics.New(reg)))
		srv := &http.Server{Addr: opts.metricsAddr, Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{})}
		go func() {
			log.Info().Str("addr", opts.metricsAddr).Msg("serving metrics")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("metrics server")
			}
		}()
		defer srv.Close()
	}

	o, err := curtain.New(overlay, loader, orchOpts...)
	if err != nil {
		return err
	}
	if err := o.ApplyConfig(cfg); err != nil {
		return err
	}

	host := curtain.NewHost(o, overlay, opts.width, opts.height)
	if opts.watch && opts.configPath != "" {
		host.Watcher = curtain.NewConfigWatcher(opts.configPath, log)
		host.AdjustConfig = func(c curtain.Config) curtain.Config {
			return overrideConfig(c, opts, changed)
		}
		go func() {
			if err := host.Watcher.Run(ctx); err != nil {
				log.Error().Err(err).Msg("config watcher")
			}
		}()
	}

	var reqOpts []curtain.RequestOption
	if opts.manual {
		reqOpts = append(reqOpts, curtain.WithManualActivation())
	}
	if opts.keepOverlay {
		reqOpts = append(reqOpts, curtain.WithManualHide())
	}

	host.UpdateFunc = func() error {
		for i, key := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3} {
			if !inpututil.IsKeyJustPressed(key) {
				continue
			}
			err := o.LoadScene(scenes[i].name, curtain.LoadReplace, reqOpts...)
			if errors.Is(err, curtain.ErrBusy) {
				log.Info().Str("scene", scenes[i].name).Msg("transition running, request ignored")
				continue
			}
			if err != nil {
				return err
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			_ = o.ActivateScene()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyH) && o.State() == curtain.StateAwaitingHide {
			o.HideUI(true, nil)
		}
		return nil
	}
	host.DrawFunc = func(screen *ebiten.Image) {
		s := scenes[current]
		screen.Fill(s.color)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s\n\n1/2/3: load scene\nstate: %s", s.name, o.State()), 16, 16)
	}

	return curtain.Run(host, curtain.RunConfig{
		Title:  "curtain demo",
		Width:  opts.width,
		Height: opts.height,
	})
}

// simulateLoad returns a LoadFunc that reports even progress over d.
func simulateLoad(d time.Duration) curtain.LoadFunc {
	return func(ctx context.Context, name string, mode curtain.LoadMode, report func(float64)) error {
		const steps = 20
		if d <= 0 {
			report(1)
			return nil
		}
		tick := time.NewTicker(d / steps)
		defer tick.Stop()
		for i := 1; i <= steps; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick.C:
				report(float64(i) / steps)
			}
		}
		return nil
	}
}
