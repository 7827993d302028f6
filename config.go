package curtain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds the tunable parts of an Orchestrator, as read from a TOML or
// YAML file.
type Config struct {
	// FadeIn and FadeOut are durations in seconds.
	FadeIn  float32 `toml:"fade_in" yaml:"fade_in"`
	FadeOut float32 `toml:"fade_out" yaml:"fade_out"`
	// Easing names a gween easing, see EasingByName. Empty keeps the current one.
	Easing string `toml:"easing" yaml:"easing"`
	Debug  bool   `toml:"debug" yaml:"debug"`
}

// DefaultConfig returns the configuration a new Orchestrator starts with.
func DefaultConfig() Config {
	return Config{
		FadeIn:  DefaultFadeSeconds,
		FadeOut: DefaultFadeSeconds,
		Easing:  "in-out-quad",
	}
}

// LoadConfig reads a config file. Files ending in .yaml or .yml are parsed as
// YAML, everything else as TOML. Keys missing from the file keep their
// DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	format := "toml"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	}
	cfg, err := ParseConfig(b, format)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes data in the given format ("toml" or "yaml") on top of
// DefaultConfig and validates the result.
func ParseConfig(data []byte, format string) (Config, error) {
	cfg := DefaultConfig()
	var err error
	switch format {
	case "toml":
		err = toml.Unmarshal(data, &cfg)
	case "yaml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("parse config: unknown format %q", format)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the easing name. Negative durations are accepted and
// clamped when applied.
func (c Config) Validate() error {
	if c.Easing == "" {
		return nil
	}
	if _, ok := EasingByName(c.Easing); !ok {
		return fmt.Errorf("config: unknown easing %q", c.Easing)
	}
	return nil
}

// ApplyConfig updates fade durations, easing and debug mode. It takes effect
// from the next fade; a running animation keeps its parameters.
func (o *Orchestrator) ApplyConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.SetFadeIn(cfg.FadeIn)
	o.SetFadeOut(cfg.FadeOut)
	if cfg.Easing != "" {
		o.easing, _ = EasingByName(cfg.Easing)
	}
	o.SetDebugMode(cfg.Debug)
	return nil
}
