// Package config provides runtime configuration for starfetch. Settings come
// from defaults, then STARFETCH_* environment variables, then CLI flags.
package config

import (
	"fmt"
	"strconv"
	"time"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "STARFETCH_"

// Defaults applied to unset values.
const (
	DefaultLogLevel     = "warn"
	DefaultProbeTimeout = "5s"
	DefaultCPUSample    = "200ms"
	DefaultFormat       = "text"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the top-level configuration structure.
type Config struct {
	LogLevel     string
	ProbeTimeout string
	CPUSample    string
	Parallel     bool
	Color        string
	Format       string
}

// LookupFunc reads an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// Load builds a Config from the environment, applying defaults for unset
// values.
func Load(lookup LookupFunc) (*Config, error) {
	cfg := &Config{}

	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvPrefix + "PROBE_TIMEOUT"); ok {
		cfg.ProbeTimeout = v
	}
	if v, ok := lookup(EnvPrefix + "CPU_SAMPLE"); ok {
		cfg.CPUSample = v
	}
	if v, ok := lookup(EnvPrefix + "PARALLEL"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parsing %sPARALLEL: %w", EnvPrefix, err)
		}
		cfg.Parallel = b
	}
	if v, ok := lookup(EnvPrefix + "COLOR"); ok {
		cfg.Color = v
	}
	if v, ok := lookup(EnvPrefix + "FORMAT"); ok {
		cfg.Format = v
	}
	// https://no-color.org
	if v, ok := lookup("NO_COLOR"); ok && v != "" {
		cfg.Color = ColorNever
	}

	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.ProbeTimeout == "" {
		cfg.ProbeTimeout = DefaultProbeTimeout
	}
	if cfg.CPUSample == "" {
		cfg.CPUSample = DefaultCPUSample
	}
	if cfg.Color == "" {
		cfg.Color = ColorAuto
	}
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}
}

// Validate checks enumerated values and durations.
func (cfg *Config) Validate() error {
	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", cfg.Color)
	}
	switch cfg.Format {
	case "text", "toml", "msgpack":
	default:
		return fmt.Errorf("invalid format %q (want text, toml or msgpack)", cfg.Format)
	}
	if d, err := cfg.ParseProbeTimeout(); err != nil {
		return fmt.Errorf("parsing probe timeout: %w", err)
	} else if d <= 0 {
		return fmt.Errorf("probe timeout must be positive, got %s", d)
	}
	if d, err := cfg.ParseCPUSample(); err != nil {
		return fmt.Errorf("parsing cpu sample: %w", err)
	} else if d < 0 {
		return fmt.Errorf("cpu sample must not be negative, got %s", d)
	}
	return nil
}

// ParseProbeTimeout parses the per-probe timeout string to a time.Duration.
func (cfg *Config) ParseProbeTimeout() (time.Duration, error) {
	if cfg.ProbeTimeout == "" {
		return 5 * time.Second, nil
	}
	return time.ParseDuration(cfg.ProbeTimeout)
}

// ParseCPUSample parses the CPU usage sampling window to a time.Duration.
func (cfg *Config) ParseCPUSample() (time.Duration, error) {
	if cfg.CPUSample == "" {
		return 200 * time.Millisecond, nil
	}
	return time.ParseDuration(cfg.CPUSample)
}

// UseColor reports whether output should carry ANSI colors.
func (cfg *Config) UseColor(isTerminal bool) bool {
	switch cfg.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal
	}
}
