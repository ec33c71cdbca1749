package config

import (
	"testing"
)

func env(vars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	cfg, err := Load(env(map[string]string{
		"STARFETCH_LOG_LEVEL":     "debug",
		"STARFETCH_PROBE_TIMEOUT": "2s",
		"STARFETCH_CPU_SAMPLE":    "1s",
		"STARFETCH_PARALLEL":      "true",
		"STARFETCH_COLOR":         "always",
		"STARFETCH_FORMAT":        "toml",
	}))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %s, want debug", cfg.LogLevel)
	}
	if cfg.ProbeTimeout != "2s" {
		t.Errorf("ProbeTimeout: got %s, want 2s", cfg.ProbeTimeout)
	}
	if !cfg.Parallel {
		t.Error("Parallel: got false, want true")
	}
	if cfg.Color != ColorAlways {
		t.Errorf("Color: got %s, want always", cfg.Color)
	}
	if cfg.Format != "toml" {
		t.Errorf("Format: got %s, want toml", cfg.Format)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(env(nil))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("default LogLevel: got %s, want warn", cfg.LogLevel)
	}
	if cfg.ProbeTimeout != "5s" {
		t.Errorf("default ProbeTimeout: got %s, want 5s", cfg.ProbeTimeout)
	}
	if cfg.CPUSample != "200ms" {
		t.Errorf("default CPUSample: got %s, want 200ms", cfg.CPUSample)
	}
	if cfg.Parallel {
		t.Error("default Parallel: got true, want false")
	}
	if cfg.Color != ColorAuto {
		t.Errorf("default Color: got %s, want auto", cfg.Color)
	}
	if cfg.Format != "text" {
		t.Errorf("default Format: got %s, want text", cfg.Format)
	}
}

func TestLoad_NoColor(t *testing.T) {
	cfg, err := Load(env(map[string]string{"STARFETCH_COLOR": "always", "NO_COLOR": "1"}))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Color != ColorNever {
		t.Errorf("Color: got %s, want never", cfg.Color)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"parallel": {"STARFETCH_PARALLEL": "sometimes"},
		"color":    {"STARFETCH_COLOR": "rainbow"},
		"format":   {"STARFETCH_FORMAT": "yaml"},
		"timeout":  {"STARFETCH_PROBE_TIMEOUT": "soon"},
		"zero":     {"STARFETCH_PROBE_TIMEOUT": "0s"},
		"sample":   {"STARFETCH_CPU_SAMPLE": "-1s"},
	}
	for name, vars := range tests {
		if _, err := Load(env(vars)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestParseProbeTimeout(t *testing.T) {
	cfg := &Config{ProbeTimeout: "750ms"}
	d, err := cfg.ParseProbeTimeout()
	if err != nil {
		t.Fatalf("parse timeout: %v", err)
	}
	if d.Milliseconds() != 750 {
		t.Errorf("ProbeTimeout: got %v, want 750ms", d)
	}
}

func TestParseProbeTimeout_Default(t *testing.T) {
	cfg := &Config{}
	d, err := cfg.ParseProbeTimeout()
	if err != nil {
		t.Fatalf("parse timeout: %v", err)
	}
	if d.Seconds() != 5 {
		t.Errorf("Default timeout: got %v, want 5s", d)
	}
}

func TestParseCPUSample(t *testing.T) {
	cfg := &Config{CPUSample: "0s"}
	d, err := cfg.ParseCPUSample()
	if err != nil {
		t.Fatalf("parse sample: %v", err)
	}
	if d != 0 {
		t.Errorf("CPUSample: got %v, want 0s", d)
	}
}

func TestUseColor(t *testing.T) {
	tests := []struct {
		mode     string
		terminal bool
		want     bool
	}{
		{ColorAuto, true, true},
		{ColorAuto, false, false},
		{ColorAlways, false, true},
		{ColorNever, true, false},
	}
	for _, tc := range tests {
		cfg := &Config{Color: tc.mode}
		if got := cfg.UseColor(tc.terminal); got != tc.want {
			t.Errorf("UseColor(%s, %v): got %v, want %v", tc.mode, tc.terminal, got, tc.want)
		}
	}
}
