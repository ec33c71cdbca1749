// Package fetch implements the starfetch report command.
package fetch

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"starfetch/internal/probe"
	"starfetch/internal/render"
	"starfetch/internal/sysinfo"
	"starfetch/pkg/config"
	"starfetch/pkg/logger"
)

// Selection mirrors the single-section CLI flags.
type Selection struct {
	Packages bool
	CPU      bool
	Time     bool
	Kernel   bool
	Memory   bool
	Swap     bool
	Disk     bool
}

// Metrics returns the first selected section in flag precedence order, or
// MetricAll when nothing is selected.
func (s Selection) Metrics() sysinfo.Metric {
	switch {
	case s.Packages:
		return sysinfo.MetricPackages
	case s.CPU:
		return sysinfo.MetricCPU
	case s.Time:
		return sysinfo.MetricUptime
	case s.Kernel:
		return sysinfo.MetricHost
	case s.Memory:
		return sysinfo.MetricMemory
	case s.Swap:
		return sysinfo.MetricSwap
	case s.Disk:
		return sysinfo.MetricDisk
	default:
		return sysinfo.MetricAll
	}
}

// Run resolves the selected metrics once and writes them to out.
func Run(ctx context.Context, cfg *config.Config, metrics sysinfo.Metric, out io.Writer) error {
	log := logger.Init(cfg.LogLevel)

	timeout, err := cfg.ParseProbeTimeout()
	if err != nil {
		return fmt.Errorf("parsing probe timeout: %w", err)
	}
	sample, err := cfg.ParseCPUSample()
	if err != nil {
		return fmt.Errorf("parsing cpu sample: %w", err)
	}

	collector := sysinfo.New(
		probe.NewExecRunner(timeout),
		sysinfo.NewFacility(),
		log,
		sysinfo.Options{
			CPUSample:    sample,
			ProbeTimeout: timeout,
			Parallel:     cfg.Parallel,
		},
	)

	log.Debug().
		Str("metrics", metrics.String()).
		Dur("probe_timeout", timeout).
		Str("format", cfg.Format).
		Msg("Collecting system info")

	snap, err := collector.Collect(ctx, metrics)
	if err != nil {
		return fmt.Errorf("collecting system info: %w", err)
	}

	if cfg.Format != render.FormatText {
		return render.Encode(out, snap, cfg.Format)
	}
	style := render.Style{Color: cfg.UseColor(isTerminal(out))}
	return render.Text(out, snap, metrics, style)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
