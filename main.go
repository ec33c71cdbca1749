// starfetch: host diagnostics fetch tool
//
// Usage:
//
//	starfetch             full report
//	starfetch -c          CPU section only
//	starfetch --format toml
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"starfetch/cmd/fetch"
	"starfetch/internal/sysinfo"
	"starfetch/pkg/config"
)

const version = "0.2.0"

type flags struct {
	sel      fetch.Selection
	about    bool
	format   string
	logLevel string
	timeout  string
	sample   string
	parallel bool
	color    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "starfetch",
		Short:         "Host diagnostics for the terminal",
		Long:          `Prints hostname, OS, kernel, uptime, package counts, CPU, memory, swap and disk usage.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, &f)
		},
	}

	fl := cmd.Flags()
	fl.BoolVarP(&f.sel.Packages, "packages", "p", false, "Show installed package counts")
	fl.BoolVarP(&f.sel.CPU, "cpu", "c", false, "Show CPU information")
	fl.BoolVarP(&f.sel.Time, "time", "t", false, "Show system uptime")
	fl.BoolVarP(&f.sel.Kernel, "kernel", "k", false, "Show hostname, OS and kernel")
	fl.BoolVarP(&f.sel.Memory, "memory", "m", false, "Show memory usage")
	fl.BoolVarP(&f.sel.Swap, "swap", "s", false, "Show swap usage")
	fl.BoolVarP(&f.sel.Disk, "disk", "d", false, "Show disk usage")
	fl.BoolVarP(&f.about, "about", "a", false, "Show information about starfetch")

	fl.StringVar(&f.format, "format", config.DefaultFormat, "Output format: text, toml or msgpack")
	fl.StringVar(&f.logLevel, "log-level", config.DefaultLogLevel, "Diagnostic log level (trace, debug, info, warn, error, off)")
	fl.StringVar(&f.timeout, "timeout", config.DefaultProbeTimeout, "Timeout for each external probe")
	fl.StringVar(&f.sample, "cpu-sample", config.DefaultCPUSample, "Window over which CPU usage is measured")
	fl.BoolVar(&f.parallel, "parallel", false, "Resolve metric families concurrently")
	fl.StringVar(&f.color, "color", config.ColorAuto, "Colorize output: auto, always or never")

	return cmd
}

func run(cmd *cobra.Command, f *flags) error {
	metrics := f.sel.Metrics()
	// Section flags take precedence over --about, in the order they are declared.
	if f.about && metrics == sysinfo.MetricAll {
		return fetch.About(cmd.OutOrStdout(), version)
	}

	cfg, err := config.Load(os.LookupEnv)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	changed := cmd.Flags().Changed
	if changed("format") {
		cfg.Format = f.format
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("timeout") {
		cfg.ProbeTimeout = f.timeout
	}
	if changed("cpu-sample") {
		cfg.CPUSample = f.sample
	}
	if changed("parallel") {
		cfg.Parallel = f.parallel
	}
	if changed("color") {
		cfg.Color = f.color
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return fetch.Run(ctx, cfg, metrics, cmd.OutOrStdout())
}
