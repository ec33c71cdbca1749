// Package sysinfo resolves host metrics through ordered fallback chains over
// native OS APIs, gopsutil and external command probes.
package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"starfetch/internal/probe"
)

const osReleasePath = "/etc/os-release"

// Options tunes a Collector.
type Options struct {
	// CPUSample is the window over which CPU usage is measured.
	CPUSample time.Duration
	// ProbeTimeout bounds each disk usage lookup.
	ProbeTimeout time.Duration
	// Parallel resolves metric families concurrently.
	Parallel bool
}

// Collector builds Snapshots. It holds no state between Collect calls.
type Collector struct {
	runner   probe.Runner
	facility Facility
	log      zerolog.Logger
	opts     Options
	managers []PackageManager

	now            func() time.Time
	nativeUptime   func(now time.Time) (uint64, error)
	sysctlBootTime bool
	goos           string
	osRelease      string
}

// New returns a Collector probing through runner and facility.
func New(runner probe.Runner, facility Facility, log zerolog.Logger, opts Options) *Collector {
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = probe.DefaultTimeout
	}
	return &Collector{
		runner:         runner,
		facility:       facility,
		log:            log,
		opts:           opts,
		managers:       DefaultManagers(),
		now:            time.Now,
		nativeUptime:   nativeUptime,
		sysctlBootTime: sysctlBootTimeOS[runtime.GOOS],
		goos:           runtime.GOOS,
		osRelease:      osReleasePath,
	}
}

// task resolves one metric family into a private result and returns the
// function that stores it in the snapshot.
type task func(ctx context.Context) (func(*Snapshot), error)

// Collect resolves the requested metrics into a fresh Snapshot. Metric
// failures never surface as errors; only an inability to spawn processes
// at all does.
func (c *Collector) Collect(ctx context.Context, metrics Metric) (*Snapshot, error) {
	tasks := c.tasks(metrics)
	results := make([]func(*Snapshot), len(tasks))

	if c.opts.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i, t := range tasks {
			i, t := i, t
			g.Go(func() error {
				apply, err := t(gctx)
				results[i] = apply
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, t := range tasks {
			apply, err := t(ctx)
			if err != nil {
				return nil, err
			}
			results[i] = apply
		}
	}

	snap := &Snapshot{}
	for _, apply := range results {
		apply(snap)
	}

	c.log.Debug().Str("metrics", metrics.String()).Bool("parallel", c.opts.Parallel).Msg("Snapshot collected")
	return snap, nil
}

func (c *Collector) tasks(metrics Metric) []task {
	var tasks []task

	if metrics.Has(MetricHost) {
		tasks = append(tasks, func(ctx context.Context) (func(*Snapshot), error) {
			hostname, osName, kernel := c.resolveHost(ctx)
			return func(s *Snapshot) {
				s.Hostname, s.OSName, s.KernelVersion = hostname, osName, kernel
			}, nil
		})
	}
	if metrics.Has(MetricUptime) {
		tasks = append(tasks, func(ctx context.Context) (func(*Snapshot), error) {
			secs, err := c.resolveUptime(ctx)
			if errors.Is(err, probe.ErrExhausted) {
				return nil, fmt.Errorf("resolving uptime: %w", err)
			}
			if err != nil {
				return func(*Snapshot) {}, nil
			}
			return func(s *Snapshot) { s.UptimeSeconds = &secs }, nil
		})
	}
	if metrics.Has(MetricPackages) {
		tasks = append(tasks, func(ctx context.Context) (func(*Snapshot), error) {
			counts, err := c.resolvePackages(ctx)
			if err != nil {
				return nil, err
			}
			return func(s *Snapshot) { s.Packages = counts }, nil
		})
	}
	if metrics.Has(MetricCPU) {
		tasks = append(tasks, func(ctx context.Context) (func(*Snapshot), error) {
			info := c.resolveCPU(ctx)
			return func(s *Snapshot) { s.CPU = info }, nil
		})
	}
	if metrics.Has(MetricMemory) {
		tasks = append(tasks, func(ctx context.Context) (func(*Snapshot), error) {
			m := c.resolveMemory(ctx)
			return func(s *Snapshot) { s.Memory = m }, nil
		})
	}
	if metrics.Has(MetricSwap) {
		tasks = append(tasks, func(ctx context.Context) (func(*Snapshot), error) {
			sw := c.resolveSwap(ctx)
			return func(s *Snapshot) { s.Swap = sw }, nil
		})
	}
	if metrics.Has(MetricDisk) {
		tasks = append(tasks, func(ctx context.Context) (func(*Snapshot), error) {
			d := c.resolveDisk(ctx)
			return func(s *Snapshot) { s.Disk = d }, nil
		})
	}

	return tasks
}

// resolveHost retrieves hostname, OS name and kernel version.
func (c *Collector) resolveHost(ctx context.Context) (hostname, osName, kernel *string) {
	info, err := c.facility.HostInfo(ctx)
	if err != nil {
		c.log.Debug().Err(err).Msg("Host info unavailable")
		info = nil
	}

	if name, err := c.facility.Hostname(); err == nil && name != "" {
		hostname = &name
	} else if info != nil && info.Hostname != "" {
		hostname = ptr(info.Hostname)
	}

	if info != nil {
		if info.Platform != "" {
			name := info.Platform
			if info.PlatformVersion != "" {
				name += " " + info.PlatformVersion
			}
			osName = &name
		}
		if info.KernelVersion != "" {
			kernel = ptr(info.KernelVersion)
		}
	}

	if c.goos == "linux" {
		if prettyName := readOSReleasePrettyName(c.osRelease); prettyName != "" {
			osName = &prettyName
		}
	}
	if osName == nil {
		osName = ptr(c.goos)
	}

	return hostname, osName, kernel
}

// readOSReleasePrettyName parses an os-release file for the PRETTY_NAME field.
func readOSReleasePrettyName(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "PRETTY_NAME=") {
			val := strings.TrimPrefix(line, "PRETTY_NAME=")
			val = strings.Trim(strings.TrimSpace(val), "\"'")
			return val
		}
	}
	return ""
}
