package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"starfetch/internal/probe"
)

// MaxPlausibleUptime is ten years in seconds. Any source reporting more,
// or reporting zero, is treated as a failed source rather than clamped.
const MaxPlausibleUptime uint64 = 10 * 365 * 24 * 3600

// sysctlBootTimeOS lists the platforms exposing kern.boottime via sysctl(8).
var sysctlBootTimeOS = map[string]bool{
	"darwin":    true,
	"freebsd":   true,
	"netbsd":    true,
	"openbsd":   true,
	"dragonfly": true,
}

type uptimeSource struct {
	name string
	get  func(ctx context.Context) (uint64, error)
}

// resolveUptime walks the uptime fallback chain and returns the first
// plausible value.
func (c *Collector) resolveUptime(ctx context.Context) (uint64, error) {
	sources := []uptimeSource{
		{"native", func(context.Context) (uint64, error) { return c.nativeUptime(c.now()) }},
	}
	if c.sysctlBootTime {
		sources = append(sources, uptimeSource{"sysctl", c.uptimeFromSysctl})
	}
	sources = append(sources, uptimeSource{"facility", c.uptimeFromFacility})

	for _, src := range sources {
		secs, err := src.get(ctx)
		if err == nil {
			err = checkUptime(secs)
		}
		if err == nil {
			return secs, nil
		}
		if errors.Is(err, probe.ErrExhausted) {
			return 0, err
		}
		c.log.Debug().Err(err).Str("source", src.name).Msg("Uptime source failed")
	}
	return 0, ErrUnavailable
}

func (c *Collector) uptimeFromSysctl(ctx context.Context) (uint64, error) {
	out, err := c.runner.Run(ctx, "sysctl", "-n", "kern.boottime")
	if err != nil {
		return 0, err
	}
	boot, err := ParseBootTime(out)
	if err != nil {
		return 0, err
	}
	return sinceBoot(c.now(), boot), nil
}

func (c *Collector) uptimeFromFacility(ctx context.Context) (uint64, error) {
	boot, err := c.facility.BootTime(ctx)
	if err == nil {
		secs := sinceBoot(c.now(), boot)
		if checkUptime(secs) == nil {
			return secs, nil
		}
	}
	return c.facility.Uptime(ctx)
}

// ParseBootTime extracts the integer after the first "sec = " token of
// sysctl kern.boottime output, e.g. "{ sec = 1700000000, usec = 52 } ...".
func ParseBootTime(out string) (uint64, error) {
	const token = "sec = "
	i := strings.Index(out, token)
	if i < 0 {
		return 0, fmt.Errorf("boot time: no %q token: %w", token, ErrUnparseable)
	}
	rest := out[i+len(token):]
	end := strings.IndexFunc(rest, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		end = len(rest)
	}
	secs, err := strconv.ParseUint(rest[:end], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("boot time %q: %w", rest[:end], ErrUnparseable)
	}
	return secs, nil
}

func checkUptime(secs uint64) error {
	if secs == 0 || secs > MaxPlausibleUptime {
		return fmt.Errorf("uptime %ds: %w", secs, ErrImplausible)
	}
	return nil
}

// sinceBoot returns now - boot in seconds, or 0 if boot lies in the future.
func sinceBoot(now time.Time, boot uint64) uint64 {
	n := now.Unix()
	if n <= 0 || uint64(n) <= boot {
		return 0
	}
	return uint64(n) - boot
}
