package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"starfetch/internal/probe"
)

// wingetHeaderRows is the number of non-blank header lines winget prints
// above its package table.
const wingetHeaderRows = 2

// PackageManager is one independent package-count probe. Managers are not a
// fallback chain: every manager that reports a positive count is kept.
type PackageManager struct {
	Name  string
	Count func(ctx context.Context, r probe.Runner) (uint64, error)
}

// DefaultManagers returns the probed package managers in report order.
func DefaultManagers() []PackageManager {
	return []PackageManager{
		{Name: "brew", Count: countBrew},
		{Name: "apt", Count: countApt},
		{Name: "winget", Count: countWinget},
		{Name: "yum", Count: countYum},
	}
}

func (c *Collector) resolvePackages(ctx context.Context) ([]PackageCount, error) {
	var counts []PackageCount
	for _, pm := range c.managers {
		n, err := pm.Count(ctx, c.runner)
		if err != nil {
			if errors.Is(err, probe.ErrExhausted) {
				return nil, fmt.Errorf("counting %s packages: %w", pm.Name, err)
			}
			c.log.Debug().Err(err).Str("manager", pm.Name).Msg("Package probe failed")
			continue
		}
		if n == 0 {
			continue
		}
		counts = append(counts, PackageCount{Manager: pm.Name, Count: n})
	}
	return counts, nil
}

func countBrew(ctx context.Context, r probe.Runner) (uint64, error) {
	out, err := r.Run(ctx, "brew", "list", "--formula")
	if err != nil {
		return 0, err
	}
	return uint64(len(outputLines(out))), nil
}

// countApt counts dpkg's "ii" rows. Only when dpkg itself cannot be run
// does it fall back to apt's listing.
func countApt(ctx context.Context, r probe.Runner) (uint64, error) {
	out, err := r.Run(ctx, "dpkg", "-l")
	if err == nil {
		return countLines(out, func(l string) bool { return strings.HasPrefix(l, "ii") }), nil
	}
	if errors.Is(err, probe.ErrExhausted) {
		return 0, err
	}

	out, aptErr := r.Run(ctx, "apt", "list", "--installed")
	if aptErr != nil {
		return 0, errors.Join(err, aptErr)
	}
	// "Listing..." and warnings carry no name/suite separator.
	return countLines(out, func(l string) bool { return strings.Contains(l, "/") }), nil
}

func countWinget(ctx context.Context, r probe.Runner) (uint64, error) {
	out, err := r.Run(ctx, "winget", "list", "--accept-source-agreements")
	if err != nil {
		return 0, err
	}
	n := countLines(out, nonBlank)
	if n <= wingetHeaderRows {
		return 0, nil
	}
	return n - wingetHeaderRows, nil
}

func countYum(ctx context.Context, r probe.Runner) (uint64, error) {
	out, err := r.Run(ctx, "yum", "list", "installed")
	if err != nil {
		return 0, err
	}
	return countLines(out, func(l string) bool {
		return nonBlank(l) && !strings.Contains(strings.ToLower(l), "installed packages")
	}), nil
}

// outputLines splits command output into lines. A trailing newline does not
// start an extra empty line and CRLF endings are accepted.
func outputLines(out string) []string {
	if out == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func countLines(out string, keep func(string) bool) uint64 {
	var n uint64
	for _, l := range outputLines(out) {
		if keep(l) {
			n++
		}
	}
	return n
}

func nonBlank(l string) bool {
	return strings.TrimSpace(l) != ""
}
