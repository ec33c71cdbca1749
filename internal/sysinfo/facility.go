package sysinfo

import (
	"context"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Facility is the cross-platform system-information source the resolvers
// query natively, as opposed to shelling out through a probe.Runner.
type Facility interface {
	Hostname() (string, error)
	HostInfo(ctx context.Context) (*host.InfoStat, error)
	BootTime(ctx context.Context) (uint64, error)
	Uptime(ctx context.Context) (uint64, error)
	CPUCounts(ctx context.Context) (int, error)
	CPUInfo(ctx context.Context) ([]cpu.InfoStat, error)
	CPUPercent(ctx context.Context, sample time.Duration) ([]float64, error)
	VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error)
	SwapMemory(ctx context.Context) (*mem.SwapMemoryStat, error)
	Partitions(ctx context.Context) ([]disk.PartitionStat, error)
	Usage(ctx context.Context, mountpoint string) (*disk.UsageStat, error)
}

// gopsutilFacility implements Facility on top of gopsutil.
type gopsutilFacility struct{}

// NewFacility returns the gopsutil-backed Facility.
func NewFacility() Facility {
	return gopsutilFacility{}
}

func (gopsutilFacility) Hostname() (string, error) {
	return os.Hostname()
}

func (gopsutilFacility) HostInfo(ctx context.Context) (*host.InfoStat, error) {
	return host.InfoWithContext(ctx)
}

func (gopsutilFacility) BootTime(ctx context.Context) (uint64, error) {
	return host.BootTimeWithContext(ctx)
}

func (gopsutilFacility) Uptime(ctx context.Context) (uint64, error) {
	return host.UptimeWithContext(ctx)
}

func (gopsutilFacility) CPUCounts(ctx context.Context) (int, error) {
	return cpu.CountsWithContext(ctx, true)
}

func (gopsutilFacility) CPUInfo(ctx context.Context) ([]cpu.InfoStat, error) {
	return cpu.InfoWithContext(ctx)
}

func (gopsutilFacility) CPUPercent(ctx context.Context, sample time.Duration) ([]float64, error) {
	return cpu.PercentWithContext(ctx, sample, false)
}

func (gopsutilFacility) VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error) {
	return mem.VirtualMemoryWithContext(ctx)
}

func (gopsutilFacility) SwapMemory(ctx context.Context) (*mem.SwapMemoryStat, error) {
	return mem.SwapMemoryWithContext(ctx)
}

// Partitions lists every mount. gopsutil's physical-only filter drops nodev
// filesystems such as a container's overlay root, so filtering is left to
// excludedMount.
func (gopsutilFacility) Partitions(ctx context.Context) ([]disk.PartitionStat, error) {
	return disk.PartitionsWithContext(ctx, true)
}

// Usage runs the statfs call in its own goroutine so a hung network mount
// cannot outlive ctx.
func (gopsutilFacility) Usage(ctx context.Context, mountpoint string) (*disk.UsageStat, error) {
	type result struct {
		usage *disk.UsageStat
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		u, err := disk.UsageWithContext(ctx, mountpoint)
		ch <- result{u, err}
	}()

	select {
	case r := <-ch:
		return r.usage, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
