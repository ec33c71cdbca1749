package sysinfo

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"starfetch/internal/probe"
)

var errFake = errors.New("fake source unavailable")

// fakeFacility answers Facility calls from fixed values. Zero-valued
// pointer or slice fields fail with errFake.
type fakeFacility struct {
	hostname string
	info     *host.InfoStat
	bootTime uint64
	uptime   uint64
	cores    int
	cpus     []cpu.InfoStat
	percent  []float64
	vm       *mem.VirtualMemoryStat
	swap     *mem.SwapMemoryStat
	parts    []disk.PartitionStat
	usage    map[string]*disk.UsageStat
}

func (f *fakeFacility) Hostname() (string, error) {
	if f.hostname == "" {
		return "", errFake
	}
	return f.hostname, nil
}

func (f *fakeFacility) HostInfo(context.Context) (*host.InfoStat, error) {
	if f.info == nil {
		return nil, errFake
	}
	return f.info, nil
}

func (f *fakeFacility) BootTime(context.Context) (uint64, error) {
	if f.bootTime == 0 {
		return 0, errFake
	}
	return f.bootTime, nil
}

func (f *fakeFacility) Uptime(context.Context) (uint64, error) {
	if f.uptime == 0 {
		return 0, errFake
	}
	return f.uptime, nil
}

func (f *fakeFacility) CPUCounts(context.Context) (int, error) {
	if f.cores == 0 {
		return 0, errFake
	}
	return f.cores, nil
}

func (f *fakeFacility) CPUInfo(context.Context) ([]cpu.InfoStat, error) {
	if f.cpus == nil {
		return nil, errFake
	}
	return f.cpus, nil
}

func (f *fakeFacility) CPUPercent(context.Context, time.Duration) ([]float64, error) {
	if f.percent == nil {
		return nil, errFake
	}
	return f.percent, nil
}

func (f *fakeFacility) VirtualMemory(context.Context) (*mem.VirtualMemoryStat, error) {
	if f.vm == nil {
		return nil, errFake
	}
	return f.vm, nil
}

func (f *fakeFacility) SwapMemory(context.Context) (*mem.SwapMemoryStat, error) {
	if f.swap == nil {
		return nil, errFake
	}
	return f.swap, nil
}

func (f *fakeFacility) Partitions(context.Context) ([]disk.PartitionStat, error) {
	if f.parts == nil {
		return nil, errFake
	}
	return f.parts, nil
}

func (f *fakeFacility) Usage(_ context.Context, mountpoint string) (*disk.UsageStat, error) {
	u, ok := f.usage[mountpoint]
	if !ok {
		return nil, errFake
	}
	return u, nil
}

const testNow = 1000003600

// testCollector returns a Collector on a fixed clock with the native
// uptime source disabled and the sysctl probe enabled.
func testCollector(t *testing.T, runner probe.Runner, fac Facility) *Collector {
	t.Helper()
	c := New(runner, fac, zerolog.Nop(), Options{ProbeTimeout: time.Second})
	c.now = func() time.Time { return time.Unix(testNow, 0) }
	c.nativeUptime = func(time.Time) (uint64, error) { return 0, errFake }
	c.sysctlBootTime = true
	c.goos = "darwin"
	c.osRelease = filepath.Join(t.TempDir(), "os-release")
	return c
}
