package sysinfo

import (
	"context"
	"math"
	"runtime"
	"strings"
)

func (c *Collector) resolveCPU(ctx context.Context) *CPUInfo {
	info := &CPUInfo{}

	if n, err := c.facility.CPUCounts(ctx); err == nil && n > 0 {
		info.Cores = uint32(n)
	} else {
		c.log.Debug().Err(err).Int("count", n).Msg("Logical CPU count unavailable, using runtime.NumCPU")
		info.Cores = uint32(runtime.NumCPU())
	}

	stats, err := c.facility.CPUInfo(ctx)
	switch {
	case err != nil:
		c.log.Debug().Err(err).Msg("CPU info unavailable")
	case len(stats) > 0:
		if brand := strings.TrimSpace(stats[0].ModelName); brand != "" {
			info.Brand = &brand
		}
		info.FrequencyMHz = ptr(uint64(math.Round(math.Max(stats[0].Mhz, 0))))
	}

	pct, err := c.facility.CPUPercent(ctx, c.opts.CPUSample)
	if err == nil && len(pct) > 0 {
		info.UsagePercent = ptr(math.Min(math.Max(pct[0], 0), 100))
	} else {
		c.log.Debug().Err(err).Msg("CPU usage unavailable")
	}

	return info
}

func (c *Collector) resolveMemory(ctx context.Context) *MemoryUsage {
	vm, err := c.facility.VirtualMemory(ctx)
	if err != nil || vm == nil {
		c.log.Debug().Err(err).Msg("Memory stats unavailable")
		return nil
	}
	return &MemoryUsage{TotalBytes: vm.Total, UsedBytes: vm.Used}
}

func (c *Collector) resolveSwap(ctx context.Context) *MemoryUsage {
	sw, err := c.facility.SwapMemory(ctx)
	if err != nil || sw == nil {
		c.log.Debug().Err(err).Msg("Swap stats unavailable")
		return nil
	}
	return &MemoryUsage{TotalBytes: sw.Total, UsedBytes: sw.Used}
}
