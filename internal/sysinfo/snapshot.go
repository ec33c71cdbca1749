package sysinfo

import "strings"

// Snapshot is the resolved state of one report invocation. A nil field
// means every source for that metric failed; it is never replaced by zero.
type Snapshot struct {
	Hostname      *string        `msgpack:"hostname" toml:"hostname,omitempty"`
	OSName        *string        `msgpack:"os_name" toml:"os_name,omitempty"`
	KernelVersion *string        `msgpack:"kernel_version" toml:"kernel_version,omitempty"`
	UptimeSeconds *uint64        `msgpack:"uptime_seconds" toml:"uptime_seconds,omitempty"`
	Packages      []PackageCount `msgpack:"packages" toml:"packages,omitempty"`
	CPU           *CPUInfo       `msgpack:"cpu" toml:"cpu,omitempty"`
	Memory        *MemoryUsage   `msgpack:"memory" toml:"memory,omitempty"`
	Swap          *MemoryUsage   `msgpack:"swap" toml:"swap,omitempty"`
	Disk          *DiskUsage     `msgpack:"disk" toml:"disk,omitempty"`
}

// PackageCount is the number of packages one manager reports as installed.
type PackageCount struct {
	Manager string `msgpack:"manager" toml:"manager"`
	Count   uint64 `msgpack:"count" toml:"count"`
}

// CPUInfo describes the processor. Brand and FrequencyMHz are nil when the
// platform lists no CPUs; UsagePercent is nil when sampling failed.
type CPUInfo struct {
	Cores        uint32   `msgpack:"cores" toml:"cores"`
	Brand        *string  `msgpack:"brand" toml:"brand,omitempty"`
	FrequencyMHz *uint64  `msgpack:"frequency_mhz" toml:"frequency_mhz,omitempty"`
	UsagePercent *float64 `msgpack:"usage_percent" toml:"usage_percent,omitempty"`
}

// MemoryUsage is used for both physical memory and swap.
type MemoryUsage struct {
	TotalBytes uint64 `msgpack:"total_bytes" toml:"total_bytes"`
	UsedBytes  uint64 `msgpack:"used_bytes" toml:"used_bytes"`
}

// DiskUsage sums every physical device once.
type DiskUsage struct {
	TotalBytes     uint64 `msgpack:"total_bytes" toml:"total_bytes"`
	UsedBytes      uint64 `msgpack:"used_bytes" toml:"used_bytes"`
	AvailableBytes uint64 `msgpack:"available_bytes" toml:"available_bytes"`
}

// Metric is a set of metric families to resolve.
type Metric uint8

const (
	MetricHost Metric = 1 << iota
	MetricUptime
	MetricPackages
	MetricCPU
	MetricMemory
	MetricSwap
	MetricDisk

	MetricAll = MetricHost | MetricUptime | MetricPackages | MetricCPU | MetricMemory | MetricSwap | MetricDisk
)

var metricNames = []struct {
	m    Metric
	name string
}{
	{MetricHost, "host"},
	{MetricUptime, "uptime"},
	{MetricPackages, "packages"},
	{MetricCPU, "cpu"},
	{MetricMemory, "memory"},
	{MetricSwap, "swap"},
	{MetricDisk, "disk"},
}

// Has reports whether every metric in other is part of m.
func (m Metric) Has(other Metric) bool {
	return m&other == other
}

func (m Metric) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	for _, mn := range metricNames {
		if m.Has(mn.m) {
			parts = append(parts, mn.name)
		}
	}
	return strings.Join(parts, "|")
}

func ptr[T any](v T) *T {
	return &v
}
