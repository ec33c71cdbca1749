package sysinfo

import (
	"context"
	"strings"
)

// DiskEntry is one mounted filesystem and its capacity.
type DiskEntry struct {
	Device         string
	Mountpoint     string
	Fstype         string
	TotalBytes     uint64
	AvailableBytes uint64
}

var (
	// OS-private volume mounts: macOS sealed system volumes and Windows
	// volume shadow copies.
	privateMountPrefixes = []string{
		"/System/Volumes/",
		`\\?\GLOBALROOT\Device\HarddiskVolumeShadowCopy`,
	}
	// Matched as substrings, so "tmpfs" also covers devtmpfs.
	pseudoFilesystems = []string{"tmpfs", "devfs", "sysfs", "squashfs", "ramfs", "nsfs", "autofs"}
	pseudoMountRoots  = []string{"/dev", "/sys", "/proc"}
)

// excludedMount reports whether a mount never counts towards disk totals.
func excludedMount(mountpoint, fstype string) bool {
	for _, p := range privateMountPrefixes {
		if strings.HasPrefix(mountpoint, p) {
			return true
		}
	}
	for _, fs := range pseudoFilesystems {
		if strings.Contains(fstype, fs) {
			return true
		}
	}
	for _, root := range pseudoMountRoots {
		if mountpoint == root || strings.HasPrefix(mountpoint, root+"/") {
			return true
		}
	}
	return false
}

// SumDisks totals the entries that survive exclusion, counting each device
// once (first mount wins). Available space is clamped to the entry's total
// so used space cannot underflow. It also returns the number of devices
// that contributed.
func SumDisks(entries []DiskEntry) (DiskUsage, int) {
	var usage DiskUsage
	seen := make(map[string]struct{})

	for _, e := range entries {
		if excludedMount(e.Mountpoint, e.Fstype) {
			continue
		}
		if _, dup := seen[e.Device]; dup {
			continue
		}
		seen[e.Device] = struct{}{}

		usage.TotalBytes += e.TotalBytes
		usage.AvailableBytes += min(e.AvailableBytes, e.TotalBytes)
	}

	usage.UsedBytes = usage.TotalBytes - usage.AvailableBytes
	return usage, len(seen)
}

func (c *Collector) resolveDisk(ctx context.Context) *DiskUsage {
	parts, err := c.facility.Partitions(ctx)
	if err != nil {
		c.log.Debug().Err(err).Msg("Listing partitions failed")
		return nil
	}

	var entries []DiskEntry
	for _, p := range parts {
		if excludedMount(p.Mountpoint, p.Fstype) {
			continue
		}

		uctx, cancel := context.WithTimeout(ctx, c.opts.ProbeTimeout)
		u, err := c.facility.Usage(uctx, p.Mountpoint)
		cancel()
		if err != nil || u == nil {
			c.log.Debug().Err(err).Str("mount", p.Mountpoint).Msg("Disk usage unavailable")
			continue
		}

		if u.Free > u.Total {
			c.log.Debug().
				Str("device", p.Device).
				Uint64("total", u.Total).
				Uint64("free", u.Free).
				Msg("Available space exceeds total, clamping")
		}
		entries = append(entries, DiskEntry{
			Device:         p.Device,
			Mountpoint:     p.Mountpoint,
			Fstype:         p.Fstype,
			TotalBytes:     u.Total,
			AvailableBytes: u.Free,
		})
	}

	usage, devices := SumDisks(entries)
	if devices == 0 {
		return nil
	}
	return &usage
}
