//go:build linux

package sysinfo

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

func nativeUptime(time.Time) (uint64, error) {
	var si unix.Sysinfo_t
	if err := unix.Sysinfo(&si); err != nil {
		return 0, fmt.Errorf("sysinfo(2): %w", err)
	}
	if si.Uptime < 0 {
		return 0, fmt.Errorf("sysinfo(2) uptime %d: %w", si.Uptime, ErrImplausible)
	}
	return uint64(si.Uptime), nil
}
