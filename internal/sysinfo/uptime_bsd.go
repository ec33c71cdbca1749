//go:build darwin || freebsd || netbsd || openbsd || dragonfly

package sysinfo

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

func nativeUptime(now time.Time) (uint64, error) {
	tv, err := unix.SysctlTimeval("kern.boottime")
	if err != nil {
		return 0, fmt.Errorf("sysctl kern.boottime: %w", err)
	}
	sec := int64(tv.Sec)
	if sec <= 0 {
		return 0, fmt.Errorf("kern.boottime %d: %w", sec, ErrImplausible)
	}
	return sinceBoot(now, uint64(sec)), nil
}
