//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly && !windows

package sysinfo

import (
	"errors"
	"time"
)

func nativeUptime(time.Time) (uint64, error) {
	return 0, errors.New("no native uptime API on this platform")
}
