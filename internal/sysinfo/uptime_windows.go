//go:build windows

package sysinfo

import (
	"time"

	"golang.org/x/sys/windows"
)

func nativeUptime(time.Time) (uint64, error) {
	return windows.GetTickCount64() / 1000, nil
}
