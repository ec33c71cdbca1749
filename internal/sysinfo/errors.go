package sysinfo

import "errors"

var (
	// ErrImplausible marks a value outside its sanity bounds.
	ErrImplausible = errors.New("implausible value")
	// ErrUnparseable marks probe output that lacks the expected pattern.
	ErrUnparseable = errors.New("unparseable output")
	// ErrUnavailable is returned when every source of a metric failed.
	ErrUnavailable = errors.New("metric unavailable")
)
