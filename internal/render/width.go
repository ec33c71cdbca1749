package render

import (
	"github.com/mattn/go-runewidth"

	"starfetch/internal/sysinfo"
)

// Worst-case lines for values that may grow between estimation and
// printing: up to 3-digit days and 4-digit GB disk figures.
var widthPlaceholders = []string{
	"Uptime: 999 Days 99 Hours 99 Minutes",
	"CPU Usage: 100.00%",
	"Total Disk: 9999.99 GB",
	"Used Disk: 9999.99 GB",
	"Available Disk: 9999.99 GB",
}

// Width returns the display width of the widest line any section of the
// report can print for snap, counting terminal cells rather than bytes.
func Width(snap *sysinfo.Snapshot) int {
	widest := runewidth.StringWidth(hostname(snap))

	for _, l := range Lines(snap, sysinfo.MetricAll) {
		if w := runewidth.StringWidth(l.String()); w > widest {
			widest = w
		}
	}
	for _, p := range widthPlaceholders {
		if w := runewidth.StringWidth(p); w > widest {
			widest = w
		}
	}
	return widest
}
