// Package render turns a sysinfo.Snapshot into terminal lines or an
// encoded document.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"starfetch/internal/sysinfo"
)

// ANSI color codes for terminal output formatting.
const (
	ColorReset = "\033[0m"
	ColorGreen = "\033[32m"
	ColorCyan  = "\033[36m"
)

const notAvailable = "N/A"

// Style controls terminal decoration.
type Style struct {
	Color bool
}

func (s Style) paint(text, color string) string {
	if !s.Color || text == "" {
		return text
	}
	return color + text + ColorReset
}

// Line is one "Label: value" row of the report. Label may be empty.
type Line struct {
	Label string
	Value string
}

func (l Line) String() string {
	if l.Label == "" {
		return l.Value
	}
	return l.Label + " " + l.Value
}

func (l Line) styled(s Style) string {
	if l.Label == "" {
		return s.paint(l.Value, ColorCyan)
	}
	return s.paint(l.Label, ColorGreen) + " " + s.paint(l.Value, ColorCyan)
}

// Text writes the report for the selected metrics. When the host section
// is selected it is headed by the hostname and a separator sized to the
// widest line any section can produce.
func Text(w io.Writer, snap *sysinfo.Snapshot, metrics sysinfo.Metric, style Style) error {
	var out []string

	if metrics.Has(sysinfo.MetricHost) {
		out = append(out,
			style.paint(hostname(snap), ColorCyan),
			strings.Repeat("-", Width(snap)),
		)
	}
	for _, l := range Lines(snap, metrics) {
		out = append(out, l.styled(style))
	}

	for _, line := range out {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return nil
}

// Lines returns the labelled rows of the selected sections, in report
// order. The hostname header is not included.
func Lines(snap *sysinfo.Snapshot, metrics sysinfo.Metric) []Line {
	var lines []Line
	if metrics.Has(sysinfo.MetricHost) {
		lines = append(lines, hostLines(snap)...)
	}
	if metrics.Has(sysinfo.MetricUptime) {
		lines = append(lines, uptimeLine(snap))
	}
	if metrics.Has(sysinfo.MetricPackages) {
		lines = append(lines, packageLines(snap)...)
	}
	if metrics.Has(sysinfo.MetricCPU) {
		lines = append(lines, cpuLines(snap)...)
	}
	if metrics.Has(sysinfo.MetricMemory) {
		lines = append(lines, memoryLines(snap.Memory, "Total Memory:", "Used Memory:")...)
	}
	if metrics.Has(sysinfo.MetricSwap) {
		lines = append(lines, memoryLines(snap.Swap, "Total Swap Memory:", "Used Swap Memory:")...)
	}
	if metrics.Has(sysinfo.MetricDisk) {
		lines = append(lines, diskLines(snap)...)
	}
	return lines
}

func hostname(snap *sysinfo.Snapshot) string {
	if snap.Hostname == nil {
		return "Unknown"
	}
	return *snap.Hostname
}

func hostLines(snap *sysinfo.Snapshot) []Line {
	var lines []Line
	if snap.OSName != nil {
		lines = append(lines, Line{"OS:", *snap.OSName})
	}
	if snap.KernelVersion != nil {
		lines = append(lines, Line{"Kernel:", *snap.KernelVersion})
	}
	return lines
}

func uptimeLine(snap *sysinfo.Snapshot) Line {
	if snap.UptimeSeconds == nil {
		return Line{"Uptime:", notAvailable}
	}
	return Line{"Uptime:", FormatUptime(*snap.UptimeSeconds)}
}

// packageLines is empty when no manager reported packages.
func packageLines(snap *sysinfo.Snapshot) []Line {
	if len(snap.Packages) == 0 {
		return nil
	}
	parts := make([]string, 0, len(snap.Packages))
	for _, p := range snap.Packages {
		parts = append(parts, fmt.Sprintf("%d (%s)", p.Count, p.Manager))
	}
	return []Line{{"Packages:", strings.Join(parts, ", ")}}
}

func cpuLines(snap *sysinfo.Snapshot) []Line {
	c := snap.CPU
	if c == nil {
		return []Line{{"CPU:", notAvailable}}
	}

	lines := []Line{{"CPU Cores:", strconv.FormatUint(uint64(c.Cores), 10)}}
	if c.Brand != nil {
		lines = append(lines, Line{"CPU Brand:", *c.Brand})
	}
	if c.FrequencyMHz != nil {
		lines = append(lines, Line{"CPU Frequency:", fmt.Sprintf("%d MHz", *c.FrequencyMHz)})
	}
	usage := notAvailable
	if c.UsagePercent != nil {
		usage = FormatPercent(*c.UsagePercent)
	}
	return append(lines, Line{"CPU Usage:", usage})
}

func memoryLines(m *sysinfo.MemoryUsage, totalLabel, usedLabel string) []Line {
	if m == nil {
		return []Line{{totalLabel, notAvailable}, {usedLabel, notAvailable}}
	}
	return []Line{
		{totalLabel, FormatGB(m.TotalBytes) + " GB"},
		{usedLabel, FormatGB(m.UsedBytes) + " GB"},
	}
}

func diskLines(snap *sysinfo.Snapshot) []Line {
	d := snap.Disk
	if d == nil {
		return []Line{{"Total Disk:", notAvailable}, {"Used Disk:", notAvailable}, {"Available Disk:", notAvailable}}
	}
	return []Line{
		{"Total Disk:", FormatGB(d.TotalBytes) + " GB"},
		{"Used Disk:", FormatGB(d.UsedBytes) + " GB"},
		{"Available Disk:", FormatGB(d.AvailableBytes) + " GB"},
	}
}
