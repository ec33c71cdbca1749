package render

import (
	"bytes"
	"strings"
	"testing"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/vmihailenco/msgpack/v5"

	"starfetch/internal/sysinfo"
)

func str(s string) *string { return &s }

func sampleSnapshot() *sysinfo.Snapshot {
	uptime := uint64(3600)
	freq := uint64(3504)
	usage := 12.3456
	return &sysinfo.Snapshot{
		Hostname:      str("test-host"),
		OSName:        str("Ubuntu 24.04 LTS"),
		KernelVersion: str("6.8.0-31-generic"),
		UptimeSeconds: &uptime,
		Packages: []sysinfo.PackageCount{
			{Manager: "brew", Count: 42},
			{Manager: "apt", Count: 10},
		},
		CPU: &sysinfo.CPUInfo{
			Cores:        8,
			Brand:        str("AMD Ryzen 7 7840U"),
			FrequencyMHz: &freq,
			UsagePercent: &usage,
		},
		Memory: &sysinfo.MemoryUsage{TotalBytes: 2147483648, UsedBytes: 1 << 30},
		Swap:   &sysinfo.MemoryUsage{TotalBytes: 0, UsedBytes: 0},
		Disk:   &sysinfo.DiskUsage{TotalBytes: 100 << 30, UsedBytes: 60 << 30, AvailableBytes: 40 << 30},
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		secs uint64
		want string
	}{
		{3600, "0 Days 1 Hours 0 Minutes"},
		{59, "0 Days 0 Hours 0 Minutes"},
		{90061, "1 Days 1 Hours 1 Minutes"},
		{sysinfo.MaxPlausibleUptime, "3650 Days 0 Hours 0 Minutes"},
	}
	for _, tc := range tests {
		if got := FormatUptime(tc.secs); got != tc.want {
			t.Errorf("FormatUptime(%d): got %q, want %q", tc.secs, got, tc.want)
		}
	}
}

func TestFormatGB(t *testing.T) {
	if got := FormatGB(2147483648); got != "2.00" {
		t.Errorf("FormatGB: got %s, want 2.00", got)
	}
	if BytesPerGB != 1024.0*1024.0*1024.0 {
		t.Errorf("BytesPerGB: got %v, want 1024^3", BytesPerGB)
	}
}

func TestText_FullReport(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, sampleSnapshot(), sysinfo.MetricAll, Style{}); err != nil {
		t.Fatalf("Text failed: %v", err)
	}

	sep := strings.Repeat("-", len("Uptime: 999 Days 99 Hours 99 Minutes"))
	want := strings.Join([]string{
		"test-host",
		sep,
		"OS: Ubuntu 24.04 LTS",
		"Kernel: 6.8.0-31-generic",
		"Uptime: 0 Days 1 Hours 0 Minutes",
		"Packages: 42 (brew), 10 (apt)",
		"CPU Cores: 8",
		"CPU Brand: AMD Ryzen 7 7840U",
		"CPU Frequency: 3504 MHz",
		"CPU Usage: 12.35%",
		"Total Memory: 2.00 GB",
		"Used Memory: 1.00 GB",
		"Total Swap Memory: 0.00 GB",
		"Used Swap Memory: 0.00 GB",
		"Total Disk: 100.00 GB",
		"Used Disk: 60.00 GB",
		"Available Disk: 40.00 GB",
	}, "\n") + "\n"

	if buf.String() != want {
		t.Errorf("report mismatch:\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestText_SingleSectionWithColor(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, sampleSnapshot(), sysinfo.MetricUptime, Style{Color: true}); err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	want := ColorGreen + "Uptime:" + ColorReset + " " + ColorCyan + "0 Days 1 Hours 0 Minutes" + ColorReset + "\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestText_Unavailable(t *testing.T) {
	var buf bytes.Buffer
	snap := &sysinfo.Snapshot{}
	if err := Text(&buf, snap, sysinfo.MetricUptime|sysinfo.MetricPackages, Style{}); err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	if buf.String() != "Uptime: N/A\n" {
		t.Errorf("got %q, want %q", buf.String(), "Uptime: N/A\n")
	}
}

func TestWidth_Placeholders(t *testing.T) {
	snap := &sysinfo.Snapshot{Hostname: str("h")}
	if got, want := Width(snap), len("Available Disk: 9999.99 GB"); got < want {
		t.Errorf("Width: got %d, want at least %d", got, want)
	}
	if got, want := Width(snap), len("Uptime: 999 Days 99 Hours 99 Minutes"); got != want {
		t.Errorf("Width: got %d, want %d", got, want)
	}
}

func TestWidth_CountsDisplayCells(t *testing.T) {
	snap := sampleSnapshot()
	snap.CPU.Brand = str(strings.Repeat("龍", 20))

	if got, want := Width(snap), len("CPU Brand: ")+40; got != want {
		t.Errorf("Width: got %d, want %d", got, want)
	}
}

func TestWidth_LongHostname(t *testing.T) {
	snap := sampleSnapshot()
	snap.Hostname = str(strings.Repeat("x", 64))
	if got := Width(snap); got != 64 {
		t.Errorf("Width: got %d, want 64", got)
	}
}

func TestEncode_TOML(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sampleSnapshot(), FormatTOML); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var decoded sysinfo.Snapshot
	if err := toml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding toml: %v\n%s", err, buf.String())
	}
	if decoded.Hostname == nil || *decoded.Hostname != "test-host" {
		t.Errorf("Hostname: got %v, want test-host", decoded.Hostname)
	}
	if len(decoded.Packages) != 2 || decoded.Packages[1].Manager != "apt" {
		t.Errorf("Packages: got %+v", decoded.Packages)
	}
	if decoded.Disk == nil || decoded.Disk.UsedBytes != 60<<30 {
		t.Errorf("Disk: got %+v", decoded.Disk)
	}
}

func TestEncode_TOMLOmitsMissing(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, &sysinfo.Snapshot{Hostname: str("only")}, FormatTOML); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if strings.Contains(buf.String(), "uptime_seconds") {
		t.Errorf("missing uptime should be omitted, got:\n%s", buf.String())
	}
}

func TestEncode_Msgpack(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sampleSnapshot(), FormatMsgpack); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var decoded sysinfo.Snapshot
	if err := msgpack.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decoding msgpack: %v", err)
	}
	if decoded.UptimeSeconds == nil || *decoded.UptimeSeconds != 3600 {
		t.Errorf("UptimeSeconds: got %v, want 3600", decoded.UptimeSeconds)
	}
	if decoded.CPU == nil || decoded.CPU.Cores != 8 {
		t.Errorf("CPU: got %+v", decoded.CPU)
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	if err := Encode(&bytes.Buffer{}, sampleSnapshot(), "yaml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
