package render

import "fmt"

// BytesPerGB is 1024^3. Memory, swap and disk all convert with this one
// divisor; 1_073_741_824.0 and 1024.0*1024.0*1024.0 are the same value.
const BytesPerGB = 1_073_741_824.0

// GB converts a byte count to binary gigabytes.
func GB(bytes uint64) float64 {
	return float64(bytes) / BytesPerGB
}

// FormatGB renders a byte count as gigabytes with two decimals, e.g. "2.00".
func FormatGB(bytes uint64) string {
	return fmt.Sprintf("%.2f", GB(bytes))
}

// FormatUptime renders whole days, hours and minutes; seconds are dropped.
func FormatUptime(secs uint64) string {
	days := secs / 86400
	hours := (secs % 86400) / 3600
	minutes := (secs % 3600) / 60
	return fmt.Sprintf("%d Days %d Hours %d Minutes", days, hours, minutes)
}

// FormatPercent renders a usage percentage rounded to two decimals.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}
