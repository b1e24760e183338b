package helpers

import (
	"strings"
	"time"
)

const outputTimeLayout = "2006_01_02-03_04_05_PM"

// DefaultOutputFile names an output file after the time it was requested
func DefaultOutputFile(now time.Time) string {
	return now.Format(outputTimeLayout) + ".txt"
}

// DisplayName trims the script extension for listings
func DisplayName(plugin string) string {
	return strings.TrimSuffix(plugin, ".nse")
}

// Truncate cuts s to at most n bytes
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
