// Package timeutil formats the health endpoint's timestamps for status
// output.
package timeutil

import (
	"fmt"
	"time"
)

// LocalTimeFormat is how status commands print the server start time.
const LocalTimeFormat = "Mon Jan 2 15:04:05 2006"

// FormatUptime rewrites a Go duration string ("72h30m15s") into the
// day-grained form status output uses ("3d 0h 30m 15s"). Unparseable input
// passes through so a newer server's format still displays.
func FormatUptime(uptime string) string {
	d, err := time.ParseDuration(uptime)
	if err != nil {
		return uptime
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

// FormatTime renders an RFC3339 timestamp in local time. Unparseable input
// passes through unchanged.
func FormatTime(timestamp string) string {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return timestamp
	}
	return t.Local().Format(LocalTimeFormat)
}
