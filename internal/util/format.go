package util

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration as "2h 30m" or "45m"
func FormatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatHours renders a fractional hour count as "6.5"
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.1f", hours)
}

// FormatClock renders a time as a short clock label, e.g. "09:07:31"
func FormatClock(t time.Time) string {
	return t.Format("15:04:05")
}

// FormatPercent renders a 0.0-1.0 fraction as "47%"
func FormatPercent(fraction float64) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return fmt.Sprintf("%.0f%%", fraction*100)
}
