package util

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatBytes renders a drive size the way vendors label them ("1.0 TB").
// Zero renders as "-".
func FormatBytes(b uint64) string {
	if b == 0 {
		return "-"
	}
	return humanize.Bytes(b)
}

// FormatIBytes renders a size in binary units ("931 GiB").
func FormatIBytes(b uint64) string {
	if b == 0 {
		return "-"
	}
	return humanize.IBytes(b)
}

// FormatPowerOn renders SMART power-on seconds as "412d 7h".
func FormatPowerOn(seconds uint64) string {
	if seconds == 0 {
		return "-"
	}
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	if days == 0 {
		return fmt.Sprintf("%dh %dm", hours, (seconds%3600)/60)
	}
	return fmt.Sprintf("%sd %dh", humanize.Comma(int64(days)), hours)
}

// FormatRPM renders a rotation rate; 0 means solid state or unknown.
func FormatRPM(rpm int32) string {
	switch {
	case rpm > 0:
		return fmt.Sprintf("%s rpm", humanize.Comma(int64(rpm)))
	case rpm < 0:
		return "rotating"
	default:
		return "SSD"
	}
}

// YesNo renders a boolean flag.
func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// OrDash returns s, or "-" when s is blank.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// Truncate shortens s to maxLen runes, marking the cut with "…".
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 || len(r) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return "…"
	}
	return string(r[:maxLen-1]) + "…"
}
