package glidelib

import (
	"fmt"
	"time"
)

// FormatReset renders the reset caption for a window ending at resetsAt.
// Within an hour only minutes are shown, within a day hours and minutes,
// and beyond that the local weekday and clock time of the reset.
func FormatReset(resetsAt, now time.Time) string {
	if resetsAt.IsZero() {
		return ""
	}
	remaining := resetsAt.Sub(now)
	if remaining <= 0 {
		return "Resetting now"
	}
	mins := int(remaining / time.Minute)
	if remaining < time.Hour {
		return fmt.Sprintf("Resets in %d min", mins)
	}
	if remaining < 24*time.Hour {
		hrs := mins / 60
		if m := mins % 60; m > 0 {
			return fmt.Sprintf("Resets in %d hr %d min", hrs, m)
		}
		return fmt.Sprintf("Resets in %d hr", hrs)
	}
	local := resetsAt.Local()
	hour := local.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	ampm := "AM"
	if local.Hour() >= 12 {
		ampm = "PM"
	}
	return fmt.Sprintf("Resets %s %d:%02d %s", local.Format("Mon"), hour, local.Minute(), ampm)
}

// FormatUpdatedAgo renders the header caption for the age of the last
// successful fetch. A zero lastFetch means no fetch has succeeded yet.
func FormatUpdatedAgo(lastFetch, now time.Time) string {
	if lastFetch.IsZero() {
		return "Updated: never"
	}
	elapsed := now.Sub(lastFetch)
	switch {
	case elapsed < 5*time.Second:
		return "Updated: just now"
	case elapsed < time.Minute:
		return fmt.Sprintf("Updated: %ds ago", int(elapsed/time.Second))
	case elapsed < time.Hour:
		return fmt.Sprintf("Updated: %dm ago", int(elapsed/time.Minute))
	default:
		return fmt.Sprintf("Updated: %dh ago", int(elapsed/time.Hour))
	}
}
