package glidelib

import (
	"strings"
	"testing"
	"time"
)

func TestFormatReset(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		resetsAt time.Time
		want     string
	}{
		{"zero time", time.Time{}, ""},
		{"already past", now.Add(-time.Minute), "Resetting now"},
		{"exactly now", now, "Resetting now"},
		{"under an hour", now.Add(30 * time.Minute), "Resets in 30 min"},
		{"just under an hour", now.Add(59*time.Minute + 59*time.Second), "Resets in 59 min"},
		{"hours and minutes", now.Add(2*time.Hour + 5*time.Minute), "Resets in 2 hr 5 min"},
		{"whole hours", now.Add(3 * time.Hour), "Resets in 3 hr"},
		{"just under a day", now.Add(23*time.Hour + 59*time.Minute), "Resets in 23 hr 59 min"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatReset(tt.resetsAt, now); got != tt.want {
				t.Errorf("FormatReset = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatReset_BeyondADay(t *testing.T) {
	// The exact weekday and clock depend on the local zone, so check shape.
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	got := FormatReset(now.Add(3*24*time.Hour), now)

	if !strings.HasPrefix(got, "Resets ") {
		t.Fatalf("FormatReset = %q, want 'Resets <day> <time>' form", got)
	}
	if !strings.HasSuffix(got, " AM") && !strings.HasSuffix(got, " PM") {
		t.Errorf("FormatReset = %q, want AM/PM suffix", got)
	}
	if strings.Contains(got, "Resets in") {
		t.Errorf("FormatReset = %q, want absolute day form past 24h", got)
	}
}

func TestFormatUpdatedAgo(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		lastFetch time.Time
		want      string
	}{
		{"never fetched", time.Time{}, "Updated: never"},
		{"moments ago", now.Add(-2 * time.Second), "Updated: just now"},
		{"seconds ago", now.Add(-45 * time.Second), "Updated: 45s ago"},
		{"minutes ago", now.Add(-5 * time.Minute), "Updated: 5m ago"},
		{"hours ago", now.Add(-3 * time.Hour), "Updated: 3h ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatUpdatedAgo(tt.lastFetch, now); got != tt.want {
				t.Errorf("FormatUpdatedAgo = %q, want %q", got, tt.want)
			}
		})
	}
}
