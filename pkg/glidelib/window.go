// Package glidelib implements the core usage-window and pace model for
// glidetop. It normalizes the limit windows reported by the Claude usage
// API and classifies consumption against an ideal linear burn rate.
package glidelib

import (
	"strings"
	"time"
)

// WindowKind identifies a usage-limit window reported by the API.
type WindowKind string

const (
	KindFiveHour       WindowKind = "five_hour"
	KindSevenDay       WindowKind = "seven_day"
	KindSevenDayOpus   WindowKind = "seven_day_opus"
	KindSevenDaySonnet WindowKind = "seven_day_sonnet"
)

// KnownKinds lists the windows the API is known to report, in display order.
// Windows reported under other keys are still accepted and sort after these.
var KnownKinds = []WindowKind{
	KindFiveHour,
	KindSevenDay,
	KindSevenDayOpus,
	KindSevenDaySonnet,
}

var kindLabels = map[WindowKind]string{
	KindFiveHour:       "Current session",
	KindSevenDay:       "All models (7-day)",
	KindSevenDayOpus:   "Opus only (7-day)",
	KindSevenDaySonnet: "Sonnet only (7-day)",
}

var kindDurations = map[WindowKind]time.Duration{
	KindFiveHour:       5 * time.Hour,
	KindSevenDay:       7 * 24 * time.Hour,
	KindSevenDayOpus:   7 * 24 * time.Hour,
	KindSevenDaySonnet: 7 * 24 * time.Hour,
}

// DefaultWindowDuration is assumed for windows reported under a key this
// version does not know about.
const DefaultWindowDuration = 7 * 24 * time.Hour

// Label returns the display name for k. Unknown kinds derive a name from
// the raw key: underscores become spaces and each word is capitalized.
func (k WindowKind) Label() string {
	if label, ok := kindLabels[k]; ok {
		return label
	}
	words := strings.Split(string(k), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Duration returns the length of the limit window for k.
func (k WindowKind) Duration() time.Duration {
	if d, ok := kindDurations[k]; ok {
		return d
	}
	return DefaultWindowDuration
}

// UsageWindow is a single limit window from one snapshot of the usage API.
// Used and Limit are in the same unit; the API reports utilization as a
// percentage, so Limit is normally 100. Used may exceed Limit when the
// account is consuming overage credit.
type UsageWindow struct {
	Kind        WindowKind
	Label       string
	Used        float64
	Limit       float64
	WindowStart time.Time
	WindowEnd   time.Time

	// Priority ranks the window for display degradation; lower values
	// survive longer when terminal space runs out. The snapshot parser
	// assigns priorities in display order.
	Priority int
}

// Remaining returns the unused budget of the window, never negative.
func (w UsageWindow) Remaining() float64 {
	if w.Used >= w.Limit {
		return 0
	}
	return w.Limit - w.Used
}

// Snapshot is one complete poll of the usage API. A new snapshot replaces
// the previous one wholesale; windows are never mutated in place.
type Snapshot struct {
	Windows []UsageWindow

	// Overage billing state from the API's extra_usage block. OverageUsed
	// and OverageLimit are in credits and are zero when the account has no
	// overage billing configured.
	OverageEnabled bool
	OverageUsed    float64
	OverageLimit   float64

	FetchedAt time.Time
}

// Window returns the window of the given kind, or false if the snapshot
// does not carry one.
func (s *Snapshot) Window(kind WindowKind) (UsageWindow, bool) {
	for _, w := range s.Windows {
		if w.Kind == kind {
			return w, true
		}
	}
	return UsageWindow{}, false
}
