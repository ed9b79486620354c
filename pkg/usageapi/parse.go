package usageapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/glidetop/glidetop/pkg/glidelib"
)

// windowStatus is one limit entry in the usage response. Pointer fields
// distinguish absent values from zero values.
type windowStatus struct {
	Utilization *float64 `json:"utilization"`
	ResetsAt    *string  `json:"resets_at"`
}

// extraUsageStatus is the overage billing block of the response. Credits
// are reported in cents.
type extraUsageStatus struct {
	IsEnabled    bool    `json:"is_enabled"`
	MonthlyLimit float64 `json:"monthly_limit"`
	UsedCredits  float64 `json:"used_credits"`
}

// rawEntry preserves the order of top-level response keys, which the
// parser keeps for windows it does not recognize.
type rawEntry struct {
	key string
	raw json.RawMessage
}

func decodeTopLevel(data []byte) ([]rawEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}
	var entries []rawEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		entries = append(entries, rawEntry{key: key, raw: raw})
	}
	// Consume the closing brace so truncated bodies surface as errors.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return entries, nil
}

// ParseSnapshot converts a usage response body into a snapshot at the
// given instant. Parsing is deliberately tolerant: entries that are not
// objects or carry neither utilization nor resets_at are skipped, a
// missing utilization counts as zero, and windows under unrecognized keys
// are kept with a derived label and the default window duration. Only a
// body that is not a JSON object at all is an error.
func ParseSnapshot(data []byte, now time.Time) (*glidelib.Snapshot, error) {
	entries, err := decodeTopLevel(data)
	if err != nil {
		return nil, parseErr(err)
	}

	byKey := make(map[string]json.RawMessage, len(entries))
	for _, e := range entries {
		byKey[e.key] = e.raw
	}

	snap := &glidelib.Snapshot{FetchedAt: now}

	seen := make(map[string]bool)
	for _, kind := range glidelib.KnownKinds {
		raw, ok := byKey[string(kind)]
		if !ok {
			continue
		}
		seen[string(kind)] = true
		if w, ok := parseWindow(kind, raw, now); ok {
			w.Priority = len(snap.Windows)
			snap.Windows = append(snap.Windows, w)
		}
	}

	for _, e := range entries {
		if seen[e.key] || e.key == "extra_usage" {
			continue
		}
		if w, ok := parseWindow(glidelib.WindowKind(e.key), e.raw, now); ok {
			w.Priority = len(snap.Windows)
			snap.Windows = append(snap.Windows, w)
		}
	}

	if raw, ok := byKey["extra_usage"]; ok {
		var extra extraUsageStatus
		if err := json.Unmarshal(raw, &extra); err == nil {
			snap.OverageEnabled = extra.IsEnabled
			snap.OverageUsed = extra.UsedCredits
			snap.OverageLimit = extra.MonthlyLimit
		}
	}

	return snap, nil
}

// parseWindow normalizes one limit entry. The API reports utilization as
// a percentage, so Used is the percentage and Limit is 100. The window
// start is reconstructed from the reset time and the kind's duration.
func parseWindow(kind glidelib.WindowKind, raw json.RawMessage, now time.Time) (glidelib.UsageWindow, bool) {
	var status windowStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		return glidelib.UsageWindow{}, false
	}
	if status.Utilization == nil && status.ResetsAt == nil {
		return glidelib.UsageWindow{}, false
	}

	w := glidelib.UsageWindow{
		Kind:  kind,
		Label: kind.Label(),
		Limit: 100,
	}
	if status.Utilization != nil {
		w.Used = *status.Utilization
	}
	if status.ResetsAt != nil {
		if end, err := time.Parse(time.RFC3339, *status.ResetsAt); err == nil {
			w.WindowEnd = end
			w.WindowStart = end.Add(-kind.Duration())
		}
	}
	return w, true
}
