package glidelib

import "time"

// Pace classifies consumption against the ideal linear burn rate of a
// window, the "glide slope" that would land exactly at the limit when the
// window resets.
type Pace int

const (
	// PaceEqual means consumption sits exactly on the glide slope.
	PaceEqual Pace = iota
	// PaceAhead means consumption is slower than the glide slope: budget
	// to spare.
	PaceAhead
	// PaceBehind means consumption is faster than the glide slope: the
	// limit will run out before the window resets if the rate holds.
	PaceBehind
)

func (p Pace) String() string {
	switch p {
	case PaceAhead:
		return "ahead"
	case PaceBehind:
		return "behind"
	default:
		return "on pace"
	}
}

// PaceResult carries the normalized fractions and classification for one
// window at a single instant.
type PaceResult struct {
	// FractionUsed is Used/Limit. Not clamped: values above 1.0 indicate
	// consumption past the limit.
	FractionUsed float64
	// FractionElapsed is the elapsed share of the window, clamped to [0, 1].
	FractionElapsed float64
	Pace            Pace
	// OverageActive reports that the account has overage billing enabled
	// and the window is past its limit, i.e. overage credit is burning.
	OverageActive bool
}

// ComputePace derives the pace classification for w at the given instant.
// A window with a non-positive limit reports zero usage and PaceEqual
// rather than failing; the comparison against the glide slope is strict,
// so an exact tie is PaceEqual.
func ComputePace(w UsageWindow, now time.Time, overageEnabled bool) PaceResult {
	r := PaceResult{
		FractionElapsed: fractionElapsed(w.WindowStart, w.WindowEnd, now),
	}
	if w.Limit > 0 {
		r.FractionUsed = w.Used / w.Limit
	}
	switch {
	case w.Limit <= 0:
		r.Pace = PaceEqual
	case r.FractionUsed > r.FractionElapsed:
		r.Pace = PaceBehind
	case r.FractionUsed < r.FractionElapsed:
		r.Pace = PaceAhead
	default:
		r.Pace = PaceEqual
	}
	r.OverageActive = overageEnabled && r.FractionUsed > 1.0
	return r
}

// fractionElapsed returns the elapsed share of [start, end] at now,
// clamped to [0, 1]. A degenerate window (end before start) reports 0.
func fractionElapsed(start, end, now time.Time) float64 {
	total := end.Sub(start)
	if total <= 0 {
		return 0
	}
	f := float64(now.Sub(start)) / float64(total)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// PaceResults computes the pace of every window in the snapshot at the
// given instant, preserving window order.
func (s *Snapshot) PaceResults(now time.Time) []PaceResult {
	out := make([]PaceResult, len(s.Windows))
	for i, w := range s.Windows {
		out[i] = ComputePace(w, now, s.OverageEnabled)
	}
	return out
}
