package sched

import (
	"errors"
	"sync"
	"time"
)

const (
	// DEF_FOCUSED_INTERVAL is the poll interval while the terminal has focus.
	DEF_FOCUSED_INTERVAL = 30 * time.Second
	// DEF_UNFOCUSED_INTERVAL is the poll interval while it does not.
	DEF_UNFOCUSED_INTERVAL = 600 * time.Second
)

var (
	ErrInvalidInterval = errors.New("refresh interval must be positive")
)

// Scheduler tracks when the next usage poll is due. All methods take or
// derive from caller-supplied instants; the scheduler never reads the
// wall clock itself.
type Scheduler struct {
	mu sync.Mutex

	focusedInterval   time.Duration
	unfocusedInterval time.Duration
	userInterval      time.Duration

	focused       bool
	manualPending bool
	lastPoll      time.Time
}

// New creates a scheduler with the given focused and unfocused poll
// intervals. Non-positive values fall back to the defaults. The terminal
// is assumed focused at startup, and the first IsDue is immediately true.
func New(focused, unfocused time.Duration) *Scheduler {
	if focused <= 0 {
		focused = DEF_FOCUSED_INTERVAL
	}
	if unfocused <= 0 {
		unfocused = DEF_UNFOCUSED_INTERVAL
	}
	return &Scheduler{
		focusedInterval:   focused,
		unfocusedInterval: unfocused,
		focused:           true,
	}
}

// SetFocused records whether the terminal has focus. The effective
// interval changes immediately: a pending wait is re-evaluated against
// the new interval from the same last poll time.
func (s *Scheduler) SetFocused(focused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focused = focused
}

// ForceRefresh makes the next IsDue true regardless of elapsed time.
// The flag is consumed by MarkPolled, so one request triggers exactly
// one poll.
func (s *Scheduler) ForceRefresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manualPending = true
}

// SetUserInterval overrides both focus intervals with a fixed one.
// A zero duration clears the override; a negative one is rejected.
func (s *Scheduler) SetUserInterval(d time.Duration) error {
	if d < 0 {
		return ErrInvalidInterval
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userInterval = d
	return nil
}

// UserInterval returns the active override, or zero when none is set.
func (s *Scheduler) UserInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userInterval
}

// Effective returns the interval currently in force: the user override
// when set, otherwise the focus-dependent interval.
func (s *Scheduler) Effective() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effective()
}

func (s *Scheduler) effective() time.Duration {
	if s.userInterval > 0 {
		return s.userInterval
	}
	if s.focused {
		return s.focusedInterval
	}
	return s.unfocusedInterval
}

// IsDue reports whether a poll should start at the given instant: a
// manual refresh is pending, no poll has happened yet, or the effective
// interval has elapsed since the last one.
func (s *Scheduler) IsDue(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.manualPending {
		return true
	}
	if s.lastPoll.IsZero() {
		return true
	}
	return now.Sub(s.lastPoll) >= s.effective()
}

// MarkPolled records that a poll attempt completed at the given instant,
// successfully or not, and consumes any pending manual refresh.
func (s *Scheduler) MarkPolled(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastPoll = now
	s.manualPending = false
}

// LastPoll returns when the last poll attempt completed, or the zero
// time before the first one.
func (s *Scheduler) LastPoll() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPoll
}

// NextDue returns the instant the next poll becomes due. With a manual
// refresh pending or no poll recorded yet, that is the given instant.
func (s *Scheduler) NextDue(now time.Time) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.manualPending || s.lastPoll.IsZero() {
		return now
	}
	return s.lastPoll.Add(s.effective())
}
