// Package sched decides when the dashboard is due for its next usage
// poll. It tracks the focus-dependent refresh interval, a user override,
// and pending manual refreshes, all against caller-supplied clocks so
// the event loop stays in charge of time.
//
// A failed poll counts as a poll: MarkPolled is called on every
// completed attempt, so errors are retried on the normal cadence rather
// than in a tight loop.
package sched
