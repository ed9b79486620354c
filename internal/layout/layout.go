// Package layout decides which rows of the dashboard fit a given
// terminal size. It is a pure planner: the TUI feeds it one entry per
// usage window and draws whatever elements come back.
package layout

import (
	"errors"
	"sort"

	"github.com/glidetop/glidetop/pkg/glidelib"
)

// MinCols is the narrowest terminal the dashboard attempts to draw in.
const MinCols = 20

var (
	ErrInsufficientSpace = errors.New("terminal too small")
)

// Entry is one usage window as the layout engine sees it.
type Entry struct {
	// Label names the window, e.g. "Current session".
	Label string
	// Pace carries the computed fractions for the bar and glide marker.
	Pace glidelib.PaceResult
	// Caption is the glide row text, e.g. "Resets in 2 hr 5 min".
	Caption string
	// Priority orders entries for dropping under space pressure; lower
	// values survive longer.
	Priority int
}

// ElementKind selects how a planned row is drawn.
type ElementKind int

const (
	// ElementBar is a one-row progress bar with the glide marker.
	ElementBar ElementKind = iota
	// ElementGlide is the one-row pace caption under a bar.
	ElementGlide
)

// Element is one planned terminal row.
type Element struct {
	Kind  ElementKind
	Entry Entry
}

// Layout plans the dashboard body for a rows-by-cols area. At full
// fidelity every entry gets a bar row and a glide row. Under space
// pressure it degrades in a fixed order: first all glide rows go, then
// the lowest-priority entries, never below two single-row bars when two
// or more entries exist. Anything smaller, or a terminal narrower than
// MinCols, is ErrInsufficientSpace.
func Layout(rows, cols int, entries []Entry) ([]Element, error) {
	if cols < MinCols {
		return nil, ErrInsufficientSpace
	}
	n := len(entries)
	if n == 0 {
		return nil, nil
	}

	if rows >= 2*n {
		elements := make([]Element, 0, 2*n)
		for _, e := range entries {
			elements = append(elements,
				Element{Kind: ElementBar, Entry: e},
				Element{Kind: ElementGlide, Entry: e},
			)
		}
		return elements, nil
	}

	if rows >= n {
		return bars(entries), nil
	}

	minBars := 2
	if n < minBars {
		minBars = n
	}
	if rows < minBars {
		return nil, ErrInsufficientSpace
	}
	return bars(selectByPriority(entries, rows)), nil
}

func bars(entries []Entry) []Element {
	elements := make([]Element, 0, len(entries))
	for _, e := range entries {
		elements = append(elements, Element{Kind: ElementBar, Entry: e})
	}
	return elements
}

// selectByPriority keeps the `keep` most important entries, preserving
// their original order.
func selectByPriority(entries []Entry, keep int) []Entry {
	idx := make([]int, len(entries))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return entries[idx[a]].Priority < entries[idx[b]].Priority
	})
	idx = idx[:keep]
	sort.Ints(idx)

	kept := make([]Entry, 0, keep)
	for _, i := range idx {
		kept = append(kept, entries[i])
	}
	return kept
}
