package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/glidetop/glidetop/internal/layout"
	"github.com/glidetop/glidetop/pkg/glidelib"
	"github.com/glidetop/glidetop/pkg/usageapi"
)

const margin = 2

func (m Model) View() string {
	if m.height < 3 || m.width < layout.MinCols {
		return "Terminal too small"
	}

	lines := []string{m.renderHeader(), ""}
	if m.fetchErr != nil {
		lines = append(lines, m.renderError(), "")
	}

	bodyRows := m.height - len(lines) - 1
	body, ok := m.renderBody(bodyRows)
	if !ok {
		return "Terminal too small"
	}
	lines = append(lines, body...)

	for len(lines) < m.height-1 {
		lines = append(lines, "")
	}
	lines = append(lines, m.renderFooter())
	return strings.Join(lines, "\n")
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("Claude Usage Monitor")
	line := strings.Repeat(" ", margin) + title

	var fetched time.Time
	if m.snapshot != nil {
		fetched = m.snapshot.FetchedAt
	}
	updated := dimStyle.Render(glidelib.FormatUpdatedAgo(fetched, m.now()))

	gap := m.width - margin - lipgloss.Width(line) - lipgloss.Width(updated)
	if gap < 2 {
		return line
	}
	return line + strings.Repeat(" ", gap) + updated
}

func (m Model) renderError() string {
	msg := formatFetchErr(m.fetchErr)
	if inner := m.width - margin*2; len(msg) > inner {
		msg = msg[:inner]
	}
	return strings.Repeat(" ", margin) + errorStyle.Render(msg)
}

func formatFetchErr(err error) string {
	var fetchErr *usageapi.FetchError
	if errors.As(err, &fetchErr) {
		switch fetchErr.Kind {
		case usageapi.KindAuth:
			return fmt.Sprintf("Auth error: %v", fetchErr.Err)
		case usageapi.KindParse:
			return fmt.Sprintf("Parse error: %v (retrying is unlikely to help)", fetchErr.Err)
		default:
			return fmt.Sprintf("Network error: %v", fetchErr.Err)
		}
	}
	return err.Error()
}

func (m Model) renderBody(rows int) ([]string, bool) {
	if rows < 0 {
		rows = 0
	}

	entries := m.entries()
	if len(entries) == 0 {
		var note string
		switch {
		case m.fetchErr != nil:
			return nil, true
		case m.snapshot == nil:
			note = dimStyle.Render("Fetching usage…")
		default:
			note = "No usage data available"
		}
		lines := []string{strings.Repeat(" ", margin) + note}
		if rows < 1 {
			lines = nil
		}
		return lines, true
	}

	elements, err := layout.Layout(rows, m.width, entries)
	if err != nil {
		return nil, false
	}

	labelW, pctW := 0, 0
	for _, el := range elements {
		if n := len(el.Entry.Label); n > labelW {
			labelW = n
		}
		if n := len(percentUsed(el.Entry)); n > pctW {
			pctW = n
		}
	}

	lines := make([]string, 0, len(elements))
	for _, el := range elements {
		switch el.Kind {
		case layout.ElementGlide:
			lines = append(lines, strings.Repeat(" ", margin)+dimStyle.Render(el.Entry.Caption))
		default:
			lines = append(lines, m.renderBarRow(el.Entry, labelW, pctW))
		}
	}
	return lines, true
}

func (m Model) renderBarRow(e layout.Entry, labelW, pctW int) string {
	pct := percentUsed(e)
	barW := m.width - margin*2 - labelW - pctW - 4
	bar := renderBar(barW, e.Pace.FractionUsed, e.Pace.FractionElapsed)

	label := labelStyle.Render(padRight(e.Label, labelW))
	if bar == "" {
		gap := m.width - margin*2 - labelW - pctW
		if gap < 1 {
			gap = 1
		}
		return strings.Repeat(" ", margin) + label + strings.Repeat(" ", gap) + pct
	}
	return strings.Repeat(" ", margin) + label + "  " + bar + "  " + padLeft(pct, pctW)
}

func percentUsed(e layout.Entry) string {
	return fmt.Sprintf("%.0f%% used", e.Pace.FractionUsed*100)
}

func (m Model) renderFooter() string {
	if m.prompting {
		prompt := strings.Repeat(" ", margin) + "interval (seconds): " + m.promptBuf + "█"
		if m.promptErr != "" {
			prompt += "  " + errorStyle.Render(m.promptErr)
		}
		return prompt
	}

	keys := dimStyle.Render("q quit · r refresh · t interval")
	pad := m.width - margin - lipgloss.Width(keys)
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + keys
}

// entries converts the current snapshot into layout entries, appending
// the extra-usage spend bar last so it is the first row to go when the
// terminal shrinks.
func (m Model) entries() []layout.Entry {
	if m.snapshot == nil {
		return nil
	}
	now := m.now()

	entries := make([]layout.Entry, 0, len(m.snapshot.Windows)+1)
	for _, w := range m.snapshot.Windows {
		res := glidelib.ComputePace(w, now, m.snapshot.OverageEnabled)
		entries = append(entries, layout.Entry{
			Label:    w.Label,
			Pace:     res,
			Caption:  windowCaption(w, res, now),
			Priority: w.Priority,
		})
	}

	if m.snapshot.OverageEnabled && m.snapshot.OverageLimit > 0 {
		entries = append(entries, overageEntry(m.snapshot, len(entries)))
	}
	return entries
}

func windowCaption(w glidelib.UsageWindow, res glidelib.PaceResult, now time.Time) string {
	var parts []string
	if reset := glidelib.FormatReset(w.WindowEnd, now); reset != "" {
		parts = append(parts, reset)
	}
	parts = append(parts, paceWord(res.Pace))
	if res.OverageActive {
		parts = append(parts, "extra usage")
	}
	return strings.Join(parts, " · ")
}

func paceWord(p glidelib.Pace) string {
	switch p {
	case glidelib.PaceAhead:
		return "ahead of pace"
	case glidelib.PaceBehind:
		return "behind pace"
	default:
		return "on pace"
	}
}

// overageEntry renders the paid extra-usage budget as a spend bar. The
// marker tracks the fill so the bar stays neutral: spend has no glide
// slope to race against.
func overageEntry(snap *glidelib.Snapshot, priority int) layout.Entry {
	frac := snap.OverageUsed / snap.OverageLimit
	return layout.Entry{
		Label: "Extra usage",
		Pace: glidelib.PaceResult{
			FractionUsed:    frac,
			FractionElapsed: frac,
			Pace:            glidelib.PaceEqual,
		},
		Caption:  fmt.Sprintf("$%.2f of $%.2f extra usage spent", snap.OverageUsed/100, snap.OverageLimit/100),
		Priority: priority,
	}
}

func padRight(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}

func padLeft(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return strings.Repeat(" ", w-len(s)) + s
}
