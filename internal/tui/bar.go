package tui

import (
	"math"
	"strings"
)

const markerChar = "|"

// renderBar draws a usage bar of the given width. The filled portion is
// background-colored spaces, blue while within the glide slope and
// yellow from the glide marker onward when usage has overtaken it. The
// marker itself sits at the elapsed-time position so the eye can compare
// fill against it at a glance.
func renderBar(width int, usedFrac, elapsedFrac float64) string {
	if width < 3 {
		return ""
	}

	usagePos := clamp(int(math.Round(usedFrac*float64(width))), 0, width)
	markerPos := clamp(int(math.Round(elapsedFrac*float64(width))), 0, width-1)
	over := usedFrac > elapsedFrac

	var b strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i == markerPos:
			if over {
				b.WriteString(markerOnFillStyle.Render(markerChar))
			} else {
				b.WriteString(markerOnEmptyStyle.Render(markerChar))
			}
		case i < usagePos:
			if over && i >= markerPos {
				b.WriteString(overStyle.Render(" "))
			} else {
				b.WriteString(fillStyle.Render(" "))
			}
		default:
			b.WriteString(emptyStyle.Render(" "))
		}
	}
	return b.String()
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
