package output

import (
	"fmt"
	"strings"

	"github.com/marcus/tvnav/internal/events"
	"github.com/marcus/tvnav/internal/focus"
	"github.com/marcus/tvnav/internal/models"
)

// FormatPosition renders a focus position as region[index]
func FormatPosition(s models.FocusState) string {
	if s.ActiveRegionID == "" {
		return "(none)"
	}
	return fmt.Sprintf("%s[%d]", s.ActiveRegionID, s.ActiveIndex)
}

// FormatStep renders one replayed event on a single line:
//
//	3 ↓ down    tabs[0] -> grid-0[0]  RequestNextPage(grid-0)
func FormatStep(n int, step focus.Step) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%3d %s %-7s %s", n, events.Arrow(step.Event), step.Event, FormatPosition(step.Before))
	if step.Changed() {
		fmt.Fprintf(&b, " -> %s", FormatPosition(step.After))
	} else {
		b.WriteString(" (stay)")
	}
	if len(step.Effects) > 0 {
		effs := make([]string, len(step.Effects))
		for i, e := range step.Effects {
			effs[i] = e.String()
		}
		b.WriteString("  " + strings.Join(effs, ", "))
	}
	return b.String()
}

// FormatTrace renders every step of a replay, numbered from 1
func FormatTrace(steps []focus.Step) []string {
	lines := make([]string, len(steps))
	for i, s := range steps {
		lines[i] = FormatStep(i+1, s)
	}
	return lines
}
