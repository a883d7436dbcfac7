package focus

import (
	"github.com/marcus/tvnav/internal/models"
	"github.com/marcus/tvnav/internal/region"
)

// Step is one event applied by Replay
type Step struct {
	Event   models.NavigationEvent `json:"event"`
	Before  models.FocusState      `json:"before"`
	After   models.FocusState      `json:"after"`
	Effects []models.Effect        `json:"effects,omitempty"`
}

// Changed reports whether the step moved focus
func (s Step) Changed() bool {
	return s.Before.ActiveRegionID != s.After.ActiveRegionID ||
		s.Before.ActiveIndex != s.After.ActiveIndex
}

// Replay applies events in order against a fixed registry and returns the
// final state together with every intermediate step.
func (c *Controller) Replay(events []models.NavigationEvent, state models.FocusState, reg *region.Registry) (models.FocusState, []Step) {
	steps := make([]Step, 0, len(events))
	for _, ev := range events {
		next, effects := c.HandleEvent(ev, state, reg)
		steps = append(steps, Step{
			Event:   ev,
			Before:  state,
			After:   next,
			Effects: effects,
		})
		state = next
	}
	return state, steps
}

// Effects flattens the effects of a replay in emission order.
func Effects(steps []Step) []models.Effect {
	var out []models.Effect
	for _, s := range steps {
		out = append(out, s.Effects...)
	}
	return out
}
