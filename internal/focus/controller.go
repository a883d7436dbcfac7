// Package focus implements the directional focus state machine shared by
// every screen. A Controller maps (event, prior state, registry) to the next
// FocusState plus an ordered list of side-effect requests. It never mutates
// the state it is given and never fails: out-of-range moves clamp, unknown
// regions are ignored.
package focus

import (
	"github.com/marcus/tvnav/internal/models"
	"github.com/marcus/tvnav/internal/region"
)

// DefaultThreshold is how close, in rows, focus must get to the end of the
// loaded items of a grid before the next page is requested.
const DefaultThreshold = 1.5

// Gate lets the pagination layer veto next-page requests and supplies the
// fetch epoch used to dedupe them.
type Gate interface {
	CanRequest(regionID string) bool
	Epoch(regionID string) uint64
}

type openGate struct{}

func (openGate) CanRequest(string) bool { return true }
func (openGate) Epoch(string) uint64    { return 0 }

// Controller is the focus state machine. It holds only configuration, so one
// Controller can serve any number of screens.
type Controller struct {
	threshold float64
	rowUp     bool
	gate      Gate
}

// Option configures a Controller
type Option func(*Controller)

// WithThreshold sets the pagination threshold in rows. Negative values
// disable page requests entirely.
func WithThreshold(rows float64) Option {
	return func(c *Controller) {
		c.threshold = rows
	}
}

// WithRowUp makes Up inside a grid move one row up before leaving the region
// from its top row. The default is to leave the grid immediately.
func WithRowUp(enabled bool) Option {
	return func(c *Controller) {
		c.rowUp = enabled
	}
}

// WithPageGate installs the gate consulted before emitting RequestNextPage.
func WithPageGate(g Gate) Option {
	return func(c *Controller) {
		if g != nil {
			c.gate = g
		}
	}
}

// New creates a Controller
func New(opts ...Option) *Controller {
	c := &Controller{
		threshold: DefaultThreshold,
		gate:      openGate{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Threshold returns the configured pagination threshold in rows
func (c *Controller) Threshold() float64 {
	return c.threshold
}

// HandleEvent computes the next focus state for one remote press.
func (c *Controller) HandleEvent(ev models.NavigationEvent, state models.FocusState, reg *region.Registry) (models.FocusState, []models.Effect) {
	// Back is screen specific; forward it untouched
	if ev == models.EventBack {
		return state, []models.Effect{models.Back()}
	}

	active, ok := reg.Lookup(state.ActiveRegionID)
	if !ok {
		return state, nil
	}
	index := active.Clamp(state.ActiveIndex)

	switch ev {
	case models.EventSelect:
		if !active.Navigable() {
			return state, nil
		}
		return state, []models.Effect{models.SelectItem(active.ID, index)}

	case models.EventLeft:
		return c.horizontal(state, active, index, -1)

	case models.EventRight:
		return c.horizontal(state, active, index, +1)

	case models.EventDown:
		if active.Kind == models.KindGrid && active.ItemCount > 0 {
			if next := index + active.Cols(); next < active.ItemCount {
				return c.land(state, active, next)
			}
		}
		return c.leave(state, active, reg, +1)

	case models.EventUp:
		if c.rowUp && active.Kind == models.KindGrid && index >= active.Cols() {
			return c.land(state, active, index-active.Cols())
		}
		return c.leave(state, active, reg, -1)
	}

	return state, nil
}

// horizontal moves within a region. Strips clamp at both ends, grids clamp
// inside the current row, single-item regions have nowhere to go.
func (c *Controller) horizontal(state models.FocusState, active models.Region, index, delta int) (models.FocusState, []models.Effect) {
	if active.ItemCount == 0 {
		return state, nil
	}

	next := index
	switch active.Kind {
	case models.KindStrip:
		next = clamp(index+delta, 0, active.ItemCount-1)
	case models.KindGrid:
		row, col := active.Cell(index)
		// A partial last row has fewer columns than the grid
		maxCol := min(active.Cols()-1, active.ItemCount-1-row*active.Cols())
		next = active.IndexAt(row, clamp(col+delta, 0, maxCol))
	}

	if next == index && index == state.ActiveIndex {
		return state, nil
	}
	return c.land(state, active, next)
}

// leave moves focus to the next navigable region in dir. At either end of
// the chain the state is returned unchanged.
func (c *Controller) leave(state models.FocusState, active models.Region, reg *region.Registry, dir int) (models.FocusState, []models.Effect) {
	target, ok := reg.Neighbor(active.ID, dir, notNavigable)
	if !ok {
		return state, nil
	}
	index := 0
	if mem, ok := state.Remembered(target.ID); ok {
		index = target.Clamp(mem)
	}
	return c.land(state, target, index)
}

// land records memory for the region being left and places focus on
// (target, index), emitting a page request when the landing spot is close to
// the end of a grid's loaded data.
func (c *Controller) land(state models.FocusState, target models.Region, index int) (models.FocusState, []models.Effect) {
	next := state.Clone()
	if next.Memory == nil {
		next.Memory = make(map[string]int)
	}
	if state.ActiveRegionID != "" {
		next.Memory[state.ActiveRegionID] = state.ActiveIndex
	}
	next.ActiveRegionID = target.ID
	next.ActiveIndex = index

	var effects []models.Effect
	if mark, ok := c.pageRequest(state, target, index); ok {
		if next.PageMarks == nil {
			next.PageMarks = make(map[string]models.PageMark)
		}
		next.PageMarks[target.ID] = mark
		effects = append(effects, models.RequestNextPage(target.ID))
	}
	return next, effects
}

// pageRequest decides whether landing on index warrants a next page request.
// A request is emitted at most once per (epoch, loaded size) of a region.
func (c *Controller) pageRequest(state models.FocusState, target models.Region, index int) (models.PageMark, bool) {
	if target.Kind != models.KindGrid || target.ItemCount == 0 || c.threshold < 0 {
		return models.PageMark{}, false
	}
	remaining := float64(target.ItemCount - index)
	if remaining > c.threshold*float64(target.Cols()) {
		return models.PageMark{}, false
	}
	if !c.gate.CanRequest(target.ID) {
		return models.PageMark{}, false
	}
	mark := models.PageMark{Epoch: c.gate.Epoch(target.ID), ItemCount: target.ItemCount}
	if prev, ok := state.PageMarks[target.ID]; ok && prev == mark {
		return models.PageMark{}, false
	}
	return mark, true
}

func notNavigable(r models.Region) bool {
	return !r.Navigable()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
