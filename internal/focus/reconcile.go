package focus

import (
	"github.com/marcus/tvnav/internal/models"
	"github.com/marcus/tvnav/internal/region"
)

// Initial returns the focus state for a freshly mounted screen. The preferred
// region wins if it is navigable, otherwise the first navigable region in
// order. A screen with nothing navigable still gets an active region (the
// first one) so that Reconcile can move focus once data arrives.
func Initial(reg *region.Registry, preferredID string) models.FocusState {
	if r, ok := reg.Lookup(preferredID); ok && r.Navigable() {
		return models.FocusState{ActiveRegionID: r.ID}
	}
	if r, ok := reg.First(notNavigable); ok {
		return models.FocusState{ActiveRegionID: r.ID}
	}
	if r, ok := reg.First(nil); ok {
		return models.FocusState{ActiveRegionID: r.ID}
	}
	return models.FocusState{}
}

// Reconcile repairs a focus state after the registry was re-registered.
//
// Growth of the active region never moves the index. Shrinking clamps it.
// When the active region disappears, is disabled or becomes empty, focus
// moves to the nearest navigable sibling and restores that region's memory.
func Reconcile(state models.FocusState, reg *region.Registry) models.FocusState {
	active, ok := reg.Lookup(state.ActiveRegionID)
	if ok && active.Navigable() {
		clamped := active.Clamp(state.ActiveIndex)
		if clamped == state.ActiveIndex {
			return state
		}
		next := state.Clone()
		next.ActiveIndex = clamped
		return next
	}

	var target models.Region
	var found bool
	if ok {
		target, found = reg.Nearest(active.Order, func(r models.Region) bool {
			return r.ID == active.ID || !r.Navigable()
		})
	} else {
		target, found = reg.First(notNavigable)
	}

	if !found {
		// Nothing to move to; park on the (empty) active region or the
		// first region so the invariant "one region is active" holds.
		if ok {
			if state.ActiveIndex == 0 {
				return state
			}
			next := state.Clone()
			next.ActiveIndex = 0
			return next
		}
		kept := state.Clone()
		fresh := Initial(reg, "")
		fresh.Memory, fresh.PageMarks = kept.Memory, kept.PageMarks
		return fresh
	}

	next := state.Clone()
	if next.Memory == nil {
		next.Memory = make(map[string]int)
	}
	if state.ActiveRegionID != "" {
		next.Memory[state.ActiveRegionID] = state.ActiveIndex
	}
	next.ActiveRegionID = target.ID
	next.ActiveIndex = 0
	if mem, ok := state.Remembered(target.ID); ok {
		next.ActiveIndex = target.Clamp(mem)
	}
	return next
}

// Valid reports whether state satisfies the focus invariant against reg:
// the active region exists and the index lies inside it, or the region is
// empty and the index is 0.
func Valid(state models.FocusState, reg *region.Registry) bool {
	if reg.Len() == 0 {
		return state.ActiveRegionID == ""
	}
	active, ok := reg.Lookup(state.ActiveRegionID)
	if !ok {
		return false
	}
	if active.ItemCount == 0 {
		return state.ActiveIndex == 0
	}
	return state.ActiveIndex >= 0 && state.ActiveIndex < active.ItemCount
}
