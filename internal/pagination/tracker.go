// Package pagination coordinates incremental page loading with focus.
//
// The focus controller only emits RequestNextPage; the Tracker decides
// whether a fetch actually starts (at most one in flight per region, none
// past the last page) and whether a completed fetch is still wanted. Every
// Reset bumps the region's fetch epoch, which turns any result issued under
// the old epoch into a no-op. Nothing is ever aborted.
package pagination

import (
	"github.com/marcus/tvnav/internal/models"
	"github.com/marcus/tvnav/internal/region"
)

// Ticket identifies one page fetch
type Ticket struct {
	RegionID string `json:"region_id"`
	Page     int    `json:"page"`
	Epoch    uint64 `json:"epoch"`
}

// Result is the outcome of a page fetch as reported by the screen adapter
type Result struct {
	Ticket     Ticket
	Count      int // items in the fetched page
	TotalPages int // 0 if the backend did not say
}

// Tracker owns the PaginationState of every grid on one screen. It is not
// safe for concurrent use; it lives on the UI event loop.
type Tracker struct {
	states map[string]*models.PaginationState
}

// NewTracker returns an empty tracker
func NewTracker() *Tracker {
	return &Tracker{states: make(map[string]*models.PaginationState)}
}

// Track starts tracking a region. Tracking an already tracked region is a
// no-op so screens can call it on every render pass.
func (t *Tracker) Track(regionID string) {
	if _, ok := t.states[regionID]; !ok {
		t.states[regionID] = &models.PaginationState{}
	}
}

// Tracked reports whether the region is tracked
func (t *Tracker) Tracked(regionID string) bool {
	_, ok := t.states[regionID]
	return ok
}

// State returns a copy of the region's pagination state
func (t *Tracker) State(regionID string) (models.PaginationState, bool) {
	st, ok := t.states[regionID]
	if !ok {
		return models.PaginationState{}, false
	}
	return *st, true
}

// CanRequest reports whether a next page fetch may start now. Untracked
// regions never paginate.
func (t *Tracker) CanRequest(regionID string) bool {
	st, ok := t.states[regionID]
	if !ok {
		return false
	}
	return !st.Loading && st.HasMore()
}

// Epoch returns the region's current fetch epoch
func (t *Tracker) Epoch(regionID string) uint64 {
	if st, ok := t.states[regionID]; ok {
		return st.Epoch
	}
	return 0
}

// Begin starts a fetch for the region's next page. It refuses while another
// fetch for the region is in flight or after the last page.
func (t *Tracker) Begin(regionID string) (Ticket, bool) {
	if !t.CanRequest(regionID) {
		return Ticket{}, false
	}
	st := t.states[regionID]
	st.Loading = true
	return Ticket{RegionID: regionID, Page: st.Page + 1, Epoch: st.Epoch}, true
}

// Current reports whether a ticket was issued under the region's current
// epoch
func (t *Tracker) Current(ticket Ticket) bool {
	st, ok := t.states[ticket.RegionID]
	return ok && st.Epoch == ticket.Epoch
}

// Complete applies a finished fetch to the tracker and the registry. Results
// from an older epoch, or for untracked regions, are dropped and Complete
// returns false. Page 1 replaces the region's item count, later pages append.
func (t *Tracker) Complete(reg *region.Registry, res Result) bool {
	if !t.Current(res.Ticket) {
		return false
	}
	r, ok := reg.Lookup(res.Ticket.RegionID)
	if !ok {
		return false
	}

	st := t.states[res.Ticket.RegionID]
	st.Loading = false
	st.Page = res.Ticket.Page
	if res.TotalPages > 0 {
		st.TotalPages = res.TotalPages
	}
	if res.Count == 0 && res.Ticket.Page > 1 {
		// An empty page past the first means the backend ran dry
		st.TotalPages = st.Page
	}

	count := r.ItemCount + res.Count
	if res.Ticket.Page == 1 {
		count = res.Count
	}
	reg.SetItemCount(r.ID, count)
	return true
}

// Fail clears the loading flag after a failed fetch so it can be retried.
// Stale failures are ignored.
func (t *Tracker) Fail(ticket Ticket) bool {
	if !t.Current(ticket) {
		return false
	}
	t.states[ticket.RegionID].Loading = false
	return true
}

// Reset starts the region over from page 1 under a new epoch. Any fetch in
// flight becomes stale.
func (t *Tracker) Reset(regionID string) uint64 {
	st, ok := t.states[regionID]
	if !ok {
		st = &models.PaginationState{}
		t.states[regionID] = st
	}
	st.Epoch++
	st.Page = 0
	st.TotalPages = 0
	st.Loading = false
	return st.Epoch
}

// Forget stops tracking a region
func (t *Tracker) Forget(regionID string) {
	delete(t.states, regionID)
}
