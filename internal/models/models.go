package models

import "fmt"

// RegionKind describes the navigable shape of a region
type RegionKind string

const (
	KindStrip  RegionKind = "strip"
	KindGrid   RegionKind = "grid"
	KindSingle RegionKind = "single"
)

// IsValidKind checks if a region kind is valid
func IsValidKind(k RegionKind) bool {
	return k == KindStrip || k == KindGrid || k == KindSingle
}

// Region is one independently focusable area of a screen
type Region struct {
	ID        string     `json:"id"`
	Kind      RegionKind `json:"kind"`
	ItemCount int        `json:"item_count"`
	Columns   int        `json:"columns,omitempty"`
	Order     int        `json:"order"`
	Enabled   bool       `json:"enabled"`
}

// Navigable reports whether directional traversal may land on the region.
func (r Region) Navigable() bool {
	return r.Enabled && r.ItemCount > 0
}

// Cols returns the column count used for index math. Only grids have more
// than one column.
func (r Region) Cols() int {
	if r.Kind != KindGrid || r.Columns < 1 {
		return 1
	}
	return r.Columns
}

// Rows returns the number of rows spanned by the loaded items.
func (r Region) Rows() int {
	if r.ItemCount <= 0 {
		return 0
	}
	cols := r.Cols()
	return (r.ItemCount + cols - 1) / cols
}

// Cell converts a flat index into (row, col).
func (r Region) Cell(index int) (row, col int) {
	cols := r.Cols()
	return index / cols, index % cols
}

// IndexAt converts (row, col) back into a flat index.
func (r Region) IndexAt(row, col int) int {
	return row*r.Cols() + col
}

// Clamp forces index into [0, ItemCount). Empty regions clamp to 0.
func (r Region) Clamp(index int) int {
	if index >= r.ItemCount {
		index = r.ItemCount - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}

// NavigationEvent is one press on the remote
type NavigationEvent string

const (
	EventUp     NavigationEvent = "up"
	EventDown   NavigationEvent = "down"
	EventLeft   NavigationEvent = "left"
	EventRight  NavigationEvent = "right"
	EventSelect NavigationEvent = "select"
	EventBack   NavigationEvent = "back"
)

// AllEvents returns the six remote events in a stable order
func AllEvents() []NavigationEvent {
	return []NavigationEvent{EventUp, EventDown, EventLeft, EventRight, EventSelect, EventBack}
}

// IsValidEvent checks if an event is one of the six remote events
func IsValidEvent(e NavigationEvent) bool {
	for _, ev := range AllEvents() {
		if ev == e {
			return true
		}
	}
	return false
}

// Vertical reports whether the event moves between regions or rows.
func (e NavigationEvent) Vertical() bool {
	return e == EventUp || e == EventDown
}

// EffectKind identifies a side-effect request produced by a focus transition
type EffectKind string

const (
	EffectSelectItem      EffectKind = "select_item"
	EffectRequestNextPage EffectKind = "request_next_page"
	EffectBack            EffectKind = "back"
)

// Effect is a request for the screen adapter to act on
type Effect struct {
	Kind     EffectKind `json:"kind"`
	RegionID string     `json:"region_id,omitempty"`
	Index    int        `json:"index,omitempty"`
}

// SelectItem builds a SelectItem effect
func SelectItem(regionID string, index int) Effect {
	return Effect{Kind: EffectSelectItem, RegionID: regionID, Index: index}
}

// RequestNextPage builds a RequestNextPage effect
func RequestNextPage(regionID string) Effect {
	return Effect{Kind: EffectRequestNextPage, RegionID: regionID}
}

// Back builds a forwarded Back effect
func Back() Effect {
	return Effect{Kind: EffectBack}
}

func (e Effect) String() string {
	switch e.Kind {
	case EffectSelectItem:
		return fmt.Sprintf("SelectItem(%s, %d)", e.RegionID, e.Index)
	case EffectRequestNextPage:
		return fmt.Sprintf("RequestNextPage(%s)", e.RegionID)
	case EffectBack:
		return "Back"
	default:
		return string(e.Kind)
	}
}

// PageMark records the loaded size of a region at the moment a next page was
// requested for it.
type PageMark struct {
	Epoch     uint64 `json:"epoch"`
	ItemCount int    `json:"item_count"`
}

// FocusState is the focus position on a screen. Values are never mutated in
// place; transitions return a new FocusState.
type FocusState struct {
	ActiveRegionID string              `json:"active_region_id"`
	ActiveIndex    int                 `json:"active_index"`
	Memory         map[string]int      `json:"memory,omitempty"`
	PageMarks      map[string]PageMark `json:"page_marks,omitempty"`
}

// Remembered returns the last focused index recorded for a region
func (s FocusState) Remembered(regionID string) (int, bool) {
	idx, ok := s.Memory[regionID]
	return idx, ok
}

// Clone returns a deep copy so callers can derive a new state safely.
func (s FocusState) Clone() FocusState {
	out := s
	if s.Memory != nil {
		out.Memory = make(map[string]int, len(s.Memory))
		for k, v := range s.Memory {
			out.Memory[k] = v
		}
	}
	if s.PageMarks != nil {
		out.PageMarks = make(map[string]PageMark, len(s.PageMarks))
		for k, v := range s.PageMarks {
			out.PageMarks[k] = v
		}
	}
	return out
}

// Equal compares two states including memory and page marks.
func (s FocusState) Equal(o FocusState) bool {
	if s.ActiveRegionID != o.ActiveRegionID || s.ActiveIndex != o.ActiveIndex {
		return false
	}
	if len(s.Memory) != len(o.Memory) || len(s.PageMarks) != len(o.PageMarks) {
		return false
	}
	for k, v := range s.Memory {
		if ov, ok := o.Memory[k]; !ok || ov != v {
			return false
		}
	}
	for k, v := range s.PageMarks {
		if ov, ok := o.PageMarks[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// PaginationState tracks page loading for one grid region
type PaginationState struct {
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	Loading    bool   `json:"is_loading"`
	Epoch      uint64 `json:"fetch_epoch"`
}

// HasMore reports whether another page may exist. An unknown total (0) is
// treated as "maybe".
func (p PaginationState) HasMore() bool {
	return p.TotalPages == 0 || p.Page < p.TotalPages
}

// KeyboardMode is the glyph set shown by the on-screen keyboard
type KeyboardMode string

const (
	ModeLetters KeyboardMode = "letters"
	ModeNumbers KeyboardMode = "numbers"
	ModeSymbols KeyboardMode = "symbols"
)

// IsValidMode checks if a keyboard mode is valid
func IsValidMode(m KeyboardMode) bool {
	return m == ModeLetters || m == ModeNumbers || m == ModeSymbols
}
