// Package region holds the static description of the navigable regions on a
// screen. A Registry has no behavior of its own: it is replaced wholesale by
// Register whenever the shape of the screen changes (a page loads, a tab
// switches feeds) and queried by the focus controller.
package region

import (
	"fmt"
	"sort"

	"github.com/marcus/tvnav/internal/models"
)

// DuplicateRegionError is returned when Register receives two regions with
// the same id.
type DuplicateRegionError struct {
	ID string
}

func (e *DuplicateRegionError) Error() string {
	return fmt.Sprintf("duplicate region id %q", e.ID)
}

// Registry is the ordered set of regions for one mounted screen
type Registry struct {
	ordered []models.Region
	byID    map[string]int
}

// New returns an empty registry
func New() *Registry {
	return &Registry{byID: make(map[string]int)}
}

// FromRegions builds a registry in one step, for tests and static layouts.
func FromRegions(regions ...models.Region) (*Registry, error) {
	r := New()
	if err := r.Register(regions); err != nil {
		return nil, err
	}
	return r, nil
}

// Register replaces the full region list. On error the previous list is kept.
func (r *Registry) Register(regions []models.Region) error {
	seen := make(map[string]bool, len(regions))
	next := make([]models.Region, 0, len(regions))
	for _, reg := range regions {
		if seen[reg.ID] {
			return &DuplicateRegionError{ID: reg.ID}
		}
		seen[reg.ID] = true
		if reg.Kind == models.KindGrid && reg.Columns < 1 {
			reg.Columns = 1
		}
		if reg.ItemCount < 0 {
			reg.ItemCount = 0
		}
		next = append(next, reg)
	}

	// Ties keep registration order so screens can rely on list position
	sort.SliceStable(next, func(i, j int) bool {
		return next[i].Order < next[j].Order
	})

	byID := make(map[string]int, len(next))
	for i, reg := range next {
		byID[reg.ID] = i
	}
	r.ordered = next
	r.byID = byID
	return nil
}

// Lookup returns the region with the given id. Unknown ids are not an error.
func (r *Registry) Lookup(id string) (models.Region, bool) {
	if r == nil {
		return models.Region{}, false
	}
	i, ok := r.byID[id]
	if !ok {
		return models.Region{}, false
	}
	return r.ordered[i], true
}

// Regions returns a copy of the regions in traversal order
func (r *Registry) Regions() []models.Region {
	if r == nil {
		return nil
	}
	out := make([]models.Region, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Len returns the number of registered regions
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.ordered)
}

// Neighbor walks the traversal chain from id in direction dir (+1 down,
// -1 up) and returns the first region for which skip returns false.
func (r *Registry) Neighbor(id string, dir int, skip func(models.Region) bool) (models.Region, bool) {
	if r == nil || dir == 0 {
		return models.Region{}, false
	}
	i, ok := r.byID[id]
	if !ok {
		return models.Region{}, false
	}
	step := 1
	if dir < 0 {
		step = -1
	}
	for j := i + step; j >= 0 && j < len(r.ordered); j += step {
		if skip != nil && skip(r.ordered[j]) {
			continue
		}
		return r.ordered[j], true
	}
	return models.Region{}, false
}

// First returns the first region in order for which skip returns false.
func (r *Registry) First(skip func(models.Region) bool) (models.Region, bool) {
	if r == nil {
		return models.Region{}, false
	}
	for _, reg := range r.ordered {
		if skip != nil && skip(reg) {
			continue
		}
		return reg, true
	}
	return models.Region{}, false
}

// Nearest returns the region closest in order to the given order value,
// ignoring regions for which skip returns true. On a tie the later region
// wins, so focus falls forward when the region it was on disappears.
func (r *Registry) Nearest(order int, skip func(models.Region) bool) (models.Region, bool) {
	if r == nil {
		return models.Region{}, false
	}
	best := -1
	bestDist := 0
	for i, reg := range r.ordered {
		if skip != nil && skip(reg) {
			continue
		}
		d := reg.Order - order
		if d < 0 {
			d = -d
		}
		if best == -1 || d < bestDist || (d == bestDist && reg.Order >= order) {
			best = i
			bestDist = d
		}
	}
	if best == -1 {
		return models.Region{}, false
	}
	return r.ordered[best], true
}

// SetItemCount re-registers the list with one region's item count changed.
// Returns false if the region is unknown.
func (r *Registry) SetItemCount(id string, count int) bool {
	if r == nil {
		return false
	}
	i, ok := r.byID[id]
	if !ok {
		return false
	}
	regions := r.Regions()
	regions[i].ItemCount = count
	// ids are already unique, so Register cannot fail here
	_ = r.Register(regions)
	return true
}

// SetEnabled re-registers the list with one region enabled or disabled.
func (r *Registry) SetEnabled(id string, enabled bool) bool {
	if r == nil {
		return false
	}
	i, ok := r.byID[id]
	if !ok {
		return false
	}
	regions := r.Regions()
	regions[i].Enabled = enabled
	_ = r.Register(regions)
	return true
}
