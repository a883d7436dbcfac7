package focus

import (
	"testing"

	"github.com/marcus/tvnav/internal/models"
)

func TestInitial(t *testing.T) {
	reg := mustRegistry(t, strip("tabs", 5, 0), single("hero", 0, 1), grid("grid", 12, 4, 2))

	tests := []struct {
		name      string
		preferred string
		want      string
	}{
		{"preferred navigable", "grid", "grid"},
		{"preferred empty falls back", "hero", "tabs"},
		{"preferred unknown falls back", "nope", "tabs"},
		{"no preference", "", "tabs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Initial(reg, tt.preferred)
			if s.ActiveRegionID != tt.want || s.ActiveIndex != 0 {
				t.Errorf("Initial(%q) = %s[%d], want %s[0]", tt.preferred, s.ActiveRegionID, s.ActiveIndex, tt.want)
			}
		})
	}
}

func TestInitialNothingNavigable(t *testing.T) {
	reg := mustRegistry(t, grid("grid", 0, 4, 0), strip("tabs", 0, 1))
	s := Initial(reg, "")
	if s.ActiveRegionID != "grid" {
		t.Errorf("Initial = %q, want grid (first region)", s.ActiveRegionID)
	}
	if !Valid(s, reg) {
		t.Error("initial state on empty screen should be valid")
	}

	empty := mustRegistry(t)
	if s := Initial(empty, ""); s.ActiveRegionID != "" {
		t.Errorf("Initial on empty registry = %q, want empty", s.ActiveRegionID)
	}
}

func TestReconcileGrowthKeepsIndex(t *testing.T) {
	reg := mustRegistry(t, grid("grid", 10, 5, 0))
	state := at("grid", 8)
	reg.SetItemCount("grid", 20)
	got := Reconcile(state, reg)
	if got.ActiveIndex != 8 {
		t.Errorf("index after growth = %d, want 8", got.ActiveIndex)
	}
}

func TestReconcileShrinkClamps(t *testing.T) {
	reg := mustRegistry(t, grid("grid", 10, 5, 0))
	reg.SetItemCount("grid", 4)
	got := Reconcile(at("grid", 8), reg)
	if got.ActiveRegionID != "grid" || got.ActiveIndex != 3 {
		t.Errorf("after shrink = %s[%d], want grid[3]", got.ActiveRegionID, got.ActiveIndex)
	}
}

func TestReconcileEmptiedMovesToNearestSibling(t *testing.T) {
	reg := mustRegistry(t, strip("tabs", 5, 0), grid("grid-0", 10, 5, 1), grid("grid-1", 10, 5, 2))
	state := models.FocusState{ActiveRegionID: "grid-0", ActiveIndex: 4, Memory: map[string]int{"grid-1": 7}}

	reg.SetItemCount("grid-0", 0)
	got := Reconcile(state, reg)
	// tabs and grid-1 are both one step away; the later one wins
	if got.ActiveRegionID != "grid-1" || got.ActiveIndex != 7 {
		t.Errorf("after emptying = %s[%d], want grid-1[7]", got.ActiveRegionID, got.ActiveIndex)
	}
	if mem, _ := got.Remembered("grid-0"); mem != 4 {
		t.Errorf("grid-0 memory = %d, want 4", mem)
	}
}

func TestReconcileDisabledMoves(t *testing.T) {
	reg := mustRegistry(t, strip("tabs", 5, 0), grid("grid", 10, 5, 1))
	reg.SetEnabled("grid", false)
	got := Reconcile(at("grid", 2), reg)
	if got.ActiveRegionID != "tabs" {
		t.Errorf("after disabling = %s, want tabs", got.ActiveRegionID)
	}
}

func TestReconcileRegionRemoved(t *testing.T) {
	reg := mustRegistry(t, strip("tabs", 5, 0), grid("grid", 10, 5, 1))
	_ = reg.Register([]models.Region{strip("tabs", 5, 0)})
	got := Reconcile(at("grid", 2), reg)
	if got.ActiveRegionID != "tabs" || got.ActiveIndex != 0 {
		t.Errorf("after removal = %s[%d], want tabs[0]", got.ActiveRegionID, got.ActiveIndex)
	}
}

func TestReconcileNoSiblingParks(t *testing.T) {
	reg := mustRegistry(t, grid("grid", 10, 5, 0))
	reg.SetItemCount("grid", 0)
	got := Reconcile(at("grid", 6), reg)
	if got.ActiveRegionID != "grid" || got.ActiveIndex != 0 {
		t.Errorf("parked state = %s[%d], want grid[0]", got.ActiveRegionID, got.ActiveIndex)
	}
	if !Valid(got, reg) {
		t.Error("parked state should be valid")
	}
}

func TestReconcileUnchangedReturnsSameState(t *testing.T) {
	reg := mustRegistry(t, strip("tabs", 5, 0))
	state := models.FocusState{ActiveRegionID: "tabs", ActiveIndex: 2, Memory: map[string]int{"x": 1}}
	got := Reconcile(state, reg)
	if !got.Equal(state) {
		t.Errorf("Reconcile changed a valid state: %+v", got)
	}
}
