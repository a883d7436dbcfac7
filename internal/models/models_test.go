package models

import (
	"testing"
)

// TestIsValidKind tests valid and invalid region kinds
func TestIsValidKind(t *testing.T) {
	for _, k := range []RegionKind{KindStrip, KindGrid, KindSingle} {
		if !IsValidKind(k) {
			t.Errorf("Expected %q to be valid kind", k)
		}
	}
	for _, k := range []RegionKind{"", "list", "Grid"} {
		if IsValidKind(k) {
			t.Errorf("Expected %q to be invalid kind", k)
		}
	}
}

func TestRegionGeometry(t *testing.T) {
	tests := []struct {
		name     string
		region   Region
		wantCols int
		wantRows int
	}{
		{"grid exact rows", Region{Kind: KindGrid, ItemCount: 12, Columns: 4}, 4, 3},
		{"grid partial row", Region{Kind: KindGrid, ItemCount: 10, Columns: 4}, 4, 3},
		{"grid empty", Region{Kind: KindGrid, ItemCount: 0, Columns: 4}, 4, 0},
		{"grid zero columns", Region{Kind: KindGrid, ItemCount: 3, Columns: 0}, 1, 3},
		{"strip ignores columns", Region{Kind: KindStrip, ItemCount: 5, Columns: 3}, 1, 5},
		{"single", Region{Kind: KindSingle, ItemCount: 1}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.region.Cols(); got != tt.wantCols {
				t.Errorf("Cols() = %d, want %d", got, tt.wantCols)
			}
			if got := tt.region.Rows(); got != tt.wantRows {
				t.Errorf("Rows() = %d, want %d", got, tt.wantRows)
			}
		})
	}
}

func TestRegionCellRoundTrip(t *testing.T) {
	r := Region{Kind: KindGrid, ItemCount: 10, Columns: 4}
	row, col := r.Cell(9)
	if row != 2 || col != 1 {
		t.Fatalf("Cell(9) = (%d, %d), want (2, 1)", row, col)
	}
	if idx := r.IndexAt(row, col); idx != 9 {
		t.Errorf("IndexAt(2, 1) = %d, want 9", idx)
	}
}

func TestRegionClamp(t *testing.T) {
	r := Region{Kind: KindStrip, ItemCount: 5}
	cases := map[int]int{-3: 0, 0: 0, 4: 4, 5: 4, 99: 4}
	for in, want := range cases {
		if got := r.Clamp(in); got != want {
			t.Errorf("Clamp(%d) = %d, want %d", in, got, want)
		}
	}
	empty := Region{Kind: KindGrid, Columns: 3}
	if got := empty.Clamp(7); got != 0 {
		t.Errorf("empty Clamp(7) = %d, want 0", got)
	}
}

func TestNavigable(t *testing.T) {
	if (Region{Enabled: true, ItemCount: 0}).Navigable() {
		t.Error("empty region should not be navigable")
	}
	if (Region{Enabled: false, ItemCount: 3}).Navigable() {
		t.Error("disabled region should not be navigable")
	}
	if !(Region{Enabled: true, ItemCount: 1}).Navigable() {
		t.Error("enabled region with items should be navigable")
	}
}

func TestFocusStateCloneIsolation(t *testing.T) {
	s := FocusState{
		ActiveRegionID: "grid",
		ActiveIndex:    3,
		Memory:         map[string]int{"tabs": 1},
		PageMarks:      map[string]PageMark{"grid": {Epoch: 1, ItemCount: 20}},
	}
	c := s.Clone()
	c.Memory["tabs"] = 4
	c.PageMarks["grid"] = PageMark{}

	if s.Memory["tabs"] != 1 {
		t.Errorf("clone mutated original memory: %d", s.Memory["tabs"])
	}
	if s.PageMarks["grid"].ItemCount != 20 {
		t.Errorf("clone mutated original page marks")
	}
	if s.Equal(c) {
		t.Error("states with different memory should not be equal")
	}
	if !s.Equal(s.Clone()) {
		t.Error("state should equal its clone")
	}
}

func TestPaginationHasMore(t *testing.T) {
	tests := []struct {
		state PaginationState
		want  bool
	}{
		{PaginationState{}, true},
		{PaginationState{Page: 1, TotalPages: 3}, true},
		{PaginationState{Page: 3, TotalPages: 3}, false},
	}
	for _, tt := range tests {
		if got := tt.state.HasMore(); got != tt.want {
			t.Errorf("%+v.HasMore() = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestEffectString(t *testing.T) {
	if got := SelectItem("grid", 6).String(); got != "SelectItem(grid, 6)" {
		t.Errorf("SelectItem string = %q", got)
	}
	if got := RequestNextPage("grid").String(); got != "RequestNextPage(grid)" {
		t.Errorf("RequestNextPage string = %q", got)
	}
	if got := Back().String(); got != "Back" {
		t.Errorf("Back string = %q", got)
	}
}

func TestIsValidEventAndMode(t *testing.T) {
	for _, e := range AllEvents() {
		if !IsValidEvent(e) {
			t.Errorf("Expected %q to be valid event", e)
		}
	}
	if IsValidEvent("menu") {
		t.Error("menu should not be a valid event")
	}
	if !IsValidMode(ModeSymbols) || IsValidMode("emoji") {
		t.Error("mode validation mismatch")
	}
}
