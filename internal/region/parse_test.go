package region

import (
	"errors"
	"testing"

	"github.com/marcus/tvnav/internal/models"
)

func TestParse(t *testing.T) {
	regions, err := Parse("tabs:strip:5, hero:single:0:off ,grid-0:grid:23:5")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []models.Region{
		{ID: "tabs", Kind: models.KindStrip, ItemCount: 5, Order: 0, Enabled: true},
		{ID: "hero", Kind: models.KindSingle, ItemCount: 0, Order: 1, Enabled: false},
		{ID: "grid-0", Kind: models.KindGrid, ItemCount: 23, Columns: 5, Order: 2, Enabled: true},
	}
	if len(regions) != len(want) {
		t.Fatalf("got %d regions, want %d", len(regions), len(want))
	}
	for i := range want {
		if regions[i] != want[i] {
			t.Errorf("regions[%d] = %+v, want %+v", i, regions[i], want[i])
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"missing count", "tabs:strip"},
		{"bad kind", "tabs:carousel:3"},
		{"negative count", "grid:grid:-1"},
		{"bad columns", "grid:grid:4:x"},
		{"empty id", ":grid:4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse(%q) error = %v, want *ParseError", tt.input, err)
			}
		})
	}
}

func TestParseFeedsRegistry(t *testing.T) {
	regions, err := Parse("a:grid:4:2,a:strip:1")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	var dup *DuplicateRegionError
	if _, err := FromRegions(regions...); !errors.As(err, &dup) {
		t.Errorf("expected duplicate id error, got %v", err)
	}
}
