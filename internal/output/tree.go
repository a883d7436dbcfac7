package output

import (
	"fmt"
	"strings"

	"github.com/marcus/tvnav/internal/models"
)

// TreeNode represents a node in a tree structure for rendering
type TreeNode struct {
	ID       string
	Title    string
	Detail   string
	Active   bool
	Disabled bool
	Children []TreeNode
}

// TreeRenderOptions configures tree rendering behavior
type TreeRenderOptions struct {
	MaxDepth   int  // 0 = unlimited
	ShowDetail bool // Whether to show the detail column
	ShowMarks  bool // Whether to show focus/disabled marks
}

// mark returns the focus or disabled indicator of a node
func mark(n TreeNode) string {
	switch {
	case n.Active:
		return " \u25cf" // ●
	case n.Disabled:
		return " \u2717" // ✗
	default:
		return ""
	}
}

// RenderTree renders a tree starting from a single root node
// Returns the complete tree as a string (without the root - just children)
func RenderTree(root TreeNode, opts TreeRenderOptions) string {
	lines := renderTreeNodes(root.Children, opts, 0, "")
	return strings.Join(lines, "\n")
}

// RenderTreeLines renders multiple root nodes and returns individual lines
func RenderTreeLines(roots []TreeNode, opts TreeRenderOptions) []string {
	return renderTreeNodes(roots, opts, 0, "")
}

func renderTreeNodes(nodes []TreeNode, opts TreeRenderOptions, depth int, prefix string) []string {
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return nil
	}

	var lines []string
	for i, node := range nodes {
		isLast := i == len(nodes)-1

		connector := "\u251c\u2500\u2500 " // ├──
		if isLast {
			connector = "\u2514\u2500\u2500 " // └──
		}

		parts := []string{node.ID}
		if node.Title != "" {
			parts[0] += ":"
			parts = append(parts, node.Title)
		}
		if opts.ShowDetail && node.Detail != "" {
			parts = append(parts, "["+node.Detail+"]")
		}
		line := prefix + connector + strings.Join(parts, " ")
		if opts.ShowMarks {
			line += mark(node)
		}
		lines = append(lines, line)

		childPrefix := prefix
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "\u2502   " // │
		}
		lines = append(lines, renderTreeNodes(node.Children, opts, depth+1, childPrefix)...)
	}
	return lines
}

// RegionDetail describes a region's shape, e.g. "grid 23 items, 5 cols, 5 rows"
func RegionDetail(r models.Region) string {
	switch r.Kind {
	case models.KindGrid:
		return fmt.Sprintf("grid %d items, %d cols, %d rows", r.ItemCount, r.Cols(), r.Rows())
	default:
		return fmt.Sprintf("%s %d items", r.Kind, r.ItemCount)
	}
}

// RegionTree builds one node per region in order. The active region carries
// the focused index as its only child; titles maps region ids to section
// titles and may be nil.
func RegionTree(regions []models.Region, state models.FocusState, titles map[string]string) []TreeNode {
	nodes := make([]TreeNode, 0, len(regions))
	for _, r := range regions {
		n := TreeNode{
			ID:       r.ID,
			Title:    titles[r.ID],
			Detail:   RegionDetail(r),
			Active:   r.ID == state.ActiveRegionID,
			Disabled: !r.Navigable(),
		}
		if n.Active && r.ItemCount > 0 {
			focused := fmt.Sprintf("[%d]", state.ActiveIndex)
			if r.Kind == models.KindGrid {
				row, col := r.Cell(state.ActiveIndex)
				focused += fmt.Sprintf(" row %d col %d", row, col)
			}
			n.Children = []TreeNode{{ID: focused}}
		}
		if mem, ok := state.Remembered(r.ID); ok && !n.Active {
			n.Children = append(n.Children, TreeNode{ID: fmt.Sprintf("remembered [%d]", mem)})
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// RenderRegions renders the region outline of a screen
func RenderRegions(regions []models.Region, state models.FocusState, titles map[string]string) string {
	nodes := RegionTree(regions, state, titles)
	return strings.Join(RenderTreeLines(nodes, TreeRenderOptions{ShowDetail: true, ShowMarks: true}), "\n")
}
