package tvui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/tvnav/internal/catalog"
	"github.com/marcus/tvnav/internal/keyboard"
	"github.com/marcus/tvnav/internal/models"
	"github.com/marcus/tvnav/internal/screens"
)

// gridRowsVisible is how many grid rows are drawn per section
const gridRowsVisible = 2

// keyCellWidth is the fixed width of one on-screen keyboard key
const keyCellWidth = 5

// View renders the top screen, the modal on top of it and the footer
func (m Model) View() string {
	s := m.top()
	if s == nil {
		return ""
	}

	if m.modal != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modal.Render())
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n\n")
	sb.WriteString(renderScreen(s.session, m.width))
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m Model) renderHeader() string {
	crumbs := make([]string, len(m.stack))
	for i, s := range m.stack {
		crumbs[i] = s.name
	}
	header := headerStyle.Render("tvnav") + " " + mutedStyle.Render(strings.Join(crumbs, " › "))
	if m.status != "" {
		header += "  " + statusStyle.Render(m.status)
	}
	return ansi.Truncate(header, m.width, "…")
}

// renderScreen draws every section of a session top to bottom
func renderScreen(sess *screens.Session, width int) string {
	state := sess.State()
	var parts []string
	for _, sec := range sess.Layout().Sections {
		r, ok := sess.Registry().Lookup(sec.ID)
		if !ok {
			continue
		}
		active := state.ActiveRegionID == sec.ID
		body := renderSection(sess, sec, r, active, width)
		if body == "" {
			continue
		}
		parts = append(parts, body)
	}
	return strings.Join(parts, "\n")
}

func renderSection(sess *screens.Session, sec screens.Section, r models.Region, active bool, width int) string {
	state := sess.State()
	focused := -1
	if active {
		focused = state.ActiveIndex
	}

	switch sec.ID {
	case screens.RegionTabs:
		return renderTabs(sess.Tab(), focused)
	case screens.RegionField:
		return renderField(sess, active, width)
	case screens.RegionKeyboard:
		if !r.Enabled {
			return ""
		}
		return renderKeyboard(sess.Keyboard(), focused)
	}

	title := sectionTitle.Render(sec.Title)
	if active {
		title = sectionTitleActive.Render(sec.Title)
	}
	if st, ok := sess.Pagination(sec.ID); ok && st.Loading {
		title += " " + loadingStyle.Render(fmt.Sprintf("loading page %d…", st.Page))
	}

	items := sess.Items(sec.ID)
	if len(items) == 0 {
		return title + "\n" + mutedStyle.Render("  nothing here") + "\n"
	}
	if sec.Kind == models.KindSingle {
		return title + "\n" + renderCell(items[0], width-4, focused == 0) + "\n"
	}

	row := 0
	if active {
		row, _ = r.Cell(focused)
	} else if mem, ok := state.Remembered(sec.ID); ok {
		row, _ = r.Cell(r.Clamp(mem))
	}
	return title + " " + mutedStyle.Render(fmt.Sprintf("%d items", len(items))) + "\n" +
		renderGrid(items, r.Cols(), row, focused, width) + "\n"
}

func renderTabs(selected, focused int) string {
	parts := make([]string, len(models.HomeTabs))
	for i, tab := range models.HomeTabs {
		switch {
		case i == focused:
			parts[i] = tabFocused.Render(tab.Title)
		case i == selected:
			parts[i] = tabSelected.Render(tab.Title)
		default:
			parts[i] = tabStyle.Render(tab.Title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...) + "\n"
}

// renderGrid draws gridRowsVisible rows starting so that row is shown
func renderGrid(items []catalog.Item, cols, row, focused, width int) string {
	rows := (len(items) + cols - 1) / cols
	start := max(0, min(row, rows-gridRowsVisible))
	cellWidth := max(8, width/cols-1)

	var lines []string
	for r := start; r < min(rows, start+gridRowsVisible); r++ {
		var cells []string
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(items) {
				break
			}
			cells = append(cells, renderCell(items[i], cellWidth, i == focused))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	if start+gridRowsVisible < rows {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("  ▼ %d more rows", rows-start-gridRowsVisible)))
	}
	return strings.Join(lines, "\n")
}

// renderCell draws one item box of the given outer width
func renderCell(it catalog.Item, width int, focused bool) string {
	inner := max(4, width-4)
	title := it.Title
	if it.Paid {
		title = crown + " " + title
	}
	title = ansi.Truncate(title, inner, "…")
	if it.Paid {
		title = strings.Replace(title, crown, crownStyle.Render(crown), 1)
	}
	sub := ansi.Truncate(it.Subtitle, inner, "…")

	style := cellStyle
	if focused {
		style = cellFocused
	}
	return style.Width(inner + 2).Render(title + "\n" + mutedStyle.Render(sub))
}

func renderField(sess *screens.Session, active bool, width int) string {
	kb := sess.Keyboard()
	value := ""
	if kb != nil {
		value = kb.Value()
	}
	text := value
	if text == "" {
		text = mutedStyle.Render("Search videos")
	}
	if kb != nil && kb.Visible() {
		text += "▌"
	}
	style := fieldStyle
	if active {
		style = fieldFocused
	}
	line := style.Width(min(48, width-4)).Render(text)
	if q := sess.Query(); q != "" {
		line += "\n" + mutedStyle.Render(fmt.Sprintf("results for %q", q))
	}
	return line + "\n"
}

func renderKeyboard(kb *keyboard.InputMethod, focused int) string {
	if kb == nil {
		return ""
	}
	keys := keyboard.Layout(kb.Mode())
	cols := keyboard.Columns(kb.Mode())

	var lines []string
	var line strings.Builder
	for i, k := range keys {
		if i > 0 && i%cols == 0 {
			lines = append(lines, line.String())
			line.Reset()
		}
		line.WriteString(renderKey(k, i == focused))
	}
	lines = append(lines, line.String())

	header := mutedStyle.Render(fmt.Sprintf("%s  %d chars", kb.State(), kb.Len()))
	return keyboardBorder.Render(header+"\n"+strings.Join(lines, "\n")) + "\n"
}

func renderKey(k keyboard.Key, focused bool) string {
	label := runewidth.FillRight(" "+k.Label, keyCellWidth)
	switch {
	case focused:
		return keyFocused.Render(label)
	case k.Special():
		return keySpecial.Render(label)
	default:
		return keyStyle.Render(label)
	}
}

// Render draws a session without the host chrome, for snapshots and the
// replay command.
func Render(sess *screens.Session, width int) string {
	return renderScreen(sess, width)
}
