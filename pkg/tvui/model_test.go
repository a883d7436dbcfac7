package tvui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/tvnav/internal/catalog"
	"github.com/marcus/tvnav/internal/config"
	"github.com/marcus/tvnav/internal/db"
	"github.com/marcus/tvnav/internal/screens"
)

type harness struct {
	t    *testing.T
	m    Model
	db   *db.DB
	quit bool
}

func newHarness(t *testing.T, screen string) *harness {
	t.Helper()
	statusTTL = time.Millisecond

	d, err := db.Open(filepath.Join(t.TempDir(), "catalog.db"), db.DriverModernc)
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	if _, err := d.Seed(context.Background(), db.DefaultSeed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cfg := config.Default()
	cfg.KeyboardShowDelayMS = 1
	// No page requests, so Down walks region to region predictably
	cfg.ThresholdRows = -1

	h := &harness{t: t, db: d}
	h.m = New(Options{
		Fetcher: catalog.NewFetcher(d),
		Library: d,
		Config:  cfg,
		Screen:  screen,
	})
	h.run(h.m.Init())
	return h
}

// run executes cmd and every command it leads to, feeding messages back into
// the model. Status timeouts are dropped so status lines stay inspectable.
func (h *harness) run(cmd tea.Cmd) {
	h.t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			h.t.Fatal("command loop did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, statusTimeoutMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			h.quit = true
		default:
			next, cmd := h.m.Update(msg)
			h.m = next.(Model)
			queue = append(queue, cmd)
		}
	}
}

func (h *harness) press(keys ...tea.KeyMsg) {
	h.t.Helper()
	for _, k := range keys {
		next, cmd := h.m.Update(k)
		h.m = next.(Model)
		h.run(cmd)
	}
}

var (
	up    = tea.KeyMsg{Type: tea.KeyUp}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	left  = tea.KeyMsg{Type: tea.KeyLeft}
	right = tea.KeyMsg{Type: tea.KeyRight}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func (h *harness) focusIs(region string, index int) {
	h.t.Helper()
	st := h.m.Session().State()
	if st.ActiveRegionID != region || st.ActiveIndex != index {
		h.t.Fatalf("focus = %s[%d], want %s[%d]", st.ActiveRegionID, st.ActiveIndex, region, index)
	}
}

// toLatest walks from the tabs to the first cell of the Latest grid
func (h *harness) toLatest() {
	h.press(down, down, down, down)
	h.focusIs(screens.RegionLatest, 0)
}

func TestHomeMountLoadsEveryGrid(t *testing.T) {
	h := newHarness(t, "")
	if h.m.Screen() != screens.ScreenHome {
		t.Fatalf("screen = %q", h.m.Screen())
	}
	s := h.m.Session()
	for _, id := range []string{screens.RegionTrending, screens.RegionLatest} {
		if got := len(s.Items(id)); got != 10 {
			t.Errorf("%s items = %d, want 10", id, got)
		}
	}
	if got := len(s.Items(screens.RegionHero)); got != 3 {
		t.Errorf("hero slides = %d, want 3", got)
	}
	h.focusIs(screens.RegionTabs, 0)
}

func TestPaidVideoShowsSubscriptionAlert(t *testing.T) {
	h := newHarness(t, "")
	h.toLatest()

	// Every fourth seeded video is paid
	h.press(right, right, right, enter)
	md := h.m.Modal()
	if md == nil {
		t.Fatal("detail modal not open")
	}
	if len(md.Buttons()) != 3 {
		t.Errorf("buttons = %+v", md.Buttons())
	}

	h.press(enter) // Play
	if md := h.m.Modal(); md == nil || !strings.Contains(md.Title(), "Subscription required") {
		t.Fatalf("expected subscription alert, got %+v", md)
	}
	h.press(enter)
	if h.m.Modal() != nil {
		t.Error("alert should close on OK")
	}
	h.focusIs(screens.RegionLatest, 3)
}

func TestFreeVideoPlays(t *testing.T) {
	h := newHarness(t, "")
	h.toLatest()
	h.press(enter, enter)
	if h.m.Modal() != nil {
		t.Error("modal still open after play")
	}
	if !strings.HasPrefix(h.m.Status(), "▶ Playing") {
		t.Errorf("status = %q", h.m.Status())
	}
}

func TestModalBackCloses(t *testing.T) {
	h := newHarness(t, "")
	h.toLatest()
	h.press(enter)
	if h.m.Modal() == nil {
		t.Fatal("detail modal not open")
	}
	h.press(esc)
	if h.m.Modal() != nil {
		t.Error("Back should close the modal")
	}
	if h.quit || h.m.Screen() != screens.ScreenHome {
		t.Error("Back with a modal open must not leave the screen")
	}
}

func TestMyListToggleReloadsTab(t *testing.T) {
	h := newHarness(t, "")
	h.toLatest()
	h.press(enter, right, enter)
	if h.m.Status() != "Added to My List" {
		t.Fatalf("status = %q", h.m.Status())
	}

	saved, err := h.db.ListVideos(context.Background(), db.VideoQuery{MyList: true}, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if saved.Total != 1 {
		t.Fatalf("my list size = %d, want 1", saved.Total)
	}

	// Back up to the tabs and open My List
	h.press(up, up, up)
	h.focusIs(screens.RegionTabs, 0)
	h.press(right, right, right, right, enter)
	if got := len(h.m.Session().Items(screens.RegionTrending)); got != 1 {
		t.Errorf("my list grid items = %d, want 1", got)
	}
}

func TestSearchScreenFlow(t *testing.T) {
	h := newHarness(t, "")
	h.press(runes("/"))
	if h.m.Screen() != screens.ScreenSearch || h.m.Depth() != 2 {
		t.Fatalf("screen = %q depth %d", h.m.Screen(), h.m.Depth())
	}
	kb := h.m.Session().Keyboard()
	if !kb.Visible() {
		t.Fatal("keyboard did not auto-show")
	}

	// q is a letter key while typing, not quit
	h.press(runes("q"))
	if h.quit {
		t.Fatal("q quit while the keyboard was open")
	}

	h.press(down, enter, right, enter)
	if kb.Value() != "hi" {
		t.Fatalf("value = %q", kb.Value())
	}
	h.press(down, down, down, right, right, right, right, enter)
	if kb.Visible() {
		t.Error("keyboard visible after done")
	}
	if h.m.Session().Query() != "hi" {
		t.Errorf("query = %q", h.m.Session().Query())
	}
	h.focusIs(screens.RegionField, 0)

	h.press(esc)
	if h.m.Screen() != screens.ScreenHome || h.m.Depth() != 1 {
		t.Errorf("Back should return home, at %q depth %d", h.m.Screen(), h.m.Depth())
	}
}

func TestSearchBackClosesKeyboardFirst(t *testing.T) {
	h := newHarness(t, screens.ScreenSearch)
	if !h.m.Session().Keyboard().Visible() {
		t.Fatal("keyboard did not auto-show")
	}
	h.press(esc)
	if h.m.Session().Keyboard().Visible() {
		t.Error("keyboard still visible")
	}
	if h.quit {
		t.Fatal("first Back should only hide the keyboard")
	}
	h.press(esc)
	if !h.quit {
		t.Error("Back on the last screen should quit")
	}
}

func TestChannelsScreen(t *testing.T) {
	h := newHarness(t, "")
	h.press(runes("c"))
	if h.m.Screen() != screens.ScreenChannels {
		t.Fatalf("screen = %q", h.m.Screen())
	}
	h.press(enter)
	if got := len(h.m.Session().Items(screens.RegionChannelVideos)); got != 9 {
		t.Errorf("channel videos = %d, want 9", got)
	}
	h.press(runes("c"))
	if h.m.Depth() != 2 {
		t.Errorf("pushing the same screen twice gave depth %d", h.m.Depth())
	}
	h.press(esc)
	if h.m.Screen() != screens.ScreenHome {
		t.Errorf("Back should pop to home, at %q", h.m.Screen())
	}
}

func TestRefreshReloadsActiveGrid(t *testing.T) {
	h := newHarness(t, "")
	h.toLatest()
	before, _ := h.m.Session().Pagination(screens.RegionLatest)
	h.press(runes("r"))
	after, _ := h.m.Session().Pagination(screens.RegionLatest)
	if after.Epoch == before.Epoch {
		t.Error("refresh did not start a new epoch")
	}
	if after.Loading || after.Page != 1 {
		t.Errorf("pagination after refresh = %+v", after)
	}
}

func TestFetchFailureSetsStatus(t *testing.T) {
	h := newHarness(t, "")
	s := h.m.top()
	reqs := s.session.Refresh(screens.RegionLatest)
	next, _ := h.m.Update(fetchedMsg{
		mount:   s.mount,
		results: []screens.FetchResult{{Ticket: reqs[0].Ticket, Err: context.DeadlineExceeded}},
	})
	h.m = next.(Model)
	if !strings.Contains(h.m.Status(), "load grid-1 failed") {
		t.Errorf("status = %q", h.m.Status())
	}
	if st, _ := s.session.Pagination(screens.RegionLatest); st.Loading {
		t.Error("failed fetch left the grid loading")
	}
}

func TestResultsForClosedScreenIgnored(t *testing.T) {
	h := newHarness(t, "")
	next, cmd := h.m.Update(fetchedMsg{mount: "gone"})
	h.m = next.(Model)
	if cmd != nil {
		t.Error("unknown mount should be a no-op")
	}
}

func TestConfigReload(t *testing.T) {
	h := newHarness(t, "")
	cfg := config.Default()
	cfg.Keymap = map[string][]string{"down": {"s"}}
	h.m = h.m.applyConfig(configMsg{cfg: cfg})
	if h.m.Status() != "config reloaded" {
		t.Errorf("status = %q", h.m.Status())
	}
	h.press(runes("s"))
	h.focusIs(screens.RegionHero, 0)

	h.m = h.m.applyConfig(configMsg{err: &config.ParseError{Field: "page_size", Value: "0", Msg: "must be positive"}})
	if !strings.HasPrefix(h.m.Status(), "config:") {
		t.Errorf("status = %q", h.m.Status())
	}
}

func TestViewShowsGridsAndCrown(t *testing.T) {
	h := newHarness(t, "")
	next, _ := h.m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	h.m = next.(Model)
	h.toLatest()

	view := ansi.Strip(h.m.View())
	for _, want := range []string{"Trending", "Latest", "Featured", "TV Shows", crown} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	h.press(enter)
	if !strings.Contains(ansi.Strip(h.m.View()), "Play") {
		t.Error("modal view missing Play button")
	}
}
