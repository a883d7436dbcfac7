package screens

import (
	"log/slog"
	"time"

	"github.com/marcus/tvnav/internal/catalog"
	"github.com/marcus/tvnav/internal/db"
	"github.com/marcus/tvnav/internal/focus"
	"github.com/marcus/tvnav/internal/keyboard"
	"github.com/marcus/tvnav/internal/models"
	"github.com/marcus/tvnav/internal/pagination"
	"github.com/marcus/tvnav/internal/region"
)

// FetchRequest asks the host to load one page of a feed
type FetchRequest struct {
	Ticket pagination.Ticket
	Feed   catalog.Feed
}

// FetchResult is what the host reports back for a FetchRequest
type FetchResult struct {
	Ticket pagination.Ticket
	Page   catalog.Page
	Err    error
}

// Selection is a video item picked with Select
type Selection struct {
	RegionID string
	Index    int
	Item     catalog.Item
}

// Outcome lists what the host must do after an event
type Outcome struct {
	Effects     []models.Effect
	Fetches     []FetchRequest
	Selected    *Selection
	Back        bool             // Back the session did not consume
	ArmKeyboard *keyboard.Ticket // start the keyboard auto-show timer
}

// Options tunes a Session
type Options struct {
	Threshold         *float64 // nil uses focus.DefaultThreshold
	RowUp             bool
	KeyboardMaxLength int
	ShowDelay         time.Duration
	Logger            *slog.Logger
}

// Session is one mounted screen: its registry, focus state, pagination and,
// on screens with a text field, the on-screen keyboard. It is owned by the
// host's event loop.
type Session struct {
	layout  Layout
	reg     *region.Registry
	ctrl    *focus.Controller
	tracker *pagination.Tracker
	state   models.FocusState
	items   map[string][]catalog.Item
	feeds   map[string]catalog.Feed
	tab     int
	query   string

	kb      *keyboard.InputMethod
	auto    *keyboard.AutoShow
	pending []FetchRequest

	logger *slog.Logger
}

// NewSession prepares a screen. Nothing is fetched until Mount.
func NewSession(layout Layout, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	threshold := focus.DefaultThreshold
	if opts.Threshold != nil {
		threshold = *opts.Threshold
	}

	s := &Session{
		layout:  layout,
		reg:     region.New(),
		tracker: pagination.NewTracker(),
		items:   make(map[string][]catalog.Item),
		feeds:   make(map[string]catalog.Feed),
		logger:  logger,
	}
	s.ctrl = focus.New(
		focus.WithThreshold(threshold),
		focus.WithRowUp(opts.RowUp),
		focus.WithPageGate(s.tracker),
	)

	for _, sec := range layout.Sections {
		if sec.Feed != nil {
			s.feeds[sec.ID] = *sec.Feed
		}
	}

	if _, ok := layout.Section(RegionKeyboard); ok {
		s.kb = keyboard.New(
			keyboard.WithMaxLength(opts.KeyboardMaxLength),
			keyboard.WithOnVisibilityChange(s.keyboardVisibility),
			keyboard.WithOnCommit(s.commitQuery),
		)
		s.auto = keyboard.NewAutoShow(s.kb, opts.ShowDelay)
	}
	return s
}

// Mount registers the regions, places initial focus and requests the first
// page of every fed section.
func (s *Session) Mount() Outcome {
	s.sync()
	s.state = focus.Initial(s.reg, s.layout.Preferred)
	s.logger.Debug("mount", "screen", s.layout.Name, "focus", s.state.ActiveRegionID)

	var out Outcome
	for _, sec := range s.layout.Sections {
		if _, ok := s.feeds[sec.ID]; !ok {
			continue
		}
		s.tracker.Track(sec.ID)
		s.begin(sec.ID)
	}
	s.afterMove("", &out)
	out.Fetches = s.drain()
	return out
}

// Handle applies one remote press.
func (s *Session) Handle(ev models.NavigationEvent) Outcome {
	var out Outcome
	prev := s.state.ActiveRegionID

	// An open keyboard swallows Back
	if ev == models.EventBack && s.kb != nil && s.kb.Visible() {
		s.kb.Hide()
		s.afterMove(prev, &out)
		out.Fetches = s.drain()
		return out
	}

	next, effects := s.ctrl.HandleEvent(ev, s.state, s.reg)
	s.state = next
	out.Effects = effects

	for _, e := range effects {
		switch e.Kind {
		case models.EffectRequestNextPage:
			s.begin(e.RegionID)
		case models.EffectBack:
			out.Back = true
		case models.EffectSelectItem:
			s.selectItem(e, &out)
		}
	}

	s.logger.Debug("event", "event", string(ev),
		"focus", s.state.ActiveRegionID, "index", s.state.ActiveIndex, "effects", len(effects))

	s.afterMove(prev, &out)
	out.Fetches = s.drain()
	return out
}

// Apply folds a finished fetch into the screen. Results from before a reset
// are dropped and Apply returns false.
func (s *Session) Apply(res FetchResult) bool {
	id := res.Ticket.RegionID
	if res.Err != nil {
		s.tracker.Fail(res.Ticket)
		s.logger.Warn("fetch failed", "region", id, "page", res.Ticket.Page, "err", res.Err)
		return false
	}

	count := len(res.Page.Items)
	if sec, ok := s.layout.Section(id); ok && sec.Kind == models.KindSingle {
		count = min(count, 1)
	}
	totalPages := res.Page.TotalPages
	if totalPages == 0 {
		// The fetcher only reports zero pages for an empty listing
		totalPages = res.Ticket.Page
	}

	applied := s.tracker.Complete(s.reg, pagination.Result{
		Ticket:     res.Ticket,
		Count:      count,
		TotalPages: totalPages,
	})
	if !applied {
		s.logger.Debug("stale fetch dropped", "region", id, "page", res.Ticket.Page, "epoch", res.Ticket.Epoch)
		return false
	}

	if res.Ticket.Page == 1 {
		s.items[id] = append([]catalog.Item(nil), res.Page.Items...)
	} else {
		s.items[id] = append(s.items[id], res.Page.Items...)
	}
	s.sync()
	return true
}

// Refresh reloads a fed region from page 1 under a new epoch, keeping the
// current items on screen until the new first page lands. An empty id means
// the active region.
func (s *Session) Refresh(regionID string) []FetchRequest {
	if regionID == "" {
		regionID = s.state.ActiveRegionID
	}
	if _, ok := s.feeds[regionID]; !ok {
		return nil
	}
	s.tracker.Reset(regionID)
	s.begin(regionID)
	return s.drain()
}

// FireKeyboard shows the keyboard if t is still the pending auto-show.
func (s *Session) FireKeyboard(t keyboard.Ticket) bool {
	if s.auto == nil {
		return false
	}
	return s.auto.Fire(t)
}

// SetFeed points a region at a new feed and reloads it from scratch.
func (s *Session) SetFeed(regionID string, feed catalog.Feed) []FetchRequest {
	s.feeds[regionID] = feed
	s.resetRegion(regionID)
	return s.drain()
}

func (s *Session) selectItem(e models.Effect, out *Outcome) {
	switch e.RegionID {
	case RegionTabs:
		s.switchTab(e.Index)

	case RegionField:
		if s.kb != nil {
			s.auto.Blur()
			s.kb.Show()
		}

	case RegionKeyboard:
		if s.kb == nil {
			return
		}
		key, ok := keyboard.At(s.kb.Mode(), e.Index)
		if !ok {
			return
		}
		s.kb.HandleKey(key.Name)
		if key.Name == keyboard.KeyClear {
			s.clearResults()
		}
		// A mode switch changes the key count
		s.sync()

	case RegionChannels:
		item, ok := s.item(e.RegionID, e.Index)
		if !ok {
			return
		}
		s.feeds[RegionChannelVideos] = catalog.Feed{
			Kind:   catalog.FeedVideos,
			Videos: db.VideoQuery{ChannelID: item.ID},
		}
		s.resetRegion(RegionChannelVideos)

	default:
		item, ok := s.item(e.RegionID, e.Index)
		if !ok {
			return
		}
		out.Selected = &Selection{RegionID: e.RegionID, Index: e.Index, Item: item}
	}
}

// switchTab points both Home grids at the tab's feeds and reloads them
func (s *Session) switchTab(index int) {
	if index < 0 || index >= len(models.HomeTabs) {
		return
	}
	s.tab = index
	trending, latest := tabFeeds(models.HomeTabs[index])
	s.feeds[RegionTrending] = trending
	s.feeds[RegionLatest] = latest
	s.resetRegion(RegionTrending)
	s.resetRegion(RegionLatest)
	s.logger.Info("tab switched", "tab", models.HomeTabs[index].ID)
}

// resetRegion empties a region, forgets its focus memory and requests page 1
// under a new epoch.
func (s *Session) resetRegion(id string) {
	s.tracker.Reset(id)
	delete(s.items, id)
	if _, ok := s.state.Memory[id]; ok {
		st := s.state.Clone()
		delete(st.Memory, id)
		s.state = st
	}
	s.sync()
	if _, ok := s.feeds[id]; ok {
		s.begin(id)
	}
}

// clearResults drops the query and goes back to the unfiltered listing
func (s *Session) clearResults() {
	s.feeds[RegionResults] = browseFeed
	s.query = ""
	s.resetRegion(RegionResults)
}

func (s *Session) commitQuery(q string) {
	if q == "" {
		s.clearResults()
		return
	}
	s.query = q
	s.feeds[RegionResults] = catalog.Feed{Kind: catalog.FeedSearch, Query: q}
	s.resetRegion(RegionResults)
	s.logger.Info("search", "query", q)
}

// keyboardVisibility enables the keyboard region while it is shown. Focus
// moves onto the keyboard when it opens and back to the field when it closes.
func (s *Session) keyboardVisibility(visible bool) {
	if !visible {
		if s.state.ActiveRegionID == RegionKeyboard {
			s.moveTo(RegionField)
		}
		s.sync()
		return
	}
	s.sync()
	if s.state.ActiveRegionID == RegionKeyboard {
		return
	}
	if kb, ok := s.reg.Lookup(RegionKeyboard); ok && kb.Navigable() {
		s.moveTo(RegionKeyboard)
	}
}

// moveTo focuses the first item of id, remembering where focus was
func (s *Session) moveTo(id string) {
	st := s.state.Clone()
	if st.Memory == nil {
		st.Memory = make(map[string]int)
	}
	st.Memory[st.ActiveRegionID] = st.ActiveIndex
	st.ActiveRegionID = id
	st.ActiveIndex = 0
	s.state = st
}

// afterMove arms or cancels the keyboard auto-show as focus enters or leaves
// the text field. Returning to the field from a closing keyboard does not
// re-arm it.
func (s *Session) afterMove(prev string, out *Outcome) {
	if s.auto == nil {
		return
	}
	cur := s.state.ActiveRegionID
	switch {
	case cur == RegionField && prev != RegionField && prev != RegionKeyboard && !s.kb.Visible():
		t := s.auto.Focus()
		out.ArmKeyboard = &t
	case prev == RegionField && cur != RegionField:
		s.auto.Blur()
	}
}

func (s *Session) begin(id string) {
	feed, ok := s.feeds[id]
	if !ok {
		return
	}
	t, ok := s.tracker.Begin(id)
	if !ok {
		return
	}
	s.pending = append(s.pending, FetchRequest{Ticket: t, Feed: feed})
}

func (s *Session) drain() []FetchRequest {
	out := s.pending
	s.pending = nil
	return out
}

// sync re-registers every region from the current data and repairs focus.
func (s *Session) sync() {
	if err := s.reg.Register(s.regions()); err != nil {
		s.logger.Error("register regions", "err", err)
		return
	}
	s.state = focus.Reconcile(s.state, s.reg)
}

func (s *Session) regions() []models.Region {
	out := make([]models.Region, 0, len(s.layout.Sections))
	for i, sec := range s.layout.Sections {
		r := models.Region{
			ID:      sec.ID,
			Kind:    sec.Kind,
			Columns: sec.Columns,
			Order:   i,
			Enabled: true,
		}
		switch sec.ID {
		case RegionTabs:
			r.ItemCount = len(models.HomeTabs)
		case RegionField:
			r.ItemCount = 1
		case RegionKeyboard:
			mode := s.kb.Mode()
			r.ItemCount = len(keyboard.Layout(mode))
			r.Columns = keyboard.Columns(mode)
			r.Enabled = s.kb.Visible()
		default:
			r.ItemCount = len(s.items[sec.ID])
			if sec.Kind == models.KindSingle {
				r.ItemCount = min(r.ItemCount, 1)
				r.Enabled = r.ItemCount > 0
			}
		}
		out = append(out, r)
	}
	return out
}

func (s *Session) item(id string, index int) (catalog.Item, bool) {
	items := s.items[id]
	if index < 0 || index >= len(items) {
		return catalog.Item{}, false
	}
	return items[index], true
}

// Layout returns the screen layout
func (s *Session) Layout() Layout { return s.layout }

// Regions returns the registered regions in order
func (s *Session) Regions() []models.Region { return s.reg.Regions() }

// Registry returns the live registry
func (s *Session) Registry() *region.Registry { return s.reg }

// State returns the focus state
func (s *Session) State() models.FocusState { return s.state }

// Items returns the loaded items of a region
func (s *Session) Items(id string) []catalog.Item { return s.items[id] }

// Pagination returns the pagination state of a fed region
func (s *Session) Pagination(id string) (models.PaginationState, bool) {
	return s.tracker.State(id)
}

// Keyboard returns the on-screen keyboard, nil on screens without a text field
func (s *Session) Keyboard() *keyboard.InputMethod { return s.kb }

// ShowDelay returns the keyboard auto-show delay
func (s *Session) ShowDelay() time.Duration {
	if s.auto == nil {
		return 0
	}
	return s.auto.Delay()
}

// Tab returns the selected Home tab
func (s *Session) Tab() int { return s.tab }

// Query returns the last committed search query
func (s *Session) Query() string { return s.query }

// Focused returns the item under focus, if the active region has one
func (s *Session) Focused() (catalog.Item, bool) {
	return s.item(s.state.ActiveRegionID, s.state.ActiveIndex)
}
