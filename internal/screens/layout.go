// Package screens describes the browsable screens as stacks of regions and
// runs the glue between focus, pagination and the on-screen keyboard for one
// mounted screen.
package screens

import (
	"github.com/marcus/tvnav/internal/catalog"
	"github.com/marcus/tvnav/internal/db"
	"github.com/marcus/tvnav/internal/keyboard"
	"github.com/marcus/tvnav/internal/models"
)

// Section is one region of a screen together with what fills it
type Section struct {
	ID      string
	Title   string
	Kind    models.RegionKind
	Columns int
	Feed    *catalog.Feed // nil for sections filled by the session itself
}

// Layout is the ordered list of sections of one screen
type Layout struct {
	Name      string
	Sections  []Section
	Preferred string // region focused on mount
}

// Section returns the section with id
func (l Layout) Section(id string) (Section, bool) {
	for _, s := range l.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// Region ids used by the built-in screens
const (
	RegionTabs          = "tabs"
	RegionHero          = "hero"
	RegionTrending      = "grid-0"
	RegionLatest        = "grid-1"
	RegionChannels      = "channels"
	RegionChannelVideos = "channel-videos"
	RegionField         = "field"
	RegionKeyboard      = "keyboard"
	RegionResults       = "results"
)

// Screen names
const (
	ScreenHome     = "home"
	ScreenChannels = "channels"
	ScreenSearch   = "search"
)

// Names lists the built-in screens
var Names = []string{ScreenHome, ScreenChannels, ScreenSearch}

// ByName returns the layout of a built-in screen
func ByName(name string) (Layout, bool) {
	switch name {
	case ScreenHome:
		return Home(models.HomeTabs[0]), true
	case ScreenChannels:
		return Channels(), true
	case ScreenSearch:
		return Search(), true
	}
	return Layout{}, false
}

const gridColumns = 5

// tabFeeds returns the trending and latest feeds for a Home tab
func tabFeeds(tab models.Tab) (trending, latest catalog.Feed) {
	q := db.VideoQuery{Category: tab.Category, MyList: tab.MyList}
	trending = catalog.Feed{Kind: catalog.FeedVideos, Videos: q}
	trending.Videos.Sort = db.SortViews
	latest = catalog.Feed{Kind: catalog.FeedVideos, Videos: q}
	return trending, latest
}

// Home is the tabs + hero + two grids screen
func Home(tab models.Tab) Layout {
	trending, latest := tabFeeds(tab)
	hero := catalog.Feed{Kind: catalog.FeedHero}
	return Layout{
		Name: ScreenHome,
		Sections: []Section{
			{ID: RegionTabs, Title: "Tabs", Kind: models.KindStrip},
			{ID: RegionHero, Title: "Featured", Kind: models.KindSingle, Feed: &hero},
			{ID: RegionTrending, Title: "Trending", Kind: models.KindGrid, Columns: gridColumns, Feed: &trending},
			{ID: RegionLatest, Title: "Latest", Kind: models.KindGrid, Columns: gridColumns, Feed: &latest},
		},
		Preferred: RegionTabs,
	}
}

// Channels lists channels above the videos of the selected channel
func Channels() Layout {
	channels := catalog.Feed{Kind: catalog.FeedChannels}
	return Layout{
		Name: ScreenChannels,
		Sections: []Section{
			{ID: RegionChannels, Title: "Channels", Kind: models.KindGrid, Columns: 4, Feed: &channels},
			// Filled once a channel is selected
			{ID: RegionChannelVideos, Title: "Videos", Kind: models.KindGrid, Columns: gridColumns},
		},
		Preferred: RegionChannels,
	}
}

// browseFeed lists the catalog unfiltered while no query is committed
var browseFeed = catalog.Feed{Kind: catalog.FeedVideos}

// Search is a text field above the on-screen keyboard above the results
func Search() Layout {
	browse := browseFeed
	return Layout{
		Name: ScreenSearch,
		Sections: []Section{
			{ID: RegionField, Title: "Search", Kind: models.KindSingle},
			{ID: RegionKeyboard, Title: "Keyboard", Kind: models.KindGrid, Columns: keyboard.Columns(models.ModeLetters)},
			// Replaced by the search feed when a query is committed
			{ID: RegionResults, Title: "Results", Kind: models.KindGrid, Columns: gridColumns, Feed: &browse},
		},
		Preferred: RegionField,
	}
}
