package tvui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/tvnav/internal/catalog"
	"github.com/marcus/tvnav/internal/config"
	"github.com/marcus/tvnav/internal/keyboard"
	"github.com/marcus/tvnav/internal/models"
	"github.com/marcus/tvnav/internal/screens"
)

// fetchedMsg carries finished fetches back to the screen that asked for them
type fetchedMsg struct {
	mount   string
	results []screens.FetchResult
}

// keyboardMsg fires the keyboard auto-show of a screen
type keyboardMsg struct {
	mount  string
	ticket keyboard.Ticket
}

// videoMsg carries a video loaded for the detail modal
type videoMsg struct {
	video *models.Video
	err   error
}

// myListMsg reports a My List toggle
type myListMsg struct {
	videoID string
	added   bool
	err     error
}

// configMsg carries a reloaded config file
type configMsg struct {
	cfg *config.Config
	err error
}

// statusTimeoutMsg clears the status line if it was not replaced since
type statusTimeoutMsg struct {
	seq int
}

// fetchCmd loads one page for a screen
func fetchCmd(ctx context.Context, f *catalog.Fetcher, mount string, req screens.FetchRequest) tea.Cmd {
	return func() tea.Msg {
		p, err := f.Fetch(ctx, req.Feed, req.Ticket.Page)
		return fetchedMsg{
			mount:   mount,
			results: []screens.FetchResult{{Ticket: req.Ticket, Page: p, Err: err}},
		}
	}
}

// fetchAllCmd loads the first pages of a freshly mounted screen together. If
// any fetch fails every ticket is reported failed so it can be retried.
func fetchAllCmd(ctx context.Context, f *catalog.Fetcher, mount string, reqs []screens.FetchRequest) tea.Cmd {
	return func() tea.Msg {
		creqs := make([]catalog.Request, len(reqs))
		for i, r := range reqs {
			creqs[i] = catalog.Request{RegionID: r.Ticket.RegionID, Feed: r.Feed, Page: r.Ticket.Page}
		}
		resps, err := f.FetchAll(ctx, creqs)

		results := make([]screens.FetchResult, len(reqs))
		for i, r := range reqs {
			results[i] = screens.FetchResult{Ticket: r.Ticket}
			if err != nil {
				results[i].Err = err
				continue
			}
			results[i].Page = resps[i].Page
		}
		return fetchedMsg{mount: mount, results: results}
	}
}

// fetchesCmd schedules the fetch requests of one outcome
func fetchesCmd(ctx context.Context, f *catalog.Fetcher, mount string, reqs []screens.FetchRequest, together bool) tea.Cmd {
	switch {
	case len(reqs) == 0:
		return nil
	case together && len(reqs) > 1:
		return fetchAllCmd(ctx, f, mount, reqs)
	}
	cmds := make([]tea.Cmd, len(reqs))
	for i, r := range reqs {
		cmds[i] = fetchCmd(ctx, f, mount, r)
	}
	return tea.Batch(cmds...)
}

// armKeyboardCmd waits out the auto-show delay
func armKeyboardCmd(delay time.Duration, mount string, t keyboard.Ticket) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return keyboardMsg{mount: mount, ticket: t}
	})
}

// loadVideoCmd loads the full record behind a selected item
func loadVideoCmd(ctx context.Context, f *catalog.Fetcher, id string) tea.Cmd {
	return func() tea.Msg {
		v, err := f.Video(ctx, id)
		return videoMsg{video: v, err: err}
	}
}

// toggleMyListCmd saves or unsaves a video
func toggleMyListCmd(ctx context.Context, lib Library, v models.Video) tea.Cmd {
	return func() tea.Msg {
		var err error
		if v.InMyList {
			err = lib.RemoveFromMyList(ctx, v.ID)
		} else {
			err = lib.AddToMyList(ctx, v.ID)
		}
		return myListMsg{videoID: v.ID, added: !v.InMyList, err: err}
	}
}

// waitConfigCmd blocks until the config watcher delivers a reload
func waitConfigCmd(ch <-chan configMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// statusTTL is how long a status message stays up
var statusTTL = 3 * time.Second

func statusTimeoutCmd(seq int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusTimeoutMsg{seq: seq}
	})
}
