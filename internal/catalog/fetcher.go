// Package catalog fetches pages of catalog items for the screens.
//
// Fetches are plain blocking calls meant to run inside a tea.Cmd. Identical
// concurrent requests (same feed, same page) share one database round trip,
// and a screen mount loads the first page of every grid at once.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/marcus/tvnav/internal/db"
	"github.com/marcus/tvnav/internal/models"
)

// Source is the slice of the catalog database the fetcher reads
type Source interface {
	ListVideos(ctx context.Context, q db.VideoQuery, page, limit int) (db.Page[models.Video], error)
	ListChannels(ctx context.Context, page, limit int) (db.Page[models.Channel], error)
	SearchVideosRanked(ctx context.Context, query string) ([]db.SearchResult, error)
	ListHeroSlides(ctx context.Context) ([]models.HeroSlide, error)
	GetVideo(ctx context.Context, id string) (*models.Video, error)
}

// FeedKind selects what a feed lists
type FeedKind string

const (
	FeedVideos   FeedKind = "videos"
	FeedChannels FeedKind = "channels"
	FeedSearch   FeedKind = "search"
	FeedHero     FeedKind = "hero"
)

// Feed describes the data behind one grid
type Feed struct {
	Kind   FeedKind
	Videos db.VideoQuery // FeedVideos
	Query  string        // FeedSearch
}

// Key identifies the feed for request deduplication
func (f Feed) Key() string {
	switch f.Kind {
	case FeedChannels:
		return "channels"
	case FeedSearch:
		return "search:" + f.Query
	case FeedHero:
		return "hero"
	default:
		q := f.Videos
		return fmt.Sprintf("videos:%s:%s:%t:%s", q.ChannelID, q.Category, q.MyList, q.Sort)
	}
}

// Item is one cell of a grid
type Item struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Paid     bool   `json:"paid,omitempty"`
	VideoID  string `json:"video_id,omitempty"`
}

// Page is a fetched page of items
type Page struct {
	Items      []Item `json:"items"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	Total      int    `json:"total"`
}

// Request asks for one page of a feed on behalf of a region
type Request struct {
	RegionID string
	Feed     Feed
	Page     int
}

// Response pairs a request with its page
type Response struct {
	Request Request
	Page    Page
}

// Fetcher loads pages from a Source
type Fetcher struct {
	src      Source
	pageSize int
	latency  time.Duration
	logger   *slog.Logger
	group    singleflight.Group
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithPageSize sets how many items a page holds
func WithPageSize(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.pageSize = n
		}
	}
}

// WithLatency delays every fetch, for watching pagination in the UI.
func WithLatency(d time.Duration) Option {
	return func(f *Fetcher) { f.latency = d }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFetcher creates a Fetcher reading src
func NewFetcher(src Source, opts ...Option) *Fetcher {
	f := &Fetcher{
		src:      src,
		pageSize: db.DefaultPageLimit,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// PageSize returns the configured page size
func (f *Fetcher) PageSize() int { return f.pageSize }

// Fetch loads one page of feed. Concurrent calls for the same feed and page
// share a single query.
func (f *Fetcher) Fetch(ctx context.Context, feed Feed, page int) (Page, error) {
	key := fmt.Sprintf("%s#%d", feed.Key(), page)
	v, err, shared := f.group.Do(key, func() (any, error) {
		return f.fetch(ctx, feed, page)
	})
	if err != nil {
		return Page{}, err
	}
	if shared {
		f.logger.Debug("fetch shared", "key", key)
	}
	return v.(Page), nil
}

func (f *Fetcher) fetch(ctx context.Context, feed Feed, page int) (Page, error) {
	start := time.Now()
	if f.latency > 0 {
		select {
		case <-time.After(f.latency):
		case <-ctx.Done():
			return Page{}, ctx.Err()
		}
	}

	var out Page
	switch feed.Kind {
	case FeedChannels:
		p, err := f.src.ListChannels(ctx, page, f.pageSize)
		if err != nil {
			return Page{}, fmt.Errorf("fetch channels page %d: %w", page, err)
		}
		out = Page{Items: make([]Item, 0, len(p.Items)), Page: p.Page, TotalPages: p.TotalPages, Total: p.Total}
		for _, c := range p.Items {
			out.Items = append(out.Items, ChannelItem(c))
		}

	case FeedHero:
		items, err := f.HeroSlides(ctx)
		if err != nil {
			return Page{}, fmt.Errorf("fetch hero slides: %w", err)
		}
		// The slider is never paginated
		out = Page{Items: items, Page: 1, TotalPages: 1, Total: len(items)}

	case FeedSearch:
		results, err := f.src.SearchVideosRanked(ctx, feed.Query)
		if err != nil {
			return Page{}, fmt.Errorf("search %q: %w", feed.Query, err)
		}
		p := db.SlicePage(results, page, f.pageSize)
		out = Page{Items: make([]Item, 0, len(p.Items)), Page: p.Page, TotalPages: p.TotalPages, Total: p.Total}
		for _, r := range p.Items {
			out.Items = append(out.Items, VideoItem(r.Video))
		}

	default:
		p, err := f.src.ListVideos(ctx, feed.Videos, page, f.pageSize)
		if err != nil {
			return Page{}, fmt.Errorf("fetch videos page %d: %w", page, err)
		}
		out = Page{Items: make([]Item, 0, len(p.Items)), Page: p.Page, TotalPages: p.TotalPages, Total: p.Total}
		for _, v := range p.Items {
			out.Items = append(out.Items, VideoItem(v))
		}
	}

	f.logger.Debug("fetched page",
		"feed", feed.Key(), "page", out.Page, "items", len(out.Items),
		"total_pages", out.TotalPages, "took", time.Since(start))
	return out, nil
}

// FetchAll loads every request concurrently. Responses come back in request
// order; the first error cancels the rest.
func (f *Fetcher) FetchAll(ctx context.Context, reqs []Request) ([]Response, error) {
	out := make([]Response, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		g.Go(func() error {
			p, err := f.Fetch(gctx, req.Feed, req.Page)
			if err != nil {
				return fmt.Errorf("region %s: %w", req.RegionID, err)
			}
			out[i] = Response{Request: req, Page: p}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// HeroSlides returns the hero slider as items
func (f *Fetcher) HeroSlides(ctx context.Context) ([]Item, error) {
	slides, err := f.src.ListHeroSlides(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(slides))
	for _, s := range slides {
		items = append(items, Item{ID: s.ID, Title: s.Headline, VideoID: s.VideoID})
	}
	return items, nil
}

// Video loads the full record behind an item
func (f *Fetcher) Video(ctx context.Context, id string) (*models.Video, error) {
	return f.src.GetVideo(ctx, id)
}

// VideoItem converts a video to a grid cell
func VideoItem(v models.Video) Item {
	return Item{
		ID:       v.ID,
		Title:    v.Title,
		Subtitle: formatDuration(v.Duration),
		Paid:     v.Paid(),
		VideoID:  v.ID,
	}
}

// ChannelItem converts a channel to a grid cell
func ChannelItem(c models.Channel) Item {
	return Item{ID: c.ID, Title: c.Name, Subtitle: c.Description}
}

func formatDuration(sec int) string {
	d := time.Duration(sec) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
