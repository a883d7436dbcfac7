package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/tvnav/internal/db"
	"github.com/marcus/tvnav/internal/models"
)

func seededFetcher(t *testing.T, opts ...Option) *Fetcher {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "catalog.db"), db.DriverModernc)
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	_, err = d.Seed(context.Background(), db.DefaultSeed)
	require.NoError(t, err)
	return NewFetcher(d, opts...)
}

func TestFetchVideos(t *testing.T) {
	f := seededFetcher(t)
	p, err := f.Fetch(context.Background(), Feed{Kind: FeedVideos}, 1)
	require.NoError(t, err)
	assert.Len(t, p.Items, 10)
	assert.Equal(t, 8, p.TotalPages)
	assert.Equal(t, 72, p.Total)

	// Every fourth seeded video is paid
	assert.True(t, p.Items[3].Paid)
	assert.False(t, p.Items[0].Paid)
}

func TestFetchChannels(t *testing.T) {
	f := seededFetcher(t, WithPageSize(5))
	p, err := f.Fetch(context.Background(), Feed{Kind: FeedChannels}, 2)
	require.NoError(t, err)
	assert.Len(t, p.Items, 3)
	assert.Equal(t, 2, p.TotalPages)
	assert.Equal(t, 5, f.PageSize())
}

func TestFetchSearch(t *testing.T) {
	f := seededFetcher(t, WithPageSize(4))
	p, err := f.Fetch(context.Background(), Feed{Kind: FeedSearch, Query: "golden"}, 1)
	require.NoError(t, err)
	require.NotEmpty(t, p.Items)
	assert.Contains(t, p.Items[0].Title, "Golden")
	assert.LessOrEqual(t, len(p.Items), 4)
}

func TestFetchAllKeepsOrder(t *testing.T) {
	f := seededFetcher(t)
	reqs := []Request{
		{RegionID: "grid-0", Feed: Feed{Kind: FeedVideos, Videos: db.VideoQuery{Sort: db.SortViews}}, Page: 1},
		{RegionID: "grid-1", Feed: Feed{Kind: FeedVideos}, Page: 1},
		{RegionID: "channels", Feed: Feed{Kind: FeedChannels}, Page: 1},
	}
	resps, err := f.FetchAll(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, resps, 3)
	for i, r := range resps {
		assert.Equal(t, reqs[i].RegionID, r.Request.RegionID)
		assert.NotEmpty(t, r.Page.Items)
	}
}

func TestHeroSlidesAndVideo(t *testing.T) {
	f := seededFetcher(t)
	ctx := context.Background()
	slides, err := f.HeroSlides(ctx)
	require.NoError(t, err)
	require.Len(t, slides, 3)

	v, err := f.Video(ctx, slides[0].VideoID)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryFeatured, v.Category)
}

// blockingSource counts ListVideos calls and holds them until released
type blockingSource struct {
	calls   atomic.Int32
	release chan struct{}
	err     error
}

func (s *blockingSource) ListVideos(ctx context.Context, q db.VideoQuery, page, limit int) (db.Page[models.Video], error) {
	s.calls.Add(1)
	<-s.release
	if s.err != nil {
		return db.Page[models.Video]{}, s.err
	}
	return db.Page[models.Video]{Items: []models.Video{{ID: "vd-1"}}, Page: page, TotalPages: 1, Total: 1}, nil
}

func (s *blockingSource) ListChannels(context.Context, int, int) (db.Page[models.Channel], error) {
	return db.Page[models.Channel]{}, nil
}

func (s *blockingSource) SearchVideosRanked(context.Context, string) ([]db.SearchResult, error) {
	return nil, nil
}

func (s *blockingSource) ListHeroSlides(context.Context) ([]models.HeroSlide, error) {
	return nil, nil
}

func (s *blockingSource) GetVideo(context.Context, string) (*models.Video, error) {
	return nil, db.ErrNotFound
}

func TestFetchDeduplicatesConcurrentRequests(t *testing.T) {
	src := &blockingSource{release: make(chan struct{})}
	f := NewFetcher(src)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.Fetch(context.Background(), Feed{Kind: FeedVideos}, 1)
			assert.NoError(t, err)
		}()
	}

	// Let the goroutines pile up on the in-flight call
	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(src.release)
	wg.Wait()

	assert.LessOrEqual(t, src.calls.Load(), int32(5))
	assert.GreaterOrEqual(t, src.calls.Load(), int32(1))
}

func TestFetchAllError(t *testing.T) {
	boom := errors.New("boom")
	src := &blockingSource{release: make(chan struct{}), err: boom}
	close(src.release)
	f := NewFetcher(src)

	_, err := f.FetchAll(context.Background(), []Request{{RegionID: "grid", Feed: Feed{Kind: FeedVideos}, Page: 1}})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "region grid")
}

func TestFetchLatencyHonorsContext(t *testing.T) {
	src := &blockingSource{release: make(chan struct{})}
	close(src.release)
	f := NewFetcher(src, WithLatency(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Fetch(ctx, Feed{Kind: FeedVideos}, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), src.calls.Load())
}

func TestFeedKey(t *testing.T) {
	a := Feed{Kind: FeedVideos, Videos: db.VideoQuery{Category: models.CategoryMovies}}
	b := Feed{Kind: FeedVideos, Videos: db.VideoQuery{Category: models.CategoryTVShows}}
	assert.NotEqual(t, a.Key(), b.Key())
	assert.Equal(t, "search:x", Feed{Kind: FeedSearch, Query: "x"}.Key())
	assert.Equal(t, "channels", Feed{Kind: FeedChannels}.Key())
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "10m", formatDuration(600))
	assert.Equal(t, "1h 05m", formatDuration(3900))
}

func TestFetchHero(t *testing.T) {
	f := seededFetcher(t)
	p, err := f.Fetch(context.Background(), Feed{Kind: FeedHero}, 1)
	require.NoError(t, err)
	assert.Len(t, p.Items, 3)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, "hero", Feed{Kind: FeedHero}.Key())
}
