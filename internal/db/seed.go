package db

import (
	"context"
	"fmt"

	"github.com/marcus/tvnav/internal/models"
)

// SeedOptions sizes the demo catalog
type SeedOptions struct {
	Channels         int
	VideosPerChannel int
	HeroSlides       int
}

// DefaultSeed is the catalog created by `tvnav catalog seed`
var DefaultSeed = SeedOptions{Channels: 8, VideosPerChannel: 9, HeroSlides: 3}

var channelNames = []string{
	"Northwind Docs", "Harbor Lights", "Static Bloom", "Kettle & Co",
	"Red Line Cinema", "Pale Orbit", "Field Notes", "Midnight Arcade",
	"Copper Valley", "Lowtide Studio", "Glass House", "Paper Kite",
}

var titleWords = [][]string{
	{"Silent", "Golden", "Broken", "Hidden", "Electric", "Frozen", "Wild", "Last", "Crimson", "Quiet", "Lost"},
	{"River", "Signal", "Harbor", "Summit", "Garden", "Machine", "Empire", "Season", "Frontier", "Lantern", "Voyage", "Circuit", "Echo"},
}

var categories = []models.Category{models.CategoryTVShows, models.CategoryMovies, models.CategoryFeatured}

// Seed fills the catalog with deterministic demo data. It does not clear
// existing rows; call Reset first for a fresh catalog.
func (db *DB) Seed(ctx context.Context, opts SeedOptions) (Stats, error) {
	if opts.Channels <= 0 {
		opts = DefaultSeed
	}
	if opts.Channels > len(channelNames) {
		opts.Channels = len(channelNames)
	}

	var featured []models.Video
	position := 0
	for c := 0; c < opts.Channels; c++ {
		ch := &models.Channel{
			Name:        channelNames[c],
			Description: fmt.Sprintf("Videos from %s.", channelNames[c]),
			Position:    c + 1,
		}
		if err := db.CreateChannel(ctx, ch); err != nil {
			return Stats{}, err
		}

		for i := 0; i < opts.VideosPerChannel; i++ {
			position++
			v := &models.Video{
				ChannelID:   ch.ID,
				Title:       seedTitle(position),
				Description: seedDescription(ch.Name, position),
				Category:    categories[position%len(categories)],
				Access:      models.AccessFree,
				Duration:    600 + (position*137)%5400,
				Views:       (position * 7919) % 10007,
				Position:    position,
			}
			if position%4 == 0 {
				v.Access = models.AccessPaid
			}
			if err := db.CreateVideo(ctx, v); err != nil {
				return Stats{}, err
			}
			if v.Category == models.CategoryFeatured {
				featured = append(featured, *v)
			}
		}
	}

	for i := 0; i < opts.HeroSlides && i < len(featured); i++ {
		s := &models.HeroSlide{
			VideoID:  featured[i].ID,
			Headline: "Now streaming: " + featured[i].Title,
			Position: i + 1,
		}
		if err := db.CreateHeroSlide(ctx, s); err != nil {
			return Stats{}, err
		}
	}

	return db.Stats(ctx)
}

// seedTitle derives a stable two word title from n
func seedTitle(n int) string {
	a := titleWords[0][n%len(titleWords[0])]
	b := titleWords[1][(n/len(titleWords[0]))%len(titleWords[1])]
	return fmt.Sprintf("%s %s %d", a, b, n)
}

func seedDescription(channel string, n int) string {
	return fmt.Sprintf("## Episode %d\n\nA **%s** original.\n\n- Season %d\n- Recorded in 4K\n", n, channel, 1+n%3)
}
