package db

import (
	"context"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/marcus/tvnav/internal/models"
)

// SearchResult holds a video with relevance scoring for ranked search
type SearchResult struct {
	Video      models.Video
	Score      int    // Higher = better match (0-100)
	MatchField string // Primary field that matched: 'id', 'title', 'description', 'fuzzy'
}

// SearchVideosRanked matches query against every video and returns the hits
// best first. Substring matches outrank fuzzy title matches.
func (db *DB) SearchVideosRanked(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []SearchResult{}, nil
	}

	videos, err := db.AllVideos(ctx)
	if err != nil {
		return nil, err
	}
	return RankVideos(videos, query), nil
}

// RankVideos scores videos against query. Videos that match nothing are
// dropped.
func RankVideos(videos []models.Video, query string) []SearchResult {
	queryLower := strings.ToLower(query)
	results := make([]SearchResult, 0, len(videos))
	var rest []int

	for i, v := range videos {
		score := 0
		matchField := ""

		titleLower := strings.ToLower(v.Title)
		descLower := strings.ToLower(v.Description)

		// Score by match quality (highest wins)
		if strings.EqualFold(v.ID, query) {
			score = 100
			matchField = "id"
		} else if strings.EqualFold(v.Title, query) {
			score = 80
			matchField = "title"
		} else if strings.HasPrefix(titleLower, queryLower) {
			score = 70
			matchField = "title"
		} else if strings.Contains(titleLower, queryLower) {
			score = 60
			matchField = "title"
		} else if strings.Contains(descLower, queryLower) {
			score = 40
			matchField = "description"
		}

		if score == 0 {
			rest = append(rest, i)
			continue
		}
		results = append(results, SearchResult{Video: v, Score: score, MatchField: matchField})
	}

	// Fuzzy title matches for whatever the substring pass missed
	if len(rest) > 0 {
		titles := make([]string, len(rest))
		for i, idx := range rest {
			titles[i] = videos[idx].Title
		}
		for _, m := range fuzzy.Find(query, titles) {
			results = append(results, SearchResult{
				Video:      videos[rest[m.Index]],
				Score:      fuzzyScore(m.Score),
				MatchField: "fuzzy",
			})
		}
	}

	// Sort by score DESC, then by catalog position ASC
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Video.Position < results[j].Video.Position
	})

	return results
}

// fuzzyScore maps a sahilm/fuzzy score onto 1-30, below every substring hit
func fuzzyScore(s int) int {
	switch {
	case s >= 30:
		return 30
	case s < 1:
		return 1
	default:
		return s
	}
}
