package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/marcus/tvnav/internal/models"
)

// ErrNotFound is returned when a row does not exist
var ErrNotFound = errors.New("not found")

// VideoSort orders video listings
type VideoSort string

const (
	SortPosition VideoSort = "position"
	SortViews    VideoSort = "views"
)

// VideoQuery filters a video listing. Zero values mean no filter.
type VideoQuery struct {
	ChannelID string
	Category  models.Category
	MyList    bool
	Sort      VideoSort
}

const videoColumns = `v.id, v.channel_id, v.title, v.description, v.category, v.access,
    v.duration_sec, v.views, v.position, CASE WHEN m.video_id IS NULL THEN 0 ELSE 1 END`

func scanVideo(sc interface{ Scan(...any) error }) (models.Video, error) {
	var v models.Video
	var category, access string
	err := sc.Scan(&v.ID, &v.ChannelID, &v.Title, &v.Description, &category, &access,
		&v.Duration, &v.Views, &v.Position, &v.InMyList)
	v.Category = models.Category(category)
	v.Access = models.Access(access)
	return v, err
}

func scanChannel(sc interface{ Scan(...any) error }) (models.Channel, error) {
	var c models.Channel
	err := sc.Scan(&c.ID, &c.Name, &c.Description, &c.Position)
	return c, err
}

// listPage runs a COUNT and a LIMIT/OFFSET query over the same FROM/WHERE
// clause and returns the requested page.
func listPage[T any](
	ctx context.Context,
	conn *sql.DB,
	columns, from string,
	args []any,
	orderBy string,
	page, limit int,
	scan func(*sql.Rows) (T, error),
) (Page[T], error) {
	page = NormalizePage(page)
	limit = NormalizeLimit(limit)
	out := Page[T]{Items: []T{}, Page: page, PageSize: limit}

	if err := conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+from, args...).Scan(&out.Total); err != nil {
		return out, fmt.Errorf("count query: %w", err)
	}
	out.TotalPages = TotalPages(out.Total, limit)

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s LIMIT %d OFFSET %d",
		columns, from, orderBy, limit, Offset(page, limit))
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return out, fmt.Errorf("pagination query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return out, fmt.Errorf("scan row: %w", err)
		}
		out.Items = append(out.Items, item)
	}
	if err := rows.Err(); err != nil {
		return out, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// CreateChannel inserts a channel, assigning an ID if it has none
func (db *DB) CreateChannel(ctx context.Context, c *models.Channel) error {
	if c.ID == "" {
		c.ID = newChannelID()
	}
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO channels (id, name, description, position) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, c.Description, c.Position)
	if err != nil {
		return fmt.Errorf("insert channel: %w", err)
	}
	return nil
}

// CreateVideo inserts a video, assigning an ID if it has none
func (db *DB) CreateVideo(ctx context.Context, v *models.Video) error {
	if v.ID == "" {
		v.ID = newVideoID()
	}
	if v.Access == "" {
		v.Access = models.AccessFree
	}
	if !models.IsValidAccess(v.Access) {
		return fmt.Errorf("insert video: invalid access %q", v.Access)
	}
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO videos (id, channel_id, title, description, category, access, duration_sec, views, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.ChannelID, v.Title, v.Description, string(v.Category), string(v.Access),
		v.Duration, v.Views, v.Position)
	if err != nil {
		return fmt.Errorf("insert video: %w", err)
	}
	return nil
}

// CreateHeroSlide inserts a hero slide, assigning an ID if it has none
func (db *DB) CreateHeroSlide(ctx context.Context, s *models.HeroSlide) error {
	if s.ID == "" {
		s.ID = newSlideID()
	}
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO hero_slides (id, video_id, headline, position) VALUES (?, ?, ?, ?)`,
		s.ID, s.VideoID, s.Headline, s.Position)
	if err != nil {
		return fmt.Errorf("insert hero slide: %w", err)
	}
	return nil
}

// AddToMyList saves a video. Saving twice is a no-op.
func (db *DB) AddToMyList(ctx context.Context, videoID string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO my_list (video_id, position)
		 VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM my_list))`,
		NormalizeVideoID(videoID))
	if err != nil {
		return fmt.Errorf("add to my list: %w", err)
	}
	return nil
}

// RemoveFromMyList unsaves a video
func (db *DB) RemoveFromMyList(ctx context.Context, videoID string) error {
	_, err := db.conn.ExecContext(ctx, `DELETE FROM my_list WHERE video_id = ?`, NormalizeVideoID(videoID))
	if err != nil {
		return fmt.Errorf("remove from my list: %w", err)
	}
	return nil
}

// GetVideo returns one video by ID
func (db *DB) GetVideo(ctx context.Context, id string) (*models.Video, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT "+videoColumns+" FROM videos v LEFT JOIN my_list m ON m.video_id = v.id WHERE v.id = ?",
		NormalizeVideoID(id))
	v, err := scanVideo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("video %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	return &v, nil
}

// ListChannels returns one page of channels in display order
func (db *DB) ListChannels(ctx context.Context, page, limit int) (Page[models.Channel], error) {
	return listPage(ctx, db.conn, "id, name, description, position", "channels", nil,
		"position ASC, id ASC", page, limit,
		func(rows *sql.Rows) (models.Channel, error) { return scanChannel(rows) })
}

// ListVideos returns one page of videos matching q
func (db *DB) ListVideos(ctx context.Context, q VideoQuery, page, limit int) (Page[models.Video], error) {
	from := "videos v LEFT JOIN my_list m ON m.video_id = v.id"
	order := "v.position ASC, v.id ASC"
	if q.MyList {
		from = "videos v JOIN my_list m ON m.video_id = v.id"
		order = "m.position ASC"
	}
	if q.Sort == SortViews {
		order = "v.views DESC, v.id ASC"
	}

	var where []string
	var args []any
	if q.ChannelID != "" {
		where = append(where, "v.channel_id = ?")
		args = append(args, q.ChannelID)
	}
	if q.Category != "" {
		where = append(where, "v.category = ?")
		args = append(args, string(q.Category))
	}
	if len(where) > 0 {
		from += " WHERE " + strings.Join(where, " AND ")
	}

	return listPage(ctx, db.conn, videoColumns, from, args, order, page, limit,
		func(rows *sql.Rows) (models.Video, error) { return scanVideo(rows) })
}

// AllVideos returns every video in display order
func (db *DB) AllVideos(ctx context.Context) ([]models.Video, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT "+videoColumns+" FROM videos v LEFT JOIN my_list m ON m.video_id = v.id ORDER BY v.position ASC, v.id ASC")
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	var out []models.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ListHeroSlides returns the hero slider in display order
func (db *DB) ListHeroSlides(ctx context.Context) ([]models.HeroSlide, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, video_id, headline, position FROM hero_slides ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list hero slides: %w", err)
	}
	defer rows.Close()

	var out []models.HeroSlide
	for rows.Next() {
		var s models.HeroSlide
		if err := rows.Scan(&s.ID, &s.VideoID, &s.Headline, &s.Position); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Stats counts the rows of each catalog table
type Stats struct {
	Channels int `json:"channels"`
	Videos   int `json:"videos"`
	Paid     int `json:"paid"`
	Slides   int `json:"hero_slides"`
	MyList   int `json:"my_list"`
}

// Stats returns row counts
func (db *DB) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := db.conn.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM channels),
		(SELECT COUNT(*) FROM videos),
		(SELECT COUNT(*) FROM videos WHERE access = 'paid'),
		(SELECT COUNT(*) FROM hero_slides),
		(SELECT COUNT(*) FROM my_list)`).Scan(&s.Channels, &s.Videos, &s.Paid, &s.Slides, &s.MyList)
	if err != nil {
		return s, fmt.Errorf("catalog stats: %w", err)
	}
	return s, nil
}
