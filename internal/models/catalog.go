package models

// Access is the subscription tier required to play a video
type Access string

const (
	AccessFree Access = "free"
	AccessPaid Access = "paid"
)

// IsValidAccess checks if an access tier is valid
func IsValidAccess(a Access) bool {
	return a == AccessFree || a == AccessPaid
}

// Category groups videos for the Home tabs
type Category string

const (
	CategoryTVShows  Category = "tvshows"
	CategoryMovies   Category = "movies"
	CategoryFeatured Category = "featured"
)

// Tab is one entry of the Home tab strip. An empty Category means every
// category; MyList tabs read the saved list instead.
type Tab struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Category Category `json:"category,omitempty"`
	MyList   bool     `json:"my_list,omitempty"`
}

// HomeTabs is the fixed tab strip of the Home screen
var HomeTabs = []Tab{
	{ID: "home", Title: "Home"},
	{ID: "tvshows", Title: "TV Shows", Category: CategoryTVShows},
	{ID: "movies", Title: "Movies", Category: CategoryMovies},
	{ID: "featured", Title: "Featured", Category: CategoryFeatured},
	{ID: "mylist", Title: "My List", MyList: true},
}

// Channel is a publisher of videos
type Channel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Position    int    `json:"position"`
}

// Video is one playable item of the catalog
type Video struct {
	ID          string   `json:"id"`
	ChannelID   string   `json:"channel_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category"`
	Access      Access   `json:"access"`
	Duration    int      `json:"duration_sec"`
	Views       int      `json:"views"`
	Position    int      `json:"position"`
	InMyList    bool     `json:"in_my_list,omitempty"`
}

// Paid reports whether the video needs a subscription
func (v Video) Paid() bool {
	return v.Access == AccessPaid
}

// HeroSlide is one banner of the Home slider
type HeroSlide struct {
	ID       string `json:"id"`
	VideoID  string `json:"video_id"`
	Headline string `json:"headline"`
	Position int    `json:"position"`
}
