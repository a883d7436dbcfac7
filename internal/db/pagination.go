package db

// Page is one page of an offset-paginated listing. Pages are 1-based.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// HasMore reports whether a later page exists
func (p Page[T]) HasMore() bool {
	return p.Page < p.TotalPages
}

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// NormalizeLimit clamps limit to valid range.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageLimit
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}

// NormalizePage clamps page to be at least 1.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// TotalPages returns how many pages of limit items hold total items.
// An empty listing has zero pages.
func TotalPages(total, limit int) int {
	limit = NormalizeLimit(limit)
	if total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Offset returns the row offset of page
func Offset(page, limit int) int {
	return (NormalizePage(page) - 1) * NormalizeLimit(limit)
}

// SlicePage cuts page out of an already ranked in-memory listing with the
// same rules the SQL listings use.
func SlicePage[T any](all []T, page, limit int) Page[T] {
	page = NormalizePage(page)
	limit = NormalizeLimit(limit)
	p := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   limit,
		Total:      len(all),
		TotalPages: TotalPages(len(all), limit),
	}
	start := Offset(page, limit)
	if start >= len(all) {
		return p
	}
	end := min(start+limit, len(all))
	p.Items = append(p.Items, all[start:end]...)
	return p
}
