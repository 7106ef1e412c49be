// Package pagination computes page windows from limit/skip parameters
// and separately-obtained total counts.
package pagination

import "github.com/infact-news/infact/internal/domain"

// DefaultLimit applies when a request omits the limit parameter.
const DefaultLimit = 20

// Limits is the valid limit range for one entity type.
type Limits struct {
	Min int
	Max int
}

var (
	ArticleLimits = Limits{Min: 1, Max: 200}
	ClusterLimits = Limits{Min: 1, Max: 100}
)

// Window is a validated page request.
type Window struct {
	Limit int
	Skip  int
}

// NewWindow validates limit and skip against the entity's range. Zero
// limit takes the default. Validation runs before any store access;
// out-of-range values never reach a query.
func NewWindow(limit, skip int, bounds Limits) (Window, error) {
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < bounds.Min || limit > bounds.Max {
		return Window{}, domain.ErrInvalidLimit
	}
	if skip < 0 {
		return Window{}, domain.ErrInvalidSkip
	}
	return Window{Limit: limit, Skip: skip}, nil
}

// Page describes one result page. Total comes from a separate count
// query, never from the page itself: pages may be short.
type Page struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Skip    int   `json:"skip"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

// NewPage computes the next/prev flags for a window over total items.
func NewPage(w Window, total int64) Page {
	return Page{
		Total:   total,
		Limit:   w.Limit,
		Skip:    w.Skip,
		HasNext: int64(w.Skip+w.Limit) < total,
		HasPrev: w.Skip > 0,
	}
}
