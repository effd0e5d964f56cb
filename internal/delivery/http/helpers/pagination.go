package helpers

import (
	"fmt"
	"net/http"
	"strconv"

	"eventcoord/internal/domain"
)

// Event listings page by default. page_size=all lifts the limit so a coordinator can pull
// a whole season, e.g. every APPROVED event, in one request.
const (
	DefaultPage     = 1
	DefaultPageSize = 25
	MaxPageSize     = 200
	PageSizeAll     = "all"
)

// ParsePagination reads page and page_size from the query string. Values that are not
// positive integers fail with ErrInvalidInput; page_size above MaxPageSize is clamped.
func ParsePagination(r *http.Request) (domain.PaginationParams, error) {
	q := r.URL.Query()
	params := domain.PaginationParams{Page: DefaultPage, PageSize: DefaultPageSize}

	if s := q.Get("page"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return params, fmt.Errorf("%w: page must be a positive integer", domain.ErrInvalidInput)
		}
		params.Page = v
	}

	switch s := q.Get("page_size"); s {
	case "":
	case PageSizeAll:
		if params.Page != DefaultPage {
			return params, fmt.Errorf("%w: page cannot be combined with page_size=all", domain.ErrInvalidInput)
		}
		params.PageSize = 0
	default:
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return params, fmt.Errorf("%w: page_size must be a positive integer or %q", domain.ErrInvalidInput, PageSizeAll)
		}
		params.PageSize = min(v, MaxPageSize)
	}
	return params, nil
}

// PaginationMeta is the pagination metadata included in paginated list responses.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationMeta describes the page served for params. An unbounded request is reported
// as a single page holding every row.
func NewPaginationMeta(params domain.PaginationParams, total int) PaginationMeta {
	if params.Unbounded() {
		meta := PaginationMeta{Page: 1, PageSize: total, Total: total}
		if total > 0 {
			meta.TotalPages = 1
		}
		return meta
	}
	return PaginationMeta{
		Page:       params.Page,
		PageSize:   params.PageSize,
		Total:      total,
		TotalPages: (total + params.PageSize - 1) / params.PageSize,
	}
}
