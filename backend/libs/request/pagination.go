package request

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 25
	MaxPage         = 100000
	MaxPageSize     = 500
)

// Page is the paged list envelope returned by the resource services.
type Page[T any] struct {
	Items    []T `json:"items"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

// NewPage never returns a nil item slice so the JSON is always an array.
func NewPage[T any](items []T, p Pagination, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Page: p.Page, PageSize: p.PageSize, Total: total}
}

// Pagination is the validated page window. The bounds keep Offset well inside int range.
type Pagination struct {
	Page     int `query:"page" validate:"min=1,max=100000"`
	PageSize int `query:"pageSize" validate:"min=1,max=500"`
}

// Offset is the number of rows to skip. Out-of-range values clamp to the
// validated bounds, so the result is never negative.
func (p Pagination) Offset() int {
	return (clamp(p.Page, 1, MaxPage) - 1) * clamp(p.PageSize, 1, MaxPageSize)
}

// Limit is the number of rows to take.
func (p Pagination) Limit() int {
	return p.PageSize
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParsePagination reads page/pageSize with defaults. Non-integer values are reported as
// validation errors on the offending field.
func ParsePagination(values url.Values) (Pagination, error) {
	errs := &ValidationError{Fields: map[string]string{}}
	p := Pagination{
		Page:     intParam(values, "page", DefaultPage, errs),
		PageSize: intParam(values, "pageSize", DefaultPageSize, errs),
	}
	if len(errs.Fields) > 0 {
		return Pagination{}, errs
	}
	return p, nil
}

// String returns the trimmed value of key.
func String(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

func intParam(values url.Values, key string, def int, errs *ValidationError) int {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		errs.Fields[key] = "int"
		return def
	}
	return n
}
