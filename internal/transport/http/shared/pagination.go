package shared

import (
	"net/http"
	"strconv"
)

// Every list endpoint pages the same way: limit/offset query
// parameters, twenty rows by default, one hundred at most.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Pagination struct {
	Limit  int
	Offset int
}

func ParsePagination(r *http.Request) Pagination {
	page := Pagination{Limit: DefaultPageSize}
	query := r.URL.Query()
	if v, err := strconv.Atoi(query.Get("limit")); err == nil && v > 0 {
		page.Limit = v
	}
	if v, err := strconv.Atoi(query.Get("offset")); err == nil && v >= 0 {
		page.Offset = v
	}
	if page.Limit > MaxPageSize {
		page.Limit = MaxPageSize
	}
	return page
}
