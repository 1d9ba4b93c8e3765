package utils

import (
	"net/http"
	"strconv"
)

// QueryOptions are the common list-endpoint query parameters. Page and Limit
// are zero when the caller did not ask for pagination.
type QueryOptions struct {
	Page   int
	Limit  int
	Name   string
	Status string
	Role   string
	Sort   string
}

func ParseQueryOptions(r *http.Request) QueryOptions {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 0 {
		page = 0
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 0 {
		limit = 0
	}

	return QueryOptions{
		Page:   page,
		Limit:  limit,
		Name:   q.Get("name"),
		Status: q.Get("status"),
		Role:   q.Get("role"),
		Sort:   q.Get("sort"),
	}
}

// Paged reports whether the caller asked for a specific page.
func (o QueryOptions) Paged() bool {
	return o.Page > 0 && o.Limit > 0
}
