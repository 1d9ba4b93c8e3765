package utils

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PagedResult is the list-endpoint response body shared by every paginated
// read in the API.
type PagedResult[T any] struct {
	Success     bool  `json:"success"`
	Total       int64 `json:"total"`
	TotalPages  int64 `json:"totalPages,omitempty"`
	CurrentPage int   `json:"currentPage,omitempty"`
	PageSize    int   `json:"pageSize,omitempty"`
	Data        []T   `json:"data"`
}

// FindPaginated counts the filtered collection and returns one page of
// decoded documents. With page or limit unset it returns everything.
func FindPaginated[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts QueryOptions, findOpts ...*options.FindOptions) (PagedResult[T], error) {
	res := PagedResult[T]{Success: true, Data: []T{}}

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return res, err
	}
	res.Total = total

	fo := options.Find()
	if len(findOpts) > 0 && findOpts[0] != nil {
		fo = findOpts[0]
	}
	if opts.Paged() {
		res.CurrentPage = opts.Page
		res.PageSize = opts.Limit
		res.TotalPages = (total + int64(opts.Limit) - 1) / int64(opts.Limit)
		fo.SetSkip(int64(opts.Page-1) * int64(opts.Limit)).SetLimit(int64(opts.Limit))
	}

	cursor, err := coll.Find(ctx, filter, fo)
	if err != nil {
		return res, err
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &res.Data); err != nil {
		return res, err
	}
	if res.Data == nil {
		res.Data = []T{}
	}
	return res, nil
}

// FindAndDecode runs a plain find and decodes every document.
func FindAndDecode[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, findOpts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, findOpts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
