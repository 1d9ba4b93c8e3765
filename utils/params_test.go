package utils

import (
	"net/http/httptest"
	"testing"
)

func TestParseQueryOptions(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/store?page=2&limit=10&name=pho&status=pending&sort=rating", nil)
	opts := ParseQueryOptions(req)

	if opts.Page != 2 || opts.Limit != 10 {
		t.Errorf("page/limit = %d/%d, want 2/10", opts.Page, opts.Limit)
	}
	if opts.Name != "pho" || opts.Status != "pending" || opts.Sort != "rating" {
		t.Errorf("filters = %+v", opts)
	}
	if !opts.Paged() {
		t.Error("expected Paged() to be true")
	}
}

func TestParseQueryOptionsDefaults(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/store", nil)
	opts := ParseQueryOptions(req)

	if opts.Page != 0 || opts.Limit != 0 {
		t.Errorf("page/limit = %d/%d, want 0/0", opts.Page, opts.Limit)
	}
	if opts.Paged() {
		t.Error("expected Paged() to be false without page/limit")
	}
}

func TestParseQueryOptionsNegativeAndGarbage(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/store?page=-3&limit=abc", nil)
	opts := ParseQueryOptions(req)

	if opts.Page != 0 || opts.Limit != 0 {
		t.Errorf("page/limit = %d/%d, want 0/0", opts.Page, opts.Limit)
	}
	if opts.Paged() {
		t.Error("expected Paged() to be false")
	}
}

func TestPagedRequiresBoth(t *testing.T) {
	if (QueryOptions{Page: 1}).Paged() {
		t.Error("page without limit must not be paged")
	}
	if (QueryOptions{Limit: 10}).Paged() {
		t.Error("limit without page must not be paged")
	}
}
