// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for paged list views.
//
// # Overview
//
// Pages are zero-based, matching the repository API. It standardizes how
// page navigation is requested via query parameters and how the page-number
// window shown beside a list is computed.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultSize is the number of entries per page if not specified.
	DefaultSize = 10
	// MaxSize is the upper bound for entries per page.
	MaxSize = 100
	// FirstPage is the starting page (0-indexed).
	FirstPage = 0
)

// SizeOptions are the page sizes offered by the list views.
var SizeOptions = []int{5, 10, 20, 50}

// Params holds the page and size parsed from a request's query string.
//
// HasPage and HasSize report whether the client sent the parameter at all.
type Params struct {
	Page    int
	Size    int
	HasPage bool
	HasSize bool
}

// FromRequest parses "page" and "size" query parameters from an HTTP request.
//
// # Clamping
//
// Negative pages clamp to [FirstPage]; sizes outside 1..[MaxSize] fall back
// to [DefaultSize]. Unparseable values count as absent.
func FromRequest(r *http.Request) Params {
	var params Params

	if page, ok := parseIntParam(r, "page"); ok {
		params.HasPage = true
		params.Page = max(page, FirstPage)
	}

	if size, ok := parseIntParam(r, "size"); ok {
		params.HasSize = true
		params.Size = size
		if size < 1 || size > MaxSize {
			params.Size = DefaultSize
		}
	}

	return params
}

// Window describes the navigable pages of a list.
type Window struct {
	Pages        []int `json:"pages"`
	StartElement int   `json:"startElement"`
	EndElement   int   `json:"endElement"`
	IsFirst      bool  `json:"isFirst"`
	IsLast       bool  `json:"isLast"`
}

// NewWindow computes the page-number window: the first page, the current
// page and its neighbours, and the last page, in order and without repeats.
func NewWindow(current, size, totalPages, totalElements int) Window {
	window := Window{
		Pages:        PageNumbers(current, totalPages),
		StartElement: current*size + 1,
		EndElement:   min((current+1)*size, totalElements),
		IsFirst:      current <= FirstPage,
		IsLast:       current >= totalPages-1,
	}
	if totalElements == 0 {
		window.StartElement = 0
	}
	return window
}

// PageNumbers returns the first page, current±1 and the last page.
func PageNumbers(current, totalPages int) []int {
	if totalPages < 1 {
		return []int{}
	}

	pages := []int{FirstPage}
	for page := max(1, current-1); page <= min(totalPages-2, current+1); page++ {
		pages = append(pages, page)
	}
	if totalPages > 1 {
		pages = append(pages, totalPages-1)
	}
	return pages
}

// CanGoTo reports whether page is a valid move from current.
func CanGoTo(page, current, totalPages int) bool {
	return page >= FirstPage && page < totalPages && page != current
}

// parseIntParam parses a single integer query parameter.
func parseIntParam(r *http.Request, key string) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, false
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}

	return n, true
}
