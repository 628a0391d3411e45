// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/dspace-browser/pkg/pagination"
)

/*
TestFromRequest_Clamping covers defaults, clamping and absent parameters.
*/
func TestFromRequest_Clamping(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  pagination.Params
	}{
		{"absent", "", pagination.Params{}},
		{"valid", "?page=2&size=20", pagination.Params{Page: 2, Size: 20, HasPage: true, HasSize: true}},
		{"negative_page", "?page=-3", pagination.Params{Page: 0, HasPage: true}},
		{"oversized", "?size=1000", pagination.Params{Size: pagination.DefaultSize, HasSize: true}},
		{"zero_size", "?size=0", pagination.Params{Size: pagination.DefaultSize, HasSize: true}},
		{"garbage", "?page=abc&size=x", pagination.Params{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/"+tt.query, nil)
			assert.Equal(t, tt.want, pagination.FromRequest(request))
		})
	}
}

/*
TestPageNumbers_Window keeps first, neighbours and last in order.
*/
func TestPageNumbers_Window(t *testing.T) {
	tests := []struct {
		name       string
		current    int
		totalPages int
		want       []int
	}{
		{"no_pages", 0, 0, []int{}},
		{"single", 0, 1, []int{0}},
		{"two", 1, 2, []int{0, 1}},
		{"start", 0, 10, []int{0, 1, 9}},
		{"middle", 5, 10, []int{0, 4, 5, 6, 9}},
		{"end", 9, 10, []int{0, 8, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.PageNumbers(tt.current, tt.totalPages))
		})
	}
}

/*
TestNewWindow_Elements computes the visible element range.
*/
func TestNewWindow_Elements(t *testing.T) {
	window := pagination.NewWindow(2, 10, 3, 25)

	assert.Equal(t, 21, window.StartElement)
	assert.Equal(t, 25, window.EndElement)
	assert.False(t, window.IsFirst)
	assert.True(t, window.IsLast)

	empty := pagination.NewWindow(0, 10, 0, 0)
	assert.Equal(t, 0, empty.StartElement)
	assert.Equal(t, 0, empty.EndElement)
}

/*
TestCanGoTo_Guards rejects out-of-range and current pages.
*/
func TestCanGoTo_Guards(t *testing.T) {
	assert.True(t, pagination.CanGoTo(1, 0, 3))
	assert.False(t, pagination.CanGoTo(0, 0, 3))
	assert.False(t, pagination.CanGoTo(3, 0, 3))
	assert.False(t, pagination.CanGoTo(-1, 0, 3))
}
