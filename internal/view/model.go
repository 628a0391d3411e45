// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"github.com/taibuivan/dspace-browser/internal/catalog"
	"github.com/taibuivan/dspace-browser/internal/state"
	"github.com/taibuivan/dspace-browser/pkg/pagination"
)

// View is the render model of the mounted controller.
//
// Only the list of the view's own kind is filled in.
type View struct {
	Route   string `json:"route"`
	Kind    string `json:"kind"`
	Status  Status `json:"status"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`

	Community  *catalog.Community  `json:"community,omitempty"`
	Collection *catalog.Collection `json:"collection,omitempty"`

	Communities []catalog.Community  `json:"communities,omitempty"`
	Collections []catalog.Collection `json:"collections,omitempty"`
	Items       []catalog.Item       `json:"items,omitempty"`

	Page PageView `json:"page"`
}

// PageView is the pager shown beside a list.
type PageView struct {
	Current       int               `json:"current"`
	Size          int               `json:"size"`
	TotalPages    int               `json:"totalPages"`
	TotalElements int               `json:"totalElements"`
	Window        pagination.Window `json:"window"`
	SizeOptions   []int             `json:"sizeOptions"`
}

// Len is the number of entries on the page.
func (v View) Len() int {
	return len(v.Communities) + len(v.Collections) + len(v.Items)
}

// newPageView derives the pager from a list cursor.
func newPageView(list state.ListState) PageView {
	page := PageView{
		Current:     list.CurrentPage,
		Size:        list.PageSize,
		SizeOptions: pagination.SizeOptions,
	}
	if info := list.Pagination; info != nil {
		page.TotalPages = info.TotalPages
		page.TotalElements = info.TotalElements
	}
	page.Window = pagination.NewWindow(page.Current, page.Size, page.TotalPages, page.TotalElements)
	return page
}

// view renders the parts every controller shares from the latest snapshot.
func (b *base) view() (View, state.AppState) {
	b.mu.Lock()
	defer b.mu.Unlock()

	snapshot := b.snapshot
	route := Route{Kind: b.kind, ID: b.trackedID}

	return View{
		Route:      route.Path(),
		Kind:       b.kind.String(),
		Status:     b.statusLocked(),
		Loading:    snapshot.Loading,
		Error:      snapshot.Error,
		Community:  snapshot.ActiveCommunity,
		Collection: snapshot.ActiveCollection,
		Page:       newPageView(snapshot.List(b.list)),
	}, snapshot
}
