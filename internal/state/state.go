// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package state holds the catalog state store: the cache of hierarchy data,
per-view pagination cursors and UI status shared by all routed views of one
browser session.

# Invariants

  - Setting the active community clears collections, items and the active
    collection, and marks both lists as not loaded.
  - Setting the active collection clears items and marks the item list as
    not loaded.
  - There is exactly one loading flag and one error slot.
*/
package state

import (
	"github.com/taibuivan/dspace-browser/internal/catalog"
	"github.com/taibuivan/dspace-browser/pkg/pagination"
)

// ListKind identifies one of the three list views.
type ListKind int

const (
	Communities ListKind = iota
	Collections
	Items
)

func (k ListKind) String() string {
	switch k {
	case Communities:
		return "communities"
	case Collections:
		return "collections"
	case Items:
		return "items"
	default:
		return "unknown"
	}
}

// ListState is the cursor of one list view.
type ListState struct {
	Pagination  *catalog.PaginationInfo `json:"pagination"`
	CurrentPage int                     `json:"currentPage"`
	PageSize    int                     `json:"pageSize"`

	// Loaded distinguishes a fetched (possibly empty) list from one that was
	// never fetched or has been cleared by a cascade.
	Loaded bool `json:"loaded"`
}

// AppState is one immutable snapshot of the store.
//
// Slices are never mutated in place; every update installs new ones.
type AppState struct {
	Communities      []catalog.Community  `json:"communities"`
	ActiveCommunity  *catalog.Community   `json:"activeCommunity"`
	Collections      []catalog.Collection `json:"collections"`
	ActiveCollection *catalog.Collection  `json:"activeCollection"`
	Items            []catalog.Item       `json:"items"`

	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`

	CommunitiesList ListState `json:"communitiesList"`
	CollectionsList ListState `json:"collectionsList"`
	ItemsList       ListState `json:"itemsList"`
}

// List returns the cursor of kind.
func (s AppState) List(kind ListKind) ListState {
	switch kind {
	case Collections:
		return s.CollectionsList
	case Items:
		return s.ItemsList
	default:
		return s.CommunitiesList
	}
}

func (s *AppState) list(kind ListKind) *ListState {
	switch kind {
	case Collections:
		return &s.CollectionsList
	case Items:
		return &s.ItemsList
	default:
		return &s.CommunitiesList
	}
}

// Initial returns the empty snapshot with every list at pageSize.
// A non-positive pageSize falls back to [pagination.DefaultSize].
func Initial(pageSize int) AppState {
	if pageSize < 1 {
		pageSize = pagination.DefaultSize
	}
	return AppState{
		CommunitiesList: ListState{PageSize: pageSize},
		CollectionsList: ListState{PageSize: pageSize},
		ItemsList:       ListState{PageSize: pageSize},
	}
}
