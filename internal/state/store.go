// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package state

import (
	"slices"
	"sync"

	"github.com/taibuivan/dspace-browser/internal/catalog"
	"github.com/taibuivan/dspace-browser/pkg/slice"
)

// Listener receives every published snapshot.
type Listener func(AppState)

// Store is the observable state container of one browser session.
//
// # Concurrency
//
// Writes are serialised and last-write-wins. Snapshots are published
// synchronously, in write order, after the write lock is released. A listener
// must not write to the store from inside its callback.
type Store struct {
	publishMu sync.Mutex

	mu        sync.RWMutex
	state     AppState
	initial   AppState
	listeners map[uint64]Listener
	nextID    uint64
}

// NewStore creates a store whose lists start at pageSize.
func NewStore(pageSize int) *Store {
	initial := Initial(pageSize)
	return &Store{
		state:     initial,
		initial:   initial,
		listeners: make(map[uint64]Listener),
	}
}

// # Publication

// Subscribe registers fn and immediately delivers the current snapshot.
//
// The returned func releases the subscription; calling it more than once is safe.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	current := s.state
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Update is the single write entry point: mutate receives a copy of the
// current snapshot, which then replaces it and is published.
func (s *Store) Update(mutate func(*AppState)) {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	next := s.state
	mutate(&next)
	s.state = next

	listeners := make([]Listener, 0, len(s.listeners))
	ids := make([]uint64, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	for _, listener := range listeners {
		listener(next)
	}
}

// # Reads

// Snapshot returns the current state.
func (s *Store) Snapshot() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// HasCommunity reports whether uuid is in the cached community list.
func (s *Store) HasCommunity(uuid string) bool {
	_, ok := s.Community(uuid)
	return ok
}

// HasCollection reports whether uuid is in the cached collection list.
func (s *Store) HasCollection(uuid string) bool {
	_, ok := s.Collection(uuid)
	return ok
}

// Community looks uuid up in the cached community list.
func (s *Store) Community(uuid string) (catalog.Community, bool) {
	return slice.Find(s.Snapshot().Communities, func(community catalog.Community) bool {
		return community.UUID == uuid
	})
}

// Collection looks uuid up in the cached collection list.
func (s *Store) Collection(uuid string) (catalog.Collection, bool) {
	return slice.Find(s.Snapshot().Collections, func(collection catalog.Collection) bool {
		return collection.UUID == uuid
	})
}

// # Hierarchy setters

// SetCommunities replaces the community list and marks it loaded.
func (s *Store) SetCommunities(communities []catalog.Community) {
	s.Update(func(state *AppState) {
		state.Communities = nonNil(communities)
		state.CommunitiesList.Loaded = true
		state.Loading = false
		state.Error = ""
	})
}

// SetActiveCommunity activates community and clears everything below it.
func (s *Store) SetActiveCommunity(community catalog.Community) {
	s.Update(func(state *AppState) {
		state.ActiveCommunity = &community
		state.ActiveCollection = nil
		state.Collections = nil
		state.Items = nil
		state.CollectionsList = cleared(state.CollectionsList)
		state.ItemsList = cleared(state.ItemsList)
	})
}

// SetCollections replaces the collection list and marks it loaded.
func (s *Store) SetCollections(collections []catalog.Collection) {
	s.Update(func(state *AppState) {
		state.Collections = nonNil(collections)
		state.CollectionsList.Loaded = true
		state.Loading = false
		state.Error = ""
	})
}

// SetActiveCollection activates collection and clears its items.
func (s *Store) SetActiveCollection(collection catalog.Collection) {
	s.Update(func(state *AppState) {
		state.ActiveCollection = &collection
		state.Items = nil
		state.ItemsList = cleared(state.ItemsList)
	})
}

// SetItems replaces the item list and marks it loaded.
func (s *Store) SetItems(items []catalog.Item) {
	s.Update(func(state *AppState) {
		state.Items = nonNil(items)
		state.ItemsList.Loaded = true
		state.Loading = false
		state.Error = ""
	})
}

// # Cursor setters

// SetPagination stores the page metadata of list kind.
func (s *Store) SetPagination(kind ListKind, info *catalog.PaginationInfo) {
	s.Update(func(state *AppState) {
		state.list(kind).Pagination = info
	})
}

// SetCurrentPage stores the zero-based page of list kind.
func (s *Store) SetCurrentPage(kind ListKind, page int) {
	s.Update(func(state *AppState) {
		state.list(kind).CurrentPage = page
	})
}

// SetPageSize stores the page size of list kind.
func (s *Store) SetPageSize(kind ListKind, size int) {
	s.Update(func(state *AppState) {
		state.list(kind).PageSize = size
	})
}

// Invalidate drops the cursor of list kind but keeps its entries, so they
// still answer lookups while the next load of the list fetches again.
func (s *Store) Invalidate(kind ListKind) {
	s.Update(func(state *AppState) {
		*state.list(kind) = cleared(*state.list(kind))
	})
}

// # Status setters

// SetLoading sets the global loading flag.
func (s *Store) SetLoading(loading bool) {
	s.Update(func(state *AppState) {
		state.Loading = loading
	})
}

// SetError stores msg in the global error slot and stops loading.
func (s *Store) SetError(msg string) {
	s.Update(func(state *AppState) {
		state.Error = msg
		state.Loading = false
	})
}

// ClearError empties the global error slot.
func (s *Store) ClearError() {
	s.Update(func(state *AppState) {
		state.Error = ""
	})
}

// Reset restores the initial empty snapshot.
func (s *Store) Reset() {
	s.Update(func(state *AppState) {
		*state = s.initial
	})
}

// # Helpers

func cleared(list ListState) ListState {
	return ListState{PageSize: list.PageSize}
}

// nonNil keeps "loaded and empty" distinguishable from "cleared" when encoded.
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
