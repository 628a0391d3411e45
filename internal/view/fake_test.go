// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/taibuivan/dspace-browser/internal/catalog"
	"github.com/taibuivan/dspace-browser/internal/state"
	"github.com/taibuivan/dspace-browser/internal/view"
)

// fakeCatalog serves canned pages and records every call it receives.
type fakeCatalog struct {
	mu sync.Mutex

	communities    []catalog.Community
	communitiesErr error

	collections    map[string][]catalog.Collection
	collectionsErr map[string]error
	// blocking communities hold their collection fetch until cancelled.
	blocking  map[string]bool
	cancelled map[string]bool

	items    map[string][]catalog.Item
	itemsErr error

	calls []string
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		collections:    make(map[string][]catalog.Collection),
		collectionsErr: make(map[string]error),
		blocking:       make(map[string]bool),
		cancelled:      make(map[string]bool),
		items:          make(map[string][]catalog.Item),
	}
}

func (f *fakeCatalog) record(format string, args ...any) {
	f.mu.Lock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	f.mu.Unlock()
}

func (f *fakeCatalog) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeCatalog) FetchCommunities(_ context.Context, page, size int) (catalog.Page[catalog.Community], error) {
	f.record("communities:%d:%d", page, size)
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.communitiesErr != nil {
		return catalog.Page[catalog.Community]{}, f.communitiesErr
	}
	return catalog.Page[catalog.Community]{
		Items:      append([]catalog.Community(nil), f.communities...),
		Pagination: pageInfo(page, size, len(f.communities)),
	}, nil
}

func (f *fakeCatalog) FetchCollections(ctx context.Context, community catalog.Community, page, size int) (catalog.Page[catalog.Collection], error) {
	f.record("collections:%s:%d:%d", community.UUID, page, size)

	f.mu.Lock()
	blocking := f.blocking[community.UUID]
	f.mu.Unlock()
	if blocking {
		<-ctx.Done()
		f.mu.Lock()
		f.cancelled[community.UUID] = true
		f.mu.Unlock()
		return catalog.Page[catalog.Collection]{}, ctx.Err()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.collectionsErr[community.UUID]; err != nil {
		return catalog.Page[catalog.Collection]{}, err
	}
	collections := f.collections[community.UUID]
	return catalog.Page[catalog.Collection]{
		Items:      append([]catalog.Collection(nil), collections...),
		Pagination: pageInfo(page, size, len(collections)),
	}, nil
}

func (f *fakeCatalog) FetchItems(_ context.Context, collection catalog.Collection, page, size int) (catalog.Page[catalog.Item], error) {
	f.record("items:%s:%d:%d", collection.UUID, page, size)
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.itemsErr != nil {
		return catalog.Page[catalog.Item]{}, f.itemsErr
	}
	items := f.items[collection.UUID]
	return catalog.Page[catalog.Item]{
		Items:      append([]catalog.Item(nil), items...),
		Pagination: pageInfo(page, size, len(items)),
	}, nil
}

func pageInfo(page, size, total int) *catalog.PaginationInfo {
	pages := (total + size - 1) / size
	return &catalog.PaginationInfo{
		Size:          size,
		TotalElements: total,
		TotalPages:    pages,
		Number:        page,
		First:         page == 0,
		Last:          page >= pages-1,
	}
}

// # Fixtures

func community(uuid string) catalog.Community {
	return catalog.Community{Resource: catalog.Resource{UUID: uuid}, DisplayName: "Community " + uuid}
}

func collection(uuid string) catalog.Collection {
	return catalog.Collection{Resource: catalog.Resource{UUID: uuid}, DisplayName: "Collection " + uuid}
}

func item(uuid string) catalog.Item {
	return catalog.Item{Resource: catalog.Resource{UUID: uuid}, DisplayName: "Item " + uuid, Author: catalog.UnknownAuthor}
}

// harness is one application root: store, navigator and the fake client.
type harness struct {
	fake  *fakeCatalog
	store *state.Store
	nav   *view.Navigator
	deps  view.Deps
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	fake := newFakeCatalog()
	store := state.NewStore(10)
	nav := view.NewNavigator()

	return &harness{
		fake:  fake,
		store: store,
		nav:   nav,
		deps: view.Deps{
			Client:         fake,
			Store:          store,
			Navigator:      nav,
			Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
			LookupPageSize: 100,
		},
	}
}

// mount routes to route, mounts controller and releases it on cleanup.
func (h *harness) mount(t *testing.T, controller view.Controller, route view.Route) {
	t.Helper()

	ctx := context.Background()
	h.nav.Navigate(ctx, route)
	release := controller.Mount(ctx)
	t.Cleanup(release)
}
