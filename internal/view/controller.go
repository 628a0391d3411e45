// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package view contains the routed view controllers of the catalog browser.

Three controllers share one shape: communities, collections of a community,
and items of a collection. Each reads its route parameter, consults the
session store, fetches and resolves what is missing, and forwards pagination.

# Lifecycle

	release := controller.Mount(ctx) // subscribes to the store and the navigator
	defer release()                  // releases both, on every exit path

# Status

A controller moves Idle → Loading → (Ready | Error). The status is derived
from the latest published snapshot, and the store has a single loading flag
and error slot, so all views of a session share it.
*/
package view

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/taibuivan/dspace-browser/internal/catalog"
	"github.com/taibuivan/dspace-browser/internal/platform/apperr"
	"github.com/taibuivan/dspace-browser/internal/state"
	"github.com/taibuivan/dspace-browser/pkg/pagination"
)

// # Collaborators

// Catalog is the part of the remote client the controllers use.
type Catalog interface {
	FetchCommunities(ctx context.Context, page, size int) (catalog.Page[catalog.Community], error)
	FetchCollections(ctx context.Context, community catalog.Community, page, size int) (catalog.Page[catalog.Collection], error)
	FetchItems(ctx context.Context, collection catalog.Collection, page, size int) (catalog.Page[catalog.Item], error)
}

// Deps groups what every controller is constructed with.
type Deps struct {
	Client    Catalog
	Store     *state.Store
	Navigator *Navigator
	Logger    *slog.Logger

	// LookupPageSize is the page size used when a deep link forces a search
	// across parent lists.
	LookupPageSize int
}

// Controller is the surface the session drives, whatever the view.
type Controller interface {
	Kind() RouteKind
	Mount(ctx context.Context) (release func())
	Load(ctx context.Context, page, size int)
	PageChange(ctx context.Context, page int)
	PageSizeChange(ctx context.Context, size int)
	Retry(ctx context.Context)
	Back(ctx context.Context)
	View() View
}

// # Messages

// Messages written into the store's error slot.
var (
	MsgLoadCommunities    = "Failed to load communities"
	MsgNoCommunities      = "No communities found"
	MsgCommunityNotFound  = apperr.NotFound("Community").Message
	MsgLoadCollections    = "Failed to load collections"
	MsgCollectionNotFound = apperr.NotFound("Collection").Message
	MsgCollectionDetails  = "Failed to load collection details"
	MsgLoadItems          = "Failed to load items"
)

// # Status

// Status is the state-machine position of a controller.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name written by MarshalText.
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = StatusIdle
	case "loading":
		*s = StatusLoading
	case "ready":
		*s = StatusReady
	case "error":
		*s = StatusError
	default:
		return fmt.Errorf("view: unknown status %q", text)
	}
	return nil
}

// # Shared base

// base carries everything the three controllers have in common. load is the
// concrete controller's Load, so pagination and retry dispatch to it.
type base struct {
	kind       RouteKind
	list       state.ListKind
	client     Catalog
	store      *state.Store
	nav        *Navigator
	logger     *slog.Logger
	lookupSize int
	load       func(ctx context.Context, page, size int)

	mu        sync.Mutex
	snapshot  state.AppState
	trackedID string
	started   bool
	lastPage  int
	lastSize  int
}

// init wires the base; load is the concrete controller's Load.
func (b *base) init(kind RouteKind, list state.ListKind, deps Deps, load func(ctx context.Context, page, size int)) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	lookupSize := deps.LookupPageSize
	if lookupSize < 1 {
		lookupSize = pagination.MaxSize
	}

	b.kind = kind
	b.list = list
	b.client = deps.Client
	b.store = deps.Store
	b.nav = deps.Navigator
	b.logger = logger.With(slog.String("view", kind.String()))
	b.lookupSize = lookupSize
	b.load = load
	b.snapshot = deps.Store.Snapshot()
}

// Kind reports which route the controller serves.
func (b *base) Kind() RouteKind { return b.kind }

// Mount subscribes to the store and to route changes. The current route is
// delivered at once, which starts the first load.
func (b *base) Mount(ctx context.Context) (release func()) {
	b.mu.Lock()
	b.trackedID = ""
	b.started = false
	b.mu.Unlock()

	subscriptions := &Subscriptions{}
	subscriptions.Add(b.store.Subscribe(b.record))
	subscriptions.Add(b.nav.Subscribe(ctx, b.onRoute))
	return subscriptions.Release
}

// PageChange loads page with the current page size.
func (b *base) PageChange(ctx context.Context, page int) {
	b.load(ctx, page, b.pageSize())
}

// PageSizeChange restarts at the first page with size.
func (b *base) PageSizeChange(ctx context.Context, size int) {
	b.load(ctx, pagination.FirstPage, size)
}

// Retry replays the last load.
func (b *base) Retry(ctx context.Context) {
	b.mu.Lock()
	page, size := b.lastPage, b.lastSize
	b.mu.Unlock()

	if size < 1 {
		size = b.pageSize()
	}
	b.load(ctx, page, size)
}

// TrackedID is the route id the controller last loaded for.
func (b *base) TrackedID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.trackedID
}

// Status derives the state-machine position from the latest snapshot.
func (b *base) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.statusLocked()
}

func (b *base) statusLocked() Status {
	switch {
	case !b.started:
		return StatusIdle
	case b.snapshot.Loading:
		return StatusLoading
	case b.snapshot.Error != "":
		return StatusError
	default:
		return StatusReady
	}
}

// record keeps the latest published snapshot for rendering.
func (b *base) record(snapshot state.AppState) {
	b.mu.Lock()
	b.snapshot = snapshot
	b.mu.Unlock()
}

func (b *base) onRoute(ctx context.Context, route Route) {
	if route.Kind != b.kind {
		return
	}

	b.mu.Lock()
	changed := !b.started || route.ID != b.trackedID
	if changed {
		b.trackedID = route.ID
	}
	b.mu.Unlock()

	if changed {
		b.load(ctx, pagination.FirstPage, b.pageSize())
	}
}

func (b *base) pageSize() int {
	return b.store.Snapshot().List(b.list).PageSize
}

// begin records the load parameters, raises loading and clears the error.
func (b *base) begin(page, size int) (id string, snapshot state.AppState) {
	b.mu.Lock()
	b.started = true
	b.lastPage, b.lastSize = page, size
	id = b.trackedID
	b.mu.Unlock()

	b.store.SetLoading(true)
	b.store.ClearError()
	return id, b.store.Snapshot()
}

// fail writes msg into the error slot and logs the cause.
func (b *base) fail(ctx context.Context, msg string, err error) {
	attrs := []any{slog.String("message", msg), slog.String("id", b.TrackedID())}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	b.logger.ErrorContext(ctx, "view_load_failed", attrs...)
	b.store.SetError(msg)
}

// reuse reports whether the cached list serves the request: it was fetched
// and the first page is requested. The requested size does not take part, so
// a size change over a loaded list keeps the cached entries.
func reuse(list state.ListState, page int) bool {
	return list.Loaded && page == pagination.FirstPage
}

// storePage writes the cursor of kind after a successful fetch.
func (b *base) storePage(kind state.ListKind, info *catalog.PaginationInfo, page, size int) {
	b.store.SetPagination(kind, info)
	b.store.SetCurrentPage(kind, page)
	b.store.SetPageSize(kind, size)
}
