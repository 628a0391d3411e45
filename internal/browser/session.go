// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package browser hosts browser sessions: one application root per session and
the HTTP surface that drives it.

# Sessions

A [Session] owns one store, one navigator and the three view controllers.
Every action takes the session lock, so a session behaves like the single
event loop of one browser tab. Routing to a view of another kind releases the
mounted controller and mounts the controller of the new route.
*/
package browser

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/taibuivan/dspace-browser/internal/state"
	"github.com/taibuivan/dspace-browser/internal/view"
)

// # Session Definitions

// Options configure every session a registry creates.
type Options struct {
	Client         view.Catalog
	PageSize       int
	LookupPageSize int
	TTL            time.Duration
	Logger         *slog.Logger
}

// Session is one browser's application root.
type Session struct {
	id     string
	logger *slog.Logger

	store *state.Store
	nav   *view.Navigator

	communities *view.CommunitiesController
	collections *view.CollectionsController
	items       *view.ItemsController

	mu       sync.Mutex
	attached bool
	mounted  view.Controller
	release  func()
	routes   func()
	closed   bool

	lastSeen atomic.Int64
}

// NewSession builds an unmounted session; the first [Session.Open] mounts it.
func NewSession(id string, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("session_id", id))

	store := state.NewStore(opts.PageSize)
	nav := view.NewNavigator()
	deps := view.Deps{
		Client:         opts.Client,
		Store:          store,
		Navigator:      nav,
		Logger:         logger,
		LookupPageSize: opts.LookupPageSize,
	}

	session := &Session{
		id:          id,
		logger:      logger,
		store:       store,
		nav:         nav,
		communities: view.NewCommunitiesController(deps),
		collections: view.NewCollectionsController(deps),
		items:       view.NewItemsController(deps),
	}
	session.routes = nav.Subscribe(context.Background(), session.onRoute)
	session.touch()
	return session
}

// ID is the session identifier carried by the cookie.
func (s *Session) ID() string { return s.id }

// Store exposes the session store for read-only consumers such as event streams.
func (s *Session) Store() *state.Store { return s.store }

// # Actions

// Open routes the session to route and returns the rendered view.
func (s *Session) Open(ctx context.Context, route view.Route) view.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.attached = true
	s.nav.Navigate(ctx, route)
	return s.mountedLocked(ctx).View()
}

// Paginate applies a page size and page to the mounted view. A size change
// restarts at the first page before page is applied.
func (s *Session) Paginate(ctx context.Context, page, size int) view.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	controller := s.mountedLocked(ctx)
	list := controller.View().Page
	if size > 0 && size != list.Size {
		controller.PageSizeChange(ctx, size)
		list = controller.View().Page
	}
	if page >= 0 && page != list.Current {
		controller.PageChange(ctx, page)
	}
	return controller.View()
}

// Retry replays the last load of the mounted view.
func (s *Session) Retry(ctx context.Context) view.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	controller := s.mountedLocked(ctx)
	controller.Retry(ctx)
	return controller.View()
}

// Back leaves the mounted view.
func (s *Session) Back(ctx context.Context) view.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	controller := s.mountedLocked(ctx)
	controller.Back(ctx)
	return s.mountedLocked(ctx).View()
}

// Select opens the entry uuid of the mounted list: a community opens its
// collections and a collection its items. It reports false for items and
// for uuids not on the page.
func (s *Session) Select(ctx context.Context, uuid string) (view.View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	var opened bool
	switch controller := s.mountedLocked(ctx).(type) {
	case *view.CommunitiesController:
		opened = controller.OpenCommunity(ctx, uuid)
	case *view.CollectionsController:
		opened = controller.OpenCollection(ctx, uuid)
	}
	return s.mountedLocked(ctx).View(), opened
}

// View renders the mounted view without driving it.
func (s *Session) View(ctx context.Context) view.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.mountedLocked(ctx).View()
}

// Snapshot returns the current store snapshot.
func (s *Session) Snapshot() state.AppState {
	return s.store.Snapshot()
}

// Close releases the mounted controller and the route subscription.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	if s.release != nil {
		s.release()
		s.release = nil
	}
	s.routes()
	s.mounted = nil
}

// # Mounting

func (s *Session) onRoute(ctx context.Context, route view.Route) {
	if !s.attached {
		return
	}
	s.mountLocked(ctx, route.Kind)
}

// mountedLocked returns the mounted controller, attaching to the current
// route first when the session has never been opened. A closed session
// renders without mounting.
func (s *Session) mountedLocked(ctx context.Context) view.Controller {
	if s.closed {
		return s.controller(s.nav.Current().Kind)
	}
	if s.mounted == nil {
		s.attached = true
		s.mountLocked(ctx, s.nav.Current().Kind)
	}
	return s.mounted
}

func (s *Session) mountLocked(ctx context.Context, kind view.RouteKind) {
	if s.mounted != nil && s.mounted.Kind() == kind {
		return
	}
	if s.release != nil {
		s.release()
	}

	controller := s.controller(kind)
	s.mounted = controller
	s.release = controller.Mount(ctx)

	s.logger.DebugContext(ctx, "view_mounted", slog.String("view", kind.String()))
}

func (s *Session) controller(kind view.RouteKind) view.Controller {
	switch kind {
	case view.RouteCollections:
		return s.collections
	case view.RouteItems:
		return s.items
	default:
		return s.communities
	}
}

// # Idle Tracking

func (s *Session) touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

// LastSeen is the time of the last action.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}
