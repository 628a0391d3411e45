// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package browser

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/taibuivan/dspace-browser/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/dspace-browser/internal/platform/request"
	"github.com/taibuivan/dspace-browser/internal/platform/respond"
	"github.com/taibuivan/dspace-browser/internal/platform/validate"
	"github.com/taibuivan/dspace-browser/internal/view"
	"github.com/taibuivan/dspace-browser/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer of the routed views.
type Handler struct {
	registry *Registry
	upgrader websocket.Upgrader
}

// NewHandler constructs the view [Handler]. In development the event stream
// accepts any origin; otherwise the websocket same-origin check applies.
func NewHandler(registry *Registry, development bool) *Handler {
	handler := &Handler{registry: registry}
	if development {
		handler.upgrader.CheckOrigin = func(*http.Request) bool { return true }
	}
	return handler
}

// Routes returns a [chi.Router] configured with the view endpoints.
//
// The event stream is served by [Handler.Events] and mounted separately,
// outside the request timeout.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Routed Views
	router.Get("/communities", handler.listCommunities)
	router.Get("/communities/{id}/collections", handler.listCollections)
	router.Get("/collections/{id}/items", handler.listItems)

	// ## View Actions
	router.Post("/retry", handler.retry)
	router.Post("/back", handler.back)
	router.Get("/state", handler.state)

	return router
}

// # View Endpoints

/*
GET /api/v1/view/communities.

Description: Routes the session to the community list.

Request:
  - page: int (zero-based)
  - size: int (one of 5, 10, 20, 50)

Response:
  - 200: view.View: Rendered view, with any load failure in its error field
  - 400: ErrValidation: Invalid page or size
*/
func (handler *Handler) listCommunities(writer http.ResponseWriter, request *http.Request) {
	handler.openList(writer, request, view.CommunitiesRoute())
}

/*
GET /api/v1/view/communities/{id}/collections.

Description: Routes the session to the collections of a community,
resolving the community when it is not cached.

Request:
  - id: string (Community UUID)
  - page, size: as for the community list

Response:
  - 200: view.View: Rendered view
  - 400: ErrValidation: Invalid id, page or size
*/
func (handler *Handler) listCollections(writer http.ResponseWriter, request *http.Request) {
	handler.openList(writer, request, view.CollectionsRoute(requestutil.ID(request, view.ParamID)))
}

/*
GET /api/v1/view/collections/{id}/items.

Description: Routes the session to the items of a collection, searching
every community when the collection is not cached.

Request:
  - id: string (Collection UUID)
  - page, size: as for the community list

Response:
  - 200: view.View: Rendered view
  - 400: ErrValidation: Invalid id, page or size
*/
func (handler *Handler) listItems(writer http.ResponseWriter, request *http.Request) {
	handler.openList(writer, request, view.ItemsRoute(requestutil.ID(request, view.ParamID)))
}

/*
POST /api/v1/view/retry.

Description: Replays the last load of the mounted view.

Response:
  - 200: view.View: Rendered view
*/
func (handler *Handler) retry(writer http.ResponseWriter, request *http.Request) {
	session, request := handler.session(writer, request)
	respond.OK(writer, session.Retry(request.Context()))
}

/*
POST /api/v1/view/back.

Description: Leaves the mounted view for its parent.

Response:
  - 200: view.View: Rendered parent view
*/
func (handler *Handler) back(writer http.ResponseWriter, request *http.Request) {
	session, request := handler.session(writer, request)
	respond.OK(writer, session.Back(request.Context()))
}

/*
GET /api/v1/view/state.

Description: Returns the raw store snapshot of the session.

Response:
  - 200: state.AppState: Snapshot
*/
func (handler *Handler) state(writer http.ResponseWriter, request *http.Request) {
	session, _ := handler.session(writer, request)
	respond.OK(writer, session.Snapshot())
}

// # Helpers

// openList validates the request, routes the session and applies pagination.
// A size applies first; page is then checked against the resized view.
func (handler *Handler) openList(writer http.ResponseWriter, request *http.Request, route view.Route) {
	params := pagination.FromRequest(request)

	validator := &validate.Validator{}
	if route.Kind != view.RouteCommunities {
		validator.RouteID(view.ParamID, route.ID)
	}
	if params.HasSize {
		validator.PageSize("size", params.Size)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, request := handler.session(writer, request)
	ctx := request.Context()

	rendered := session.Open(ctx, route)
	if !params.HasPage && !params.HasSize {
		respond.OK(writer, rendered)
		return
	}

	if params.HasSize {
		rendered = session.Paginate(ctx, -1, params.Size)
	}
	if params.HasPage {
		page := rendered.Page
		if err := (&validate.Validator{}).PageMove("page", params.Page, page.Current, page.TotalPages).Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
		rendered = session.Paginate(ctx, params.Page, 0)
	}

	respond.OK(writer, rendered)
}

// session resolves the caller's session, issuing the cookie for a new one,
// and scopes the request logger to it.
func (handler *Handler) session(writer http.ResponseWriter, request *http.Request) (*Session, *http.Request) {
	session, created := handler.registry.Resolve(requestutil.SessionID(request))
	if created {
		requestutil.SetSessionID(writer, request, session.ID())
	}

	ctx := request.Context()
	ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.String("session_id", session.ID())))
	return session, request.WithContext(ctx)
}
