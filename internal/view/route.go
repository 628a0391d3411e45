// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"fmt"
	"net/url"
	"strings"
)

// RouteKind identifies a routed view.
type RouteKind int

const (
	// RouteCommunities is "/", the list of top-level communities.
	RouteCommunities RouteKind = iota
	// RouteCollections is "/community/{id}/collections".
	RouteCollections
	// RouteItems is "/collection/{id}/items".
	RouteItems
)

func (k RouteKind) String() string {
	switch k {
	case RouteCommunities:
		return "communities"
	case RouteCollections:
		return "collections"
	case RouteItems:
		return "items"
	default:
		return "unknown"
	}
}

// ParamID is the only path parameter of the routed views.
const ParamID = "id"

// Route is a parsed view path.
type Route struct {
	Kind RouteKind
	ID   string
}

// CommunitiesRoute returns the root route.
func CommunitiesRoute() Route { return Route{Kind: RouteCommunities} }

// CollectionsRoute returns the route listing the collections of community id.
func CollectionsRoute(id string) Route { return Route{Kind: RouteCollections, ID: id} }

// ItemsRoute returns the route listing the items of collection id.
func ItemsRoute(id string) Route { return Route{Kind: RouteItems, ID: id} }

// Path renders the route as a URL path.
func (r Route) Path() string {
	switch r.Kind {
	case RouteCollections:
		return "/community/" + url.PathEscape(r.ID) + "/collections"
	case RouteItems:
		return "/collection/" + url.PathEscape(r.ID) + "/items"
	default:
		return "/"
	}
}

// Param returns the named path parameter, or "".
func (r Route) Param(name string) string {
	if name == ParamID {
		return r.ID
	}
	return ""
}

// ParseRoute parses a view path back into a [Route].
func ParseRoute(path string) (Route, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return CommunitiesRoute(), nil
	}

	segments := strings.Split(trimmed, "/")
	if len(segments) == 3 && segments[1] != "" {
		id, err := url.PathUnescape(segments[1])
		if err != nil {
			return Route{}, fmt.Errorf("view: invalid route %q: %w", path, err)
		}
		switch {
		case segments[0] == "community" && segments[2] == "collections":
			return CollectionsRoute(id), nil
		case segments[0] == "collection" && segments[2] == "items":
			return ItemsRoute(id), nil
		}
	}

	return Route{}, fmt.Errorf("view: unknown route %q", path)
}
