// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"context"
	"log/slog"

	"github.com/taibuivan/dspace-browser/internal/catalog"
	"github.com/taibuivan/dspace-browser/internal/state"
)

// CollectionsController serves "/community/{id}/collections".
type CollectionsController struct {
	base
}

// NewCollectionsController wires the collections view.
func NewCollectionsController(deps Deps) *CollectionsController {
	c := &CollectionsController{}
	c.init(RouteCollections, state.Collections, deps, c.Load)
	return c
}

// Load shows page of the collections of the routed community.
func (c *CollectionsController) Load(ctx context.Context, page, size int) {
	id, snapshot := c.begin(page, size)

	if active := snapshot.ActiveCommunity; active != nil && active.UUID == id {
		if reuse(snapshot.CollectionsList, page) {
			c.store.SetLoading(false)
			return
		}
		c.fetchCollections(ctx, *active, page, size)
		return
	}

	community, fail := c.resolveCommunity(ctx, id)
	if fail != nil {
		c.fail(ctx, fail.msg, fail.err)
		return
	}

	c.store.SetActiveCommunity(community)
	c.fetchCollections(ctx, community, page, size)
}

func (c *CollectionsController) fetchCollections(ctx context.Context, community catalog.Community, page, size int) {
	result, err := c.client.FetchCollections(ctx, community, page, size)
	if err != nil {
		c.fail(ctx, MsgLoadCollections, err)
		return
	}

	c.store.SetCollections(result.Items)
	c.storePage(state.Collections, result.Pagination, page, size)

	c.logger.DebugContext(ctx, "collections_loaded",
		slog.String("community", community.UUID),
		slog.Int("page", page),
		slog.Int("size", size),
		slog.Int("count", len(result.Items)),
	)
}

// OpenCollection activates collection uuid and routes to its items.
func (c *CollectionsController) OpenCollection(ctx context.Context, uuid string) bool {
	collection, ok := c.store.Collection(uuid)
	if !ok {
		return false
	}

	if active := c.store.Snapshot().ActiveCollection; active == nil || active.UUID != uuid {
		c.store.SetActiveCollection(collection)
	}
	c.nav.Navigate(ctx, ItemsRoute(uuid))
	return true
}

// Back returns to the community list.
func (c *CollectionsController) Back(ctx context.Context) {
	c.nav.Navigate(ctx, CommunitiesRoute())
}

// View renders the collections of the active community.
func (c *CollectionsController) View() View {
	view, snapshot := c.view()
	view.Collections = snapshot.Collections
	return view
}
