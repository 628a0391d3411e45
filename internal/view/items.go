// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"context"
	"log/slog"

	"github.com/taibuivan/dspace-browser/internal/catalog"
	"github.com/taibuivan/dspace-browser/internal/state"
)

// ItemsController serves "/collection/{id}/items".
type ItemsController struct {
	base
}

// NewItemsController wires the items view.
func NewItemsController(deps Deps) *ItemsController {
	c := &ItemsController{}
	c.init(RouteItems, state.Items, deps, c.Load)
	return c
}

// Load shows page of the items of the routed collection.
func (c *ItemsController) Load(ctx context.Context, page, size int) {
	id, snapshot := c.begin(page, size)

	if active := snapshot.ActiveCollection; active != nil && active.UUID == id {
		if reuse(snapshot.ItemsList, page) {
			c.store.SetLoading(false)
			return
		}
		c.fetchItems(ctx, *active, page, size)
		return
	}

	collection, fail := c.resolveCollection(ctx, id)
	if fail != nil {
		c.fail(ctx, fail.msg, fail.err)
		return
	}
	c.fetchItems(ctx, collection, page, size)
}

// resolveCollection activates collection id. A cached collection list is
// authoritative; with none cached, every community is searched.
func (c *ItemsController) resolveCollection(ctx context.Context, id string) (catalog.Collection, *failure) {
	if collection, ok := c.store.Collection(id); ok {
		c.store.SetActiveCollection(collection)
		return collection, nil
	}
	if len(c.store.Snapshot().Collections) > 0 {
		return catalog.Collection{}, &failure{msg: MsgCollectionNotFound}
	}

	communities := c.store.Snapshot().Communities
	if len(communities) == 0 {
		fetched, fail := c.lookupCommunities(ctx)
		if fail != nil {
			return catalog.Collection{}, fail
		}
		communities = fetched
	}

	found, fail := c.searchCommunities(ctx, communities, id)
	if fail != nil {
		return catalog.Collection{}, fail
	}

	c.store.SetActiveCommunity(found.community)
	c.store.SetCollections(found.collections.Items)
	c.store.Invalidate(state.Collections)
	c.store.SetActiveCollection(found.collection)
	c.store.SetLoading(true)
	return found.collection, nil
}

func (c *ItemsController) fetchItems(ctx context.Context, collection catalog.Collection, page, size int) {
	result, err := c.client.FetchItems(ctx, collection, page, size)
	if err != nil {
		c.fail(ctx, MsgLoadItems, err)
		return
	}

	c.store.SetItems(result.Items)
	c.storePage(state.Items, result.Pagination, page, size)

	c.logger.DebugContext(ctx, "items_loaded",
		slog.String("collection", collection.UUID),
		slog.Int("page", page),
		slog.Int("size", size),
		slog.Int("count", len(result.Items)),
	)
}

// Back returns to the collections of the active community, or to the root
// when the collection was reached without one.
func (c *ItemsController) Back(ctx context.Context) {
	if community := c.store.Snapshot().ActiveCommunity; community != nil {
		c.nav.Navigate(ctx, CollectionsRoute(community.UUID))
		return
	}
	c.BackToCommunities(ctx)
}

// BackToCommunities returns to the community list.
func (c *ItemsController) BackToCommunities(ctx context.Context) {
	c.nav.Navigate(ctx, CommunitiesRoute())
}

// View renders the items of the active collection.
func (c *ItemsController) View() View {
	view, snapshot := c.view()
	view.Items = snapshot.Items
	return view
}
