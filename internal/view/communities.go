// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taibuivan/dspace-browser/internal/catalog"
	"github.com/taibuivan/dspace-browser/internal/state"
)

// CommunitiesController serves "/", the top-level communities.
type CommunitiesController struct {
	base
}

// NewCommunitiesController wires the communities view.
func NewCommunitiesController(deps Deps) *CommunitiesController {
	c := &CommunitiesController{}
	c.init(RouteCommunities, state.Communities, deps, c.Load)
	return c
}

// Load shows page of the community list, reusing the cached first page.
func (c *CommunitiesController) Load(ctx context.Context, page, size int) {
	_, snapshot := c.begin(page, size)

	if reuse(snapshot.CommunitiesList, page) {
		c.store.SetLoading(false)
		return
	}

	result, err := c.client.FetchCommunities(ctx, page, size)
	if err != nil {
		msg := MsgLoadCommunities
		if errors.Is(err, catalog.ErrNoCommunities) {
			msg = MsgNoCommunities
		}
		c.fail(ctx, msg, err)
		return
	}

	c.store.SetCommunities(result.Items)
	c.storePage(state.Communities, result.Pagination, page, size)

	c.logger.DebugContext(ctx, "communities_loaded",
		slog.Int("page", page),
		slog.Int("size", size),
		slog.Int("count", len(result.Items)),
	)
}

// OpenCommunity activates community uuid and routes to its collections.
func (c *CommunitiesController) OpenCommunity(ctx context.Context, uuid string) bool {
	community, ok := c.store.Community(uuid)
	if !ok {
		return false
	}

	if active := c.store.Snapshot().ActiveCommunity; active == nil || active.UUID != uuid {
		c.store.SetActiveCommunity(community)
	}
	c.nav.Navigate(ctx, CollectionsRoute(uuid))
	return true
}

// Back stays on the root view.
func (c *CommunitiesController) Back(ctx context.Context) {
	c.nav.Navigate(ctx, CommunitiesRoute())
}

// View renders the community list.
func (c *CommunitiesController) View() View {
	view, snapshot := c.view()
	view.Communities = snapshot.Communities
	return view
}
