// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/dspace-browser/internal/catalog"
	"github.com/taibuivan/dspace-browser/internal/state"
	"github.com/taibuivan/dspace-browser/pkg/pagination"
	"github.com/taibuivan/dspace-browser/pkg/slice"
)

// searchLimit bounds the collection-list fetches in flight during a search.
const searchLimit = 8

// errMatched stops the search group once a branch has found the target.
var errMatched = errors.New("view: collection matched")

// failure pairs the store message with the cause that gets logged.
type failure struct {
	msg string
	err error
}

// # Community resolution

// resolveCommunity finds community id in the store. Only an empty community
// cache triggers a remote lookup; a populated one without the id is a miss.
func (b *base) resolveCommunity(ctx context.Context, id string) (catalog.Community, *failure) {
	if community, ok := b.store.Community(id); ok {
		return community, nil
	}
	if len(b.store.Snapshot().Communities) > 0 {
		return catalog.Community{}, &failure{msg: MsgCommunityNotFound}
	}

	communities, fail := b.lookupCommunities(ctx)
	if fail != nil {
		return catalog.Community{}, fail
	}
	community, ok := slice.Find(communities, func(community catalog.Community) bool {
		return community.UUID == id
	})
	if !ok {
		return catalog.Community{}, &failure{msg: MsgCommunityNotFound}
	}
	return community, nil
}

// lookupCommunities fetches the first page of communities at the lookup page
// size and caches the entries without a cursor, so the community view fetches
// its own page when opened. The load stays in progress afterwards.
func (b *base) lookupCommunities(ctx context.Context) ([]catalog.Community, *failure) {
	page, err := b.client.FetchCommunities(ctx, pagination.FirstPage, b.lookupSize)
	if err != nil {
		if errors.Is(err, catalog.ErrNoCommunities) {
			return nil, &failure{msg: MsgNoCommunities, err: err}
		}
		return nil, &failure{msg: MsgLoadCommunities, err: err}
	}

	b.store.SetCommunities(page.Items)
	b.store.Invalidate(state.Communities)
	b.store.SetLoading(true)
	return page.Items, nil
}

// # Collection search

// match is the winning branch of a collection search.
type match struct {
	community   catalog.Community
	collections catalog.Page[catalog.Collection]
	collection  catalog.Collection
}

// searchCommunities fetches the collections of every community in parallel
// and returns the first branch whose list holds collection id. The remaining
// branches are cancelled as soon as one matches.
//
// With no match, the failure is "Failed to load collection details" when
// every branch failed and "Collection not found" otherwise.
func (b *base) searchCommunities(ctx context.Context, communities []catalog.Community, id string) (match, *failure) {
	if len(communities) == 0 {
		return match{}, &failure{msg: MsgCollectionNotFound}
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(searchLimit)

	var (
		winner   atomic.Pointer[match]
		failures atomic.Int64
	)

	for _, community := range communities {
		group.Go(func() error {
			if groupCtx.Err() != nil {
				return nil
			}

			page, err := b.client.FetchCollections(groupCtx, community, pagination.FirstPage, b.lookupSize)
			if err != nil {
				if groupCtx.Err() == nil {
					failures.Add(1)
					b.logger.WarnContext(ctx, "collection_search_branch_failed",
						slog.String("community", community.UUID),
						slog.Any("error", err),
					)
				}
				return nil
			}

			collection, ok := slice.Find(page.Items, func(collection catalog.Collection) bool {
				return collection.UUID == id
			})
			if ok && winner.CompareAndSwap(nil, &match{community: community, collections: page, collection: collection}) {
				return errMatched
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil && !errors.Is(err, errMatched) {
		return match{}, &failure{msg: MsgCollectionDetails, err: err}
	}

	if found := winner.Load(); found != nil {
		b.logger.DebugContext(ctx, "collection_search_matched",
			slog.String("collection", id),
			slog.String("community", found.community.UUID),
		)
		return *found, nil
	}
	if ctx.Err() != nil {
		return match{}, &failure{msg: MsgCollectionDetails, err: ctx.Err()}
	}
	if int(failures.Load()) == len(communities) {
		return match{}, &failure{msg: MsgCollectionDetails}
	}
	return match{}, &failure{msg: MsgCollectionNotFound}
}
