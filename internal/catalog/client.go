// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/taibuivan/dspace-browser/internal/platform/apperr"
	"github.com/taibuivan/dspace-browser/internal/platform/httpclient"
)

var (
	// ErrNoCommunities is returned when the communities response has no
	// _embedded.communities list.
	ErrNoCommunities = errors.New("catalog: no communities found")

	// ErrMissingLink is returned when an entity lacks the relation needed to
	// navigate to its children.
	ErrMissingLink = errors.New("catalog: missing link relation")
)

// Client wraps outbound calls to the repository API.
//
// Client instances are safe for concurrent use by multiple goroutines.
type Client struct {
	baseURL string
	getter  httpclient.Getter
}

// NewClient creates a catalog client rooted at baseURL (e.g.
// "http://localhost:8080/server/api"). A trailing slash is ignored.
func NewClient(baseURL string, getter httpclient.Getter) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		getter:  getter,
	}
}

// # Hierarchy

// FetchCommunities lists top-level communities.
func (c *Client) FetchCommunities(ctx context.Context, page, size int) (Page[Community], error) {
	envelope, err := c.getList(ctx, c.baseURL+"/core/communities", page, size)
	if err != nil {
		return Page[Community]{}, err
	}

	communities, found, err := embedded[Community](envelope, "communities")
	if err != nil {
		return Page[Community]{}, err
	}
	if !found {
		return Page[Community]{}, ErrNoCommunities
	}

	for i := range communities {
		communities[i] = decorateCommunity(communities[i])
	}
	return Page[Community]{Items: communities, Pagination: ExtractPagination(envelope)}, nil
}

// FetchCollections lists the collections of community by following its
// "collections" link. A response without _embedded.collections is zero results.
func (c *Client) FetchCollections(ctx context.Context, community Community, page, size int) (Page[Collection], error) {
	href, ok := community.Links.Href(RelCollections)
	if !ok {
		return Page[Collection]{}, fmt.Errorf("%w: community %s has no %q link", ErrMissingLink, community.UUID, RelCollections)
	}

	envelope, err := c.getList(ctx, href, page, size)
	if err != nil {
		return Page[Collection]{}, err
	}

	collections, _, err := embedded[Collection](envelope, "collections")
	if err != nil {
		return Page[Collection]{}, err
	}

	for i := range collections {
		collections[i] = decorateCollection(collections[i])
	}
	return Page[Collection]{Items: collections, Pagination: ExtractPagination(envelope)}, nil
}

// FetchItems lists the items of collection using [Client.ResolveItemSource].
func (c *Client) FetchItems(ctx context.Context, collection Collection, page, size int) (Page[Item], error) {
	return c.FetchItemsFrom(ctx, c.ResolveItemSource(collection), page, size)
}

// FetchItemsFrom lists items from an already resolved source. The body is
// read from _embedded.items, else _embedded.mappedItems, else zero results.
func (c *Client) FetchItemsFrom(ctx context.Context, source ItemSource, page, size int) (Page[Item], error) {
	envelope, err := c.getList(ctx, source.URL, page, size)
	if err != nil {
		return Page[Item]{}, err
	}

	items, found, err := embedded[Item](envelope, "items")
	if err != nil {
		return Page[Item]{}, err
	}
	if !found {
		if items, _, err = embedded[Item](envelope, "mappedItems"); err != nil {
			return Page[Item]{}, err
		}
	}

	for i := range items {
		items[i] = decorateItem(items[i])
	}
	return Page[Item]{Items: items, Pagination: ExtractPagination(envelope)}, nil
}

// # Discovery

// Search runs a discovery query and returns the raw response.
func (c *Client) Search(ctx context.Context, query string, page, size int) (map[string]any, error) {
	target, err := withPaging(c.baseURL+"/discover/search/objects?query="+url.QueryEscape(query), page, size)
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := c.getter.GetJSON(ctx, target, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Ping checks that the API root answers.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.getter.GetJSON(ctx, c.baseURL, nil); err != nil {
		return apperr.BadGateway(err)
	}
	return nil
}

// # Helpers

func (c *Client) getList(ctx context.Context, rawURL string, page, size int) (*Envelope, error) {
	target, err := withPaging(rawURL, page, size)
	if err != nil {
		return nil, err
	}

	envelope := &Envelope{}
	if err := c.getter.GetJSON(ctx, target, envelope); err != nil {
		return nil, err
	}
	return envelope, nil
}

// withPaging sets the zero-based page and size query parameters on rawURL,
// keeping whatever query the link already carries.
func withPaging(rawURL string, page, size int) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("catalog: invalid url %q: %w", rawURL, err)
	}

	query := parsed.Query()
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
