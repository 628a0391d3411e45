// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "net/url"

// SourceKind tags how the items of a collection are reached.
type SourceKind int

const (
	// SourceItemsLink follows the collection's "items" relation.
	SourceItemsLink SourceKind = iota
	// SourceMappedItemsLink follows the "mappedItems" relation of virtual collections.
	SourceMappedItemsLink
	// SourceCollectionSearch queries items by collection uuid on the server.
	SourceCollectionSearch
)

func (k SourceKind) String() string {
	switch k {
	case SourceItemsLink:
		return "items_link"
	case SourceMappedItemsLink:
		return "mapped_items_link"
	case SourceCollectionSearch:
		return "collection_search"
	default:
		return "unknown"
	}
}

// ItemSource is the resolved strategy for listing a collection's items.
type ItemSource struct {
	Kind SourceKind
	URL  string
}

// ResolveItemSource picks the item strategy for collection, once, in order:
// the "items" link, the "mappedItems" link, then the search endpoint.
func (c *Client) ResolveItemSource(collection Collection) ItemSource {
	if href, ok := collection.Links.Href(RelItems); ok {
		return ItemSource{Kind: SourceItemsLink, URL: href}
	}
	if href, ok := collection.Links.Href(RelMappedItems); ok {
		return ItemSource{Kind: SourceMappedItemsLink, URL: href}
	}
	return ItemSource{
		Kind: SourceCollectionSearch,
		URL:  c.baseURL + "/core/items/search/findByCollection?uuid=" + url.QueryEscape(collection.UUID),
	}
}
