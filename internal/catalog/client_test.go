// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dspace-browser/internal/catalog"
	"github.com/taibuivan/dspace-browser/internal/platform/apperr"
	"github.com/taibuivan/dspace-browser/internal/platform/httpclient"
)

const baseURL = "http://repo.test/server/api"

// fakeGetter answers GetJSON from canned bodies keyed by URL prefix.
type fakeGetter struct {
	mu     sync.Mutex
	bodies map[string]string
	calls  []string
}

func (f *fakeGetter) GetJSON(ctx context.Context, url string, target any) error {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()

	for prefix, body := range f.bodies {
		if strings.HasPrefix(url, prefix) {
			if target == nil {
				return nil
			}
			return json.Unmarshal([]byte(body), target)
		}
	}
	return &httpclient.StatusError{URL: url, StatusCode: http.StatusNotFound}
}

/*
TestFetchCommunities_DecoratesAndPaginates covers the list endpoint and derived names.
*/
func TestFetchCommunities_DecoratesAndPaginates(t *testing.T) {
	getter := &fakeGetter{bodies: map[string]string{
		baseURL + "/core/communities": `{
			"_embedded": {"communities": [
				{"uuid": "c-1", "name": "Plain", "metadata": {"dc.title": [{"value": "Titled"}]}},
				{"uuid": "c-2", "name": "Only Name"}
			]},
			"page": {"size": 10, "totalElements": 2, "totalPages": 1, "number": 0}
		}`,
	}}
	client := catalog.NewClient(baseURL+"/", getter)

	page, err := client.FetchCommunities(context.Background(), 0, 10)
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, "Titled", page.Items[0].DisplayName)
	assert.Equal(t, "Only Name", page.Items[1].DisplayName)
	require.NotNil(t, page.Pagination)
	assert.Equal(t, 1, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.First)
	assert.True(t, page.Pagination.Last)
	assert.Equal(t, []string{baseURL + "/core/communities?page=0&size=10"}, getter.calls)
}

/*
TestFetchCommunities_EmptyEnvelope treats a missing list as an explicit error.
*/
func TestFetchCommunities_EmptyEnvelope(t *testing.T) {
	getter := &fakeGetter{bodies: map[string]string{baseURL + "/core/communities": `{}`}}

	_, err := catalog.NewClient(baseURL, getter).FetchCommunities(context.Background(), 0, 10)
	assert.ErrorIs(t, err, catalog.ErrNoCommunities)
}

/*
TestFetchCollections_FollowsLink uses the community's collections relation.
*/
func TestFetchCollections_FollowsLink(t *testing.T) {
	getter := &fakeGetter{bodies: map[string]string{
		"http://repo.test/links/c-1/collections": `{"_embedded": {"collections": [{"uuid": "col-1", "name": "Theses"}]}}`,
	}}
	community := catalog.Community{Resource: catalog.Resource{
		UUID:  "c-1",
		Links: catalog.Links{catalog.RelCollections: {Href: "http://repo.test/links/c-1/collections?embed=none"}},
	}}

	page, err := catalog.NewClient(baseURL, getter).FetchCollections(context.Background(), community, 2, 5)
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, "Theses", page.Items[0].DisplayName)
	assert.Nil(t, page.Pagination)
	assert.Equal(t, []string{"http://repo.test/links/c-1/collections?embed=none&page=2&size=5"}, getter.calls)
}

/*
TestFetchCollections_MissingEmbedded is zero results, not an error.
*/
func TestFetchCollections_MissingEmbedded(t *testing.T) {
	getter := &fakeGetter{bodies: map[string]string{"http://repo.test/c/collections": `{"page": {"size": 10}}`}}
	community := catalog.Community{Resource: catalog.Resource{
		UUID:  "c-1",
		Links: catalog.Links{catalog.RelCollections: {Href: "http://repo.test/c/collections"}},
	}}

	page, err := catalog.NewClient(baseURL, getter).FetchCollections(context.Background(), community, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

/*
TestFetchCollections_NoLink never reconstructs the URL from the uuid.
*/
func TestFetchCollections_NoLink(t *testing.T) {
	getter := &fakeGetter{}
	community := catalog.Community{Resource: catalog.Resource{UUID: "c-1"}}

	_, err := catalog.NewClient(baseURL, getter).FetchCollections(context.Background(), community, 0, 10)
	assert.ErrorIs(t, err, catalog.ErrMissingLink)
	assert.Empty(t, getter.calls)
}

/*
TestResolveItemSource_Ordering checks the three-tier item strategy.
*/
func TestResolveItemSource_Ordering(t *testing.T) {
	client := catalog.NewClient(baseURL, &fakeGetter{})

	tests := []struct {
		name  string
		links catalog.Links
		kind  catalog.SourceKind
		url   string
	}{
		{
			name: "items_preferred",
			links: catalog.Links{
				catalog.RelItems:       {Href: "http://repo.test/col/items"},
				catalog.RelMappedItems: {Href: "http://repo.test/col/mapped"},
			},
			kind: catalog.SourceItemsLink,
			url:  "http://repo.test/col/items",
		},
		{
			name:  "mapped_only",
			links: catalog.Links{catalog.RelMappedItems: {Href: "http://repo.test/col/mapped"}},
			kind:  catalog.SourceMappedItemsLink,
			url:   "http://repo.test/col/mapped",
		},
		{
			name:  "no_links",
			links: nil,
			kind:  catalog.SourceCollectionSearch,
			url:   baseURL + "/core/items/search/findByCollection?uuid=col-9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := client.ResolveItemSource(catalog.Collection{Resource: catalog.Resource{UUID: "col-9", Links: tt.links}})
			assert.Equal(t, tt.kind, source.Kind)
			assert.Equal(t, tt.url, source.URL)
		})
	}
}

/*
TestFetchItems_MappedItemsOnly calls the mappedItems URL, never the search fallback.
*/
func TestFetchItems_MappedItemsOnly(t *testing.T) {
	getter := &fakeGetter{bodies: map[string]string{
		"http://repo.test/col/mapped": `{"_embedded": {"mappedItems": [
			{"uuid": "i-1", "metadata": {
				"dc.title": [{"value": "Paper"}],
				"dc.date.issued": [{"value": "2021-04-01"}],
				"dc.date": [{"value": "2020"}],
				"dc.creator": [{"value": "Ada"}]
			}}
		]}}`,
	}}
	collection := catalog.Collection{Resource: catalog.Resource{
		UUID:  "col-1",
		Links: catalog.Links{catalog.RelMappedItems: {Href: "http://repo.test/col/mapped"}},
	}}

	page, err := catalog.NewClient(baseURL, getter).FetchItems(context.Background(), collection, 0, 10)
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, "Paper", page.Items[0].DisplayName)
	assert.Equal(t, "2021-04-01", page.Items[0].Date)
	assert.Equal(t, "Ada", page.Items[0].Author)

	require.Len(t, getter.calls, 1)
	assert.True(t, strings.HasPrefix(getter.calls[0], "http://repo.test/col/mapped?"))
	assert.NotContains(t, getter.calls[0], "findByCollection")
}

/*
TestFetchItems_SearchFallback queries by uuid when no link exists.
*/
func TestFetchItems_SearchFallback(t *testing.T) {
	getter := &fakeGetter{bodies: map[string]string{
		baseURL + "/core/items/search/findByCollection": `{"_embedded": {"items": [{"uuid": "i-1", "name": "Raw"}]}}`,
	}}
	collection := catalog.Collection{Resource: catalog.Resource{UUID: "col-1"}}

	page, err := catalog.NewClient(baseURL, getter).FetchItems(context.Background(), collection, 1, 20)
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, "Raw", page.Items[0].DisplayName)
	assert.Equal(t, baseURL+"/core/items/search/findByCollection?page=1&size=20&uuid=col-1", getter.calls[0])
}

/*
TestFetchItems_TransportError passes failures through unchanged.
*/
func TestFetchItems_TransportError(t *testing.T) {
	collection := catalog.Collection{Resource: catalog.Resource{
		UUID:  "col-1",
		Links: catalog.Links{catalog.RelItems: {Href: "http://repo.test/missing"}},
	}}

	_, err := catalog.NewClient(baseURL, &fakeGetter{}).FetchItems(context.Background(), collection, 0, 10)

	var statusErr *httpclient.StatusError
	assert.True(t, errors.As(err, &statusErr))
}

/*
TestSearch_Passthrough returns the raw discovery payload.
*/
func TestSearch_Passthrough(t *testing.T) {
	getter := &fakeGetter{bodies: map[string]string{
		baseURL + "/discover/search/objects": `{"query": "water", "_embedded": {}}`,
	}}

	result, err := catalog.NewClient(baseURL, getter).Search(context.Background(), "water quality", 0, 10)
	require.NoError(t, err)

	assert.Equal(t, "water", result["query"])
	assert.Contains(t, getter.calls[0], "query=water+quality")
}

/*
TestClient_OverHTTP wires the real transport against an httptest upstream.
*/
func TestClient_OverHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/server/api/core/communities", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		_, _ = io.WriteString(w, `{"_embedded": {"communities": []}, "page": {"size": 5, "totalElements": 15, "totalPages": 3, "number": 3, "first": false, "last": true}}`)
	}))
	defer server.Close()

	getter := httpclient.New(5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	page, err := catalog.NewClient(server.URL+"/server/api", getter).FetchCommunities(context.Background(), 3, 5)
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	require.NotNil(t, page.Pagination)
	assert.True(t, page.Pagination.Last)
	assert.False(t, page.Pagination.First)
}

/*
TestPing reports an unreachable catalog as a bad gateway.
*/
func TestPing(t *testing.T) {
	up := catalog.NewClient(baseURL, &fakeGetter{bodies: map[string]string{baseURL: `{}`}})
	require.NoError(t, up.Ping(context.Background()))

	down := catalog.NewClient(baseURL, &fakeGetter{})
	err := down.Ping(context.Background())
	require.Error(t, err)

	var statusErr *httpclient.StatusError
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, apperr.As(err).HTTPStatus)
}
