// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package browser_test

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dspace-browser/internal/browser"
	"github.com/taibuivan/dspace-browser/internal/platform/constants"
	"github.com/taibuivan/dspace-browser/internal/state"
	"github.com/taibuivan/dspace-browser/internal/view"
)

type envelope[T any] struct {
	Data  T      `json:"data"`
	Error string `json:"error"`
	Code  string `json:"code"`
}

// newViewServer serves the view routes the way the API server mounts them.
func newViewServer(t *testing.T, stub *catalogStub) (*httptest.Server, *browser.Registry) {
	t.Helper()

	registry := browser.NewRegistry(testOptions(stub))
	handler := browser.NewHandler(registry, true)

	router := chi.NewRouter()
	router.Get("/api/v1/view/events", handler.Events)
	router.Mount("/api/v1/view", handler.Routes())

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, registry
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar, Timeout: 10 * time.Second}
}

func decode[T any](t *testing.T, response *http.Response) envelope[T] {
	t.Helper()
	defer response.Body.Close()

	var body envelope[T]
	require.NoError(t, json.NewDecoder(response.Body).Decode(&body))
	return body
}

/*
TestHandler_SessionCookie keeps one session across requests.
*/
func TestHandler_SessionCookie(t *testing.T) {
	stub := &catalogStub{}
	server, registry := newViewServer(t, stub)
	client := newClient(t)

	response, err := client.Get(server.URL + "/api/v1/view/communities")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, response.StatusCode)

	var cookie *http.Cookie
	for _, c := range response.Cookies() {
		if c.Name == constants.SessionCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	body := decode[view.View](t, response)
	assert.Len(t, body.Data.Communities, 2)

	response, err = client.Get(server.URL + "/api/v1/view/state")
	require.NoError(t, err)
	snapshot := decode[state.AppState](t, response)
	assert.Len(t, snapshot.Data.Communities, 2)

	assert.Equal(t, 1, registry.Len())
	assert.Len(t, stub.Calls(), 1)
}

/*
TestHandler_Navigation drives the views over HTTP.
*/
func TestHandler_Navigation(t *testing.T) {
	stub := &catalogStub{}
	server, _ := newViewServer(t, stub)
	client := newClient(t)

	response, err := client.Get(server.URL + "/api/v1/view/collections/col-1/items?page=1&size=10")
	require.NoError(t, err)
	body := decode[view.View](t, response)
	assert.Equal(t, 1, body.Data.Page.Current)
	assert.Equal(t, 10, body.Data.Page.Size)
	assert.Equal(t, view.StatusReady, body.Data.Status)
	assert.Equal(t, "col-1", body.Data.Collection.UUID)

	response, err = client.Post(server.URL+"/api/v1/view/back", "application/json", nil)
	require.NoError(t, err)
	body = decode[view.View](t, response)
	assert.Equal(t, "/community/c-1/collections", body.Data.Route)

	response, err = client.Post(server.URL+"/api/v1/view/retry", "application/json", nil)
	require.NoError(t, err)
	body = decode[view.View](t, response)
	assert.Equal(t, "collections", body.Data.Kind)
	assert.Empty(t, body.Data.Error)
}

/*
TestHandler_Validation rejects bad sizes and out-of-range pages.
*/
func TestHandler_Validation(t *testing.T) {
	stub := &catalogStub{}
	server, _ := newViewServer(t, stub)
	client := newClient(t)

	tests := []struct {
		name string
		path string
	}{
		{"UnofferedSize", "/api/v1/view/communities?size=7"},
		{"PagePastLast", "/api/v1/view/communities?page=4"},
		{"PagePastLastWithSize", "/api/v1/view/communities?page=7&size=10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response, err := client.Get(server.URL + tt.path)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, response.StatusCode)

			body := decode[json.RawMessage](t, response)
			assert.Equal(t, "VALIDATION_ERROR", body.Code)
		})
	}

	for _, call := range stub.Calls() {
		assert.Equal(t, "communities:0:10", call, "a rejected page is never fetched")
	}
}

/*
TestHandler_Events pushes a snapshot on connect and after every load.
*/
func TestHandler_Events(t *testing.T) {
	stub := &catalogStub{}
	server, _ := newViewServer(t, stub)
	client := newClient(t)

	response, err := client.Get(server.URL + "/api/v1/view/state")
	require.NoError(t, err)
	response.Body.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/view/events"
	header := http.Header{}
	for _, cookie := range client.Jar.Cookies(response.Request.URL) {
		header.Add("Cookie", cookie.String())
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer conn.Close()

	var event browser.Event
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, browser.EventSnapshot, event.Type)
	assert.Empty(t, event.Data.Communities)

	response, err = client.Get(server.URL + "/api/v1/view/communities")
	require.NoError(t, err)
	response.Body.Close()

	for len(event.Data.Communities) == 0 || event.Data.Loading {
		require.NoError(t, conn.ReadJSON(&event))
	}
	assert.Len(t, event.Data.Communities, 2)
}

/*
TestHandler_EventsIssuesSessionCookie hands a new session its cookie on the handshake.
*/
func TestHandler_EventsIssuesSessionCookie(t *testing.T) {
	stub := &catalogStub{}
	server, registry := newViewServer(t, stub)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/view/events"
	conn, response, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	var cookie *http.Cookie
	for _, c := range response.Cookies() {
		if c.Name == constants.SessionCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	_, found := registry.Get(cookie.Value)
	assert.True(t, found)
}
