// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and the
session cookie, so handlers never touch chi or cookie parsing directly.
*/
package requestutil

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taibuivan/dspace-browser/internal/platform/constants"
)

/*
ID retrieves a named URL parameter (UUID) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
SessionID reads the session cookie.

Returns:
  - string: The session identifier, or "" when the cookie is absent or malformed
*/
func SessionID(request *http.Request) string {
	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return ""
	}
	return cookie.Value
}

/*
SetSessionID issues the session cookie on writer.
*/
func SetSessionID(writer http.ResponseWriter, request *http.Request, id string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   request.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}
