// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/dspace-browser/internal/platform/constants"
	"github.com/taibuivan/dspace-browser/internal/platform/ctxutil"
	"github.com/taibuivan/dspace-browser/internal/platform/middleware"
)

type envStub struct{ development bool }

func (e envStub) IsDevelopment() bool { return e.development }

/*
TestRequestID_GeneratesAndPropagates verifies header and context injection.
*/
func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxutil.GetRequestID(r.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))
}

/*
TestRequestID_KeepsClientValue reuses an incoming correlation id.
*/
func TestRequestID_KeepsClientValue(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxutil.GetRequestID(r.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "client-id")
	handler.ServeHTTP(httptest.NewRecorder(), request)

	assert.Equal(t, "client-id", seen)
}

/*
TestRateLimit_RejectsBurst returns 429 once the bucket is drained.
*/
func TestRateLimit_RejectsBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	limited := false
	for i := 0; i < constants.DefaultRateLimitBurst+5; i++ {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constants.HeaderXRealIP, "10.0.0.1")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		if recorder.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}

	assert.True(t, limited)
}

/*
TestPanicRecovery_Returns500 converts a panic into a JSON error.
*/
func TestPanicRecovery_Returns500(t *testing.T) {
	handler := middleware.PanicRecovery(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INTERNAL_SERVER_ERROR")
}

/*
TestCORS_ProductionAllowList only echoes listed origins outside development.
*/
func TestCORS_ProductionAllowList(t *testing.T) {
	handler := middleware.CORS(envStub{}, "https://catalog.example.org, https://other.example.org")(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
	)

	tests := []struct {
		name    string
		origin  string
		allowed bool
	}{
		{"listed", "https://catalog.example.org", true},
		{"listed_second", "https://other.example.org", true},
		{"unlisted", "https://evil.example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set(constants.HeaderOrigin, tt.origin)
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			if tt.allowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

/*
TestRealIP_Precedence prefers X-Real-IP, then X-Forwarded-For, then RemoteAddr.
*/
func TestRealIP_Precedence(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXForwardedFor, "198.51.100.7, 10.0.0.1")
	assert.Equal(t, "198.51.100.7", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXRealIP, "203.0.113.9")
	assert.Equal(t, "203.0.113.9", middleware.RealIP(request))
}
