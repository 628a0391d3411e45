// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package httpclient is the outbound GET-JSON transport used to talk to the
repository REST API.

It deliberately knows nothing about the catalog: it performs a GET, fails on
transport errors or non-2xx statuses, and decodes the JSON body into the target.
There are no retries; callers decide what a failure means.
*/
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/dspace-browser/internal/platform/constants"
	"github.com/taibuivan/dspace-browser/internal/platform/ctxutil"
)

// maxErrorBody caps how much of a failed response body is kept for diagnostics.
const maxErrorBody = 512

// Getter performs an HTTP GET and decodes the JSON response into target.
type Getter interface {
	GetJSON(ctx context.Context, url string, target any) error
}

// StatusError reports a non-2xx response from the upstream.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("httpclient: GET %s: status=%d, body=%s", e.URL, e.StatusCode, e.Body)
}

// Client is the default [Getter] backed by [http.Client].
//
// Client instances are safe for concurrent use by multiple goroutines.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a Client with the given per-request timeout.
func New(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// GetJSON implements [Getter].
func (c *Client) GetJSON(ctx context.Context, url string, target any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("httpclient: failed to create request: %w", err)
	}

	request.Header.Set("Accept", "application/json")
	if rid := ctxutil.GetRequestID(ctx); rid != "" {
		request.Header.Set(constants.HeaderXRequestID, rid)
	}

	startTime := time.Now()
	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("httpclient: GET %s: %w", url, err)
	}
	defer response.Body.Close()

	c.logger.DebugContext(ctx, "upstream_request_finished",
		slog.String("url", url),
		slog.Int("status", response.StatusCode),
		slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
		return &StatusError{URL: url, StatusCode: response.StatusCode, Body: string(body)}
	}

	if target == nil {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("httpclient: failed to decode response from %s: %w", url, err)
	}

	return nil
}
