// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package browser

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/taibuivan/dspace-browser/internal/platform/constants"
	"github.com/taibuivan/dspace-browser/internal/platform/ctxutil"
	"github.com/taibuivan/dspace-browser/internal/state"
)

// EventSnapshot is the type of every pushed store snapshot.
const EventSnapshot = "snapshot"

// Event is one message of the event stream.
type Event struct {
	Type string         `json:"type"`
	Data state.AppState `json:"data"`
}

/*
GET /api/v1/view/events.

Description: Upgrades to a websocket and pushes a store snapshot of the
session on connect and after every store update. Snapshots the client has
not received yet are superseded by newer ones.

Response:
  - 101: Switching Protocols
  - 400: Not a websocket handshake
*/
func (handler *Handler) Events(writer http.ResponseWriter, request *http.Request) {
	session, request := handler.session(writer, request)
	logger := ctxutil.GetLogger(request.Context())

	// the handshake response only carries the headers passed here, the new
	// session cookie included
	conn, err := handler.upgrader.Upgrade(writer, request, writer.Header())
	if err != nil {
		logger.WarnContext(request.Context(), "event_stream_upgrade_failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	handleCtx, handleCancel := context.WithCancel(request.Context())
	defer handleCancel()

	// latest wins: a pending snapshot is replaced by a newer one
	updates := make(chan state.AppState, 1)
	unsubscribe := session.Store().Subscribe(func(snapshot state.AppState) {
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- snapshot:
		default:
		}
	})
	defer unsubscribe()

	logger.InfoContext(handleCtx, "event_stream_opened")
	defer logger.InfoContext(request.Context(), "event_stream_closed")

	go func() {
		defer handleCancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(constants.EventPingInterval)
	defer ping.Stop()

	for {
		select {
		case <-handleCtx.Done():
			return
		case snapshot := <-updates:
			conn.SetWriteDeadline(time.Now().Add(constants.EventWriteTimeout))
			if err := conn.WriteJSON(Event{Type: EventSnapshot, Data: snapshot}); err != nil {
				logger.DebugContext(handleCtx, "event_stream_write_failed", slog.Any("error", err))
				return
			}
		case <-ping.C:
			deadline := time.Now().Add(constants.EventWriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}
