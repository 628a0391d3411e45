// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package browser

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/dspace-browser/internal/platform/constants"
	"github.com/taibuivan/dspace-browser/pkg/uuidv7"
)

// Registry holds the live sessions, keyed by the session cookie.
type Registry struct {
	opts   Options
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry builds an empty registry. Sessions idle for longer than
// opts.TTL are reaped once [Registry.Run] is started.
func NewRegistry(opts Options) *Registry {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		opts:     opts,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Resolve returns the session id names, creating a new one (with a fresh
// id) when id is empty or unknown. created reports the latter.
func (r *Registry) Resolve(id string) (session *Session, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[id]; ok && id != "" {
		return session, false
	}

	session = NewSession(uuidv7.New(), r.opts)
	r.sessions[session.ID()] = session
	r.logger.Info("session_created", slog.String("session_id", session.ID()))
	return session, true
}

// Get returns a live session.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	return session, ok
}

// Len is the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Reap closes and forgets every session idle since before now-TTL.
func (r *Registry) Reap(now time.Time) int {
	if r.opts.TTL <= 0 {
		return 0
	}

	r.mu.Lock()
	var expired []*Session
	for id, session := range r.sessions {
		if now.Sub(session.LastSeen()) > r.opts.TTL {
			expired = append(expired, session)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, session := range expired {
		session.Close()
		r.logger.Info("session_expired", slog.String("session_id", session.ID()))
	}
	return len(expired)
}

// Run reaps idle sessions until ctx is cancelled, then closes the rest.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(constants.SessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			r.Reap(now)
		case <-ctx.Done():
			r.closeAll()
			return
		}
	}
}

func (r *Registry) closeAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, session := range sessions {
		session.Close()
	}
}
