// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import "sync"

// Subscriptions collects release funcs acquired while a view is mounted.
//
// Release runs them all, last acquired first. Anything added after Release
// is released immediately.
type Subscriptions struct {
	mu       sync.Mutex
	releases []func()
	closed   bool
}

// Add registers release.
func (s *Subscriptions) Add(release func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		release()
		return
	}
	s.releases = append(s.releases, release)
	s.mu.Unlock()
}

// Release runs every registered release func once.
func (s *Subscriptions) Release() {
	s.mu.Lock()
	releases := s.releases
	s.releases = nil
	s.closed = true
	s.mu.Unlock()

	for i := len(releases) - 1; i >= 0; i-- {
		releases[i]()
	}
}
