// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"context"
	"slices"
	"sync"
)

// RouteListener is notified of the current route on subscription and of
// every later navigation.
type RouteListener func(ctx context.Context, route Route)

// Navigator is the routing capability of one browser session: it holds the
// current route and notifies subscribers when it changes.
type Navigator struct {
	mu        sync.Mutex
	current   Route
	listeners map[uint64]RouteListener
	nextID    uint64
}

// NewNavigator starts at the communities route.
func NewNavigator() *Navigator {
	return &Navigator{
		current:   CommunitiesRoute(),
		listeners: make(map[uint64]RouteListener),
	}
}

// Current returns the current route.
func (n *Navigator) Current() Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Param reads a path parameter of the current route.
func (n *Navigator) Param(name string) string {
	return n.Current().Param(name)
}

// Navigate makes route current and notifies listeners in subscription order.
//
// A listener released while others are being notified is skipped, so a view
// torn down by an earlier listener never sees the new route.
func (n *Navigator) Navigate(ctx context.Context, route Route) {
	n.mu.Lock()
	n.current = route
	ids := make([]uint64, 0, len(n.listeners))
	for id := range n.listeners {
		ids = append(ids, id)
	}
	n.mu.Unlock()

	slices.Sort(ids)
	for _, id := range ids {
		n.mu.Lock()
		listener, ok := n.listeners[id]
		n.mu.Unlock()
		if ok {
			listener(ctx, route)
		}
	}
}

// Subscribe registers fn and immediately delivers the current route.
// The returned func releases the subscription and is safe to call twice.
func (n *Navigator) Subscribe(ctx context.Context, fn RouteListener) (unsubscribe func()) {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.listeners[id] = fn
	current := n.current
	n.mu.Unlock()

	fn(ctx, current)

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.listeners, id)
			n.mu.Unlock()
		})
	}
}
