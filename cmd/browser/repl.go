// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/taibuivan/dspace-browser/internal/catalog"
	"github.com/taibuivan/dspace-browser/internal/view"
	"github.com/taibuivan/dspace-browser/pkg/slice"
)

// sessionIface is the command surface the REPL drives. [browser.Session]
// satisfies it; tests can provide a lightweight stub.
type sessionIface interface {
	Open(ctx context.Context, route view.Route) view.View
	Paginate(ctx context.Context, page, size int) view.View
	Retry(ctx context.Context) view.View
	Back(ctx context.Context) view.View
	Select(ctx context.Context, uuid string) (view.View, bool)
	View(ctx context.Context) view.View
}

const helpText = `Commands:
  ls               show the current view
  open <n|uuid>    open entry n of the list (or by uuid)
  back             go to the parent view
  next | prev      move one page
  page <n>         go to page n (1-based)
  size <n>         set the page size (5, 10, 20, 50)
  retry            replay the last load
  goto <path>      open a route, e.g. /community/{id}/collections
  exit | quit      leave the program`

// runREPL reads one command per line and dispatches it to s, rendering the
// resulting view. It exits on scanner EOF, on ctx cancellation, or when the
// user types "exit" or "quit".
func runREPL(ctx context.Context, s sessionIface, scanner *bufio.Scanner, out io.Writer) {
	for {
		current := s.View(ctx)
		fmt.Fprintf(out, "catalog %s> ", current.Route)

		if ctx.Err() != nil || !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, arg := parts[0], ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		switch cmd {
		case "help":
			fmt.Fprintln(out, helpText)

		case "ls", "l":
			render(out, current)

		case "open", "o":
			uuid, ok := entryUUID(current, arg)
			if !ok {
				fmt.Fprintln(out, "No such entry:", arg)
				continue
			}
			next, opened := s.Select(ctx, uuid)
			if !opened {
				fmt.Fprintln(out, "Cannot open", arg)
				continue
			}
			render(out, next)

		case "back", "b":
			render(out, s.Back(ctx))

		case "next", "n":
			if current.Page.Window.IsLast {
				fmt.Fprintln(out, "Already on the last page")
				continue
			}
			render(out, s.Paginate(ctx, current.Page.Current+1, 0))

		case "prev", "p":
			if current.Page.Window.IsFirst {
				fmt.Fprintln(out, "Already on the first page")
				continue
			}
			render(out, s.Paginate(ctx, current.Page.Current-1, 0))

		case "page":
			page, err := strconv.Atoi(arg)
			if err != nil || page < 1 || (current.Page.TotalPages > 0 && page > current.Page.TotalPages) {
				fmt.Fprintln(out, "Invalid page:", arg)
				continue
			}
			render(out, s.Paginate(ctx, page-1, 0))

		case "size":
			size, err := strconv.Atoi(arg)
			if err != nil || !validSize(current, size) {
				fmt.Fprintln(out, "Invalid size:", arg)
				continue
			}
			render(out, s.Paginate(ctx, -1, size))

		case "retry", "r":
			render(out, s.Retry(ctx))

		case "goto", "g":
			route, err := view.ParseRoute(arg)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			render(out, s.Open(ctx, route))

		case "exit", "quit", "q":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
	}
}

// entryUUID maps a 1-based list position, or a uuid on the page, to a uuid.
func entryUUID(current view.View, arg string) (string, bool) {
	uuids := append(
		slice.Map(current.Communities, func(community catalog.Community) string { return community.UUID }),
		slice.Map(current.Collections, func(collection catalog.Collection) string { return collection.UUID })...,
	)

	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(uuids) {
			return "", false
		}
		return uuids[n-1], true
	}
	return slice.Find(uuids, func(uuid string) bool { return uuid == arg })
}

func validSize(current view.View, size int) bool {
	for _, option := range current.Page.SizeOptions {
		if option == size {
			return true
		}
	}
	return false
}

// render prints a view: heading, status, numbered entries and the pager.
func render(out io.Writer, v view.View) {
	switch {
	case v.Collection != nil && v.Kind == view.RouteItems.String():
		fmt.Fprintf(out, "\n== Items of %s ==\n", v.Collection.DisplayName)
	case v.Community != nil && v.Kind == view.RouteCollections.String():
		fmt.Fprintf(out, "\n== Collections of %s ==\n", v.Community.DisplayName)
	default:
		fmt.Fprintf(out, "\n== %s ==\n", strings.ToUpper(v.Kind[:1])+v.Kind[1:])
	}

	if v.Loading {
		fmt.Fprintln(out, "Loading...")
	}
	if v.Error != "" {
		fmt.Fprintf(out, "Error: %s (type retry)\n", v.Error)
		return
	}

	n := 0
	for _, community := range v.Communities {
		n++
		fmt.Fprintf(out, "%3d. %s\n", n, community.DisplayName)
		if community.Description != "" {
			fmt.Fprintf(out, "     %s\n", community.Description)
		}
	}
	for _, collection := range v.Collections {
		n++
		fmt.Fprintf(out, "%3d. %s\n", n, collection.DisplayName)
	}
	for _, item := range v.Items {
		n++
		fmt.Fprintf(out, "%3d. %s by %s", n, item.DisplayName, item.Author)
		if item.Date != "" {
			fmt.Fprintf(out, " (%s)", item.Date)
		}
		fmt.Fprintln(out)
	}
	if v.Len() == 0 && !v.Loading {
		fmt.Fprintln(out, "(empty)")
		return
	}

	page := v.Page
	if page.TotalPages > 0 {
		pages := make([]string, 0, len(page.Window.Pages))
		for _, p := range page.Window.Pages {
			label := strconv.Itoa(p + 1)
			if p == page.Current {
				label = "[" + label + "]"
			}
			pages = append(pages, label)
		}
		fmt.Fprintf(out, "Showing %d-%d of %d · page %s · size %d\n",
			page.Window.StartElement, page.Window.EndElement, page.TotalElements,
			strings.Join(pages, " "), page.Size)
	}
}
