// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog is the remote client for the repository REST API.

It knows the endpoint shapes of the communities → collections → items
hierarchy, follows the hypermedia links embedded in each entity, and derives
the display fields (name, description, date, author) at fetch time.

Entities are immutable snapshots: a refresh replaces them wholesale.
*/
package catalog

import (
	"bytes"
	"encoding/json"
)

// # Hypermedia

// Link is a single hypermedia relation.
type Link struct {
	Href string `json:"href"`
}

// UnmarshalJSON accepts both the object form and the single-element array
// form some relations use.
func (l *Link) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var many []struct {
			Href string `json:"href"`
		}
		if err := json.Unmarshal(data, &many); err != nil {
			return err
		}
		if len(many) > 0 {
			l.Href = many[0].Href
		}
		return nil
	}

	var one struct {
		Href string `json:"href"`
	}
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	l.Href = one.Href
	return nil
}

// Links maps a relation name to its link.
type Links map[string]Link

// Href returns the URL of rel, and whether a non-empty one exists.
func (l Links) Href(rel string) (string, bool) {
	link, ok := l[rel]
	if !ok || link.Href == "" {
		return "", false
	}
	return link.Href, true
}

// Link relations consumed by the client.
const (
	RelCollections = "collections"
	RelItems       = "items"
	RelMappedItems = "mappedItems"
)

// # Metadata

// MetadataValue is one value of a metadata field.
type MetadataValue struct {
	Value      string `json:"value"`
	Language   string `json:"language,omitempty"`
	Authority  string `json:"authority,omitempty"`
	Confidence int    `json:"confidence,omitempty"`
	Place      int    `json:"place,omitempty"`
}

// Metadata maps a qualified field name (e.g. "dc.title") to its values.
type Metadata map[string][]MetadataValue

// First returns the first non-empty value of field.
func (m Metadata) First(field string) (string, bool) {
	for _, value := range m[field] {
		if value.Value != "" {
			return value.Value, true
		}
	}
	return "", false
}

// # Entities

// Resource holds the attributes every catalog entity shares.
type Resource struct {
	UUID     string   `json:"uuid"`
	Name     string   `json:"name,omitempty"`
	Handle   string   `json:"handle,omitempty"`
	Type     string   `json:"type,omitempty"`
	Metadata Metadata `json:"metadata,omitempty"`
	Links    Links    `json:"_links,omitempty"`
}

// Community is a top-level grouping of the repository.
type Community struct {
	Resource
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

// Collection is a sub-grouping owned by one community.
type Collection struct {
	Resource
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

// Item is an individual record inside a collection.
type Item struct {
	Resource
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Author      string `json:"author"`
}

// # Pagination

// PaginationInfo is the page metadata of a list response.
type PaginationInfo struct {
	Size          int  `json:"size"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	Number        int  `json:"number"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
}

// Page is one fetched page of a list.
//
// Pagination is nil when the upstream response carried no page block.
type Page[T any] struct {
	Items      []T
	Pagination *PaginationInfo
}
