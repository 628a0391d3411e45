// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"encoding/json"
	"fmt"
)

// Envelope is the HAL list response: an _embedded map keyed by collection
// name plus an optional page block.
type Envelope struct {
	Embedded map[string]json.RawMessage `json:"_embedded"`
	Page     *PageBlock                 `json:"page"`
}

// PageBlock mirrors the upstream page object. First and Last are optional
// upstream, hence pointers.
type PageBlock struct {
	Size          int   `json:"size"`
	TotalElements int   `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	First         *bool `json:"first"`
	Last          *bool `json:"last"`
}

// ExtractPagination reads the page block of a response.
//
// It returns nil, not an error, when the response carries no page block.
func ExtractPagination(envelope *Envelope) *PaginationInfo {
	if envelope == nil || envelope.Page == nil {
		return nil
	}

	block := envelope.Page
	info := &PaginationInfo{
		Size:          block.Size,
		TotalElements: block.TotalElements,
		TotalPages:    block.TotalPages,
		Number:        block.Number,
		First:         block.Number == 0,
		Last:          block.Number >= block.TotalPages-1,
	}
	if block.First != nil {
		info.First = *block.First
	}
	if block.Last != nil {
		info.Last = *block.Last
	}
	return info
}

// embedded decodes _embedded[key]. The boolean reports whether the key was
// present at all; a missing key is not an error.
func embedded[T any](envelope *Envelope, key string) ([]T, bool, error) {
	raw, ok := envelope.Embedded[key]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return nil, false, nil
	}

	var list []T
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, true, fmt.Errorf("catalog: decode _embedded.%s: %w", key, err)
	}
	return list, true, nil
}
