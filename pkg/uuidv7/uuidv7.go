// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to mint time-ordered identifiers for
// sessions and requests.
package uuidv7

import "github.com/google/uuid"

// New returns a UUIDv7 string. If the clock sequence cannot be read it falls
// back to a random UUIDv4 so callers never have to handle an error.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
