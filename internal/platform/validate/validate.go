// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// View handlers run it over path and query parameters before any controller
// is driven, so a bad page never reaches the session.
package validate

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/dspace-browser/internal/platform/apperr"
	"github.com/taibuivan/dspace-browser/pkg/pagination"
)

// maxIDLength bounds route ids; repository uuids are 36 characters.
const maxIDLength = 128

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// RouteID fails unless value is a usable path id.
func (v *Validator) RouteID(field, value string) *Validator {
	before := len(v.errs)
	v.Required(field, value)
	if len(v.errs) == before {
		v.MaxLen(field, value, maxIDLength)
	}
	return v
}

// PageSize fails unless size is one of the offered page sizes.
func (v *Validator) PageSize(field string, size int) *Validator {
	if slices.Contains(pagination.SizeOptions, size) {
		return v
	}

	options := make([]string, 0, len(pagination.SizeOptions))
	for _, option := range pagination.SizeOptions {
		options = append(options, strconv.Itoa(option))
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(options, ", ")))
	return v
}

// PageMove fails unless page is a valid move away from current. A list with
// no known page count accepts any non-negative page.
func (v *Validator) PageMove(field string, page, current, totalPages int) *Validator {
	if totalPages < 1 {
		return v.Custom(field, page < pagination.FirstPage, "Must not be negative")
	}
	return v.Custom(field, page != current && !pagination.CanGoTo(page, current, totalPages),
		fmt.Sprintf("Must be between %d and %d", pagination.FirstPage, totalPages-1))
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("page", page > 1000, "Too deep")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method — call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}
