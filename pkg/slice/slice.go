// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with small generic
helpers for projecting and searching catalog pages.
*/
package slice

// Map maps a slice of type T to a slice of type U using the provided transformation function.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}

// Find returns the first element matching predicate, or the zero value and
// false when none does.
func Find[T any](input []T, predicate func(T) bool) (T, bool) {
	for _, v := range input {
		if predicate(v) {
			return v, true
		}
	}

	var zero T
	return zero, false
}
