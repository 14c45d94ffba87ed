// Package utils holds tiny pagination and parsing helpers shared across
// layers. Nothing in here knows about appointments or HTTP.
package utils

import "strconv"

// AtoiDefault parses s as a base-10 int and falls back to def when s is
// empty or not a valid integer. The input is not trimmed, so " 42" falls
// back too; query params arrive untrimmed and should stay that way.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// ClampInt bounds v to the inclusive range [lo, hi]. lo wins when the
// range is inverted.
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// TotalPages returns how many pages are needed to show total items at
// pageSize items per page. Zero items is zero pages; a non-positive
// pageSize is treated as one item per page.
func TotalPages(total int64, pageSize int) int {
	if total <= 0 {
		return 0
	}
	if pageSize < 1 {
		pageSize = 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
