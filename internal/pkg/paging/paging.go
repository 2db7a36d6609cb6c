// Package paging implements offset-based pagination over filtered listings.
// Callers either supply both an offset ("from") and a page size, or neither;
// supplying only one of the two is rejected so a half-formed request never
// silently falls back to a default window.
package paging

import (
	"net/http"

	"github.com/gearshare/gearshare-backend/internal/pkg/apperror"
)

// ErrInvalidPagination reports a malformed (from, size) pair.
var ErrInvalidPagination = apperror.New(http.StatusBadRequest, "from and size must be supplied together, with size > 0 and from >= 0")

// Page describes one window of a result sequence. The zero value is not
// valid; use New or Unpaged.
type Page struct {
	from  int
	size  int
	paged bool
}

// New builds a Page from optional query parameters.
// Both nil means the full sequence. Exactly one nil, size <= 0, or from < 0
// fails with ErrInvalidPagination.
func New(from, size *int) (Page, error) {
	if from == nil && size == nil {
		return Unpaged(), nil
	}
	if from == nil || size == nil {
		return Page{}, ErrInvalidPagination
	}
	if *size <= 0 || *from < 0 {
		return Page{}, ErrInvalidPagination
	}
	return Page{from: *from, size: *size, paged: true}, nil
}

// Unpaged returns a Page covering the whole sequence.
func Unpaged() Page {
	return Page{}
}

// Paged reports whether the page limits the sequence.
func (p Page) Paged() bool {
	return p.paged
}

// Offset is the number of leading results to skip.
func (p Page) Offset() uint64 {
	return uint64(p.from)
}

// Limit is the maximum number of results to return.
func (p Page) Limit() uint64 {
	return uint64(p.size)
}

// Bounds clamps the page window [from, from+size) to a sequence of n
// elements, for slicing in-memory results.
func (p Page) Bounds(n int) (lo, hi int) {
	if !p.paged {
		return 0, n
	}
	lo = p.from
	if lo > n {
		lo = n
	}
	hi = p.from + p.size
	if hi > n {
		hi = n
	}
	return lo, hi
}
