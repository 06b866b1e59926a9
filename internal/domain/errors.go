package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable indicates a menu item exists but is not currently orderable.
	ErrUnavailable = errors.New("item unavailable")
)
