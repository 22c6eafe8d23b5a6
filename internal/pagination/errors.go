package pagination

import "errors"

var (
	// ErrInvalidPaginationArgs is returned for conflicting or out of range pagination arguments.
	ErrInvalidPaginationArgs = errors.New("invalid pagination arguments")
	// ErrMalformedCursor is returned when a cursor does not decode.
	ErrMalformedCursor = errors.New("malformed cursor")
)
