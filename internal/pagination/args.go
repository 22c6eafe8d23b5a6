package pagination

import "fmt"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Direction tells which way a page is read relative to its cursor.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Args are Relay-style connection arguments. A nil field was not supplied.
type Args struct {
	First  *int
	After  *string
	Last   *int
	Before *string
}

// Validate checks the argument combination without touching any store.
func (a Args) Validate() error {
	if a.First != nil && a.Last != nil {
		return fmt.Errorf(`%w: cannot provide both "first" and "last" arguments`, ErrInvalidPaginationArgs)
	}
	if a.After != nil && a.Before != nil {
		return fmt.Errorf(`%w: cannot provide both "after" and "before" arguments`, ErrInvalidPaginationArgs)
	}
	if a.First != nil && (*a.First < 0 || *a.First > MaxPageSize) {
		return fmt.Errorf(`%w: "first" argument must be between 0 and %d`, ErrInvalidPaginationArgs, MaxPageSize)
	}
	if a.Last != nil && (*a.Last < 0 || *a.Last > MaxPageSize) {
		return fmt.Errorf(`%w: "last" argument must be between 0 and %d`, ErrInvalidPaginationArgs, MaxPageSize)
	}
	return nil
}

// Limit is the page size asked for, DefaultPageSize when neither first nor last is set.
func (a Args) Limit() int {
	switch {
	case a.First != nil:
		return *a.First
	case a.Last != nil:
		return *a.Last
	}
	return DefaultPageSize
}

func (a Args) Direction() Direction {
	if a.Last != nil && a.First == nil {
		return Backward
	}
	return Forward
}

// Boundary decodes the after/before cursor. It returns nil when neither is set.
func (a Args) Boundary() (*Boundary, error) {
	switch {
	case a.After != nil:
		key, err := DecodeCursor(*a.After)
		if err != nil {
			return nil, err
		}
		return &Boundary{Side: AfterCursor, Key: key}, nil
	case a.Before != nil:
		key, err := DecodeCursor(*a.Before)
		if err != nil {
			return nil, err
		}
		return &Boundary{Side: BeforeCursor, Key: key}, nil
	}
	return nil, nil
}
