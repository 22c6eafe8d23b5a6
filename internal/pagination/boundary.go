package pagination

import (
	sq "github.com/Masterminds/squirrel"
)

// Side selects which half of the canonical order a boundary keeps.
type Side int

const (
	// AfterCursor keeps rows strictly after the cursor: older, or equally old with a larger id.
	AfterCursor Side = iota
	// BeforeCursor keeps rows strictly before the cursor: newer, or equally old with a smaller id.
	BeforeCursor
)

// Boundary restricts a query to one side of a cursor position.
type Boundary struct {
	Side Side
	Key  Key
}

// Admits reports whether a row with key k lies on the kept side. A nil boundary admits everything.
func (b *Boundary) Admits(k Key) bool {
	if b == nil {
		return true
	}
	c := Compare(k, b.Key)
	if b.Side == AfterCursor {
		return c > 0
	}
	return c < 0
}

// Sqlizer renders the boundary as a WHERE condition. The id column breaks
// timestamp ties, so the condition is total even when rows share created_at.
func (b *Boundary) Sqlizer(createdAtCol, idCol string) sq.Sqlizer {
	at, id := b.Key.CreatedAt, b.Key.ID
	if b.Side == AfterCursor {
		return sq.Or{
			sq.Lt{createdAtCol: at},
			sq.And{sq.Eq{createdAtCol: at}, sq.Gt{idCol: id}},
		}
	}
	return sq.Or{
		sq.Gt{createdAtCol: at},
		sq.And{sq.Eq{createdAtCol: at}, sq.Lt{idCol: id}},
	}
}

// Order is the sort handed to the row store.
type Order int

const (
	// OrderCanonical is created_at DESC, id ASC.
	OrderCanonical Order = iota
	// OrderReverse is the exact reverse, used to read backward from a cursor.
	OrderReverse
)

// Less sorts keys by the order.
func (o Order) Less(a, b Key) bool {
	if o == OrderReverse {
		return Compare(a, b) > 0
	}
	return Compare(a, b) < 0
}

// Clause renders the order as an ORDER BY list.
func (o Order) Clause(createdAtCol, idCol string) string {
	if o == OrderReverse {
		return createdAtCol + " ASC, " + idCol + " DESC"
	}
	return createdAtCol + " DESC, " + idCol + " ASC"
}
