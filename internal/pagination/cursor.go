package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const cursorSeparator = "_"

// Key is the position of a row in canonical order: newest first, ties broken by id ascending.
type Key struct {
	ID        string
	CreatedAt time.Time
}

// Node is anything that can be placed on a page.
type Node interface {
	CursorKey() (id string, createdAt time.Time)
}

func keyOf(n Node) Key {
	id, createdAt := n.CursorKey()
	return Key{ID: id, CreatedAt: createdAt}
}

// Compare orders two keys canonically. It returns a negative number when a comes
// before b (a is newer, or equally old with a smaller id), zero when they are equal
// and a positive number otherwise.
func Compare(a, b Key) int {
	switch {
	case a.CreatedAt.After(b.CreatedAt):
		return -1
	case a.CreatedAt.Before(b.CreatedAt):
		return 1
	}
	return strings.Compare(a.ID, b.ID)
}

// EncodeCursor builds the opaque cursor for a row.
func EncodeCursor(id string, createdAt time.Time) string {
	raw := strconv.FormatInt(createdAt.UnixNano(), 10) + cursorSeparator + id
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor is the inverse of EncodeCursor. Only cursors EncodeCursor could
// have produced are accepted.
func DecodeCursor(cursor string) (Key, error) {
	raw, err := base64.RawURLEncoding.Strict().DecodeString(cursor)
	if err != nil {
		return Key{}, fmt.Errorf("%w: not base64", ErrMalformedCursor)
	}

	ts, id, ok := strings.Cut(string(raw), cursorSeparator)
	if !ok {
		return Key{}, fmt.Errorf("%w: missing separator", ErrMalformedCursor)
	}
	if id == "" {
		return Key{}, fmt.Errorf("%w: empty id", ErrMalformedCursor)
	}

	nanos, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return Key{}, fmt.Errorf("%w: timestamp %q is not numeric", ErrMalformedCursor, ts)
	}

	key := Key{ID: id, CreatedAt: time.Unix(0, nanos).UTC()}
	if EncodeCursor(key.ID, key.CreatedAt) != cursor {
		return Key{}, fmt.Errorf("%w: not in canonical form", ErrMalformedCursor)
	}
	return key, nil
}
