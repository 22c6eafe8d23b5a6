package pagination

// Edge pairs a node with its cursor.
type Edge[T Node] struct {
	Node   T      `json:"node"`
	Cursor string `json:"cursor"`
}

type PageInfo struct {
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
}

// Connection is one page of results in the Relay connection shape.
type Connection[T Node] struct {
	Edges      []Edge[T] `json:"edges"`
	PageInfo   PageInfo  `json:"pageInfo"`
	TotalCount int64     `json:"totalCount"`
}

// Nodes returns the page's nodes in edge order.
func (c *Connection[T]) Nodes() []T {
	nodes := make([]T, len(c.Edges))
	for i, e := range c.Edges {
		nodes[i] = e.Node
	}
	return nodes
}

// BuildConnection turns up to limit+1 fetched rows into a page. Backward rows
// arrive in reverse canonical order and are flipped, so edges are always newest first.
func BuildConnection[T Node](rows []T, limit int, dir Direction, args Args, total int64) Connection[T] {
	more := len(rows) > limit
	if more {
		rows = rows[:limit]
	}

	edges := make([]Edge[T], len(rows))
	for i, row := range rows {
		pos := i
		if dir == Backward {
			pos = len(rows) - 1 - i
		}
		key := keyOf(row)
		edges[pos] = Edge[T]{Node: row, Cursor: EncodeCursor(key.ID, key.CreatedAt)}
	}

	info := PageInfo{}
	if len(edges) > 0 {
		start, end := edges[0].Cursor, edges[len(edges)-1].Cursor
		info.StartCursor = &start
		info.EndCursor = &end
	}
	if dir == Backward {
		info.HasPreviousPage = more
		info.HasNextPage = args.Before != nil
	} else {
		info.HasNextPage = more
		info.HasPreviousPage = args.After != nil
	}

	return Connection[T]{Edges: edges, PageInfo: info, TotalCount: total}
}
