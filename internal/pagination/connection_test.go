package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConnection_Empty(t *testing.T) {
	conn := BuildConnection([]item{}, 10, Forward, Args{}, 0)

	assert.Empty(t, conn.Edges)
	assert.Zero(t, conn.TotalCount)
	assert.False(t, conn.PageInfo.HasNextPage)
	assert.False(t, conn.PageInfo.HasPreviousPage)
	assert.Nil(t, conn.PageInfo.StartCursor)
	assert.Nil(t, conn.PageInfo.EndCursor)
}

func TestBuildConnection_ForwardOverFetch(t *testing.T) {
	rows := makeItems(4)

	conn := BuildConnection(rows, 3, Forward, Args{First: ptr(3)}, 4)

	require.Len(t, conn.Edges, 3)
	assert.Equal(t, []string{"id-01", "id-02", "id-03"}, ids(conn.Nodes()))
	assert.True(t, conn.PageInfo.HasNextPage)
	assert.False(t, conn.PageInfo.HasPreviousPage)
	assert.Equal(t, conn.Edges[0].Cursor, *conn.PageInfo.StartCursor)
	assert.Equal(t, conn.Edges[2].Cursor, *conn.PageInfo.EndCursor)
	assert.Equal(t, EncodeCursor("id-02", rows[1].at), conn.Edges[1].Cursor)
}

func TestBuildConnection_ForwardAfterCursor(t *testing.T) {
	rows := makeItems(2)

	conn := BuildConnection(rows, 5, Forward, Args{First: ptr(5), After: ptr("c")}, 2)

	assert.False(t, conn.PageInfo.HasNextPage)
	assert.True(t, conn.PageInfo.HasPreviousPage)
}

func TestBuildConnection_BackwardReverses(t *testing.T) {
	all := makeItems(4)
	// Backward rows come oldest first, with the extra row last.
	fetched := []item{all[3], all[2], all[1], all[0]}

	conn := BuildConnection(fetched, 3, Backward, Args{Last: ptr(3), Before: ptr("c")}, 4)

	assert.Equal(t, []string{"id-02", "id-03", "id-04"}, ids(conn.Nodes()))
	assert.True(t, conn.PageInfo.HasPreviousPage)
	assert.True(t, conn.PageInfo.HasNextPage)
	// The input slice is left untouched.
	assert.Equal(t, "id-04", fetched[0].id)
}

func TestBuildConnection_ZeroLimit(t *testing.T) {
	conn := BuildConnection(makeItems(1), 0, Forward, Args{First: ptr(0)}, 1)

	assert.Empty(t, conn.Edges)
	assert.True(t, conn.PageInfo.HasNextPage)
	assert.Nil(t, conn.PageInfo.StartCursor)
}
