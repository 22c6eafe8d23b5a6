package pagination

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Fetcher is the row store seen by the executor. Filtering is already bound in.
type Fetcher[T Node] interface {
	// Count returns how many rows match the filter and the boundary, ignoring any limit.
	Count(ctx context.Context, boundary *Boundary) (int64, error)
	// Fetch returns at most limit rows inside the boundary, sorted by order.
	Fetch(ctx context.Context, boundary *Boundary, order Order, limit int) ([]T, error)
}

// Execute runs one paginated query.
func Execute[T Node](ctx context.Context, fetcher Fetcher[T], args Args) (*Connection[T], error) {
	start := time.Now()

	if err := args.Validate(); err != nil {
		RecordError(errorTypeValidation)
		return nil, err
	}
	boundary, err := args.Boundary()
	if err != nil {
		RecordError(errorTypeCursor)
		return nil, err
	}

	limit := args.Limit()
	dir := args.Direction()
	order := OrderCanonical
	if dir == Backward {
		order = OrderReverse
	}

	var (
		total int64
		rows  []T
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := fetcher.Count(gctx, boundary)
		if err != nil {
			return fmt.Errorf("count rows: %w", err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		// One extra row tells whether another page exists in this direction.
		r, err := fetcher.Fetch(gctx, boundary, order, limit+1)
		if err != nil {
			return fmt.Errorf("fetch rows: %w", err)
		}
		rows = r
		return nil
	})
	if err := g.Wait(); err != nil {
		RecordError(errorTypeStore)
		return nil, err
	}

	conn := BuildConnection(rows, limit, dir, args, total)
	RecordRequest(dir)
	RecordDuration(time.Since(start).Seconds())
	return &conn, nil
}
