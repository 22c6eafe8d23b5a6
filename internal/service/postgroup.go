// Package service holds the post group use cases: paginated listings,
// creation, statistics and the approval workflow.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/UkralStul/post-scheduler/internal/domain"
	"github.com/UkralStul/post-scheduler/internal/pagination"
	"github.com/UkralStul/post-scheduler/internal/query"
	"github.com/UkralStul/post-scheduler/internal/storage"
)

// PostGroupConnection is one page of post groups.
type PostGroupConnection = pagination.Connection[*domain.PostGroup]

// Stats counts post groups per status. Planned mirrors Pending until drafts exist.
type Stats struct {
	Planned   int64 `json:"planned"`
	Pending   int64 `json:"pending"`
	Scheduled int64 `json:"scheduled"`
	Published int64 `json:"published"`
}

// PostGroupService provides post group use cases on top of a row store.
type PostGroupService struct {
	store  storage.Storage
	clock  clockwork.Clock
	logger *slog.Logger
}

func NewPostGroupService(store storage.Storage, clock clockwork.Clock, logger *slog.Logger) *PostGroupService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostGroupService{store: store, clock: clock, logger: logger}
}

// groupFetcher binds a predicate to the store for the pagination executor.
type groupFetcher struct {
	store     storage.Storage
	predicate query.Predicate
}

func (f groupFetcher) Count(ctx context.Context, b *pagination.Boundary) (int64, error) {
	return f.store.CountPostGroups(ctx, f.predicate, b)
}

func (f groupFetcher) Fetch(ctx context.Context, b *pagination.Boundary, order pagination.Order, limit int) ([]*domain.PostGroup, error) {
	return f.store.FetchPostGroups(ctx, f.predicate, b, order, limit)
}

// ListPendingReview pages through groups waiting for review.
func (s *PostGroupService) ListPendingReview(ctx context.Context, args pagination.Args) (*PostGroupConnection, error) {
	conn, err := pagination.Execute[*domain.PostGroup](ctx, groupFetcher{
		store:     s.store,
		predicate: query.StatusIs(domain.StatusPendingReview),
	}, args)
	if err != nil {
		return nil, fmt.Errorf("list pending review: %w", err)
	}
	return conn, nil
}

// ListAll pages through groups matching filter. A nil filter matches everything.
func (s *PostGroupService) ListAll(ctx context.Context, args pagination.Args, filter *query.Filter) (*PostGroupConnection, error) {
	conn, err := pagination.Execute[*domain.PostGroup](ctx, groupFetcher{
		store:     s.store,
		predicate: filter.Predicate(),
	}, args)
	if err != nil {
		return nil, fmt.Errorf("list post groups: %w", err)
	}
	return conn, nil
}

// GetByID returns the group with its posts, or nil when it does not exist.
func (s *PostGroupService) GetByID(ctx context.Context, id string) (*domain.PostGroup, error) {
	g, err := s.store.GetPostGroupByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get post group: %w", err)
	}
	return g, nil
}

// Create stores a new group in PENDING_REVIEW together with its posts.
func (s *PostGroupService) Create(ctx context.Context, in domain.CreatePostGroupInput) (*domain.PostGroup, error) {
	g := &domain.PostGroup{
		Content:       in.Content,
		MediaURLs:     slices.Clone(in.MediaURLs),
		Category:      in.Category,
		Status:        domain.StatusPendingReview,
		ScheduledDate: in.ScheduledDate.UTC(),
		Posts:         make([]*domain.Post, 0, len(in.Posts)),
	}
	if g.MediaURLs == nil {
		g.MediaURLs = []string{}
	}
	for _, p := range in.Posts {
		g.Posts = append(g.Posts, &domain.Post{Platform: p.Platform, Caption: p.Caption})
	}

	created, err := s.store.CreatePostGroup(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("create post group: %w", err)
	}
	s.logger.InfoContext(ctx, "post group created",
		slog.String("post_group_id", created.ID),
		slog.Int("posts", len(created.Posts)))
	return created, nil
}

// Stats counts groups per status concurrently.
func (s *PostGroupService) Stats(ctx context.Context) (*Stats, error) {
	counts := make([]int64, len(domain.AllStatuses))

	g, gctx := errgroup.WithContext(ctx)
	for i, status := range domain.AllStatuses {
		i, status := i, status
		g.Go(func() error {
			n, err := s.store.CountPostGroups(gctx, query.StatusIs(status), nil)
			if err != nil {
				return fmt.Errorf("count %s: %w", status, err)
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("post group stats: %w", err)
	}

	var stats Stats
	for i, status := range domain.AllStatuses {
		switch status {
		case domain.StatusPendingReview:
			stats.Pending = counts[i]
		case domain.StatusScheduled:
			stats.Scheduled = counts[i]
		case domain.StatusPublished:
			stats.Published = counts[i]
		}
	}
	stats.Planned = stats.Pending
	return &stats, nil
}
