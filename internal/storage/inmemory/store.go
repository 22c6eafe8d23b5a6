package inmemory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/UkralStul/post-scheduler/internal/domain"
	"github.com/UkralStul/post-scheduler/internal/pagination"
	"github.com/UkralStul/post-scheduler/internal/query"
	"github.com/UkralStul/post-scheduler/internal/storage"
)

// Store реализует интерфейс Storage в памяти. Наружу отдаются только копии записей.
type Store struct {
	mu           sync.RWMutex
	clock        clockwork.Clock
	groups       map[string]*domain.PostGroup
	posts        map[string]*domain.Post
	postsByGroup map[string][]string // map[groupID][]postID в порядке создания
}

var _ storage.Storage = (*Store)(nil)

// New создает новый экземпляр in-memory хранилища.
func New() *Store {
	return NewWithClock(clockwork.NewRealClock())
}

// NewWithClock создает хранилище, которое берет created_at/updated_at из clock.
func NewWithClock(clock clockwork.Clock) *Store {
	return &Store{
		clock:        clock,
		groups:       make(map[string]*domain.PostGroup),
		posts:        make(map[string]*domain.Post),
		postsByGroup: make(map[string][]string),
	}
}

// === Pagination Methods ===

func (s *Store) CountPostGroups(ctx context.Context, p query.Predicate, b *pagination.Boundary) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, g := range s.groups {
		if matches(g, p, b) {
			n++
		}
	}
	return n, nil
}

func (s *Store) FetchPostGroups(ctx context.Context, p query.Predicate, b *pagination.Boundary, order pagination.Order, limit int) ([]*domain.PostGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]*domain.PostGroup, 0, len(s.groups))
	for _, g := range s.groups {
		if matches(g, p, b) {
			rows = append(rows, g)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		return order.Less(keyOf(rows[i]), keyOf(rows[j]))
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}

	out := make([]*domain.PostGroup, len(rows))
	for i, g := range rows {
		out[i] = cloneGroup(g)
	}
	return out, nil
}

func matches(g *domain.PostGroup, p query.Predicate, b *pagination.Boundary) bool {
	return p.Matches(g) && b.Admits(keyOf(g))
}

func keyOf(g *domain.PostGroup) pagination.Key {
	return pagination.Key{ID: g.ID, CreatedAt: g.CreatedAt}
}

// === Post Group Methods ===

func (s *Store) GetPostGroupByID(ctx context.Context, id string) (*domain.PostGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[id]
	if !ok {
		return nil, fmt.Errorf("post group %s: %w", id, storage.ErrNotFound)
	}
	out := cloneGroup(g)
	out.Posts = s.postsOf(id)
	return out, nil
}

func (s *Store) CreatePostGroup(ctx context.Context, g *domain.PostGroup) (*domain.PostGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now().UTC()

	stored := cloneGroup(g)
	stored.ID = uuid.NewString()
	stored.Version = 1
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.groups[stored.ID] = stored

	for _, p := range g.Posts {
		post := *p
		post.ID = uuid.NewString()
		post.PostGroupID = stored.ID
		post.CreatedAt = now
		post.UpdatedAt = now
		s.posts[post.ID] = &post
		s.postsByGroup[stored.ID] = append(s.postsByGroup[stored.ID], post.ID)
	}

	out := cloneGroup(stored)
	out.Posts = s.postsOf(stored.ID)
	return out, nil
}

func (s *Store) SavePostGroup(ctx context.Context, g *domain.PostGroup) (*domain.PostGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.groups[g.ID]
	if !ok {
		return nil, fmt.Errorf("post group %s: %w", g.ID, storage.ErrNotFound)
	}
	if stored.Version != g.Version {
		return nil, fmt.Errorf("post group %s at version %d: %w", g.ID, g.Version, storage.ErrConcurrentModification)
	}

	stored.Status = g.Status
	stored.PublishedDate = cloneTime(g.PublishedDate)
	stored.UpdatedAt = s.clock.Now().UTC()
	stored.Version++

	out := cloneGroup(stored)
	out.Posts = s.postsOf(stored.ID)
	return out, nil
}

// === Dataloader Methods ===

func (s *Store) GetPostsByGroupIDs(ctx context.Context, groupIDs []string) (map[string][]*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make(map[string][]*domain.Post, len(groupIDs))
	for _, id := range groupIDs {
		results[id] = s.postsOf(id)
	}
	return results, nil
}

// postsOf вызывается только под s.mu.
func (s *Store) postsOf(groupID string) []*domain.Post {
	ids := s.postsByGroup[groupID]
	posts := make([]*domain.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.posts[id]; ok {
			post := *p
			posts = append(posts, &post)
		}
	}
	return posts
}

func cloneGroup(g *domain.PostGroup) *domain.PostGroup {
	out := *g
	out.MediaURLs = slices.Clone(g.MediaURLs)
	out.PublishedDate = cloneTime(g.PublishedDate)
	out.Posts = nil
	return &out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
