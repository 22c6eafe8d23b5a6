package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/UkralStul/post-scheduler/internal/domain"
	"github.com/UkralStul/post-scheduler/internal/pagination"
	"github.com/UkralStul/post-scheduler/internal/query"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CountPostGroups(ctx context.Context, p query.Predicate, b *pagination.Boundary) (int64, error) {
	args := m.Called(ctx, p, b)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStore) FetchPostGroups(ctx context.Context, p query.Predicate, b *pagination.Boundary, order pagination.Order, limit int) ([]*domain.PostGroup, error) {
	args := m.Called(ctx, p, b, order, limit)
	groups, _ := args.Get(0).([]*domain.PostGroup)
	return groups, args.Error(1)
}

func (m *mockStore) GetPostGroupByID(ctx context.Context, id string) (*domain.PostGroup, error) {
	args := m.Called(ctx, id)
	g, _ := args.Get(0).(*domain.PostGroup)
	return g, args.Error(1)
}

func (m *mockStore) CreatePostGroup(ctx context.Context, g *domain.PostGroup) (*domain.PostGroup, error) {
	args := m.Called(ctx, g)
	out, _ := args.Get(0).(*domain.PostGroup)
	return out, args.Error(1)
}

func (m *mockStore) SavePostGroup(ctx context.Context, g *domain.PostGroup) (*domain.PostGroup, error) {
	args := m.Called(ctx, g)
	out, _ := args.Get(0).(*domain.PostGroup)
	return out, args.Error(1)
}

func (m *mockStore) GetPostsByGroupIDs(ctx context.Context, ids []string) (map[string][]*domain.Post, error) {
	args := m.Called(ctx, ids)
	out, _ := args.Get(0).(map[string][]*domain.Post)
	return out, args.Error(1)
}
