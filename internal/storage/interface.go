package storage

import (
	"context"
	"errors"

	"github.com/UkralStul/post-scheduler/internal/domain"
	"github.com/UkralStul/post-scheduler/internal/pagination"
	"github.com/UkralStul/post-scheduler/internal/query"
)

var (
	// ErrNotFound возвращается, если группы с таким id нет.
	ErrNotFound = errors.New("not found")
	// ErrConcurrentModification возвращается, если при сохранении версия в хранилище уже другая.
	ErrConcurrentModification = errors.New("concurrent modification")
)

// Storage определяет интерфейс хранилища групп постов.
//
// Строки из FetchPostGroups приходят без Posts; их догружает GetPostsByGroupIDs одним запросом.
type Storage interface {
	// CountPostGroups считает группы, подходящие под предикат и границу курсора.
	CountPostGroups(ctx context.Context, p query.Predicate, b *pagination.Boundary) (int64, error)
	// FetchPostGroups возвращает не больше limit групп за границей курсора в порядке order.
	FetchPostGroups(ctx context.Context, p query.Predicate, b *pagination.Boundary, order pagination.Order, limit int) ([]*domain.PostGroup, error)

	// GetPostGroupByID загружает группу вместе с постами.
	GetPostGroupByID(ctx context.Context, id string) (*domain.PostGroup, error)
	// CreatePostGroup сохраняет группу вместе с постами.
	CreatePostGroup(ctx context.Context, g *domain.PostGroup) (*domain.PostGroup, error)
	// SavePostGroup обновляет статус, дату публикации и updated_at существующей группы.
	// Если версия в хранилище отличается от g.Version, возвращает ErrConcurrentModification.
	SavePostGroup(ctx context.Context, g *domain.PostGroup) (*domain.PostGroup, error)

	// GetPostsByGroupIDs используется дата-лоадером постов.
	GetPostsByGroupIDs(ctx context.Context, groupIDs []string) (map[string][]*domain.Post, error)
}
