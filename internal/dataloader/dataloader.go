package dataloader

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/graph-gophers/dataloader"

	"github.com/UkralStul/post-scheduler/internal/domain"
	"github.com/UkralStul/post-scheduler/internal/storage"
)

type contextKey string

const key = contextKey("dataloaders")

const defaultWait = time.Millisecond

// Loaders содержит все дата-лоадеры запроса.
type Loaders struct {
	PostsByGroupID *dataloader.Loader
}

// NewLoaders создает лоадеры поверх store. Опции передаются каждому лоадеру.
func NewLoaders(store storage.Storage, opts ...dataloader.Option) *Loaders {
	batchFn := func(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
		groupIDs := keys.Keys()

		// Один запрос к хранилищу на весь батч
		postsByGroup, err := store.GetPostsByGroupIDs(ctx, groupIDs)
		results := make([]*dataloader.Result, len(keys))
		if err != nil {
			for i := range results {
				results[i] = &dataloader.Result{Error: err}
			}
			return results
		}

		// Результаты должны идти в том же порядке, что и ключи
		for i, id := range groupIDs {
			results[i] = &dataloader.Result{Data: postsByGroup[id]}
		}
		return results
	}

	opts = append([]dataloader.Option{dataloader.WithWait(defaultWait)}, opts...)
	return &Loaders{
		PostsByGroupID: dataloader.NewBatchedLoader(batchFn, opts...),
	}
}

// Middleware для внедрения лоадеров в контекст запроса.
func Middleware(store storage.Storage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithLoaders(r.Context(), NewLoaders(store))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithLoaders возвращает копию ctx с лоадерами.
func WithLoaders(ctx context.Context, loaders *Loaders) context.Context {
	return context.WithValue(ctx, key, loaders)
}

// For извлекает лоадеры из контекста или возвращает nil, если их нет.
func For(ctx context.Context) *Loaders {
	loaders, _ := ctx.Value(key).(*Loaders)
	return loaders
}

// AttachPosts заполняет Posts у всех групп через батч-лоадер.
func (l *Loaders) AttachPosts(ctx context.Context, groups []*domain.PostGroup) error {
	thunks := make([]dataloader.Thunk, len(groups))
	for i, g := range groups {
		thunks[i] = l.PostsByGroupID.Load(ctx, dataloader.StringKey(g.ID))
	}
	for i, thunk := range thunks {
		data, err := thunk()
		if err != nil {
			return fmt.Errorf("load posts of group %s: %w", groups[i].ID, err)
		}
		posts, _ := data.([]*domain.Post)
		if posts == nil {
			posts = []*domain.Post{}
		}
		groups[i].Posts = posts
	}
	return nil
}
