package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/UkralStul/post-scheduler/internal/domain"
	"github.com/UkralStul/post-scheduler/internal/pagination"
	"github.com/UkralStul/post-scheduler/internal/query"
	"github.com/UkralStul/post-scheduler/internal/storage"
)

const (
	createdAtColumn = "created_at"
	idColumn        = "id"
)

// Store реализует интерфейс Storage с использованием GORM.
type Store struct {
	db    *gorm.DB
	clock clockwork.Clock
}

var _ storage.Storage = (*Store)(nil)

// New подключается к PostgreSQL и выполняет миграцию схемы.
func New(dsn string, logLevel logger.LogLevel) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewWithDB(db, clockwork.NewRealClock())
}

// NewWithDB оборачивает открытое соединение GORM и выполняет миграцию схемы.
func NewWithDB(db *gorm.DB, clock clockwork.Clock) (*Store, error) {
	if err := db.AutoMigrate(&domain.PostGroup{}, &domain.Post{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Store{db: db, clock: clock}, nil
}

// Close закрывает пул соединений.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// now обрезается до точности timestamptz, чтобы курсор только что созданной
// строки совпадал с курсором той же строки, прочитанной из базы.
func (s *Store) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Microsecond)
}

// === Pagination Methods ===

func (s *Store) scoped(ctx context.Context, p query.Predicate, b *pagination.Boundary) (*gorm.DB, error) {
	q := s.db.WithContext(ctx).Model(&domain.PostGroup{})
	if !p.IsUniversal() {
		where, args, err := p.Sqlizer().ToSql()
		if err != nil {
			return nil, fmt.Errorf("build filter: %w", err)
		}
		q = q.Where(where, args...)
	}
	if b != nil {
		where, args, err := b.Sqlizer(createdAtColumn, idColumn).ToSql()
		if err != nil {
			return nil, fmt.Errorf("build cursor boundary: %w", err)
		}
		q = q.Where(where, args...)
	}
	return q, nil
}

func (s *Store) CountPostGroups(ctx context.Context, p query.Predicate, b *pagination.Boundary) (int64, error) {
	q, err := s.scoped(ctx, p, b)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) FetchPostGroups(ctx context.Context, p query.Predicate, b *pagination.Boundary, order pagination.Order, limit int) ([]*domain.PostGroup, error) {
	q, err := s.scoped(ctx, p, b)
	if err != nil {
		return nil, err
	}
	var groups []*domain.PostGroup
	err = q.Order(order.Clause(createdAtColumn, idColumn)).
		Limit(limit).
		Find(&groups).Error
	return groups, err
}

// === Post Group Methods ===

func (s *Store) GetPostGroupByID(ctx context.Context, id string) (*domain.PostGroup, error) {
	// Колонка id имеет тип uuid, другие значения в ней невозможны
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("post group %s: %w", id, storage.ErrNotFound)
	}

	var g domain.PostGroup
	err := s.db.WithContext(ctx).
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&g, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post group %s: %w", id, storage.ErrNotFound)
		}
		return nil, err
	}
	return &g, nil
}

func (s *Store) CreatePostGroup(ctx context.Context, g *domain.PostGroup) (*domain.PostGroup, error) {
	now := s.now()

	row := *g
	row.ID = uuid.NewString()
	row.Version = 1
	row.CreatedAt = now
	row.UpdatedAt = now
	row.Posts = make([]*domain.Post, len(g.Posts))
	for i, p := range g.Posts {
		post := *p
		post.ID = uuid.NewString()
		post.PostGroupID = row.ID
		// Посты читаются по created_at; шаг в микросекунду сохраняет исходный порядок
		post.CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
		post.UpdatedAt = now
		row.Posts[i] = &post
	}

	// GORM сохранит посты через ассоциацию в той же транзакции
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Store) SavePostGroup(ctx context.Context, g *domain.PostGroup) (*domain.PostGroup, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.PostGroup{}).
			Where("id = ? AND version = ?", g.ID, g.Version).
			Updates(map[string]interface{}{
				"status":         g.Status,
				"published_date": g.PublishedDate,
				"updated_at":     s.now(),
				"version":        g.Version + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		var n int64
		if err := tx.Model(&domain.PostGroup{}).Where("id = ?", g.ID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("post group %s: %w", g.ID, storage.ErrNotFound)
		}
		return fmt.Errorf("post group %s at version %d: %w", g.ID, g.Version, storage.ErrConcurrentModification)
	})
	if err != nil {
		return nil, err
	}
	return s.GetPostGroupByID(ctx, g.ID)
}

// === Dataloader Method ===

func (s *Store) GetPostsByGroupIDs(ctx context.Context, groupIDs []string) (map[string][]*domain.Post, error) {
	result := make(map[string][]*domain.Post, len(groupIDs))
	if len(groupIDs) == 0 {
		return result, nil
	}

	var posts []*domain.Post
	err := s.db.WithContext(ctx).
		Where("post_group_id IN ?", groupIDs).
		Order("post_group_id, created_at ASC, id ASC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	for _, p := range posts {
		result[p.PostGroupID] = append(result[p.PostGroupID], p)
	}
	return result, nil
}
