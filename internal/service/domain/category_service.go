package domain

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/qs-lzh/fyyur-trivia/internal/model"
	"github.com/qs-lzh/fyyur-trivia/internal/repository"
)

const (
	categoryMapCacheKey = "trivia:categories"
	categoryMapCacheTTL = 5 * time.Minute
)

// CategoryCache is the subset of the redis cache used for the category map.
type CategoryCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

type CategoryService interface {
	CategoryMap(ctx context.Context) (map[uint]string, error)
	GetCategory(ctx context.Context, id uint) (*model.Category, error)
}

type categoryService struct {
	repo  repository.CategoryRepo
	cache CategoryCache
}

var _ CategoryService = (*categoryService)(nil)

// NewCategoryService builds the service; cache may be nil.
func NewCategoryService(categoryRepo repository.CategoryRepo, cache CategoryCache) *categoryService {
	return &categoryService{
		repo:  categoryRepo,
		cache: cache,
	}
}

// CategoryMap returns id -> type for every category. Categories never change
// after seeding so a non-empty map is cached.
func (s *categoryService) CategoryMap(ctx context.Context) (map[uint]string, error) {
	if s.cache != nil {
		var cached map[uint]string
		if err := s.cache.Get(ctx, categoryMapCacheKey, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	categories, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	categoryMap := lo.Associate(categories, func(c model.Category) (uint, string) {
		return c.ID, c.Type
	})

	if s.cache != nil && len(categoryMap) > 0 {
		// a failed cache write only costs a query next time
		_ = s.cache.Set(ctx, categoryMapCacheKey, categoryMap, categoryMapCacheTTL)
	}
	return categoryMap, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id uint) (*model.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return category, nil
}
