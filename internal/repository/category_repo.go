package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/qs-lzh/fyyur-trivia/internal/model"
)

type CategoryRepo interface {
	WithTx(tx *gorm.DB) CategoryRepo
	Create(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, id uint) (*model.Category, error)
	ListAll(ctx context.Context) ([]model.Category, error)
}

type categoryRepoGorm struct {
	db *gorm.DB
}

var _ CategoryRepo = (*categoryRepoGorm)(nil)

func NewCategoryRepoGorm(db *gorm.DB) *categoryRepoGorm {
	return &categoryRepoGorm{
		db: db,
	}
}

func (r *categoryRepoGorm) WithTx(tx *gorm.DB) CategoryRepo {
	return &categoryRepoGorm{
		db: tx,
	}
}

func (r *categoryRepoGorm) Create(ctx context.Context, category *model.Category) error {
	return gorm.G[model.Category](r.db).Create(ctx, category)
}

func (r *categoryRepoGorm) GetByID(ctx context.Context, id uint) (*model.Category, error) {
	category, err := gorm.G[model.Category](r.db).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepoGorm) ListAll(ctx context.Context) ([]model.Category, error) {
	return gorm.G[model.Category](r.db).Order("id").Find(ctx)
}
