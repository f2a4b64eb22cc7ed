package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/qs-lzh/fyyur-trivia/internal/model"
)

type ArtistRepo interface {
	WithTx(tx *gorm.DB) ArtistRepo
	Create(ctx context.Context, artist *model.Artist) error
	Save(ctx context.Context, artist *model.Artist) error
	GetByID(ctx context.Context, id uint) (*model.Artist, error)
	ListAll(ctx context.Context) ([]model.Artist, error)
	SearchByName(ctx context.Context, term string) ([]model.Artist, error)
}

type artistRepoGorm struct {
	db *gorm.DB
}

var _ ArtistRepo = (*artistRepoGorm)(nil)

func NewArtistRepoGorm(db *gorm.DB) *artistRepoGorm {
	return &artistRepoGorm{
		db: db,
	}
}

func (r *artistRepoGorm) WithTx(tx *gorm.DB) ArtistRepo {
	return &artistRepoGorm{
		db: tx,
	}
}

func (r *artistRepoGorm) Create(ctx context.Context, artist *model.Artist) error {
	return gorm.G[model.Artist](r.db).Create(ctx, artist)
}

func (r *artistRepoGorm) Save(ctx context.Context, artist *model.Artist) error {
	return r.db.WithContext(ctx).Save(artist).Error
}

func (r *artistRepoGorm) GetByID(ctx context.Context, id uint) (*model.Artist, error) {
	artist, err := gorm.G[model.Artist](r.db).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

func (r *artistRepoGorm) ListAll(ctx context.Context) ([]model.Artist, error) {
	return gorm.G[model.Artist](r.db).Order("id").Find(ctx)
}

func (r *artistRepoGorm) SearchByName(ctx context.Context, term string) ([]model.Artist, error) {
	return gorm.G[model.Artist](r.db).Where(ilike(r.db, "name"), containsPattern(term)).Order("id").Find(ctx)
}
