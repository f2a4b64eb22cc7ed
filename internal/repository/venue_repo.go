package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/qs-lzh/fyyur-trivia/internal/model"
)

type VenueRepo interface {
	WithTx(tx *gorm.DB) VenueRepo
	Create(ctx context.Context, venue *model.Venue) error
	Save(ctx context.Context, venue *model.Venue) error
	Delete(ctx context.Context, id uint) (int, error)
	GetByID(ctx context.Context, id uint) (*model.Venue, error)
	ListAll(ctx context.Context) ([]model.Venue, error)
	ListByCityState(ctx context.Context, city, state string) ([]model.Venue, error)
	SearchByName(ctx context.Context, term string) ([]model.Venue, error)
}

type venueRepoGorm struct {
	db *gorm.DB
}

var _ VenueRepo = (*venueRepoGorm)(nil)

func NewVenueRepoGorm(db *gorm.DB) *venueRepoGorm {
	return &venueRepoGorm{
		db: db,
	}
}

func (r *venueRepoGorm) WithTx(tx *gorm.DB) VenueRepo {
	return &venueRepoGorm{
		db: tx,
	}
}

func (r *venueRepoGorm) Create(ctx context.Context, venue *model.Venue) error {
	return gorm.G[model.Venue](r.db).Create(ctx, venue)
}

// Save writes every column, zero values included.
func (r *venueRepoGorm) Save(ctx context.Context, venue *model.Venue) error {
	return r.db.WithContext(ctx).Save(venue).Error
}

func (r *venueRepoGorm) Delete(ctx context.Context, id uint) (int, error) {
	return gorm.G[model.Venue](r.db).Where("id = ?", id).Delete(ctx)
}

func (r *venueRepoGorm) GetByID(ctx context.Context, id uint) (*model.Venue, error) {
	venue, err := gorm.G[model.Venue](r.db).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *venueRepoGorm) ListAll(ctx context.Context) ([]model.Venue, error) {
	return gorm.G[model.Venue](r.db).Order("id").Find(ctx)
}

func (r *venueRepoGorm) ListByCityState(ctx context.Context, city, state string) ([]model.Venue, error) {
	return gorm.G[model.Venue](r.db).Where("city = ? AND state = ?", city, state).Order("id").Find(ctx)
}

func (r *venueRepoGorm) SearchByName(ctx context.Context, term string) ([]model.Venue, error) {
	return gorm.G[model.Venue](r.db).Where(ilike(r.db, "name"), containsPattern(term)).Order("id").Find(ctx)
}
