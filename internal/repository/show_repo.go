package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/qs-lzh/fyyur-trivia/internal/model"
)

type ShowRepo interface {
	WithTx(tx *gorm.DB) ShowRepo
	Create(ctx context.Context, show *model.Show) error
	ListAll(ctx context.Context) ([]model.Show, error)
	ListByVenueID(ctx context.Context, venueID uint) ([]model.Show, error)
	ListByArtistID(ctx context.Context, artistID uint) ([]model.Show, error)
	CountStartingAfterByVenueID(ctx context.Context, venueID uint, after time.Time) (int64, error)
	CountStartingAfterByArtistID(ctx context.Context, artistID uint, after time.Time) (int64, error)
	DeleteByVenueID(ctx context.Context, venueID uint) (int, error)
}

type showRepoGorm struct {
	db *gorm.DB
}

var _ ShowRepo = (*showRepoGorm)(nil)

func NewShowRepoGorm(db *gorm.DB) *showRepoGorm {
	return &showRepoGorm{
		db: db,
	}
}

func (r *showRepoGorm) WithTx(tx *gorm.DB) ShowRepo {
	return &showRepoGorm{
		db: tx,
	}
}

// Create inserts the show row only; the Venue and Artist must already exist.
func (r *showRepoGorm) Create(ctx context.Context, show *model.Show) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(show).Error
}

func (r *showRepoGorm) ListAll(ctx context.Context) ([]model.Show, error) {
	return gorm.G[model.Show](r.db).
		Preload("Venue", nil).
		Preload("Artist", nil).
		Order("start_time").
		Find(ctx)
}

// ListByVenueID loads the venue's shows with their artists.
func (r *showRepoGorm) ListByVenueID(ctx context.Context, venueID uint) ([]model.Show, error) {
	return gorm.G[model.Show](r.db).
		Preload("Artist", nil).
		Where("venue_id = ?", venueID).
		Order("start_time").
		Find(ctx)
}

// ListByArtistID loads the artist's shows with their venues.
func (r *showRepoGorm) ListByArtistID(ctx context.Context, artistID uint) ([]model.Show, error) {
	return gorm.G[model.Show](r.db).
		Preload("Venue", nil).
		Where("artist_id = ?", artistID).
		Order("start_time").
		Find(ctx)
}

func (r *showRepoGorm) CountStartingAfterByVenueID(ctx context.Context, venueID uint, after time.Time) (int64, error) {
	return gorm.G[model.Show](r.db).Where("venue_id = ? AND start_time > ?", venueID, after).Count(ctx, "*")
}

func (r *showRepoGorm) CountStartingAfterByArtistID(ctx context.Context, artistID uint, after time.Time) (int64, error) {
	return gorm.G[model.Show](r.db).Where("artist_id = ? AND start_time > ?", artistID, after).Count(ctx, "*")
}

func (r *showRepoGorm) DeleteByVenueID(ctx context.Context, venueID uint) (int, error) {
	return gorm.G[model.Show](r.db).Where("venue_id = ?", venueID).Delete(ctx)
}
