package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/qs-lzh/fyyur-trivia/internal/model"
	"github.com/qs-lzh/fyyur-trivia/internal/repository"
	"github.com/qs-lzh/fyyur-trivia/internal/service"
)

type ShowService interface {
	ListShows(ctx context.Context) ([]ShowListing, error)
	CreateShow(ctx context.Context, show *model.Show) error
}

type showService struct {
	db         *gorm.DB
	repo       repository.ShowRepo
	venueRepo  repository.VenueRepo
	artistRepo repository.ArtistRepo
	notifier   ChangeNotifier
}

var _ ShowService = (*showService)(nil)

func NewShowService(db *gorm.DB, showRepo repository.ShowRepo, venueRepo repository.VenueRepo, artistRepo repository.ArtistRepo, notifier ChangeNotifier) *showService {
	return &showService{
		db:         db,
		repo:       showRepo,
		venueRepo:  venueRepo,
		artistRepo: artistRepo,
		notifier:   notifierOrNop(notifier),
	}
}

func (s *showService) ListShows(ctx context.Context) ([]ShowListing, error) {
	shows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(shows, func(show model.Show, _ int) ShowListing {
		return ShowListing{
			VenueID:         show.VenueID,
			VenueName:       show.Venue.Name,
			ArtistID:        show.ArtistID,
			ArtistName:      show.Artist.Name,
			ArtistImageLink: show.Artist.ImageLink,
			StartTime:       show.StartTime.UTC().Format(model.ShowListTimeLayout),
		}
	}), nil
}

// CreateShow persists a show after checking that both its venue and its
// artist exist.
func (s *showService) CreateShow(ctx context.Context, show *model.Show) error {
	show.ID = 0
	show.StartTime = show.StartTime.UTC()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.venueRepo.WithTx(tx).GetByID(ctx, show.VenueID); err != nil {
			return missingReference("venue", show.VenueID, err)
		}
		if _, err := s.artistRepo.WithTx(tx).GetByID(ctx, show.ArtistID); err != nil {
			return missingReference("artist", show.ArtistID, err)
		}
		if err := s.repo.WithTx(tx).Create(ctx, show); err != nil {
			return mutationFailed(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.notifier.NotifyChange(ctx, EntityShow, ActionCreated, show.ID)
	return nil
}

func missingReference(entity string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %d does not exist", service.ErrInvalidInput, entity, id)
	}
	return err
}
