package domain

import (
	"context"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/qs-lzh/fyyur-trivia/internal/model"
	"github.com/qs-lzh/fyyur-trivia/internal/repository"
)

type VenueService interface {
	ListVenueAreas(ctx context.Context) ([]VenueArea, error)
	SearchVenues(ctx context.Context, term string) (*VenueSearchResult, error)
	GetVenue(ctx context.Context, id uint) (*model.Venue, error)
	GetVenueDetail(ctx context.Context, id uint) (*VenueDetail, error)
	CreateVenue(ctx context.Context, venue *model.Venue) error
	UpdateVenue(ctx context.Context, id uint, venue *model.Venue) error
	DeleteVenue(ctx context.Context, id uint) (*model.Venue, error)
}

type venueService struct {
	db       *gorm.DB
	repo     repository.VenueRepo
	showRepo repository.ShowRepo
	notifier ChangeNotifier
	now      Clock
}

var _ VenueService = (*venueService)(nil)

func NewVenueService(db *gorm.DB, venueRepo repository.VenueRepo, showRepo repository.ShowRepo, notifier ChangeNotifier, clock Clock) *venueService {
	return &venueService{
		db:       db,
		repo:     venueRepo,
		showRepo: showRepo,
		notifier: notifierOrNop(notifier),
		now:      clockOrDefault(clock),
	}
}

type cityState struct {
	city  string
	state string
}

// ListVenueAreas groups venues by (city, state). Only pairs that have at
// least one venue appear.
func (s *venueService) ListVenueAreas(ctx context.Context) ([]VenueArea, error) {
	now := s.now()
	var areas []VenueArea
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		venueRepo := s.repo.WithTx(tx)
		showRepo := s.showRepo.WithTx(tx)

		venues, err := venueRepo.ListAll(ctx)
		if err != nil {
			return err
		}
		keys := lo.Uniq(lo.Map(venues, func(v model.Venue, _ int) cityState {
			return cityState{city: v.City, state: v.State}
		}))

		areas = make([]VenueArea, 0, len(keys))
		for _, key := range keys {
			members, err := venueRepo.ListByCityState(ctx, key.city, key.state)
			if err != nil {
				return err
			}
			summaries, err := summarizeVenues(ctx, showRepo, members, now)
			if err != nil {
				return err
			}
			areas = append(areas, VenueArea{City: key.city, State: key.state, Venues: summaries})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return areas, nil
}

// SearchVenues matches term case-insensitively against venue names. An empty
// term matches every venue.
func (s *venueService) SearchVenues(ctx context.Context, term string) (*VenueSearchResult, error) {
	now := s.now()
	var result *VenueSearchResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		venues, err := s.repo.WithTx(tx).SearchByName(ctx, term)
		if err != nil {
			return err
		}
		summaries, err := summarizeVenues(ctx, s.showRepo.WithTx(tx), venues, now)
		if err != nil {
			return err
		}
		result = &VenueSearchResult{Count: len(summaries), Data: summaries}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func summarizeVenues(ctx context.Context, showRepo repository.ShowRepo, venues []model.Venue, now time.Time) ([]VenueSummary, error) {
	summaries := make([]VenueSummary, 0, len(venues))
	for _, venue := range venues {
		upcoming, err := showRepo.CountStartingAfterByVenueID(ctx, venue.ID, now)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, VenueSummary{ID: venue.ID, Name: venue.Name, NumUpcomingShows: upcoming})
	}
	return summaries, nil
}

func (s *venueService) GetVenue(ctx context.Context, id uint) (*model.Venue, error) {
	venue, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return venue, nil
}

func (s *venueService) GetVenueDetail(ctx context.Context, id uint) (*VenueDetail, error) {
	now := s.now()
	var detail *VenueDetail
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		venue, err := s.repo.WithTx(tx).GetByID(ctx, id)
		if err != nil {
			return translateNotFound(err)
		}
		shows, err := s.showRepo.WithTx(tx).ListByVenueID(ctx, id)
		if err != nil {
			return err
		}
		past, upcoming := partitionShows(shows, now, func(show model.Show) ShowCard {
			return ShowCard{
				ID:        show.ArtistID,
				Name:      show.Artist.Name,
				ImageLink: show.Artist.ImageLink,
				StartTime: showCardTime(show.StartTime),
			}
		})
		detail = &VenueDetail{
			Venue:              *venue,
			GenreList:          model.ParseGenres(venue.Genres),
			PastShows:          past,
			UpcomingShows:      upcoming,
			PastShowsCount:     len(past),
			UpcomingShowsCount: len(upcoming),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *venueService) CreateVenue(ctx context.Context, venue *model.Venue) error {
	venue.ID = 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, venue)
	})
	if err != nil {
		return mutationFailed(err)
	}
	s.notifier.NotifyChange(ctx, EntityVenue, ActionCreated, venue.ID)
	return nil
}

// UpdateVenue overwrites every mutable field of venue id with the given values.
func (s *venueService) UpdateVenue(ctx context.Context, id uint, venue *model.Venue) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.GetByID(ctx, id); err != nil {
			return translateNotFound(err)
		}
		venue.ID = id
		if err := repo.Save(ctx, venue); err != nil {
			return mutationFailed(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.notifier.NotifyChange(ctx, EntityVenue, ActionUpdated, id)
	return nil
}

// DeleteVenue removes the venue together with its shows.
func (s *venueService) DeleteVenue(ctx context.Context, id uint) (*model.Venue, error) {
	var deleted *model.Venue
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		venue, err := repo.GetByID(ctx, id)
		if err != nil {
			return translateNotFound(err)
		}
		if _, err := s.showRepo.WithTx(tx).DeleteByVenueID(ctx, id); err != nil {
			return mutationFailed(err)
		}
		if _, err := repo.Delete(ctx, id); err != nil {
			return mutationFailed(err)
		}
		deleted = venue
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifier.NotifyChange(ctx, EntityVenue, ActionDeleted, id)
	return deleted, nil
}
