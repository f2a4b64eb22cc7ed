package domain

import (
	"context"

	"gorm.io/gorm"

	"github.com/qs-lzh/fyyur-trivia/internal/model"
	"github.com/qs-lzh/fyyur-trivia/internal/repository"
)

type ArtistService interface {
	ListArtists(ctx context.Context) ([]model.Artist, error)
	SearchArtists(ctx context.Context, term string) (*ArtistSearchResult, error)
	GetArtist(ctx context.Context, id uint) (*model.Artist, error)
	GetArtistDetail(ctx context.Context, id uint) (*ArtistDetail, error)
	CreateArtist(ctx context.Context, artist *model.Artist) error
	UpdateArtist(ctx context.Context, id uint, artist *model.Artist) error
}

type artistService struct {
	db       *gorm.DB
	repo     repository.ArtistRepo
	showRepo repository.ShowRepo
	notifier ChangeNotifier
	now      Clock
}

var _ ArtistService = (*artistService)(nil)

func NewArtistService(db *gorm.DB, artistRepo repository.ArtistRepo, showRepo repository.ShowRepo, notifier ChangeNotifier, clock Clock) *artistService {
	return &artistService{
		db:       db,
		repo:     artistRepo,
		showRepo: showRepo,
		notifier: notifierOrNop(notifier),
		now:      clockOrDefault(clock),
	}
}

func (s *artistService) ListArtists(ctx context.Context) ([]model.Artist, error) {
	return s.repo.ListAll(ctx)
}

func (s *artistService) SearchArtists(ctx context.Context, term string) (*ArtistSearchResult, error) {
	now := s.now()
	var result *ArtistSearchResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		artists, err := s.repo.WithTx(tx).SearchByName(ctx, term)
		if err != nil {
			return err
		}
		showRepo := s.showRepo.WithTx(tx)
		data := make([]ArtistSummary, 0, len(artists))
		for _, artist := range artists {
			upcoming, err := showRepo.CountStartingAfterByArtistID(ctx, artist.ID, now)
			if err != nil {
				return err
			}
			data = append(data, ArtistSummary{ID: artist.ID, Name: artist.Name, NumUpcomingShows: upcoming})
		}
		result = &ArtistSearchResult{Count: len(data), Data: data}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *artistService) GetArtist(ctx context.Context, id uint) (*model.Artist, error) {
	artist, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return artist, nil
}

func (s *artistService) GetArtistDetail(ctx context.Context, id uint) (*ArtistDetail, error) {
	now := s.now()
	var detail *ArtistDetail
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		artist, err := s.repo.WithTx(tx).GetByID(ctx, id)
		if err != nil {
			return translateNotFound(err)
		}
		shows, err := s.showRepo.WithTx(tx).ListByArtistID(ctx, id)
		if err != nil {
			return err
		}
		past, upcoming := partitionShows(shows, now, func(show model.Show) ShowCard {
			return ShowCard{
				ID:        show.VenueID,
				Name:      show.Venue.Name,
				ImageLink: show.Venue.ImageLink,
				StartTime: showCardTime(show.StartTime),
			}
		})
		detail = &ArtistDetail{
			Artist:             *artist,
			GenreList:          model.ParseGenres(artist.Genres),
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

func (s *artistService) CreateArtist(ctx context.Context, artist *model.Artist) error {
	artist.ID = 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, artist)
	})
	if err != nil {
		return mutationFailed(err)
	}
	s.notifier.NotifyChange(ctx, EntityArtist, ActionCreated, artist.ID)
	return nil
}

func (s *artistService) UpdateArtist(ctx context.Context, id uint, artist *model.Artist) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.GetByID(ctx, id); err != nil {
			return translateNotFound(err)
		}
		artist.ID = id
		if err := repo.Save(ctx, artist); err != nil {
			return mutationFailed(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.notifier.NotifyChange(ctx, EntityArtist, ActionUpdated, id)
	return nil
}
