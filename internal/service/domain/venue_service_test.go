package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs-lzh/fyyur-trivia/internal/model"
	"github.com/qs-lzh/fyyur-trivia/internal/service"
)

func TestVenueService_ListVenueAreas(t *testing.T) {
	f := newFyyurFixture(t)
	ctx := context.Background()

	hop := f.venue(t, "The Musical Hop", "San Francisco", "CA")
	f.venue(t, "Park Square Live Music & Coffee", "San Francisco", "CA")
	f.venue(t, "The Dueling Pianos Bar", "New York", "NY")
	artist := f.artist(t, "Guns N Petals")

	f.show(t, hop.ID, artist.ID, testNow.Add(-24*time.Hour))
	f.show(t, hop.ID, artist.ID, testNow.Add(24*time.Hour))
	f.show(t, hop.ID, artist.ID, testNow.Add(48*time.Hour))

	areas, err := f.venues.ListVenueAreas(ctx)
	require.NoError(t, err)
	require.Len(t, areas, 2)

	assert.Equal(t, "San Francisco", areas[0].City)
	assert.Equal(t, "CA", areas[0].State)
	require.Len(t, areas[0].Venues, 2)
	assert.Equal(t, "The Musical Hop", areas[0].Venues[0].Name)
	assert.EqualValues(t, 2, areas[0].Venues[0].NumUpcomingShows)
	assert.EqualValues(t, 0, areas[0].Venues[1].NumUpcomingShows)

	assert.Equal(t, "New York", areas[1].City)
	assert.Len(t, areas[1].Venues, 1)
}

func TestVenueService_ListVenueAreas_Empty(t *testing.T) {
	f := newFyyurFixture(t)

	areas, err := f.venues.ListVenueAreas(context.Background())
	require.NoError(t, err)
	assert.Empty(t, areas)
}

func TestVenueService_SearchVenues(t *testing.T) {
	f := newFyyurFixture(t)
	ctx := context.Background()
	f.venue(t, "The Musical Hop", "San Francisco", "CA")
	f.venue(t, "Park Square Live Music & Coffee", "San Francisco", "CA")
	f.venue(t, "The Dueling Pianos Bar", "New York", "NY")

	result, err := f.venues.SearchVenues(ctx, "music")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	for _, v := range result.Data {
		assert.Contains(t, []string{"The Musical Hop", "Park Square Live Music & Coffee"}, v.Name)
	}

	result, err = f.venues.SearchVenues(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Count)

	result, err = f.venues.SearchVenues(ctx, "nothing like this")
	require.NoError(t, err)
	assert.Zero(t, result.Count)
	assert.Empty(t, result.Data)
}

func TestVenueService_GetVenueDetail(t *testing.T) {
	f := newFyyurFixture(t)
	ctx := context.Background()
	venue := f.venue(t, "The Musical Hop", "San Francisco", "CA")
	artist := f.artist(t, "Guns N Petals")

	f.show(t, venue.ID, artist.ID, testNow.Add(-72*time.Hour))
	f.show(t, venue.ID, artist.ID, testNow)
	f.show(t, venue.ID, artist.ID, testNow.Add(72*time.Hour))

	detail, err := f.venues.GetVenueDetail(ctx, venue.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"Jazz", "Folk"}, detail.GenreList)
	assert.Equal(t, 1, detail.PastShowsCount)
	assert.Equal(t, 2, detail.UpcomingShowsCount)
	require.Len(t, detail.PastShows, 1)
	assert.Equal(t, artist.ID, detail.PastShows[0].ID)
	assert.Equal(t, "Guns N Petals", detail.PastShows[0].Name)
	assert.Equal(t, artist.ImageLink, detail.PastShows[0].ImageLink)
	assert.Equal(t, "2026-10-13T20:00:00", detail.PastShows[0].StartTime)
	assert.Equal(t, "2026-10-16T20:00:00", detail.UpcomingShows[0].StartTime)

	_, err = f.venues.GetVenueDetail(ctx, venue.ID+100)
	assert.True(t, errors.Is(err, service.ErrNotFound))
}

func TestVenueService_UpdateVenue(t *testing.T) {
	f := newFyyurFixture(t)
	ctx := context.Background()
	venue := f.venue(t, "The Musical Hop", "San Francisco", "CA")

	err := f.venues.UpdateVenue(ctx, venue.ID, &model.Venue{
		Name:          "The Musical Hop II",
		City:          "Oakland",
		State:         "CA",
		Genres:        "{Blues}",
		SeekingTalent: false,
	})
	require.NoError(t, err)

	got, err := f.venues.GetVenue(ctx, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Musical Hop II", got.Name)
	assert.Equal(t, "Oakland", got.City)
	assert.Equal(t, "{Blues}", got.Genres)
	// every field is overwritten, including ones left blank
	assert.Empty(t, got.ImageLink)

	err = f.venues.UpdateVenue(ctx, venue.ID+100, &model.Venue{Name: "ghost"})
	assert.True(t, errors.Is(err, service.ErrNotFound))
}

func TestVenueService_DeleteVenue(t *testing.T) {
	f := newFyyurFixture(t)
	ctx := context.Background()
	venue := f.venue(t, "The Musical Hop", "San Francisco", "CA")
	artist := f.artist(t, "Guns N Petals")
	f.show(t, venue.ID, artist.ID, testNow.Add(time.Hour))

	deleted, err := f.venues.DeleteVenue(ctx, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Musical Hop", deleted.Name)

	_, err = f.venues.GetVenue(ctx, venue.ID)
	assert.True(t, errors.Is(err, service.ErrNotFound))

	shows, err := f.shows.ListShows(ctx)
	require.NoError(t, err)
	assert.Empty(t, shows)

	_, err = f.venues.DeleteVenue(ctx, venue.ID)
	assert.True(t, errors.Is(err, service.ErrNotFound))

	assert.Contains(t, f.notifier.recorded(), change{Entity: EntityVenue, Action: ActionDeleted, ID: venue.ID})
}

func TestVenueService_DeleteVenue_RollsBackShows(t *testing.T) {
	f := newFyyurFixture(t)
	ctx := context.Background()
	venue := f.venue(t, "The Musical Hop", "San Francisco", "CA")
	artist := f.artist(t, "Guns N Petals")
	f.show(t, venue.ID, artist.ID, testNow.Add(time.Hour))
	before := len(f.notifier.recorded())

	failWritesTo(t, f.db, "venues")

	_, err := f.venues.DeleteVenue(ctx, venue.ID)
	assert.True(t, errors.Is(err, service.ErrMutationFailed), "got %v", err)

	// the show delete ran first and must have been undone
	shows, err := f.shows.ListShows(ctx)
	require.NoError(t, err)
	assert.Len(t, shows, 1)
	_, err = f.venues.GetVenue(ctx, venue.ID)
	assert.NoError(t, err)
	assert.Len(t, f.notifier.recorded(), before)
}

func TestVenueService_FailedWritesLeaveStoreUnchanged(t *testing.T) {
	f := newFyyurFixture(t)
	ctx := context.Background()
	venue := f.venue(t, "The Musical Hop", "San Francisco", "CA")
	before := len(f.notifier.recorded())

	failWritesTo(t, f.db, "venues")

	err := f.venues.CreateVenue(ctx, &model.Venue{Name: "Park Square Live Music & Coffee", City: "San Francisco", State: "CA"})
	assert.True(t, errors.Is(err, service.ErrMutationFailed), "got %v", err)

	err = f.venues.UpdateVenue(ctx, venue.ID, &model.Venue{Name: "Renamed", City: "Oakland", State: "CA"})
	assert.True(t, errors.Is(err, service.ErrMutationFailed), "got %v", err)

	areas, err := f.venues.ListVenueAreas(ctx)
	require.NoError(t, err)
	require.Len(t, areas, 1)
	require.Len(t, areas[0].Venues, 1)
	assert.Equal(t, "The Musical Hop", areas[0].Venues[0].Name)

	got, err := f.venues.GetVenue(ctx, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, "San Francisco", got.City)
	assert.Len(t, f.notifier.recorded(), before)
}
