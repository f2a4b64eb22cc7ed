package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs-lzh/fyyur-trivia/internal/model"
)

func TestVenueForm_RoundTrip(t *testing.T) {
	f := &VenueForm{
		Name: " The Musical Hop ", City: "San Francisco", State: "CA", Address: "1015 Folsom Street",
		Genres: []string{"Jazz", "Reggae"}, SeekingTalent: "y",
	}
	v := f.toModel()
	assert.Equal(t, "The Musical Hop", v.Name)
	assert.Equal(t, "{Jazz,Reggae}", v.Genres)
	assert.True(t, v.SeekingTalent)

	back := venueFormFrom(v)
	assert.Equal(t, []string{"Jazz", "Reggae"}, back.Genres)
	assert.Equal(t, "y", back.SeekingTalent)
}

func TestArtistForm_ToModel(t *testing.T) {
	f := &ArtistForm{Name: "Guns N Petals", City: "San Francisco", State: "CA", Genres: []string{"Rock n Roll"}, WebsiteLink: "https://gunsnpetalsband.com"}
	a := f.toModel()
	assert.Equal(t, "https://gunsnpetalsband.com", a.Website)
	assert.False(t, a.SeekingVenue)
	assert.Equal(t, []string{"Rock n Roll"}, artistFormFrom(a).Genres)
}

func TestShowForm_StartTime(t *testing.T) {
	want := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)
	for _, in := range []string{"2035-04-01 20:00:00", "2035-04-01T20:00", "2035-04-01T20:00:00"} {
		show, err := (&ShowForm{ArtistID: 1, VenueID: 2, StartTime: in}).toModel()
		require.NoError(t, err, in)
		assert.True(t, want.Equal(show.StartTime), in)
		assert.Equal(t, model.Show{ArtistID: 1, VenueID: 2, StartTime: show.StartTime}, *show)
	}

	_, err := (&ShowForm{ArtistID: 1, VenueID: 2, StartTime: "next tuesday"}).toModel()
	assert.ErrorIs(t, err, errBadStartTime)
}

func TestFormBool(t *testing.T) {
	for _, v := range []string{"y", "Yes", "on", "true", "1"} {
		assert.True(t, formBool(v), v)
	}
	for _, v := range []string{"", "n", "off", "false"} {
		assert.False(t, formBool(v), v)
	}
}
