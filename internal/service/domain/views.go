package domain

import (
	"time"

	"github.com/qs-lzh/fyyur-trivia/internal/model"
)

// VenueSummary and ArtistSummary are the rows of listing and search pages.
type VenueSummary struct {
	ID               uint
	Name             string
	NumUpcomingShows int64
}

type ArtistSummary struct {
	ID               uint
	Name             string
	NumUpcomingShows int64
}

type VenueArea struct {
	City   string
	State  string
	Venues []VenueSummary
}

type VenueSearchResult struct {
	Count int
	Data  []VenueSummary
}

type ArtistSearchResult struct {
	Count int
	Data  []ArtistSummary
}

// ShowCard is one show on a detail page, described by the counterpart entity.
type ShowCard struct {
	ID        uint
	Name      string
	ImageLink string
	StartTime string
}

type VenueDetail struct {
	model.Venue
	GenreList          []string
	PastShows          []ShowCard
	UpcomingShows      []ShowCard
	PastShowsCount     int
	UpcomingShowsCount int
}

type ArtistDetail struct {
	model.Artist
	GenreList          []string
	PastShows          []ShowCard
	UpcomingShows      []ShowCard
	PastShowsCount     int
	UpcomingShowsCount int
}

type ShowListing struct {
	VenueID         uint
	VenueName       string
	ArtistID        uint
	ArtistName      string
	ArtistImageLink string
	StartTime       string
}

// showCardTime renders a detail-page start time in UTC, matching the shows listing.
func showCardTime(start time.Time) string {
	return start.UTC().Format(model.ShowTimeLayout)
}

// partitionShows splits shows into past and upcoming relative to now.
func partitionShows(shows []model.Show, now time.Time, card func(model.Show) ShowCard) (past, upcoming []ShowCard) {
	past, upcoming = []ShowCard{}, []ShowCard{}
	for _, show := range shows {
		if model.IsPast(show.StartTime, now) {
			past = append(past, card(show))
		} else {
			upcoming = append(upcoming, card(show))
		}
	}
	return past, upcoming
}
