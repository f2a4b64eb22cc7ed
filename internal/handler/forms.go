package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/qs-lzh/fyyur-trivia/internal/model"
)

type VenueForm struct {
	Name               string   `form:"name" binding:"required"`
	City               string   `form:"city" binding:"required"`
	State              string   `form:"state" binding:"required"`
	Address            string   `form:"address" binding:"required"`
	Phone              string   `form:"phone"`
	ImageLink          string   `form:"image_link" binding:"omitempty,url"`
	Genres             []string `form:"genres" binding:"required,min=1"`
	FacebookLink       string   `form:"facebook_link" binding:"omitempty,url"`
	WebsiteLink        string   `form:"website_link" binding:"omitempty,url"`
	SeekingTalent      string   `form:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description"`
}

func (f *VenueForm) toModel() *model.Venue {
	return &model.Venue{
		Name:               strings.TrimSpace(f.Name),
		City:               f.City,
		State:              f.State,
		Address:            f.Address,
		Phone:              f.Phone,
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		WebsiteLink:        f.WebsiteLink,
		SeekingTalent:      formBool(f.SeekingTalent),
		SeekingDescription: f.SeekingDescription,
		Genres:             model.FormatGenres(f.Genres),
	}
}

func venueFormFrom(v *model.Venue) *VenueForm {
	return &VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		Genres:             model.ParseGenres(v.Genres),
		FacebookLink:       v.FacebookLink,
		WebsiteLink:        v.WebsiteLink,
		SeekingTalent:      checkbox(v.SeekingTalent),
		SeekingDescription: v.SeekingDescription,
	}
}

type ArtistForm struct {
	Name               string   `form:"name" binding:"required"`
	City               string   `form:"city" binding:"required"`
	State              string   `form:"state" binding:"required"`
	Phone              string   `form:"phone"`
	ImageLink          string   `form:"image_link" binding:"omitempty,url"`
	Genres             []string `form:"genres" binding:"required,min=1"`
	FacebookLink       string   `form:"facebook_link" binding:"omitempty,url"`
	WebsiteLink        string   `form:"website_link" binding:"omitempty,url"`
	SeekingVenue       string   `form:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description"`
}

func (f *ArtistForm) toModel() *model.Artist {
	return &model.Artist{
		Name:               strings.TrimSpace(f.Name),
		City:               f.City,
		State:              f.State,
		Phone:              f.Phone,
		Genres:             model.FormatGenres(f.Genres),
		ImageLink:          f.ImageLink,
		FacebookLink:       f.FacebookLink,
		Website:            f.WebsiteLink,
		SeekingVenue:       formBool(f.SeekingVenue),
		SeekingDescription: f.SeekingDescription,
	}
}

func artistFormFrom(a *model.Artist) *ArtistForm {
	return &ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		Genres:             model.ParseGenres(a.Genres),
		FacebookLink:       a.FacebookLink,
		WebsiteLink:        a.Website,
		SeekingVenue:       checkbox(a.SeekingVenue),
		SeekingDescription: a.SeekingDescription,
	}
}

type ShowForm struct {
	ArtistID  uint   `form:"artist_id" binding:"required"`
	VenueID   uint   `form:"venue_id" binding:"required"`
	StartTime string `form:"start_time" binding:"required"`
}

// accepted start_time layouts, tried in order
var showStartLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

var errBadStartTime = errors.New("start_time must look like 2006-01-02 15:04:05")

func (f *ShowForm) toModel() (*model.Show, error) {
	for _, layout := range showStartLayouts {
		if start, err := time.ParseInLocation(layout, strings.TrimSpace(f.StartTime), time.UTC); err == nil {
			return &model.Show{ArtistID: f.ArtistID, VenueID: f.VenueID, StartTime: start}, nil
		}
	}
	return nil, errBadStartTime
}

func formBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "y", "yes", "on", "true", "1":
		return true
	}
	return false
}

func checkbox(b bool) string {
	if b {
		return "y"
	}
	return ""
}
