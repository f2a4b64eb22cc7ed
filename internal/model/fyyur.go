package model

import (
	"time"
)

type Venue struct {
	ID                 uint   `gorm:"primaryKey"`
	Name               string `gorm:"not null;index"`
	City               string `gorm:"size:120;index:idx_venue_city_state"`
	State              string `gorm:"size:120;index:idx_venue_city_state"`
	Address            string `gorm:"size:120"`
	Phone              string `gorm:"size:120"`
	ImageLink          string `gorm:"size:500"`
	FacebookLink       string `gorm:"size:500"`
	WebsiteLink        string `gorm:"size:500"`
	SeekingTalent      bool
	SeekingDescription string `gorm:"size:500"`
	Genres             string `gorm:"size:500"`
}

type Artist struct {
	ID                 uint   `gorm:"primaryKey"`
	Name               string `gorm:"not null;index"`
	City               string `gorm:"size:120"`
	State              string `gorm:"size:120"`
	Phone              string `gorm:"size:120"`
	Genres             string `gorm:"size:500"`
	ImageLink          string `gorm:"size:500"`
	FacebookLink       string `gorm:"size:500"`
	Website            string `gorm:"size:500"`
	SeekingVenue       bool
	SeekingDescription string `gorm:"size:500"`
}

// Show links one Venue and one Artist at a start time.
type Show struct {
	ID        uint `gorm:"primaryKey"`
	Name      string
	VenueID   uint      `gorm:"not null;index"`
	ArtistID  uint      `gorm:"not null;index"`
	StartTime time.Time `gorm:"not null;index"`
	EndTime   *time.Time

	Venue  Venue  `gorm:"foreignKey:VenueID"`
	Artist Artist `gorm:"foreignKey:ArtistID"`
}

// layouts used when a show start time is rendered
const (
	ShowTimeLayout     = "2006-01-02T15:04:05"
	ShowListTimeLayout = "2006-01-02T15:04:05.000000Z"
)

// IsPast reports whether a show starting at start has already started at now.
func IsPast(start, now time.Time) bool {
	return start.Before(now)
}

// IsUpcoming is the complement of IsPast: a show starting exactly now is upcoming.
func IsUpcoming(start, now time.Time) bool {
	return !IsPast(start, now)
}
