package domain

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs-lzh/fyyur-trivia/internal/database"
	"github.com/qs-lzh/fyyur-trivia/internal/model"
	"github.com/qs-lzh/fyyur-trivia/internal/repository"
)

var testNow = time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite://" + filepath.Join(t.TempDir(), "domain.db"))
	require.NoError(t, err)
	require.NoError(t, database.MigrateFyyur(db))
	require.NoError(t, database.MigrateTrivia(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

type change struct {
	Entity string
	Action string
	ID     uint
}

type recordingNotifier struct {
	mu      sync.Mutex
	changes []change
}

func (n *recordingNotifier) NotifyChange(_ context.Context, entity, action string, id uint) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, change{Entity: entity, Action: action, ID: id})
}

func (n *recordingNotifier) recorded() []change {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]change(nil), n.changes...)
}

var errCacheMiss = errors.New("cache miss")

type memoryCache struct {
	mu     sync.Mutex
	values map[string][]byte
	gets   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	data, ok := c.values[key]
	if !ok {
		return errCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = data
	return nil
}

type fyyurFixture struct {
	db       *gorm.DB
	notifier *recordingNotifier
	venues   VenueService
	artists  ArtistService
	shows    ShowService
}

func newFyyurFixture(t *testing.T) *fyyurFixture {
	db := setupTestDB(t)
	notifier := &recordingNotifier{}
	venueRepo := repository.NewVenueRepoGorm(db)
	artistRepo := repository.NewArtistRepoGorm(db)
	showRepo := repository.NewShowRepoGorm(db)
	return &fyyurFixture{
		db:       db,
		notifier: notifier,
		venues:   NewVenueService(db, venueRepo, showRepo, notifier, fixedClock),
		artists:  NewArtistService(db, artistRepo, showRepo, notifier, fixedClock),
		shows:    NewShowService(db, showRepo, venueRepo, artistRepo, notifier),
	}
}

func (f *fyyurFixture) venue(t *testing.T, name, city, state string) *model.Venue {
	t.Helper()
	v := &model.Venue{Name: name, City: city, State: state, Genres: "{Jazz,Folk}", ImageLink: "https://img/" + name}
	require.NoError(t, f.venues.CreateVenue(context.Background(), v))
	return v
}

func (f *fyyurFixture) artist(t *testing.T, name string) *model.Artist {
	t.Helper()
	a := &model.Artist{Name: name, Genres: "{Rock n Roll}", ImageLink: "https://img/" + name}
	require.NoError(t, f.artists.CreateArtist(context.Background(), a))
	return a
}

func (f *fyyurFixture) show(t *testing.T, venueID, artistID uint, start time.Time) {
	t.Helper()
	require.NoError(t, f.shows.CreateShow(context.Background(), &model.Show{VenueID: venueID, ArtistID: artistID, StartTime: start}))
}

var errInjected = errors.New("injected store failure")

// failWritesTo makes every insert, update and delete on table fail.
func failWritesTo(t *testing.T, db *gorm.DB, table string) {
	t.Helper()
	fail := func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			tx.AddError(errInjected)
		}
	}
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_create", fail))
	require.NoError(t, db.Callback().Update().Before("gorm:update").Register("test:fail_update", fail))
	require.NoError(t, db.Callback().Delete().Before("gorm:delete").Register("test:fail_delete", fail))
}
