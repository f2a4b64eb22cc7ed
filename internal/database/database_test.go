package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs-lzh/fyyur-trivia/internal/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open("sqlite://" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestMigrate(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, MigrateFyyur(db))
	require.NoError(t, MigrateTrivia(db))

	for _, table := range []any{&model.Venue{}, &model.Artist{}, &model.Show{}, &model.Category{}, &model.Question{}} {
		assert.True(t, db.Migrator().HasTable(table))
	}
}

func TestSeedTriviaCategories(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, MigrateTrivia(db))
	ctx := context.Background()

	n, err := SeedTriviaCategories(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	// second run leaves the table alone
	n, err = SeedTriviaCategories(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, n)

	var categories []model.Category
	require.NoError(t, db.Order("id").Find(&categories).Error)
	require.Len(t, categories, 6)
	assert.Equal(t, "Science", categories[0].Type)
	assert.Equal(t, "Sports", categories[5].Type)
}
