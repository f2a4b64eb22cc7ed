package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/qs-lzh/fyyur-trivia/internal/model"
)

const sqlitePrefix = "sqlite://"

// Open connects to postgres, or to a SQLite file when dsn starts with sqlite://.
func Open(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if path, ok := strings.CutPrefix(dsn, sqlitePrefix); ok {
		dialector = sqlite.Open(path)
	} else {
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func MigrateFyyur(db *gorm.DB) error {
	return db.AutoMigrate(&model.Venue{}, &model.Artist{}, &model.Show{})
}

func MigrateTrivia(db *gorm.DB) error {
	return db.AutoMigrate(&model.Category{}, &model.Question{})
}

var defaultCategories = []string{"Science", "Art", "Geography", "History", "Entertainment", "Sports"}

// SeedTriviaCategories inserts the default categories into an empty table.
func SeedTriviaCategories(ctx context.Context, db *gorm.DB) (int, error) {
	count, err := gorm.G[model.Category](db).Count(ctx, "*")
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	categories := make([]model.Category, 0, len(defaultCategories))
	for _, name := range defaultCategories {
		categories = append(categories, model.Category{Type: name})
	}
	if err := gorm.G[model.Category](db).CreateInBatches(ctx, &categories, len(categories)); err != nil {
		return 0, err
	}
	return len(categories), nil
}
