package app

import (
	"gorm.io/gorm"

	"github.com/qs-lzh/fyyur-trivia/internal/repository"
)

type repositories struct {
	venues     repository.VenueRepo
	artists    repository.ArtistRepo
	shows      repository.ShowRepo
	categories repository.CategoryRepo
	questions  repository.QuestionRepo
}

func newRepositories(db *gorm.DB) repositories {
	return repositories{
		venues:     repository.NewVenueRepoGorm(db),
		artists:    repository.NewArtistRepoGorm(db),
		shows:      repository.NewShowRepoGorm(db),
		categories: repository.NewCategoryRepoGorm(db),
		questions:  repository.NewQuestionRepoGorm(db),
	}
}
