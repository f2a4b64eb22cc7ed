package domain

import (
	"context"
	"math/rand"

	"github.com/qs-lzh/fyyur-trivia/internal/model"
	"github.com/qs-lzh/fyyur-trivia/internal/repository"
)

// AllCategories selects questions from every category.
const AllCategories uint = 0

type QuizService interface {
	NextQuestion(ctx context.Context, previousIDs []uint, categoryID uint) (*model.Question, error)
}

type quizService struct {
	repo repository.QuestionRepo
	pick func(n int) int
}

var _ QuizService = (*quizService)(nil)

// NewQuizService builds the quiz picker. pick returns a uniform index in
// [0, n); nil uses math/rand.
func NewQuizService(questionRepo repository.QuestionRepo, pick func(n int) int) *quizService {
	if pick == nil {
		pick = rand.Intn
	}
	return &quizService{
		repo: questionRepo,
		pick: pick,
	}
}

// NextQuestion picks a random question of categoryID that is not in
// previousIDs. It returns nil, nil once every candidate has been served.
func (s *quizService) NextQuestion(ctx context.Context, previousIDs []uint, categoryID uint) (*model.Question, error) {
	candidates, err := s.repo.ListCandidates(ctx, categoryID, previousIDs)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	question := candidates[s.pick(len(candidates))]
	return &question, nil
}
