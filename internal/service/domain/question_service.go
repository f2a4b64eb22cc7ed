package domain

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/qs-lzh/fyyur-trivia/internal/model"
	"github.com/qs-lzh/fyyur-trivia/internal/repository"
	"github.com/qs-lzh/fyyur-trivia/internal/service"
)

const QuestionsPerPage = 10

type QuestionPage struct {
	Questions      []model.Question
	TotalQuestions int64
	Categories     map[uint]string
}

type CategoryQuestions struct {
	Questions       []model.Question
	TotalQuestions  int
	CurrentCategory string
}

type QuestionService interface {
	ListQuestionsPage(ctx context.Context, page int) (*QuestionPage, error)
	GetQuestion(ctx context.Context, id uint) (*model.Question, error)
	CreateQuestion(ctx context.Context, question *model.Question) (uint, error)
	DeleteQuestion(ctx context.Context, id uint) error
	SearchQuestions(ctx context.Context, term string) ([]model.Question, error)
	ListQuestionsByCategory(ctx context.Context, categoryID uint) (*CategoryQuestions, error)
}

type questionService struct {
	db              *gorm.DB
	repo            repository.QuestionRepo
	categoryRepo    repository.CategoryRepo
	categoryService CategoryService
	notifier        ChangeNotifier
}

var _ QuestionService = (*questionService)(nil)

func NewQuestionService(db *gorm.DB, questionRepo repository.QuestionRepo, categoryRepo repository.CategoryRepo, categoryService CategoryService, notifier ChangeNotifier) *questionService {
	return &questionService{
		db:              db,
		repo:            questionRepo,
		categoryRepo:    categoryRepo,
		categoryService: categoryService,
		notifier:        notifierOrNop(notifier),
	}
}

// ListQuestionsPage returns the 1-based page of questions ordered by id. An
// empty page, including page 1 of an empty table, is ErrNotFound.
func (s *questionService) ListQuestionsPage(ctx context.Context, page int) (*QuestionPage, error) {
	if page < 1 {
		return nil, service.ErrInvalidInput
	}
	if page > math.MaxInt32 {
		return nil, service.ErrNotFound
	}

	var (
		questions []model.Question
		total     int64
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		var err error
		if total, err = repo.Count(ctx); err != nil {
			return err
		}
		questions, err = repo.ListPage(ctx, (page-1)*QuestionsPerPage, QuestionsPerPage)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, service.ErrNotFound
	}

	categories, err := s.categoryService.CategoryMap(ctx)
	if err != nil {
		return nil, err
	}
	return &QuestionPage{Questions: questions, TotalQuestions: total, Categories: categories}, nil
}

func (s *questionService) GetQuestion(ctx context.Context, id uint) (*model.Question, error) {
	question, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return question, nil
}

// CreateQuestion requires question, answer, category and difficulty. The
// category must exist.
func (s *questionService) CreateQuestion(ctx context.Context, question *model.Question) (uint, error) {
	if strings.TrimSpace(question.Question) == "" || strings.TrimSpace(question.Answer) == "" ||
		question.Category == 0 || question.Difficulty == 0 {
		return 0, service.ErrInvalidInput
	}

	question.ID = 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.categoryRepo.WithTx(tx).GetByID(ctx, question.Category); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: category %d does not exist", service.ErrMutationFailed, question.Category)
			}
			return mutationFailed(err)
		}
		if err := s.repo.WithTx(tx).Create(ctx, question); err != nil {
			return mutationFailed(err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.notifier.NotifyChange(ctx, EntityQuestion, ActionCreated, question.ID)
	return question.ID, nil
}

func (s *questionService) DeleteQuestion(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.GetByID(ctx, id); err != nil {
			return translateNotFound(err)
		}
		if _, err := repo.Delete(ctx, id); err != nil {
			return mutationFailed(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.notifier.NotifyChange(ctx, EntityQuestion, ActionDeleted, id)
	return nil
}

// SearchQuestions rejects an empty term and reports zero matches as ErrNotFound.
func (s *questionService) SearchQuestions(ctx context.Context, term string) ([]model.Question, error) {
	if term == "" {
		return nil, service.ErrInvalidInput
	}
	questions, err := s.repo.SearchByQuestion(ctx, term)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, service.ErrNotFound
	}
	return questions, nil
}

func (s *questionService) ListQuestionsByCategory(ctx context.Context, categoryID uint) (*CategoryQuestions, error) {
	var result *CategoryQuestions
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := s.categoryRepo.WithTx(tx).GetByID(ctx, categoryID)
		if err != nil {
			return translateNotFound(err)
		}
		questions, err := s.repo.WithTx(tx).ListByCategory(ctx, categoryID)
		if err != nil {
			return err
		}
		result = &CategoryQuestions{
			Questions:       questions,
			TotalQuestions:  len(questions),
			CurrentCategory: category.Type,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
