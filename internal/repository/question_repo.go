package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/qs-lzh/fyyur-trivia/internal/model"
)

type QuestionRepo interface {
	WithTx(tx *gorm.DB) QuestionRepo
	Create(ctx context.Context, question *model.Question) error
	Delete(ctx context.Context, id uint) (int, error)
	GetByID(ctx context.Context, id uint) (*model.Question, error)
	Count(ctx context.Context) (int64, error)
	ListPage(ctx context.Context, offset, limit int) ([]model.Question, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]model.Question, error)
	SearchByQuestion(ctx context.Context, term string) ([]model.Question, error)
	ListCandidates(ctx context.Context, categoryID uint, excludeIDs []uint) ([]model.Question, error)
}

type questionRepoGorm struct {
	db *gorm.DB
}

var _ QuestionRepo = (*questionRepoGorm)(nil)

func NewQuestionRepoGorm(db *gorm.DB) *questionRepoGorm {
	return &questionRepoGorm{
		db: db,
	}
}

func (r *questionRepoGorm) WithTx(tx *gorm.DB) QuestionRepo {
	return &questionRepoGorm{
		db: tx,
	}
}

func (r *questionRepoGorm) Create(ctx context.Context, question *model.Question) error {
	return gorm.G[model.Question](r.db).Create(ctx, question)
}

func (r *questionRepoGorm) Delete(ctx context.Context, id uint) (int, error) {
	return gorm.G[model.Question](r.db).Where("id = ?", id).Delete(ctx)
}

func (r *questionRepoGorm) GetByID(ctx context.Context, id uint) (*model.Question, error) {
	question, err := gorm.G[model.Question](r.db).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepoGorm) Count(ctx context.Context) (int64, error) {
	return gorm.G[model.Question](r.db).Count(ctx, "*")
}

// ListPage returns questions ordered by id within [offset, offset+limit).
func (r *questionRepoGorm) ListPage(ctx context.Context, offset, limit int) ([]model.Question, error) {
	return gorm.G[model.Question](r.db).Order("id").Offset(offset).Limit(limit).Find(ctx)
}

func (r *questionRepoGorm) ListByCategory(ctx context.Context, categoryID uint) ([]model.Question, error) {
	return gorm.G[model.Question](r.db).Where("category = ?", categoryID).Order("id").Find(ctx)
}

func (r *questionRepoGorm) SearchByQuestion(ctx context.Context, term string) ([]model.Question, error) {
	return gorm.G[model.Question](r.db).Where(ilike(r.db, "question"), containsPattern(term)).Order("id").Find(ctx)
}

// ListCandidates returns the quiz pool: questions of categoryID (0 means every
// category) whose id is not in excludeIDs.
func (r *questionRepoGorm) ListCandidates(ctx context.Context, categoryID uint, excludeIDs []uint) ([]model.Question, error) {
	q := gorm.G[model.Question](r.db).Order("id")
	if categoryID != 0 {
		q = q.Where("category = ?", categoryID)
	}
	// NOT IN () would render as NOT IN (NULL) and match nothing
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	return q.Find(ctx)
}
