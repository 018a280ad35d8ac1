package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/gema-writing-api/internal/models"
)

// EvaluationFilter narrows evaluation history queries.
type EvaluationFilter struct {
	StudentID uint
	TopicSlug string
	Page      int
	PageSize  int
}

// EvaluationRepository exposes persistence helpers for scored submissions.
type EvaluationRepository interface {
	Create(ctx context.Context, evaluation *models.Evaluation) error
	GetByID(ctx context.Context, id uint) (models.Evaluation, error)
	List(ctx context.Context, filter EvaluationFilter) ([]models.Evaluation, int64, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository constructs an evaluation repository.
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) Create(ctx context.Context, evaluation *models.Evaluation) error {
	return r.db.WithContext(ctx).Create(evaluation).Error
}

func (r *evaluationRepository) GetByID(ctx context.Context, id uint) (models.Evaluation, error) {
	var evaluation models.Evaluation
	if err := r.db.WithContext(ctx).First(&evaluation, id).Error; err != nil {
		return models.Evaluation{}, err
	}
	return evaluation, nil
}

func (r *evaluationRepository) List(ctx context.Context, filter EvaluationFilter) ([]models.Evaluation, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Evaluation{})
	if filter.StudentID != 0 {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if filter.TopicSlug != "" {
		query = query.Where("topic_slug = ?", filter.TopicSlug)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var evaluations []models.Evaluation
	if err := query.Order("created_at DESC").Order("id DESC").Find(&evaluations).Error; err != nil {
		return nil, 0, err
	}

	return evaluations, total, nil
}
