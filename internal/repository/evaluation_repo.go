package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
)

// EvaluationRepository persists evaluations keyed by (interview, evaluator).
type EvaluationRepository interface {
	Upsert(ctx context.Context, evaluation *models.Evaluation) error
	GetByInterviewAndEvaluator(ctx context.Context, interviewID, evaluatorID string) (models.Evaluation, error)
	ListByInterview(ctx context.Context, interviewID string) ([]models.Evaluation, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository constructs a GORM-backed repository.
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

// Upsert inserts or, when the (interview, evaluator) pair already has a row,
// updates it in place. Re-submission never duplicates.
func (r *evaluationRepository) Upsert(ctx context.Context, evaluation *models.Evaluation) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "interview_id"}, {Name: "evaluator_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"technical_skills", "problem_solving", "communication", "cultural_fit",
				"overall_rating", "recommendation", "strengths", "weaknesses",
				"detailed_feedback", "notes", "custom_ratings", "updated_at",
			}),
		}).
		Create(evaluation).Error
}

func (r *evaluationRepository) GetByInterviewAndEvaluator(ctx context.Context, interviewID, evaluatorID string) (models.Evaluation, error) {
	var evaluation models.Evaluation
	if err := r.db.WithContext(ctx).
		First(&evaluation, "interview_id = ? AND evaluator_id = ?", interviewID, evaluatorID).Error; err != nil {
		return models.Evaluation{}, err
	}
	return evaluation, nil
}

func (r *evaluationRepository) ListByInterview(ctx context.Context, interviewID string) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	if err := r.db.WithContext(ctx).
		Where("interview_id = ?", interviewID).
		Order("submitted_at ASC").
		Find(&evaluations).Error; err != nil {
		return nil, err
	}
	return evaluations, nil
}
