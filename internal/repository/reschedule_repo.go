package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
)

// RescheduleRepository persists reschedule negotiation requests. Approval is
// finalized through InterviewRepository.Reschedule so the request outcome and
// the interview swap commit together; this repository covers the rest.
type RescheduleRepository interface {
	Create(ctx context.Context, request *models.RescheduleRequest) error
	GetByID(ctx context.Context, id string) (models.RescheduleRequest, error)
	Update(ctx context.Context, request *models.RescheduleRequest) error
	ListByInterview(ctx context.Context, interviewID string) ([]models.RescheduleRequest, error)
}

type rescheduleRepository struct {
	db *gorm.DB
}

// NewRescheduleRepository constructs a GORM-backed repository.
func NewRescheduleRepository(db *gorm.DB) RescheduleRepository {
	return &rescheduleRepository{db: db}
}

func (r *rescheduleRepository) Create(ctx context.Context, request *models.RescheduleRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *rescheduleRepository) GetByID(ctx context.Context, id string) (models.RescheduleRequest, error) {
	var request models.RescheduleRequest
	if err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		return models.RescheduleRequest{}, err
	}
	return request, nil
}

func (r *rescheduleRepository) Update(ctx context.Context, request *models.RescheduleRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *rescheduleRepository) ListByInterview(ctx context.Context, interviewID string) ([]models.RescheduleRequest, error) {
	var requests []models.RescheduleRequest
	if err := r.db.WithContext(ctx).
		Where("interview_id = ?", interviewID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
