package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
)

// RecordingRepository persists recording lifecycle records.
type RecordingRepository interface {
	Create(ctx context.Context, recording *models.Recording) error
	GetByID(ctx context.Context, id string) (models.Recording, error)
	FindActiveByInterview(ctx context.Context, interviewID string) (models.Recording, error)
	Update(ctx context.Context, recording *models.Recording) error
	ListByInterview(ctx context.Context, interviewID string) ([]models.Recording, error)
}

type recordingRepository struct {
	db *gorm.DB
}

// NewRecordingRepository constructs a GORM-backed repository.
func NewRecordingRepository(db *gorm.DB) RecordingRepository {
	return &recordingRepository{db: db}
}

func (r *recordingRepository) Create(ctx context.Context, recording *models.Recording) error {
	return r.db.WithContext(ctx).Create(recording).Error
}

func (r *recordingRepository) GetByID(ctx context.Context, id string) (models.Recording, error) {
	var recording models.Recording
	if err := r.db.WithContext(ctx).First(&recording, "id = ?", id).Error; err != nil {
		return models.Recording{}, err
	}
	return recording, nil
}

// FindActiveByInterview returns the recording currently holding the
// interview's single active slot, or gorm.ErrRecordNotFound when none does.
func (r *recordingRepository) FindActiveByInterview(ctx context.Context, interviewID string) (models.Recording, error) {
	var recording models.Recording
	err := r.db.WithContext(ctx).
		Where("interview_id = ?", interviewID).
		Where("status IN ?", []models.RecordingStatus{models.RecordingStatusRecording, models.RecordingStatusProcessing}).
		First(&recording).Error
	if err != nil {
		return models.Recording{}, err
	}
	return recording, nil
}

func (r *recordingRepository) Update(ctx context.Context, recording *models.Recording) error {
	return r.db.WithContext(ctx).Save(recording).Error
}

func (r *recordingRepository) ListByInterview(ctx context.Context, interviewID string) ([]models.Recording, error) {
	var recordings []models.Recording
	if err := r.db.WithContext(ctx).
		Where("interview_id = ?", interviewID).
		Order("started_at DESC").
		Find(&recordings).Error; err != nil {
		return nil, err
	}
	return recordings, nil
}
