package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
)

// AvailabilityRepository persists the single availability record per
// interviewer. Upsert replaces the whole record (latest write wins).
type AvailabilityRepository interface {
	Upsert(ctx context.Context, availability *models.InterviewerAvailability) error
	GetByInterviewer(ctx context.Context, interviewerID string) (models.InterviewerAvailability, error)
}

type availabilityRepository struct {
	db *gorm.DB
}

// NewAvailabilityRepository constructs a GORM-backed repository.
func NewAvailabilityRepository(db *gorm.DB) AvailabilityRepository {
	return &availabilityRepository{db: db}
}

func (r *availabilityRepository) Upsert(ctx context.Context, availability *models.InterviewerAvailability) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "interviewer_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"weekdays", "day_start", "day_end", "buffer_minutes",
				"max_per_day", "blackout_dates", "updated_at",
			}),
		}).
		Create(availability).Error
}

func (r *availabilityRepository) GetByInterviewer(ctx context.Context, interviewerID string) (models.InterviewerAvailability, error) {
	var availability models.InterviewerAvailability
	if err := r.db.WithContext(ctx).First(&availability, "interviewer_id = ?", interviewerID).Error; err != nil {
		return models.InterviewerAvailability{}, err
	}
	return availability, nil
}
