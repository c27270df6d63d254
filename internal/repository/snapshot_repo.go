package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
)

// SnapshotRepository persists the append-only code and whiteboard captures.
// There are no update or delete operations: snapshots are immutable history.
type SnapshotRepository interface {
	CreateCode(ctx context.Context, snapshot *models.CodeSnapshot) error
	CreateWhiteboard(ctx context.Context, snapshot *models.WhiteboardSnapshot) error
	ListCodeByInterview(ctx context.Context, interviewID string) ([]models.CodeSnapshot, error)
	ListWhiteboardByInterview(ctx context.Context, interviewID string) ([]models.WhiteboardSnapshot, error)
}

type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository constructs a GORM-backed repository.
func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) CreateCode(ctx context.Context, snapshot *models.CodeSnapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

func (r *snapshotRepository) CreateWhiteboard(ctx context.Context, snapshot *models.WhiteboardSnapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

func (r *snapshotRepository) ListCodeByInterview(ctx context.Context, interviewID string) ([]models.CodeSnapshot, error) {
	var snapshots []models.CodeSnapshot
	if err := r.db.WithContext(ctx).
		Where("interview_id = ?", interviewID).
		Order("captured_at ASC").
		Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (r *snapshotRepository) ListWhiteboardByInterview(ctx context.Context, interviewID string) ([]models.WhiteboardSnapshot, error) {
	var snapshots []models.WhiteboardSnapshot
	if err := r.db.WithContext(ctx).
		Where("interview_id = ?", interviewID).
		Order("captured_at ASC").
		Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}
