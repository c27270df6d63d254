package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/domainerr"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
)

// InterviewFilter describes list filtering and pagination options.
type InterviewFilter struct {
	Status        models.InterviewStatus
	InterviewType models.InterviewType
	InterviewerID string
	CandidateID   string
	Position      string
	DateFrom      *time.Time
	DateTo        *time.Time
	Page          int
	PageSize      int
}

// InterviewRepository defines persistence operations for interviews. Schedule
// and Reschedule run their buffered overlap check and the write inside a
// single transaction with the interviewer's calendar locked, so no two
// overlapping interviews can ever be committed for the same interviewer.
type InterviewRepository interface {
	GetByID(ctx context.Context, id string) (models.Interview, error)
	GetByRoomID(ctx context.Context, roomID string) (models.Interview, error)
	List(ctx context.Context, filter InterviewFilter) ([]models.Interview, int64, error)
	Update(ctx context.Context, interview *models.Interview) error
	Schedule(ctx context.Context, interview *models.Interview, bufferMinutes int) error
	Reschedule(ctx context.Context, old *models.Interview, replacement *models.Interview, request *models.RescheduleRequest, bufferMinutes int) error
	CountActiveOnDay(ctx context.Context, interviewerID string, day time.Time) (int64, error)
	ListActiveBetween(ctx context.Context, interviewerID string, from, to time.Time) ([]models.Interview, error)
	RoomIDTaken(ctx context.Context, roomID string) (bool, error)
}

type interviewRepository struct {
	db *gorm.DB
}

// NewInterviewRepository constructs a GORM-backed repository.
func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) GetByID(ctx context.Context, id string) (models.Interview, error) {
	var interview models.Interview
	if err := r.db.WithContext(ctx).First(&interview, "id = ?", id).Error; err != nil {
		return models.Interview{}, err
	}
	return interview, nil
}

func (r *interviewRepository) GetByRoomID(ctx context.Context, roomID string) (models.Interview, error) {
	var interview models.Interview
	if err := r.db.WithContext(ctx).First(&interview, "room_id = ?", roomID).Error; err != nil {
		return models.Interview{}, err
	}
	return interview, nil
}

func (r *interviewRepository) List(ctx context.Context, filter InterviewFilter) ([]models.Interview, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Interview{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.InterviewType != "" {
		query = query.Where("interview_type = ?", filter.InterviewType)
	}
	if filter.InterviewerID != "" {
		query = query.Where("interviewer_id = ?", filter.InterviewerID)
	}
	if filter.CandidateID != "" {
		query = query.Where("candidate_id = ?", filter.CandidateID)
	}
	if filter.Position != "" {
		query = query.Where("LOWER(position) LIKE ?", "%"+strings.ToLower(filter.Position)+"%")
	}
	if filter.DateFrom != nil {
		query = query.Where("scheduled_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("scheduled_at <= ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	var interviews []models.Interview
	if err := query.
		Order("scheduled_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&interviews).Error; err != nil {
		return nil, 0, err
	}

	return interviews, total, nil
}

func (r *interviewRepository) Update(ctx context.Context, interview *models.Interview) error {
	return r.db.WithContext(ctx).Save(interview).Error
}

func (r *interviewRepository) Schedule(ctx context.Context, interview *models.Interview, bufferMinutes int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return insertScheduled(tx, interview, bufferMinutes)
	})
}

// Reschedule finalizes an approved reschedule as one atomic unit: the old row
// flips to rescheduled, the replacement passes the same overlap guard as a
// fresh booking, and the request records its outcome. Any failure rolls back
// all three.
func (r *interviewRepository) Reschedule(ctx context.Context, old *models.Interview, replacement *models.Interview, request *models.RescheduleRequest, bufferMinutes int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The old row leaves the active statuses first so the replacement
		// can land in or near the slot it vacates.
		if err := tx.Save(old).Error; err != nil {
			return err
		}
		if err := insertScheduled(tx, replacement, bufferMinutes); err != nil {
			return err
		}
		return tx.Save(request).Error
	})
}

// insertScheduled locks the interviewer's calendar, re-checks the buffered
// overlap window, and inserts the interview. The conflicting interview id is
// surfaced on rejection so callers can name the booking that won.
func insertScheduled(tx *gorm.DB, interview *models.Interview, bufferMinutes int) error {
	locked := tx
	// SQLite serializes writers on its own and rejects FOR UPDATE syntax; the
	// row lock matters only on postgres where writers run concurrently.
	if tx.Dialector.Name() == "postgres" {
		locked = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var interviewer models.Interviewer
	if err := locked.First(&interviewer, "id = ?", interview.InterviewerID).Error; err != nil {
		return err
	}

	buffer := time.Duration(bufferMinutes) * time.Minute
	windowStart := interview.ScheduledAt.Add(-buffer)
	windowEnd := interview.EndTime.Add(buffer)

	var existing models.Interview
	err := tx.
		Where("interviewer_id = ?", interview.InterviewerID).
		Where("status IN ?", []models.InterviewStatus{models.InterviewStatusScheduled, models.InterviewStatusInProgress}).
		Where("scheduled_at < ? AND end_time > ?", windowEnd, windowStart).
		First(&existing).Error
	if err == nil {
		return domainerr.Conflict("interviewer already booked in the requested window", existing.ID)
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	if interview.ID == "" {
		interview.ID = uuid.NewString()
	}
	return tx.Create(interview).Error
}

func (r *interviewRepository) CountActiveOnDay(ctx context.Context, interviewerID string, day time.Time) (int64, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Interview{}).
		Where("interviewer_id = ?", interviewerID).
		Where("status IN ?", []models.InterviewStatus{models.InterviewStatusScheduled, models.InterviewStatusInProgress}).
		Where("scheduled_at >= ? AND scheduled_at < ?", dayStart, dayEnd).
		Count(&count).Error
	return count, err
}

func (r *interviewRepository) ListActiveBetween(ctx context.Context, interviewerID string, from, to time.Time) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.WithContext(ctx).
		Where("interviewer_id = ?", interviewerID).
		Where("status IN ?", []models.InterviewStatus{models.InterviewStatusScheduled, models.InterviewStatusInProgress}).
		Where("scheduled_at < ? AND end_time > ?", to, from).
		Order("scheduled_at ASC").
		Find(&interviews).Error
	return interviews, err
}

func (r *interviewRepository) RoomIDTaken(ctx context.Context, roomID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Interview{}).
		Where("room_id = ?", roomID).
		Count(&count).Error
	return count > 0, err
}
