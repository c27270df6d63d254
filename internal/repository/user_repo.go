package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
)

// InterviewerRepository resolves interviewer reference records.
type InterviewerRepository interface {
	GetByID(ctx context.Context, id string) (models.Interviewer, error)
	List(ctx context.Context) ([]models.Interviewer, error)
	Create(ctx context.Context, interviewer *models.Interviewer) error
}

type interviewerRepository struct {
	db *gorm.DB
}

// NewInterviewerRepository constructs a GORM-backed repository.
func NewInterviewerRepository(db *gorm.DB) InterviewerRepository {
	return &interviewerRepository{db: db}
}

func (r *interviewerRepository) GetByID(ctx context.Context, id string) (models.Interviewer, error) {
	var interviewer models.Interviewer
	if err := r.db.WithContext(ctx).First(&interviewer, "id = ?", id).Error; err != nil {
		return models.Interviewer{}, err
	}
	return interviewer, nil
}

func (r *interviewerRepository) List(ctx context.Context) ([]models.Interviewer, error) {
	var interviewers []models.Interviewer
	if err := r.db.WithContext(ctx).Order("full_name ASC").Find(&interviewers).Error; err != nil {
		return nil, err
	}
	return interviewers, nil
}

func (r *interviewerRepository) Create(ctx context.Context, interviewer *models.Interviewer) error {
	return r.db.WithContext(ctx).Create(interviewer).Error
}

// CandidateRepository resolves candidate reference records. FindByEmail backs
// the bulk scheduling flow, which creates candidates it has not seen before.
type CandidateRepository interface {
	GetByID(ctx context.Context, id string) (models.Candidate, error)
	FindByEmail(ctx context.Context, email string) (models.Candidate, error)
	Create(ctx context.Context, candidate *models.Candidate) error
}

type candidateRepository struct {
	db *gorm.DB
}

// NewCandidateRepository constructs a GORM-backed repository.
func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) GetByID(ctx context.Context, id string) (models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.WithContext(ctx).First(&candidate, "id = ?", id).Error; err != nil {
		return models.Candidate{}, err
	}
	return candidate, nil
}

func (r *candidateRepository) FindByEmail(ctx context.Context, email string) (models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.WithContext(ctx).First(&candidate, "email = ?", email).Error; err != nil {
		return models.Candidate{}, err
	}
	return candidate, nil
}

func (r *candidateRepository) Create(ctx context.Context, candidate *models.Candidate) error {
	return r.db.WithContext(ctx).Create(candidate).Error
}
