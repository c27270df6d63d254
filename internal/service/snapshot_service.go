package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/domainerr"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/dto"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/repository"
)

// SnapshotService captures code editor and whiteboard state during a live
// interview. Captures are append-only; there is no edit or delete.
type SnapshotService interface {
	SaveCode(ctx context.Context, actor Actor, interviewID string, payload dto.CodeSnapshotCreateRequest) (dto.CodeSnapshotResponse, error)
	SaveWhiteboard(ctx context.Context, actor Actor, interviewID string, payload dto.WhiteboardSnapshotCreateRequest) (dto.WhiteboardSnapshotResponse, error)
	ListCode(ctx context.Context, actor Actor, interviewID string) ([]dto.CodeSnapshotResponse, error)
	ListWhiteboard(ctx context.Context, actor Actor, interviewID string) ([]dto.WhiteboardSnapshotResponse, error)
}

type snapshotService struct {
	snapshots  repository.SnapshotRepository
	interviews repository.InterviewRepository
	validator  *validator.Validate
	logger     zerolog.Logger
	now        func() time.Time
}

func NewSnapshotService(snapshots repository.SnapshotRepository, interviews repository.InterviewRepository, validate *validator.Validate, logger zerolog.Logger) SnapshotService {
	return &snapshotService{
		snapshots:  snapshots,
		interviews: interviews,
		validator:  validate,
		logger:     logger.With().Str("component", "snapshot_service").Logger(),
		now:        time.Now,
	}
}

func (s *snapshotService) SaveCode(ctx context.Context, actor Actor, interviewID string, payload dto.CodeSnapshotCreateRequest) (dto.CodeSnapshotResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CodeSnapshotResponse{}, err
	}

	interview, err := s.loadLive(ctx, actor, interviewID, "code_editor")
	if err != nil {
		return dto.CodeSnapshotResponse{}, err
	}

	capturedAt, err := s.capturedAt(payload.CapturedAt)
	if err != nil {
		return dto.CodeSnapshotResponse{}, err
	}

	snapshot := models.CodeSnapshot{
		ID:          uuid.NewString(),
		InterviewID: interview.ID,
		AuthorID:    actor.ID,
		Language:    payload.Language,
		Code:        payload.Code,
		CapturedAt:  capturedAt,
	}
	if err := s.snapshots.CreateCode(ctx, &snapshot); err != nil {
		return dto.CodeSnapshotResponse{}, err
	}

	return dto.NewCodeSnapshotResponse(snapshot), nil
}

func (s *snapshotService) SaveWhiteboard(ctx context.Context, actor Actor, interviewID string, payload dto.WhiteboardSnapshotCreateRequest) (dto.WhiteboardSnapshotResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.WhiteboardSnapshotResponse{}, err
	}

	interview, err := s.loadLive(ctx, actor, interviewID, "whiteboard")
	if err != nil {
		return dto.WhiteboardSnapshotResponse{}, err
	}

	capturedAt, err := s.capturedAt(payload.CapturedAt)
	if err != nil {
		return dto.WhiteboardSnapshotResponse{}, err
	}

	snapshot := models.WhiteboardSnapshot{
		ID:          uuid.NewString(),
		InterviewID: interview.ID,
		AuthorID:    actor.ID,
		CanvasData:  datatypes.JSONMap(payload.CanvasData),
		ImageURL:    payload.ImageURL,
		CapturedAt:  capturedAt,
	}
	if err := s.snapshots.CreateWhiteboard(ctx, &snapshot); err != nil {
		return dto.WhiteboardSnapshotResponse{}, err
	}

	return dto.NewWhiteboardSnapshotResponse(snapshot), nil
}

func (s *snapshotService) ListCode(ctx context.Context, actor Actor, interviewID string) ([]dto.CodeSnapshotResponse, error) {
	if err := s.authorizeRead(ctx, actor, interviewID); err != nil {
		return nil, err
	}
	snapshots, err := s.snapshots.ListCodeByInterview(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	return dto.NewCodeSnapshotResponseSlice(snapshots), nil
}

func (s *snapshotService) ListWhiteboard(ctx context.Context, actor Actor, interviewID string) ([]dto.WhiteboardSnapshotResponse, error) {
	if err := s.authorizeRead(ctx, actor, interviewID); err != nil {
		return nil, err
	}
	snapshots, err := s.snapshots.ListWhiteboardByInterview(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	return dto.NewWhiteboardSnapshotResponseSlice(snapshots), nil
}

// loadLive authorizes a capture: the actor must be a participant, the tool
// must be enabled for the interview, and the session must be running.
func (s *snapshotService) loadLive(ctx context.Context, actor Actor, interviewID, tool string) (models.Interview, error) {
	interview, err := s.load(ctx, interviewID)
	if err != nil {
		return models.Interview{}, err
	}
	if !actor.CanAccessInterview(interview) {
		return models.Interview{}, domainerr.ErrForbidden
	}

	switch tool {
	case "code_editor":
		if !interview.CodeEditorEnabled {
			return models.Interview{}, domainerr.Validation(tool, "code editor is disabled for this interview")
		}
	case "whiteboard":
		if !interview.WhiteboardEnabled {
			return models.Interview{}, domainerr.Validation(tool, "whiteboard is disabled for this interview")
		}
	}

	if interview.Status != models.InterviewStatusInProgress {
		return models.Interview{}, domainerr.Validation("status", "interview is not in progress")
	}
	return interview, nil
}

func (s *snapshotService) authorizeRead(ctx context.Context, actor Actor, interviewID string) error {
	interview, err := s.load(ctx, interviewID)
	if err != nil {
		return err
	}
	if !actor.CanAccessInterview(interview) {
		return domainerr.ErrForbidden
	}
	return nil
}

func (s *snapshotService) load(ctx context.Context, interviewID string) (models.Interview, error) {
	interview, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Interview{}, domainerr.NotFound("interview", interviewID)
		}
		return models.Interview{}, err
	}
	return interview, nil
}

func (s *snapshotService) capturedAt(raw string) (time.Time, error) {
	if raw == "" {
		return s.now(), nil
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, domainerr.Validation("captured_at", err.Error())
	}
	return at, nil
}
