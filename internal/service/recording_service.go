package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/domainerr"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/dto"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/observability"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/repository"
)

// RecordingService runs the recording state machine: recording → processing →
// completed, with failed reachable from the two active states. An interview
// holds at most one active recording at a time.
type RecordingService interface {
	Start(ctx context.Context, actor Actor, interviewID string) (dto.RecordingResponse, error)
	Stop(ctx context.Context, actor Actor, interviewID string) (dto.RecordingResponse, error)
	FinishProcessing(ctx context.Context, recordingID string, payload dto.RecordingFinishRequest) (dto.RecordingResponse, error)
	MarkFailed(ctx context.Context, recordingID string, payload dto.RecordingFailRequest) (dto.RecordingResponse, error)
	ListByInterview(ctx context.Context, actor Actor, interviewID string) ([]dto.RecordingResponse, error)
}

type recordingService struct {
	recordings repository.RecordingRepository
	interviews repository.InterviewRepository
	validator  *validator.Validate
	logger     zerolog.Logger
	now        func() time.Time
}

func NewRecordingService(recordings repository.RecordingRepository, interviews repository.InterviewRepository, validate *validator.Validate, logger zerolog.Logger) RecordingService {
	return &recordingService{
		recordings: recordings,
		interviews: interviews,
		validator:  validate,
		logger:     logger.With().Str("component", "recording_service").Logger(),
		now:        time.Now,
	}
}

func (s *recordingService) Start(ctx context.Context, actor Actor, interviewID string) (dto.RecordingResponse, error) {
	interview, err := s.loadInterview(ctx, interviewID)
	if err != nil {
		return dto.RecordingResponse{}, err
	}
	if !actor.CanRunInterview(interview) {
		return dto.RecordingResponse{}, domainerr.ErrForbidden
	}
	if !interview.RecordingEnabled {
		return dto.RecordingResponse{}, domainerr.Validation("recording", "recording is disabled for this interview")
	}
	if interview.Status != models.InterviewStatusInProgress {
		return dto.RecordingResponse{}, domainerr.InvalidTransition("interview", string(interview.Status), string(models.RecordingStatusRecording))
	}

	active, err := s.recordings.FindActiveByInterview(ctx, interviewID)
	if err == nil {
		return dto.RecordingResponse{}, domainerr.Conflict("a recording is already active for this interview", active.ID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.RecordingResponse{}, err
	}

	recording := models.Recording{
		ID:          uuid.NewString(),
		InterviewID: interviewID,
		Status:      models.RecordingStatusRecording,
		StartedBy:   actor.ID,
		StartedAt:   s.now(),
	}
	if err := s.recordings.Create(ctx, &recording); err != nil {
		return dto.RecordingResponse{}, err
	}

	s.logger.Info().
		Str("recording_id", recording.ID).
		Str("interview_id", interviewID).
		Msg("recording started")

	return dto.NewRecordingResponse(recording), nil
}

func (s *recordingService) Stop(ctx context.Context, actor Actor, interviewID string) (dto.RecordingResponse, error) {
	interview, err := s.loadInterview(ctx, interviewID)
	if err != nil {
		return dto.RecordingResponse{}, err
	}
	if !actor.CanRunInterview(interview) {
		return dto.RecordingResponse{}, domainerr.ErrForbidden
	}

	recording, err := s.recordings.FindActiveByInterview(ctx, interviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RecordingResponse{}, domainerr.NotFound("active recording for interview", interviewID)
		}
		return dto.RecordingResponse{}, err
	}
	if recording.Status != models.RecordingStatusRecording {
		return dto.RecordingResponse{}, s.reject(recording, models.RecordingStatusProcessing)
	}

	now := s.now()
	recording.Status = models.RecordingStatusProcessing
	recording.EndedAt = &now
	if err := s.recordings.Update(ctx, &recording); err != nil {
		return dto.RecordingResponse{}, err
	}

	s.logger.Info().Str("recording_id", recording.ID).Msg("recording stopped, processing")
	return dto.NewRecordingResponse(recording), nil
}

// FinishProcessing is called by the media pipeline once the artifact has been
// processed and stored; it carries no actor because the caller authenticates
// as a service.
func (s *recordingService) FinishProcessing(ctx context.Context, recordingID string, payload dto.RecordingFinishRequest) (dto.RecordingResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RecordingResponse{}, err
	}

	recording, err := s.loadRecording(ctx, recordingID)
	if err != nil {
		return dto.RecordingResponse{}, err
	}
	if recording.Status != models.RecordingStatusProcessing {
		return dto.RecordingResponse{}, s.reject(recording, models.RecordingStatusCompleted)
	}

	recording.Status = models.RecordingStatusCompleted
	recording.VideoURL = payload.VideoURL
	recording.DurationSeconds = payload.DurationSeconds
	recording.FileSizeBytes = payload.FileSizeBytes
	if err := s.recordings.Update(ctx, &recording); err != nil {
		return dto.RecordingResponse{}, err
	}

	s.logger.Info().
		Str("recording_id", recording.ID).
		Int("duration_seconds", payload.DurationSeconds).
		Msg("recording completed")

	return dto.NewRecordingResponse(recording), nil
}

func (s *recordingService) MarkFailed(ctx context.Context, recordingID string, payload dto.RecordingFailRequest) (dto.RecordingResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RecordingResponse{}, err
	}

	recording, err := s.loadRecording(ctx, recordingID)
	if err != nil {
		return dto.RecordingResponse{}, err
	}
	if !recording.Status.Active() {
		return dto.RecordingResponse{}, s.reject(recording, models.RecordingStatusFailed)
	}

	now := s.now()
	recording.Status = models.RecordingStatusFailed
	recording.FailureReason = payload.Reason
	if recording.EndedAt == nil {
		recording.EndedAt = &now
	}
	if err := s.recordings.Update(ctx, &recording); err != nil {
		return dto.RecordingResponse{}, err
	}

	s.logger.Warn().
		Str("recording_id", recording.ID).
		Str("reason", payload.Reason).
		Msg("recording failed")

	return dto.NewRecordingResponse(recording), nil
}

func (s *recordingService) ListByInterview(ctx context.Context, actor Actor, interviewID string) ([]dto.RecordingResponse, error) {
	interview, err := s.loadInterview(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if !actor.CanRunInterview(interview) {
		return nil, domainerr.ErrForbidden
	}

	recordings, err := s.recordings.ListByInterview(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	return dto.NewRecordingResponseSlice(recordings), nil
}

func (s *recordingService) loadInterview(ctx context.Context, interviewID string) (models.Interview, error) {
	interview, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Interview{}, domainerr.NotFound("interview", interviewID)
		}
		return models.Interview{}, err
	}
	return interview, nil
}

func (s *recordingService) loadRecording(ctx context.Context, recordingID string) (models.Recording, error) {
	recording, err := s.recordings.GetByID(ctx, recordingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Recording{}, domainerr.NotFound("recording", recordingID)
		}
		return models.Recording{}, err
	}
	return recording, nil
}

func (s *recordingService) reject(recording models.Recording, attempted models.RecordingStatus) error {
	observability.TransitionRejectionsTotal().Inc()
	return domainerr.InvalidTransition("recording", string(recording.Status), string(attempted))
}
