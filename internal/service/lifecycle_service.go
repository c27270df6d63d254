package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/domainerr"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/dto"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/observability"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/repository"
)

// LifecycleService drives the interview state machine. Every transition is
// checked against the current status before anything is written; a rejected
// transition leaves the row untouched.
type LifecycleService interface {
	RecordJoin(ctx context.Context, actor Actor, interviewID string, party models.Party) (dto.InterviewResponse, error)
	Complete(ctx context.Context, actor Actor, interviewID string, payload dto.InterviewCompleteRequest) (dto.InterviewResponse, error)
	Cancel(ctx context.Context, actor Actor, interviewID string, payload dto.InterviewCancelRequest) (dto.InterviewResponse, error)
	MarkNoShow(ctx context.Context, actor Actor, interviewID string) (dto.InterviewResponse, error)
}

type lifecycleService struct {
	interviews repository.InterviewRepository
	notifier   Notifier
	logger     zerolog.Logger
	now        func() time.Time
}

func NewLifecycleService(interviews repository.InterviewRepository, notifier Notifier, logger zerolog.Logger) LifecycleService {
	return &lifecycleService{
		interviews: interviews,
		notifier:   notifier,
		logger:     logger.With().Str("component", "lifecycle_service").Logger(),
		now:        time.Now,
	}
}

// RecordJoin stamps the party's join time. The first join of either party
// moves the interview from scheduled to in_progress and sets actual_start;
// repeated joins by the same party are idempotent and keep the first stamp.
func (s *lifecycleService) RecordJoin(ctx context.Context, actor Actor, interviewID string, party models.Party) (dto.InterviewResponse, error) {
	interview, err := s.load(ctx, interviewID)
	if err != nil {
		return dto.InterviewResponse{}, err
	}
	if !actor.CanAccessInterview(interview) {
		return dto.InterviewResponse{}, domainerr.ErrForbidden
	}

	if joined := interview.JoinedAt(party); joined != nil {
		return dto.NewInterviewResponse(interview), nil
	}

	if interview.Status != models.InterviewStatusScheduled && interview.Status != models.InterviewStatusInProgress {
		return dto.InterviewResponse{}, s.reject(interview, models.InterviewStatusInProgress)
	}

	now := s.now()
	switch party {
	case models.PartyInterviewer:
		interview.InterviewerJoinedAt = &now
	case models.PartyCandidate:
		interview.CandidateJoinedAt = &now
	default:
		return dto.InterviewResponse{}, domainerr.Validation("party", fmt.Sprintf("unknown party %q", party))
	}

	if interview.Status == models.InterviewStatusScheduled {
		interview.Status = models.InterviewStatusInProgress
		interview.ActualStartTime = &now
	}

	if err := s.interviews.Update(ctx, &interview); err != nil {
		return dto.InterviewResponse{}, err
	}

	s.logger.Info().
		Str("interview_id", interview.ID).
		Str("party", string(party)).
		Msg("join recorded")

	return dto.NewInterviewResponse(interview), nil
}

// Complete closes out an in_progress interview. An admin may pass the
// override flag to complete one still in scheduled, for sessions held
// off-platform.
func (s *lifecycleService) Complete(ctx context.Context, actor Actor, interviewID string, payload dto.InterviewCompleteRequest) (dto.InterviewResponse, error) {
	interview, err := s.load(ctx, interviewID)
	if err != nil {
		return dto.InterviewResponse{}, err
	}
	if !actor.CanRunInterview(interview) {
		return dto.InterviewResponse{}, domainerr.ErrForbidden
	}

	allowed := interview.Status == models.InterviewStatusInProgress
	if payload.Override && actor.IsAdmin() && interview.Status == models.InterviewStatusScheduled {
		allowed = true
	}
	if !allowed {
		return dto.InterviewResponse{}, s.reject(interview, models.InterviewStatusCompleted)
	}

	now := s.now()
	interview.Status = models.InterviewStatusCompleted
	interview.ActualEndTime = &now
	if interview.ActualStartTime == nil {
		// Overrides before the scheduled start must not leave end < start.
		start := interview.ScheduledAt
		if now.Before(start) {
			start = now
		}
		interview.ActualStartTime = &start
	}

	if err := s.interviews.Update(ctx, &interview); err != nil {
		return dto.InterviewResponse{}, err
	}

	s.notifyBoth(ctx, interview, models.NotificationInterviewCompleted, "Interview completed",
		fmt.Sprintf("%s has been completed", interview.Title))

	s.logger.Info().Str("interview_id", interview.ID).Msg("interview completed")
	return dto.NewInterviewResponse(interview), nil
}

func (s *lifecycleService) Cancel(ctx context.Context, actor Actor, interviewID string, payload dto.InterviewCancelRequest) (dto.InterviewResponse, error) {
	interview, err := s.load(ctx, interviewID)
	if err != nil {
		return dto.InterviewResponse{}, err
	}
	if !actor.CanRunInterview(interview) {
		return dto.InterviewResponse{}, domainerr.ErrForbidden
	}

	if interview.Status != models.InterviewStatusScheduled && interview.Status != models.InterviewStatusInProgress {
		return dto.InterviewResponse{}, s.reject(interview, models.InterviewStatusCancelled)
	}

	interview.Status = models.InterviewStatusCancelled
	interview.CancelReason = payload.Reason

	if err := s.interviews.Update(ctx, &interview); err != nil {
		return dto.InterviewResponse{}, err
	}

	s.notifyBoth(ctx, interview, models.NotificationInterviewCancelled, "Interview cancelled",
		fmt.Sprintf("%s has been cancelled", interview.Title))

	s.logger.Info().
		Str("interview_id", interview.ID).
		Str("reason", payload.Reason).
		Msg("interview cancelled")

	return dto.NewInterviewResponse(interview), nil
}

// MarkNoShow flags a scheduled interview that nobody joined once its start
// time has passed.
func (s *lifecycleService) MarkNoShow(ctx context.Context, actor Actor, interviewID string) (dto.InterviewResponse, error) {
	interview, err := s.load(ctx, interviewID)
	if err != nil {
		return dto.InterviewResponse{}, err
	}
	if !actor.CanRunInterview(interview) {
		return dto.InterviewResponse{}, domainerr.ErrForbidden
	}

	if interview.Status != models.InterviewStatusScheduled {
		return dto.InterviewResponse{}, s.reject(interview, models.InterviewStatusNoShow)
	}
	if s.now().Before(interview.ScheduledAt) {
		return dto.InterviewResponse{}, domainerr.Validation("scheduled_at", "interview has not started yet")
	}
	if interview.HasAnyJoin() {
		return dto.InterviewResponse{}, domainerr.Validation("status", "a participant already joined")
	}

	interview.Status = models.InterviewStatusNoShow
	if err := s.interviews.Update(ctx, &interview); err != nil {
		return dto.InterviewResponse{}, err
	}

	s.logger.Info().Str("interview_id", interview.ID).Msg("interview marked no-show")
	return dto.NewInterviewResponse(interview), nil
}

func (s *lifecycleService) load(ctx context.Context, interviewID string) (models.Interview, error) {
	interview, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Interview{}, domainerr.NotFound("interview", interviewID)
		}
		return models.Interview{}, err
	}
	return interview, nil
}

func (s *lifecycleService) reject(interview models.Interview, attempted models.InterviewStatus) error {
	observability.TransitionRejectionsTotal().Inc()
	return domainerr.InvalidTransition("interview", string(interview.Status), string(attempted))
}

func (s *lifecycleService) notifyBoth(ctx context.Context, interview models.Interview, kind, title, message string) {
	data := map[string]interface{}{
		"interview_id": interview.ID,
		"room_id":      interview.RoomID,
	}
	s.notifier.Notify(ctx, interview.InterviewerID, kind, title, message, data)
	s.notifier.Notify(ctx, interview.CandidateID, kind, title, message, data)
}
