package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/domainerr"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/dto"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/observability"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/repository"
)

// RescheduleService runs the reschedule negotiation: a participant proposes
// alternative times, an admin or the interviewer resolves. Approval swaps the
// interview atomically; the old row survives as an audit record in status
// rescheduled and the replacement keeps the round number under a fresh room.
type RescheduleService interface {
	Request(ctx context.Context, actor Actor, interviewID string, payload dto.RescheduleCreateRequest) (dto.RescheduleResponse, error)
	Resolve(ctx context.Context, actor Actor, requestID string, payload dto.RescheduleResolveRequest) (dto.RescheduleResponse, error)
	ListByInterview(ctx context.Context, actor Actor, interviewID string) ([]dto.RescheduleResponse, error)
}

type rescheduleService struct {
	requests     repository.RescheduleRepository
	interviews   repository.InterviewRepository
	availability AvailabilityService
	notifier     Notifier
	redis        *redis.Client
	validator    *validator.Validate
	sanitizer    *bluemonday.Policy
	logger       zerolog.Logger
	graceWindow  time.Duration
	now          func() time.Time
}

func NewRescheduleService(requests repository.RescheduleRepository, interviews repository.InterviewRepository, availability AvailabilityService, notifier Notifier, redisClient *redis.Client, validate *validator.Validate, graceWindow time.Duration, logger zerolog.Logger) RescheduleService {
	return &rescheduleService{
		requests:     requests,
		interviews:   interviews,
		availability: availability,
		notifier:     notifier,
		redis:        redisClient,
		validator:    validate,
		sanitizer:    bluemonday.StrictPolicy(),
		logger:       logger.With().Str("component", "reschedule_service").Logger(),
		graceWindow:  graceWindow,
		now:          time.Now,
	}
}

func (s *rescheduleService) Request(ctx context.Context, actor Actor, interviewID string, payload dto.RescheduleCreateRequest) (dto.RescheduleResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RescheduleResponse{}, err
	}

	interview, err := s.loadInterview(ctx, interviewID)
	if err != nil {
		return dto.RescheduleResponse{}, err
	}
	if !actor.CanAccessInterview(interview) {
		return dto.RescheduleResponse{}, domainerr.ErrForbidden
	}
	if interview.Status != models.InterviewStatusScheduled {
		return dto.RescheduleResponse{}, domainerr.InvalidTransition("interview", string(interview.Status), string(models.InterviewStatusRescheduled))
	}

	// One open negotiation at a time per interview.
	existing, err := s.requests.ListByInterview(ctx, interview.ID)
	if err != nil {
		return dto.RescheduleResponse{}, err
	}
	for _, prior := range existing {
		if prior.Status == models.RescheduleStatusPending {
			return dto.RescheduleResponse{}, domainerr.Conflict("a reschedule request is already pending", prior.ID)
		}
	}

	earliest := s.now().Add(s.graceWindow)
	proposed := make([]time.Time, 0, len(payload.ProposedTimes))
	for _, raw := range payload.ProposedTimes {
		at, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return dto.RescheduleResponse{}, domainerr.Validation("proposed_times", err.Error())
		}
		if at.Before(earliest) {
			return dto.RescheduleResponse{}, domainerr.Validation("proposed_times", fmt.Sprintf("%s is not at least %s in the future", raw, s.graceWindow))
		}
		proposed = append(proposed, at)
	}

	reason := strings.TrimSpace(s.sanitizer.Sanitize(payload.Reason))
	if reason == "" {
		return dto.RescheduleResponse{}, domainerr.Validation("reason", "empty after sanitization")
	}

	request := models.RescheduleRequest{
		ID:            uuid.NewString(),
		InterviewID:   interview.ID,
		RequestedBy:   actor.ID,
		Reason:        reason,
		ProposedTimes: datatypes.NewJSONSlice(proposed),
		Status:        models.RescheduleStatusPending,
	}
	if err := s.requests.Create(ctx, &request); err != nil {
		return dto.RescheduleResponse{}, err
	}

	s.notifyCounterpart(ctx, actor, interview, models.NotificationRescheduleRequested,
		"Reschedule requested", fmt.Sprintf("A reschedule was requested for %s", interview.Title),
		map[string]interface{}{"interview_id": interview.ID, "request_id": request.ID})

	s.logger.Info().
		Str("request_id", request.ID).
		Str("interview_id", interview.ID).
		Int("proposed", len(proposed)).
		Msg("reschedule requested")

	return dto.NewRescheduleResponse(request), nil
}

func (s *rescheduleService) Resolve(ctx context.Context, actor Actor, requestID string, payload dto.RescheduleResolveRequest) (dto.RescheduleResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RescheduleResponse{}, err
	}

	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RescheduleResponse{}, domainerr.NotFound("reschedule request", requestID)
		}
		return dto.RescheduleResponse{}, err
	}
	if request.Resolved() {
		return dto.RescheduleResponse{}, domainerr.ErrAlreadyResolved
	}

	interview, err := s.loadInterview(ctx, request.InterviewID)
	if err != nil {
		return dto.RescheduleResponse{}, err
	}
	if !actor.CanRunInterview(interview) {
		return dto.RescheduleResponse{}, domainerr.ErrForbidden
	}

	if payload.Decision == "rejected" {
		return s.reject(ctx, actor, request, interview)
	}
	return s.approve(ctx, actor, request, interview, payload.ChosenTime)
}

func (s *rescheduleService) reject(ctx context.Context, actor Actor, request models.RescheduleRequest, interview models.Interview) (dto.RescheduleResponse, error) {
	now := s.now()
	request.Status = models.RescheduleStatusRejected
	request.ResolvedAt = &now
	request.ResolvedBy = actor.ID
	if err := s.requests.Update(ctx, &request); err != nil {
		return dto.RescheduleResponse{}, err
	}

	s.notifier.Notify(ctx, request.RequestedBy, models.NotificationInterviewRescheduled,
		"Reschedule rejected", fmt.Sprintf("The reschedule request for %s was rejected", interview.Title),
		map[string]interface{}{"interview_id": interview.ID, "request_id": request.ID})

	s.logger.Info().Str("request_id", request.ID).Msg("reschedule rejected")
	return dto.NewRescheduleResponse(request), nil
}

// approve re-validates the chosen time against the full availability rules
// (with the outgoing interview excluded) and commits the swap in one
// repository transaction. On Conflict the request stays pending so another
// proposed time can still be chosen.
func (s *rescheduleService) approve(ctx context.Context, actor Actor, request models.RescheduleRequest, interview models.Interview, rawChosen string) (dto.RescheduleResponse, error) {
	if interview.Status != models.InterviewStatusScheduled {
		return dto.RescheduleResponse{}, domainerr.InvalidTransition("interview", string(interview.Status), string(models.InterviewStatusRescheduled))
	}
	if rawChosen == "" {
		return dto.RescheduleResponse{}, domainerr.Validation("chosen_time", "required when approving")
	}
	chosen, err := time.Parse(time.RFC3339, rawChosen)
	if err != nil {
		return dto.RescheduleResponse{}, domainerr.Validation("chosen_time", err.Error())
	}
	if !request.Proposes(chosen) {
		return dto.RescheduleResponse{}, domainerr.Validation("chosen_time", "not one of the proposed times")
	}
	if chosen.Before(s.now().Add(s.graceWindow)) {
		return dto.RescheduleResponse{}, domainerr.Validation("chosen_time", "proposed time has already passed")
	}

	if err := s.availability.CheckExcluding(ctx, interview.InterviewerID, chosen, interview.DurationMinutes, interview.ID); err != nil {
		if domainerr.IsConflict(err) {
			observability.SchedulingConflictsTotal().Inc()
		}
		return dto.RescheduleResponse{}, err
	}
	buffer, err := s.availability.BufferMinutes(ctx, interview.InterviewerID)
	if err != nil {
		return dto.RescheduleResponse{}, err
	}

	roomID, err := allocateRoomID(ctx, s.interviews)
	if err != nil {
		return dto.RescheduleResponse{}, err
	}

	replacement := interview
	replacement.ID = uuid.NewString()
	replacement.Status = models.InterviewStatusScheduled
	replacement.ScheduledAt = chosen
	replacement.EndTime = chosen.Add(time.Duration(interview.DurationMinutes) * time.Minute)
	replacement.RoomID = roomID
	replacement.MeetingURL = "/interview/" + roomID
	replacement.ActualStartTime = nil
	replacement.ActualEndTime = nil
	replacement.InterviewerJoinedAt = nil
	replacement.CandidateJoinedAt = nil
	replacement.CancelReason = ""
	replacement.CreatedAt = time.Time{}
	replacement.UpdatedAt = time.Time{}

	old := interview
	old.Status = models.InterviewStatusRescheduled

	now := s.now()
	request.Status = models.RescheduleStatusApproved
	request.ChosenTime = &chosen
	request.NewInterviewID = replacement.ID
	request.ResolvedAt = &now
	request.ResolvedBy = actor.ID

	if err := s.interviews.Reschedule(ctx, &old, &replacement, &request, buffer); err != nil {
		if domainerr.IsConflict(err) {
			observability.SchedulingConflictsTotal().Inc()
		}
		return dto.RescheduleResponse{}, err
	}

	s.invalidateDayCaches(ctx, interview, replacement)

	data := map[string]interface{}{
		"interview_id":     replacement.ID,
		"old_interview_id": interview.ID,
		"room_id":          replacement.RoomID,
		"scheduled_at":     replacement.ScheduledAt.Format(time.RFC3339),
	}
	message := fmt.Sprintf("%s moved to %s", interview.Title, chosen.Format("Jan 2 15:04 MST"))
	s.notifier.Notify(ctx, interview.InterviewerID, models.NotificationInterviewRescheduled, "Interview rescheduled", message, data)
	s.notifier.Notify(ctx, interview.CandidateID, models.NotificationInterviewRescheduled, "Interview rescheduled", message, data)

	s.logger.Info().
		Str("request_id", request.ID).
		Str("old_interview_id", interview.ID).
		Str("new_interview_id", replacement.ID).
		Time("chosen_time", chosen).
		Msg("reschedule approved")

	return dto.NewRescheduleResponse(request), nil
}

func (s *rescheduleService) ListByInterview(ctx context.Context, actor Actor, interviewID string) ([]dto.RescheduleResponse, error) {
	interview, err := s.loadInterview(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessInterview(interview) {
		return nil, domainerr.ErrForbidden
	}

	requests, err := s.requests.ListByInterview(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	return dto.NewRescheduleResponseSlice(requests), nil
}

func (s *rescheduleService) loadInterview(ctx context.Context, interviewID string) (models.Interview, error) {
	interview, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Interview{}, domainerr.NotFound("interview", interviewID)
		}
		return models.Interview{}, err
	}
	return interview, nil
}

func (s *rescheduleService) notifyCounterpart(ctx context.Context, actor Actor, interview models.Interview, kind, title, message string, data map[string]interface{}) {
	target := interview.InterviewerID
	if actor.ID == interview.InterviewerID {
		target = interview.CandidateID
	}
	s.notifier.Notify(ctx, target, kind, title, message, data)
}

func (s *rescheduleService) invalidateDayCaches(ctx context.Context, old, replacement models.Interview) {
	if s.redis == nil {
		return
	}
	keys := []string{
		dayScheduleKey(old.InterviewerID, old.ScheduledAt),
		dayScheduleKey(replacement.InterviewerID, replacement.ScheduledAt),
	}
	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate day schedule cache")
	}
}
