package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
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

const (
	roomIDAttempts   = 5
	guestTokenTTL    = 4 * time.Hour
	bulkSlotGridStep = 30 * time.Minute
)

// SchedulingService validates booking requests against the availability store
// and commits interviews through the repository's atomic overlap guard. A
// request either lands exactly once or surfaces Conflict with the id of the
// booking that won; it never silently double-books and never retries.
type SchedulingService interface {
	Schedule(ctx context.Context, actor Actor, payload dto.InterviewScheduleRequest) (dto.InterviewResponse, error)
	Get(ctx context.Context, actor Actor, idOrRoom string) (dto.InterviewResponse, error)
	List(ctx context.Context, actor Actor, filter repository.InterviewFilter) (dto.InterviewListResponse, error)
	DaySchedule(ctx context.Context, actor Actor, interviewerID string, day time.Time) ([]dto.InterviewResponse, error)
	BulkSchedule(ctx context.Context, actor Actor, payload dto.BulkScheduleRequest) (dto.BulkScheduleResponse, error)
	GuestJoin(ctx context.Context, idOrRoom string, payload dto.GuestJoinRequest) (dto.GuestJoinResponse, error)
}

type schedulingService struct {
	interviews   repository.InterviewRepository
	candidates   repository.CandidateRepository
	interviewers repository.InterviewerRepository
	availability AvailabilityService
	notifier     Notifier
	redis        *redis.Client
	validator    *validator.Validate
	logger       zerolog.Logger
	graceWindow  time.Duration
	cacheTTL     time.Duration
	jwtSecret    string
	now          func() time.Time
}

// NewSchedulingService builds the scheduling engine. redisClient may be nil;
// the day-schedule cache is then skipped.
func NewSchedulingService(interviews repository.InterviewRepository, candidates repository.CandidateRepository, interviewers repository.InterviewerRepository, availability AvailabilityService, notifier Notifier, redisClient *redis.Client, validate *validator.Validate, graceWindow, cacheTTL time.Duration, jwtSecret string, logger zerolog.Logger) SchedulingService {
	return &schedulingService{
		interviews:   interviews,
		candidates:   candidates,
		interviewers: interviewers,
		availability: availability,
		notifier:     notifier,
		redis:        redisClient,
		validator:    validate,
		logger:       logger.With().Str("component", "scheduling_service").Logger(),
		graceWindow:  graceWindow,
		cacheTTL:     cacheTTL,
		jwtSecret:    jwtSecret,
		now:          time.Now,
	}
}

func (s *schedulingService) Schedule(ctx context.Context, actor Actor, payload dto.InterviewScheduleRequest) (dto.InterviewResponse, error) {
	if !actor.IsAdmin() {
		return dto.InterviewResponse{}, domainerr.ErrForbidden
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.InterviewResponse{}, err
	}

	interviewType := models.InterviewType(payload.InterviewType)
	if !interviewType.Valid() {
		return dto.InterviewResponse{}, domainerr.Validation("interview_type", fmt.Sprintf("unknown interview type %q", payload.InterviewType))
	}

	start, err := time.Parse(time.RFC3339, payload.ScheduledAt)
	if err != nil {
		return dto.InterviewResponse{}, domainerr.Validation("scheduled_at", err.Error())
	}
	if err := s.checkGrace(start); err != nil {
		return dto.InterviewResponse{}, err
	}

	if _, err := s.candidates.GetByID(ctx, payload.CandidateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InterviewResponse{}, domainerr.NotFound("candidate", payload.CandidateID)
		}
		return dto.InterviewResponse{}, err
	}
	if _, err := s.interviewers.GetByID(ctx, payload.InterviewerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InterviewResponse{}, domainerr.NotFound("interviewer", payload.InterviewerID)
		}
		return dto.InterviewResponse{}, err
	}

	if err := s.availability.Check(ctx, payload.InterviewerID, start, payload.DurationMinutes); err != nil {
		return dto.InterviewResponse{}, err
	}

	buffer, err := s.availability.BufferMinutes(ctx, payload.InterviewerID)
	if err != nil {
		return dto.InterviewResponse{}, err
	}

	interview, err := s.buildInterview(ctx, actor, payload, interviewType, start)
	if err != nil {
		return dto.InterviewResponse{}, err
	}

	// The repository re-runs the overlap check inside the committing
	// transaction; the availability pre-check above only fails fast.
	if err := s.interviews.Schedule(ctx, &interview, buffer); err != nil {
		if domainerr.IsConflict(err) {
			observability.SchedulingConflictsTotal().Inc()
		}
		return dto.InterviewResponse{}, err
	}

	s.invalidateDaySchedule(ctx, interview.InterviewerID, interview.ScheduledAt)
	s.notifyScheduled(ctx, interview)

	s.logger.Info().
		Str("interview_id", interview.ID).
		Str("interviewer_id", interview.InterviewerID).
		Time("scheduled_at", interview.ScheduledAt).
		Msg("interview scheduled")

	return dto.NewInterviewResponse(interview), nil
}

func (s *schedulingService) buildInterview(ctx context.Context, actor Actor, payload dto.InterviewScheduleRequest, interviewType models.InterviewType, start time.Time) (models.Interview, error) {
	roomID, err := allocateRoomID(ctx, s.interviews)
	if err != nil {
		return models.Interview{}, err
	}

	recordingEnabled := true
	if payload.RecordingEnabled != nil {
		recordingEnabled = *payload.RecordingEnabled
	}
	round := payload.RoundNumber
	if round <= 0 {
		round = 1
	}

	return models.Interview{
		ID:                 uuid.NewString(),
		Title:              payload.Title,
		Position:           payload.Position,
		InterviewType:      interviewType,
		Status:             models.InterviewStatusScheduled,
		CandidateID:        payload.CandidateID,
		InterviewerID:      payload.InterviewerID,
		ScheduledAt:        start,
		EndTime:            start.Add(time.Duration(payload.DurationMinutes) * time.Minute),
		DurationMinutes:    payload.DurationMinutes,
		RoundNumber:        round,
		RoomID:             roomID,
		MeetingURL:         "/interview/" + roomID,
		RecordingEnabled:   recordingEnabled,
		CodeEditorEnabled:  payload.CodeEditorEnabled,
		WhiteboardEnabled:  payload.WhiteboardEnabled,
		EvaluationCriteria: datatypes.JSONMap(payload.EvaluationCriteria),
		CreatedBy:          actor.ID,
	}, nil
}

// allocateRoomID draws a random room handle and retries on the rare
// collision; the unique index is the final arbiter.
func allocateRoomID(ctx context.Context, interviews repository.InterviewRepository) (string, error) {
	for attempt := 0; attempt < roomIDAttempts; attempt++ {
		candidate := "room_" + uuid.NewString()[:8]
		taken, err := interviews.RoomIDTaken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique room id after %d attempts", roomIDAttempts)
}

func (s *schedulingService) Get(ctx context.Context, actor Actor, idOrRoom string) (dto.InterviewResponse, error) {
	interview, err := s.findByIDOrRoom(ctx, idOrRoom)
	if err != nil {
		return dto.InterviewResponse{}, err
	}
	if !actor.CanAccessInterview(interview) {
		return dto.InterviewResponse{}, domainerr.ErrForbidden
	}
	return dto.NewInterviewResponse(interview), nil
}

func (s *schedulingService) List(ctx context.Context, actor Actor, filter repository.InterviewFilter) (dto.InterviewListResponse, error) {
	switch {
	case actor.IsCandidate():
		filter.CandidateID = actor.ID
	case actor.IsInterviewer():
		filter.InterviewerID = actor.ID
	case actor.IsAdmin():
		// admins see everything the filter asks for
	default:
		return dto.InterviewListResponse{}, domainerr.ErrForbidden
	}

	interviews, total, err := s.interviews.List(ctx, filter)
	if err != nil {
		return dto.InterviewListResponse{}, err
	}

	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return dto.InterviewListResponse{
		Items: dto.NewInterviewResponseSlice(interviews),
		Pagination: dto.Pagination{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: totalPages,
		},
	}, nil
}

// DaySchedule lists an interviewer's bookings for one day, cached in redis
// for a short TTL since calendars are read far more often than written.
func (s *schedulingService) DaySchedule(ctx context.Context, actor Actor, interviewerID string, day time.Time) ([]dto.InterviewResponse, error) {
	if !actor.IsAdmin() && !(actor.IsInterviewer() && actor.ID == interviewerID) {
		return nil, domainerr.ErrForbidden
	}

	cacheKey := dayScheduleKey(interviewerID, day)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var responses []dto.InterviewResponse
			if err := json.Unmarshal([]byte(cached), &responses); err == nil {
				return responses, nil
			}
		}
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	interviews, err := s.interviews.ListActiveBetween(ctx, interviewerID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	responses := dto.NewInterviewResponseSlice(interviews)
	if s.redis != nil {
		if payload, err := json.Marshal(responses); err == nil {
			if err := s.redis.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache day schedule")
			}
		}
	}

	return responses, nil
}

func (s *schedulingService) BulkSchedule(ctx context.Context, actor Actor, payload dto.BulkScheduleRequest) (dto.BulkScheduleResponse, error) {
	if !actor.IsAdmin() {
		return dto.BulkScheduleResponse{}, domainerr.ErrForbidden
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.BulkScheduleResponse{}, err
	}

	interviewType := models.InterviewType(payload.InterviewType)
	if !interviewType.Valid() {
		return dto.BulkScheduleResponse{}, domainerr.Validation("interview_type", fmt.Sprintf("unknown interview type %q", payload.InterviewType))
	}

	rangeStart, err := time.Parse(time.RFC3339, payload.DateRangeStart)
	if err != nil {
		return dto.BulkScheduleResponse{}, domainerr.Validation("date_range_start", err.Error())
	}
	rangeEnd, err := time.Parse(time.RFC3339, payload.DateRangeEnd)
	if err != nil {
		return dto.BulkScheduleResponse{}, domainerr.Validation("date_range_end", err.Error())
	}
	if !rangeStart.Before(rangeEnd) {
		return dto.BulkScheduleResponse{}, domainerr.Validation("date_range", "start must precede end")
	}

	result := dto.BulkScheduleResponse{
		TotalCandidates: len(payload.Candidates),
		Interviews:      make([]dto.InterviewResponse, 0, len(payload.Candidates)),
		Errors:          make([]dto.BulkScheduleError, 0),
	}

	interviewerIndex := 0
	for _, entry := range payload.Candidates {
		interviewerID := payload.InterviewerIDs[0]
		if payload.AutoAssign {
			interviewerID = payload.InterviewerIDs[interviewerIndex%len(payload.InterviewerIDs)]
			interviewerIndex++
		}

		response, err := s.scheduleBulkEntry(ctx, actor, payload, entry, interviewType, interviewerID, rangeStart, rangeEnd)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, dto.BulkScheduleError{Candidate: entry.Email, Error: err.Error()})
			continue
		}
		result.SuccessfullyScheduled++
		result.Interviews = append(result.Interviews, response)
	}

	return result, nil
}

func (s *schedulingService) scheduleBulkEntry(ctx context.Context, actor Actor, payload dto.BulkScheduleRequest, entry dto.BulkScheduleCandidate, interviewType models.InterviewType, interviewerID string, rangeStart, rangeEnd time.Time) (dto.InterviewResponse, error) {
	candidate, err := s.candidates.FindByEmail(ctx, entry.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InterviewResponse{}, err
		}
		candidate = models.Candidate{
			ID:              uuid.NewString(),
			Email:           entry.Email,
			FullName:        entry.FullName,
			PositionApplied: entry.Position,
			ResumeURL:       entry.ResumeURL,
			Source:          "bulk_import",
		}
		if err := s.candidates.Create(ctx, &candidate); err != nil {
			return dto.InterviewResponse{}, err
		}
	}

	start, err := s.findFreeSlot(ctx, interviewerID, rangeStart, rangeEnd, payload.DurationMinutes)
	if err != nil {
		return dto.InterviewResponse{}, err
	}

	recordingEnabled := payload.RecordingEnabled
	request := dto.InterviewScheduleRequest{
		Title:             entry.Position + " Interview",
		Position:          entry.Position,
		InterviewType:     string(interviewType),
		CandidateID:       candidate.ID,
		InterviewerID:     interviewerID,
		ScheduledAt:       start.Format(time.RFC3339),
		DurationMinutes:   payload.DurationMinutes,
		RecordingEnabled:  &recordingEnabled,
		CodeEditorEnabled: payload.CodeEditorEnabled,
		WhiteboardEnabled: payload.WhiteboardEnabled,
	}

	return s.Schedule(ctx, actor, request)
}

// findFreeSlot walks the range on a 30-minute grid and returns the first
// instant the availability store accepts.
func (s *schedulingService) findFreeSlot(ctx context.Context, interviewerID string, rangeStart, rangeEnd time.Time, durationMinutes int) (time.Time, error) {
	cursor := rangeStart.Truncate(bulkSlotGridStep)
	if cursor.Before(rangeStart) {
		cursor = cursor.Add(bulkSlotGridStep)
	}
	earliest := s.now().Add(s.graceWindow)
	if cursor.Before(earliest) {
		cursor = earliest.Truncate(bulkSlotGridStep).Add(bulkSlotGridStep)
	}

	for ; cursor.Before(rangeEnd); cursor = cursor.Add(bulkSlotGridStep) {
		err := s.availability.Check(ctx, interviewerID, cursor, durationMinutes)
		if err == nil {
			return cursor, nil
		}
		if domainerr.IsValidation(err) || domainerr.IsConflict(err) {
			continue
		}
		return time.Time{}, err
	}

	return time.Time{}, domainerr.Conflict("no free slot in the requested range", "")
}

// GuestJoin issues a short-lived candidate token scoped to one interview so
// email-link joins need no account. Anyone holding the room link may call it.
func (s *schedulingService) GuestJoin(ctx context.Context, idOrRoom string, payload dto.GuestJoinRequest) (dto.GuestJoinResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.GuestJoinResponse{}, err
	}

	interview, err := s.findByIDOrRoom(ctx, idOrRoom)
	if err != nil {
		return dto.GuestJoinResponse{}, err
	}
	if interview.Status != models.InterviewStatusScheduled && interview.Status != models.InterviewStatusInProgress {
		return dto.GuestJoinResponse{}, domainerr.Validation("status", "interview is not currently joinable")
	}

	guestID := uuid.NewString()
	expiresAt := s.now().Add(guestTokenTTL)
	claims := jwt.MapClaims{
		"sub":          guestID,
		"name":         payload.Name,
		"role":         models.RoleCandidate,
		"interview_id": interview.ID,
		"room_id":      interview.RoomID,
		"is_guest":     true,
		"exp":          expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return dto.GuestJoinResponse{}, err
	}

	return dto.GuestJoinResponse{
		AccessToken: token,
		GuestID:     guestID,
		FullName:    payload.Name,
		RoomID:      interview.RoomID,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *schedulingService) findByIDOrRoom(ctx context.Context, idOrRoom string) (models.Interview, error) {
	var interview models.Interview
	var err error
	if _, parseErr := uuid.Parse(idOrRoom); parseErr == nil {
		interview, err = s.interviews.GetByID(ctx, idOrRoom)
	} else {
		interview, err = s.interviews.GetByRoomID(ctx, idOrRoom)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Interview{}, domainerr.NotFound("interview", idOrRoom)
		}
		return models.Interview{}, err
	}
	return interview, nil
}

func (s *schedulingService) checkGrace(start time.Time) error {
	if start.Before(s.now().Add(s.graceWindow)) {
		return domainerr.Validation("scheduled_at", fmt.Sprintf("must be at least %s in the future", s.graceWindow))
	}
	return nil
}

func (s *schedulingService) invalidateDaySchedule(ctx context.Context, interviewerID string, day time.Time) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, dayScheduleKey(interviewerID, day)).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate day schedule cache")
	}
}

func (s *schedulingService) notifyScheduled(ctx context.Context, interview models.Interview) {
	data := map[string]interface{}{
		"interview_id": interview.ID,
		"room_id":      interview.RoomID,
		"scheduled_at": interview.ScheduledAt.Format(time.RFC3339),
	}
	message := fmt.Sprintf("%s on %s", interview.Title, interview.ScheduledAt.Format("Jan 2 15:04 MST"))
	s.notifier.Notify(ctx, interview.InterviewerID, models.NotificationInterviewScheduled, "Interview scheduled", message, data)
	s.notifier.Notify(ctx, interview.CandidateID, models.NotificationInterviewScheduled, "Interview scheduled", message, data)
}

func dayScheduleKey(interviewerID string, day time.Time) string {
	return fmt.Sprintf("schedule:%s:%s", interviewerID, day.Format("2006-01-02"))
}
