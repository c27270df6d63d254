package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/domainerr"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/dto"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/repository"
)

const slotGridMinutes = 30

// AvailabilityService owns the per-interviewer availability record and
// answers the availability question the scheduling engine asks before
// committing a booking. Check returns nil when the window is free; the typed
// error explains the rejection otherwise.
type AvailabilityService interface {
	Set(ctx context.Context, interviewerID string, payload dto.AvailabilitySetRequest) (dto.AvailabilityResponse, error)
	Get(ctx context.Context, interviewerID string) (dto.AvailabilityResponse, error)
	IsAvailable(ctx context.Context, interviewerID string, start time.Time, durationMinutes int) (bool, error)
	Check(ctx context.Context, interviewerID string, start time.Time, durationMinutes int) error
	CheckExcluding(ctx context.Context, interviewerID string, start time.Time, durationMinutes int, excludeInterviewID string) error
	BufferMinutes(ctx context.Context, interviewerID string) (int, error)
	ListSlots(ctx context.Context, interviewerID string, day time.Time) ([]dto.SlotResponse, error)
}

type availabilityService struct {
	repo            repository.AvailabilityRepository
	interviewerRepo repository.InterviewerRepository
	interviewRepo   repository.InterviewRepository
	validator       *validator.Validate
	logger          zerolog.Logger
	now             func() time.Time
}

// NewAvailabilityService builds a new availability service.
func NewAvailabilityService(repo repository.AvailabilityRepository, interviewerRepo repository.InterviewerRepository, interviewRepo repository.InterviewRepository, validate *validator.Validate, logger zerolog.Logger) AvailabilityService {
	return &availabilityService{
		repo:            repo,
		interviewerRepo: interviewerRepo,
		interviewRepo:   interviewRepo,
		validator:       validate,
		logger:          logger.With().Str("component", "availability_service").Logger(),
		now:             time.Now,
	}
}

func (s *availabilityService) Set(ctx context.Context, interviewerID string, payload dto.AvailabilitySetRequest) (dto.AvailabilityResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AvailabilityResponse{}, err
	}

	if _, err := s.interviewerRepo.GetByID(ctx, interviewerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AvailabilityResponse{}, domainerr.NotFound("interviewer", interviewerID)
		}
		return dto.AvailabilityResponse{}, err
	}

	availability := models.InterviewerAvailability{
		InterviewerID: interviewerID,
		Weekdays:      datatypes.JSONSlice[string](payload.Weekdays),
		DayStart:      payload.DayStart,
		DayEnd:        payload.DayEnd,
		BufferMinutes: payload.BufferMinutes,
		MaxPerDay:     payload.MaxPerDay,
		BlackoutDates: datatypes.JSONSlice[string](payload.BlackoutDates),
	}
	if err := availability.Validate(); err != nil {
		return dto.AvailabilityResponse{}, domainerr.Validation("availability", err.Error())
	}

	if err := s.repo.Upsert(ctx, &availability); err != nil {
		return dto.AvailabilityResponse{}, err
	}

	s.logger.Info().Str("interviewer_id", interviewerID).Msg("availability replaced")

	return dto.NewAvailabilityResponse(availability), nil
}

func (s *availabilityService) Get(ctx context.Context, interviewerID string) (dto.AvailabilityResponse, error) {
	availability, err := s.load(ctx, interviewerID)
	if err != nil {
		return dto.AvailabilityResponse{}, err
	}
	return dto.NewAvailabilityResponse(availability), nil
}

// IsAvailable evaluates the four availability conditions: weekly window,
// blackout dates, daily cap, and buffered overlap with existing bookings.
func (s *availabilityService) IsAvailable(ctx context.Context, interviewerID string, start time.Time, durationMinutes int) (bool, error) {
	err := s.Check(ctx, interviewerID, start, durationMinutes)
	if err == nil {
		return true, nil
	}
	if domainerr.IsValidation(err) || domainerr.IsConflict(err) {
		return false, nil
	}
	return false, err
}

func (s *availabilityService) Check(ctx context.Context, interviewerID string, start time.Time, durationMinutes int) error {
	return s.CheckExcluding(ctx, interviewerID, start, durationMinutes, "")
}

// CheckExcluding is Check with one interview left out of the cap and overlap
// counts. Reschedule resolution uses it so a booking can move within or near
// the slot it is vacating.
func (s *availabilityService) CheckExcluding(ctx context.Context, interviewerID string, start time.Time, durationMinutes int, excludeInterviewID string) error {
	availability, err := s.load(ctx, interviewerID)
	if err != nil {
		return err
	}

	duration := time.Duration(durationMinutes) * time.Minute

	if !availability.AllowsWeekday(start.Weekday()) {
		return domainerr.Validation("scheduled_at", "outside the interviewer's weekly window")
	}
	if !availability.WithinDailyWindow(start, duration) {
		return domainerr.Validation("scheduled_at", "outside the interviewer's daily hours")
	}
	if availability.IsBlackout(start) {
		return domainerr.Validation("scheduled_at", "interviewer is unavailable on that date")
	}

	count, err := s.interviewRepo.CountActiveOnDay(ctx, interviewerID, start)
	if err != nil {
		return err
	}
	if excludeInterviewID != "" && count > 0 {
		sameDay, err := s.interviewRepo.ListActiveBetween(ctx, interviewerID, startOfDay(start), startOfDay(start).Add(24*time.Hour))
		if err != nil {
			return err
		}
		for _, interview := range sameDay {
			if interview.ID == excludeInterviewID {
				count--
				break
			}
		}
	}
	if count >= int64(availability.MaxPerDay) {
		return domainerr.Validation("scheduled_at", "interviewer has reached the daily interview cap")
	}

	buffer := time.Duration(availability.BufferMinutes) * time.Minute
	overlapping, err := s.interviewRepo.ListActiveBetween(ctx, interviewerID, start.Add(-buffer), start.Add(duration).Add(buffer))
	if err != nil {
		return err
	}
	for _, interview := range overlapping {
		if interview.ID == excludeInterviewID {
			continue
		}
		return domainerr.Conflict("requested window overlaps an existing booking", interview.ID)
	}

	return nil
}

func startOfDay(at time.Time) time.Time {
	return time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
}

func (s *availabilityService) BufferMinutes(ctx context.Context, interviewerID string) (int, error) {
	availability, err := s.load(ctx, interviewerID)
	if err != nil {
		return 0, err
	}
	return availability.BufferMinutes, nil
}

// ListSlots renders the interviewer's day as a 30-minute free/busy grid.
func (s *availabilityService) ListSlots(ctx context.Context, interviewerID string, day time.Time) ([]dto.SlotResponse, error) {
	availability, err := s.load(ctx, interviewerID)
	if err != nil {
		return nil, err
	}

	slots := make([]dto.SlotResponse, 0)
	if !availability.AllowsWeekday(day.Weekday()) || availability.IsBlackout(day) {
		return slots, nil
	}

	windowStart, err := time.Parse("15:04", availability.DayStart)
	if err != nil {
		return nil, err
	}
	windowEnd, err := time.Parse("15:04", availability.DayEnd)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), windowStart.Hour(), windowStart.Minute(), 0, 0, day.Location())
	dayEnd := time.Date(day.Year(), day.Month(), day.Day(), windowEnd.Hour(), windowEnd.Minute(), 0, 0, day.Location())

	booked, err := s.interviewRepo.ListActiveBetween(ctx, interviewerID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	buffer := time.Duration(availability.BufferMinutes) * time.Minute
	for cursor := dayStart; cursor.Before(dayEnd); cursor = cursor.Add(slotGridMinutes * time.Minute) {
		slotEnd := cursor.Add(slotGridMinutes * time.Minute)
		if slotEnd.After(dayEnd) {
			break
		}

		available := true
		for _, interview := range booked {
			if cursor.Before(interview.EndTime.Add(buffer)) && slotEnd.After(interview.ScheduledAt.Add(-buffer)) {
				available = false
				break
			}
		}

		slots = append(slots, dto.SlotResponse{Start: cursor, End: slotEnd, Available: available})
	}

	return slots, nil
}

func (s *availabilityService) load(ctx context.Context, interviewerID string) (models.InterviewerAvailability, error) {
	availability, err := s.repo.GetByInterviewer(ctx, interviewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.InterviewerAvailability{}, domainerr.NotFound("availability for interviewer", interviewerID)
		}
		return models.InterviewerAvailability{}, err
	}
	return availability, nil
}
