package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/domainerr"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/dto"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/repository"
)

type schedulingFixture struct {
	svc          SchedulingService
	concrete     *schedulingService
	interviews   *memInterviewRepo
	candidates   *memCandidateRepo
	interviewers *memInterviewerRepo
	availability *memAvailabilityRepo
	notifier     *recordNotifier
	admin        Actor
	interviewer  string
	candidate    string
}

func newSchedulingFixture(t *testing.T, redisClient *redis.Client) *schedulingFixture {
	t.Helper()

	interviews := newMemInterviewRepo()
	candidates := newMemCandidateRepo()
	interviewers := newMemInterviewerRepo()
	availabilityRepo := newMemAvailabilityRepo()
	notifier := &recordNotifier{}
	validate := validator.New(validator.WithRequiredStructEnabled())

	interviewerID := uuid.NewString()
	candidateID := uuid.NewString()
	require.NoError(t, interviewers.Create(context.Background(), &models.Interviewer{
		ID: interviewerID, Email: interviewerID + "@example.com", FullName: "Dana Reviewer",
	}))
	require.NoError(t, candidates.Create(context.Background(), &models.Candidate{
		ID: candidateID, Email: candidateID + "@example.com", FullName: "Sam Applicant",
	}))
	record := weekdayAvailability(interviewerID)
	require.NoError(t, availabilityRepo.Upsert(context.Background(), &record))

	availabilitySvc := NewAvailabilityService(availabilityRepo, interviewers, interviews, validate, testLogger())
	svc := NewSchedulingService(interviews, candidates, interviewers, availabilitySvc, notifier, redisClient, validate, 5*time.Minute, time.Minute, "test-secret", testLogger())

	concrete := svc.(*schedulingService)
	// The fixture clock sits the evening before testDay, well outside the
	// grace window of every slot the tests book.
	concrete.now = func() time.Time { return at(testDay.AddDate(0, 0, -1), 18, 0) }

	return &schedulingFixture{
		svc:          svc,
		concrete:     concrete,
		interviews:   interviews,
		candidates:   candidates,
		interviewers: interviewers,
		availability: availabilityRepo,
		notifier:     notifier,
		admin:        Actor{ID: uuid.NewString(), Role: models.RoleAdmin},
		interviewer:  interviewerID,
		candidate:    candidateID,
	}
}

func (f *schedulingFixture) scheduleRequest(start time.Time) dto.InterviewScheduleRequest {
	return dto.InterviewScheduleRequest{
		Title:           "Backend Technical",
		Position:        "Backend Engineer",
		InterviewType:   string(models.InterviewTypeTechnical),
		CandidateID:     f.candidate,
		InterviewerID:   f.interviewer,
		ScheduledAt:     start.Format(time.RFC3339),
		DurationMinutes: 60,
	}
}

func TestScheduleCreatesInterview(t *testing.T) {
	fix := newSchedulingFixture(t, nil)

	response, err := fix.svc.Schedule(context.Background(), fix.admin, fix.scheduleRequest(at(testDay, 10, 0)))
	require.NoError(t, err)

	require.Equal(t, string(models.InterviewStatusScheduled), response.Status)
	require.Equal(t, at(testDay, 11, 0), response.EndTime)
	require.Equal(t, 1, response.RoundNumber)
	require.True(t, response.RecordingEnabled, "recording defaults on")
	require.Regexp(t, `^room_[0-9a-f-]{8}$`, response.RoomID)
	require.Equal(t, "/interview/"+response.RoomID, response.MeetingURL)

	stored, ok := fix.interviews.get(response.ID)
	require.True(t, ok)
	require.Equal(t, models.InterviewStatusScheduled, stored.Status)

	scheduled := fix.notifier.byType(models.NotificationInterviewScheduled)
	require.Len(t, scheduled, 2, "both parties notified")
}

func TestScheduleRejectsNonAdmin(t *testing.T) {
	fix := newSchedulingFixture(t, nil)

	_, err := fix.svc.Schedule(context.Background(), Actor{ID: fix.interviewer, Role: models.RoleInterviewer}, fix.scheduleRequest(at(testDay, 10, 0)))
	require.ErrorIs(t, err, domainerr.ErrForbidden)
	require.Zero(t, fix.interviews.count())
}

func TestScheduleRejectsInsideGraceWindow(t *testing.T) {
	fix := newSchedulingFixture(t, nil)
	fix.concrete.now = func() time.Time { return at(testDay, 9, 58) }

	_, err := fix.svc.Schedule(context.Background(), fix.admin, fix.scheduleRequest(at(testDay, 10, 0)))
	require.True(t, domainerr.IsValidation(err))
}

func TestScheduleUnknownParticipants(t *testing.T) {
	fix := newSchedulingFixture(t, nil)

	payload := fix.scheduleRequest(at(testDay, 10, 0))
	payload.CandidateID = uuid.NewString()
	_, err := fix.svc.Schedule(context.Background(), fix.admin, payload)
	require.True(t, domainerr.IsNotFound(err))

	payload = fix.scheduleRequest(at(testDay, 10, 0))
	payload.InterviewerID = uuid.NewString()
	_, err = fix.svc.Schedule(context.Background(), fix.admin, payload)
	require.True(t, domainerr.IsNotFound(err))
}

func TestScheduleSurfacesConflict(t *testing.T) {
	fix := newSchedulingFixture(t, nil)

	first, err := fix.svc.Schedule(context.Background(), fix.admin, fix.scheduleRequest(at(testDay, 10, 0)))
	require.NoError(t, err)

	_, err = fix.svc.Schedule(context.Background(), fix.admin, fix.scheduleRequest(at(testDay, 10, 30)))
	require.True(t, domainerr.IsConflict(err))
	require.Contains(t, err.Error(), first.ID)
	require.Equal(t, 1, fix.interviews.count())
}

func TestScheduleConcurrentRequestsExactlyOneWins(t *testing.T) {
	fix := newSchedulingFixture(t, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, errs[slot] = fix.svc.Schedule(context.Background(), fix.admin, fix.scheduleRequest(at(testDay, 10, 0)))
		}(i)
	}
	wg.Wait()

	var conflicts int
	for _, err := range errs {
		if err != nil {
			require.True(t, domainerr.IsConflict(err))
			conflicts++
		}
	}
	require.Equal(t, 1, conflicts, "exactly one request loses")
	require.Equal(t, 1, fix.interviews.count())
}

func TestGetResolvesRoomID(t *testing.T) {
	fix := newSchedulingFixture(t, nil)

	created, err := fix.svc.Schedule(context.Background(), fix.admin, fix.scheduleRequest(at(testDay, 10, 0)))
	require.NoError(t, err)

	found, err := fix.svc.Get(context.Background(), Actor{ID: fix.candidate, Role: models.RoleCandidate}, created.RoomID)
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)

	_, err = fix.svc.Get(context.Background(), Actor{ID: uuid.NewString(), Role: models.RoleCandidate}, created.RoomID)
	require.ErrorIs(t, err, domainerr.ErrForbidden)

	_, err = fix.svc.Get(context.Background(), fix.admin, uuid.NewString())
	require.True(t, domainerr.IsNotFound(err))
}

func TestListScopesByRole(t *testing.T) {
	fix := newSchedulingFixture(t, nil)

	otherCandidate := uuid.NewString()
	require.NoError(t, fix.candidates.Create(context.Background(), &models.Candidate{
		ID: otherCandidate, Email: otherCandidate + "@example.com", FullName: "Lee Applicant",
	}))

	_, err := fix.svc.Schedule(context.Background(), fix.admin, fix.scheduleRequest(at(testDay, 10, 0)))
	require.NoError(t, err)

	payload := fix.scheduleRequest(at(testDay, 13, 0))
	payload.CandidateID = otherCandidate
	_, err = fix.svc.Schedule(context.Background(), fix.admin, payload)
	require.NoError(t, err)

	mine, err := fix.svc.List(context.Background(), Actor{ID: fix.candidate, Role: models.RoleCandidate}, repository.InterviewFilter{})
	require.NoError(t, err)
	require.Len(t, mine.Items, 1)
	require.Equal(t, fix.candidate, mine.Items[0].CandidateID)

	all, err := fix.svc.List(context.Background(), fix.admin, repository.InterviewFilter{})
	require.NoError(t, err)
	require.Len(t, all.Items, 2)

	_, err = fix.svc.List(context.Background(), Actor{ID: uuid.NewString(), Role: "auditor"}, repository.InterviewFilter{})
	require.ErrorIs(t, err, domainerr.ErrForbidden)
}

func TestDayScheduleServesFromCache(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer redisClient.Close()

	fix := newSchedulingFixture(t, redisClient)
	_, err = fix.svc.Schedule(context.Background(), fix.admin, fix.scheduleRequest(at(testDay, 10, 0)))
	require.NoError(t, err)

	actor := Actor{ID: fix.interviewer, Role: models.RoleInterviewer}
	first, err := fix.svc.DaySchedule(context.Background(), actor, fix.interviewer, testDay)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A write bypassing the service does not show up while the cache holds.
	fix.interviews.put(models.Interview{
		ID: uuid.NewString(), InterviewerID: fix.interviewer, CandidateID: fix.candidate,
		Status: models.InterviewStatusScheduled, ScheduledAt: at(testDay, 14, 0), EndTime: at(testDay, 15, 0),
		RoomID: "room_" + uuid.NewString()[:8],
	})
	cached, err := fix.svc.DaySchedule(context.Background(), actor, fix.interviewer, testDay)
	require.NoError(t, err)
	require.Len(t, cached, 1)

	server.FastForward(2 * time.Minute)
	fresh, err := fix.svc.DaySchedule(context.Background(), actor, fix.interviewer, testDay)
	require.NoError(t, err)
	require.Len(t, fresh, 2)

	_, err = fix.svc.DaySchedule(context.Background(), Actor{ID: uuid.NewString(), Role: models.RoleInterviewer}, fix.interviewer, testDay)
	require.ErrorIs(t, err, domainerr.ErrForbidden)
}

func TestScheduleInvalidatesDayScheduleCache(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer redisClient.Close()

	fix := newSchedulingFixture(t, redisClient)
	actor := Actor{ID: fix.interviewer, Role: models.RoleInterviewer}

	empty, err := fix.svc.DaySchedule(context.Background(), actor, fix.interviewer, testDay)
	require.NoError(t, err)
	require.Empty(t, empty)

	_, err = fix.svc.Schedule(context.Background(), fix.admin, fix.scheduleRequest(at(testDay, 10, 0)))
	require.NoError(t, err)

	refreshed, err := fix.svc.DaySchedule(context.Background(), actor, fix.interviewer, testDay)
	require.NoError(t, err)
	require.Len(t, refreshed, 1, "booking drops the cached day")
}

func TestGuestJoinIssuesScopedToken(t *testing.T) {
	fix := newSchedulingFixture(t, nil)

	created, err := fix.svc.Schedule(context.Background(), fix.admin, fix.scheduleRequest(at(testDay, 10, 0)))
	require.NoError(t, err)

	response, err := fix.svc.GuestJoin(context.Background(), created.RoomID, dto.GuestJoinRequest{Name: "Sam Applicant"})
	require.NoError(t, err)
	require.Equal(t, created.RoomID, response.RoomID)
	require.Equal(t, fix.concrete.now().Add(4*time.Hour), response.ExpiresAt)

	token, err := jwt.Parse(response.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, models.RoleCandidate, claims["role"])
	require.Equal(t, created.ID, claims["interview_id"])
	require.Equal(t, true, claims["is_guest"])
}

func TestGuestJoinRejectsFinishedInterview(t *testing.T) {
	fix := newSchedulingFixture(t, nil)

	created, err := fix.svc.Schedule(context.Background(), fix.admin, fix.scheduleRequest(at(testDay, 10, 0)))
	require.NoError(t, err)

	stored, _ := fix.interviews.get(created.ID)
	stored.Status = models.InterviewStatusCompleted
	fix.interviews.put(stored)

	_, err = fix.svc.GuestJoin(context.Background(), created.RoomID, dto.GuestJoinRequest{Name: "Sam Applicant"})
	require.True(t, domainerr.IsValidation(err))
}

func TestBulkScheduleAssignsRoundRobin(t *testing.T) {
	fix := newSchedulingFixture(t, nil)

	secondInterviewer := uuid.NewString()
	require.NoError(t, fix.interviewers.Create(context.Background(), &models.Interviewer{
		ID: secondInterviewer, Email: secondInterviewer + "@example.com", FullName: "Noor Reviewer",
	}))
	record := weekdayAvailability(secondInterviewer)
	require.NoError(t, fix.availability.Upsert(context.Background(), &record))

	response, err := fix.svc.BulkSchedule(context.Background(), fix.admin, dto.BulkScheduleRequest{
		InterviewType:   string(models.InterviewTypePhoneScreen),
		DurationMinutes: 60,
		DateRangeStart:  at(testDay, 9, 0).Format(time.RFC3339),
		DateRangeEnd:    at(testDay, 17, 0).Format(time.RFC3339),
		InterviewerIDs:  []string{fix.interviewer, secondInterviewer},
		AutoAssign:      true,
		Candidates: []dto.BulkScheduleCandidate{
			{Email: "one@example.com", FullName: "One Candidate", Position: "Backend Engineer"},
			{Email: "two@example.com", FullName: "Two Candidate", Position: "Backend Engineer"},
			{Email: "three@example.com", FullName: "Three Candidate", Position: "Backend Engineer"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 3, response.SuccessfullyScheduled)
	require.Zero(t, response.Failed)

	require.Equal(t, fix.interviewer, response.Interviews[0].InterviewerID)
	require.Equal(t, secondInterviewer, response.Interviews[1].InterviewerID)
	require.Equal(t, fix.interviewer, response.Interviews[2].InterviewerID)

	// The third candidate lands on the first interviewer's next buffered slot.
	require.Equal(t, at(testDay, 9, 0), response.Interviews[0].ScheduledAt)
	require.Equal(t, at(testDay, 10, 30), response.Interviews[2].ScheduledAt)

	created, err := fix.candidates.FindByEmail(context.Background(), "one@example.com")
	require.NoError(t, err)
	require.Equal(t, "bulk_import", created.Source)
}

func TestBulkScheduleReportsPerCandidateFailures(t *testing.T) {
	fix := newSchedulingFixture(t, nil)

	saturday := testDay.AddDate(0, 0, 4)
	response, err := fix.svc.BulkSchedule(context.Background(), fix.admin, dto.BulkScheduleRequest{
		InterviewType:   string(models.InterviewTypePhoneScreen),
		DurationMinutes: 60,
		DateRangeStart:  at(saturday, 9, 0).Format(time.RFC3339),
		DateRangeEnd:    at(saturday, 17, 0).Format(time.RFC3339),
		InterviewerIDs:  []string{fix.interviewer},
		Candidates: []dto.BulkScheduleCandidate{
			{Email: "weekend@example.com", FullName: "Weekend Candidate", Position: "Backend Engineer"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, response.Failed)
	require.Zero(t, response.SuccessfullyScheduled)
	require.Len(t, response.Errors, 1)
	require.Equal(t, "weekend@example.com", response.Errors[0].Candidate)
}
