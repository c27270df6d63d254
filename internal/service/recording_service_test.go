package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/domainerr"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/dto"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
)

type memRecordingRepo struct {
	items map[string]models.Recording
}

func newMemRecordingRepo() *memRecordingRepo {
	return &memRecordingRepo{items: make(map[string]models.Recording)}
}

func (m *memRecordingRepo) Create(ctx context.Context, recording *models.Recording) error {
	m.items[recording.ID] = *recording
	return nil
}

func (m *memRecordingRepo) GetByID(ctx context.Context, id string) (models.Recording, error) {
	recording, ok := m.items[id]
	if !ok {
		return models.Recording{}, gorm.ErrRecordNotFound
	}
	return recording, nil
}

func (m *memRecordingRepo) FindActiveByInterview(ctx context.Context, interviewID string) (models.Recording, error) {
	for _, recording := range m.items {
		if recording.InterviewID == interviewID && recording.Status.Active() {
			return recording, nil
		}
	}
	return models.Recording{}, gorm.ErrRecordNotFound
}

func (m *memRecordingRepo) Update(ctx context.Context, recording *models.Recording) error {
	m.items[recording.ID] = *recording
	return nil
}

func (m *memRecordingRepo) ListByInterview(ctx context.Context, interviewID string) ([]models.Recording, error) {
	matched := make([]models.Recording, 0)
	for _, recording := range m.items {
		if recording.InterviewID == interviewID {
			matched = append(matched, recording)
		}
	}
	return matched, nil
}

type recordingFixture struct {
	svc        RecordingService
	concrete   *recordingService
	recordings *memRecordingRepo
	interviews *memInterviewRepo
	interview  models.Interview
	runner     Actor
}

func newRecordingFixture(t *testing.T) *recordingFixture {
	t.Helper()

	interviews := newMemInterviewRepo()
	recordings := newMemRecordingRepo()
	validate := validator.New(validator.WithRequiredStructEnabled())

	interview := models.Interview{
		ID:               uuid.NewString(),
		Title:            "Backend Technical",
		InterviewType:    models.InterviewTypeTechnical,
		Status:           models.InterviewStatusInProgress,
		CandidateID:      uuid.NewString(),
		InterviewerID:    uuid.NewString(),
		ScheduledAt:      at(testDay, 10, 0),
		EndTime:          at(testDay, 11, 0),
		RoomID:           "room_" + uuid.NewString()[:8],
		RecordingEnabled: true,
	}
	interviews.put(interview)

	svc := NewRecordingService(recordings, interviews, validate, testLogger())
	concrete := svc.(*recordingService)
	concrete.now = func() time.Time { return at(testDay, 10, 5) }

	return &recordingFixture{
		svc:        svc,
		concrete:   concrete,
		recordings: recordings,
		interviews: interviews,
		interview:  interview,
		runner:     Actor{ID: interview.InterviewerID, Role: models.RoleInterviewer},
	}
}

func TestRecordingStart(t *testing.T) {
	fix := newRecordingFixture(t)

	response, err := fix.svc.Start(context.Background(), fix.runner, fix.interview.ID)
	require.NoError(t, err)
	require.Equal(t, string(models.RecordingStatusRecording), response.Status)
	require.Equal(t, at(testDay, 10, 5), response.StartedAt)

	stored, err := fix.recordings.GetByID(context.Background(), response.ID)
	require.NoError(t, err)
	require.Equal(t, fix.runner.ID, stored.StartedBy)
}

func TestRecordingStartRejectsDisabled(t *testing.T) {
	fix := newRecordingFixture(t)

	disabled := fix.interview
	disabled.RecordingEnabled = false
	fix.interviews.put(disabled)

	_, err := fix.svc.Start(context.Background(), fix.runner, fix.interview.ID)
	require.True(t, domainerr.IsValidation(err))
}

func TestRecordingStartRequiresLiveInterview(t *testing.T) {
	fix := newRecordingFixture(t)

	pending := fix.interview
	pending.Status = models.InterviewStatusScheduled
	fix.interviews.put(pending)

	_, err := fix.svc.Start(context.Background(), fix.runner, fix.interview.ID)
	require.True(t, domainerr.IsInvalidTransition(err))
}

func TestRecordingStartConflictsWithActive(t *testing.T) {
	fix := newRecordingFixture(t)

	first, err := fix.svc.Start(context.Background(), fix.runner, fix.interview.ID)
	require.NoError(t, err)

	_, err = fix.svc.Start(context.Background(), fix.runner, fix.interview.ID)
	require.True(t, domainerr.IsConflict(err))
	require.Contains(t, err.Error(), first.ID)
}

func TestRecordingStartForbiddenForCandidate(t *testing.T) {
	fix := newRecordingFixture(t)

	_, err := fix.svc.Start(context.Background(), Actor{ID: fix.interview.CandidateID, Role: models.RoleCandidate}, fix.interview.ID)
	require.ErrorIs(t, err, domainerr.ErrForbidden)
}

func TestRecordingStopMovesToProcessing(t *testing.T) {
	fix := newRecordingFixture(t)

	_, err := fix.svc.Start(context.Background(), fix.runner, fix.interview.ID)
	require.NoError(t, err)

	fix.concrete.now = func() time.Time { return at(testDay, 10, 45) }
	response, err := fix.svc.Stop(context.Background(), fix.runner, fix.interview.ID)
	require.NoError(t, err)
	require.Equal(t, string(models.RecordingStatusProcessing), response.Status)
	require.Equal(t, at(testDay, 10, 45), *response.EndedAt)

	// A processing recording still holds the active slot but cannot be
	// stopped again.
	_, err = fix.svc.Stop(context.Background(), fix.runner, fix.interview.ID)
	require.True(t, domainerr.IsInvalidTransition(err))
}

func TestRecordingStopWithoutActive(t *testing.T) {
	fix := newRecordingFixture(t)

	_, err := fix.svc.Stop(context.Background(), fix.runner, fix.interview.ID)
	require.True(t, domainerr.IsNotFound(err))
}

func TestRecordingFinishProcessing(t *testing.T) {
	fix := newRecordingFixture(t)

	started, err := fix.svc.Start(context.Background(), fix.runner, fix.interview.ID)
	require.NoError(t, err)

	// Still recording; the pipeline callback is premature.
	_, err = fix.svc.FinishProcessing(context.Background(), started.ID, dto.RecordingFinishRequest{
		VideoURL: "https://media.example.com/" + started.ID + ".mp4", DurationSeconds: 1800, FileSizeBytes: 1 << 20,
	})
	require.True(t, domainerr.IsInvalidTransition(err))

	_, err = fix.svc.Stop(context.Background(), fix.runner, fix.interview.ID)
	require.NoError(t, err)

	response, err := fix.svc.FinishProcessing(context.Background(), started.ID, dto.RecordingFinishRequest{
		VideoURL: "https://media.example.com/" + started.ID + ".mp4", DurationSeconds: 1800, FileSizeBytes: 1 << 20,
	})
	require.NoError(t, err)
	require.Equal(t, string(models.RecordingStatusCompleted), response.Status)
	require.Equal(t, 1800, response.DurationSeconds)
}

func TestRecordingMarkFailed(t *testing.T) {
	fix := newRecordingFixture(t)

	started, err := fix.svc.Start(context.Background(), fix.runner, fix.interview.ID)
	require.NoError(t, err)

	response, err := fix.svc.MarkFailed(context.Background(), started.ID, dto.RecordingFailRequest{Reason: "encoder crashed"})
	require.NoError(t, err)
	require.Equal(t, string(models.RecordingStatusFailed), response.Status)
	require.Equal(t, "encoder crashed", response.FailureReason)
	require.NotNil(t, response.EndedAt, "end stamp backfilled")

	// Terminal states cannot fail again.
	_, err = fix.svc.MarkFailed(context.Background(), started.ID, dto.RecordingFailRequest{Reason: "encoder crashed"})
	require.True(t, domainerr.IsInvalidTransition(err))
}

func TestRecordingListByInterview(t *testing.T) {
	fix := newRecordingFixture(t)

	started, err := fix.svc.Start(context.Background(), fix.runner, fix.interview.ID)
	require.NoError(t, err)
	_, err = fix.svc.MarkFailed(context.Background(), started.ID, dto.RecordingFailRequest{Reason: "encoder crashed"})
	require.NoError(t, err)
	_, err = fix.svc.Start(context.Background(), fix.runner, fix.interview.ID)
	require.NoError(t, err)

	listed, err := fix.svc.ListByInterview(context.Background(), fix.runner, fix.interview.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2, "failed attempts stay in history")
}
