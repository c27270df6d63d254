package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/domainerr"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/dto"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
)

type memSnapshotRepo struct {
	code       []models.CodeSnapshot
	whiteboard []models.WhiteboardSnapshot
}

func (m *memSnapshotRepo) CreateCode(ctx context.Context, snapshot *models.CodeSnapshot) error {
	m.code = append(m.code, *snapshot)
	return nil
}

func (m *memSnapshotRepo) CreateWhiteboard(ctx context.Context, snapshot *models.WhiteboardSnapshot) error {
	m.whiteboard = append(m.whiteboard, *snapshot)
	return nil
}

func (m *memSnapshotRepo) ListCodeByInterview(ctx context.Context, interviewID string) ([]models.CodeSnapshot, error) {
	matched := make([]models.CodeSnapshot, 0)
	for _, snapshot := range m.code {
		if snapshot.InterviewID == interviewID {
			matched = append(matched, snapshot)
		}
	}
	return matched, nil
}

func (m *memSnapshotRepo) ListWhiteboardByInterview(ctx context.Context, interviewID string) ([]models.WhiteboardSnapshot, error) {
	matched := make([]models.WhiteboardSnapshot, 0)
	for _, snapshot := range m.whiteboard {
		if snapshot.InterviewID == interviewID {
			matched = append(matched, snapshot)
		}
	}
	return matched, nil
}

type snapshotFixture struct {
	svc        SnapshotService
	concrete   *snapshotService
	snapshots  *memSnapshotRepo
	interviews *memInterviewRepo
	interview  models.Interview
}

func newSnapshotFixture(t *testing.T) *snapshotFixture {
	t.Helper()

	interviews := newMemInterviewRepo()
	snapshots := &memSnapshotRepo{}
	validate := validator.New(validator.WithRequiredStructEnabled())

	interview := models.Interview{
		ID:                uuid.NewString(),
		Title:             "Backend Technical",
		InterviewType:     models.InterviewTypeTechnical,
		Status:            models.InterviewStatusInProgress,
		CandidateID:       uuid.NewString(),
		InterviewerID:     uuid.NewString(),
		ScheduledAt:       at(testDay, 10, 0),
		EndTime:           at(testDay, 11, 0),
		RoomID:            "room_" + uuid.NewString()[:8],
		CodeEditorEnabled: true,
		WhiteboardEnabled: true,
	}
	interviews.put(interview)

	svc := NewSnapshotService(snapshots, interviews, validate, testLogger())
	concrete := svc.(*snapshotService)
	concrete.now = func() time.Time { return at(testDay, 10, 20) }

	return &snapshotFixture{
		svc:        svc,
		concrete:   concrete,
		snapshots:  snapshots,
		interviews: interviews,
		interview:  interview,
	}
}

func TestSnapshotSaveCode(t *testing.T) {
	fix := newSnapshotFixture(t)
	candidate := Actor{ID: fix.interview.CandidateID, Role: models.RoleCandidate}

	response, err := fix.svc.SaveCode(context.Background(), candidate, fix.interview.ID, dto.CodeSnapshotCreateRequest{
		Language: "go",
		Code:     "package main",
	})
	require.NoError(t, err)
	require.Equal(t, candidate.ID, response.AuthorID)
	require.Equal(t, at(testDay, 10, 20), response.CapturedAt, "capture time defaults to now")

	explicit := at(testDay, 10, 25)
	response, err = fix.svc.SaveCode(context.Background(), candidate, fix.interview.ID, dto.CodeSnapshotCreateRequest{
		Language:   "go",
		Code:       "package main\n\nfunc main() {}",
		CapturedAt: explicit.Format(time.RFC3339),
	})
	require.NoError(t, err)
	require.Equal(t, explicit, response.CapturedAt)

	listed, err := fix.svc.ListCode(context.Background(), candidate, fix.interview.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
}

func TestSnapshotSaveCodeRequiresEnabledTool(t *testing.T) {
	fix := newSnapshotFixture(t)
	candidate := Actor{ID: fix.interview.CandidateID, Role: models.RoleCandidate}

	disabled := fix.interview
	disabled.CodeEditorEnabled = false
	fix.interviews.put(disabled)

	_, err := fix.svc.SaveCode(context.Background(), candidate, fix.interview.ID, dto.CodeSnapshotCreateRequest{
		Language: "go",
		Code:     "package main",
	})
	require.True(t, domainerr.IsValidation(err))
}

func TestSnapshotSaveCodeRequiresLiveInterview(t *testing.T) {
	fix := newSnapshotFixture(t)
	candidate := Actor{ID: fix.interview.CandidateID, Role: models.RoleCandidate}

	done := fix.interview
	done.Status = models.InterviewStatusCompleted
	fix.interviews.put(done)

	_, err := fix.svc.SaveCode(context.Background(), candidate, fix.interview.ID, dto.CodeSnapshotCreateRequest{
		Language: "go",
		Code:     "package main",
	})
	require.True(t, domainerr.IsValidation(err))
}

func TestSnapshotSaveWhiteboard(t *testing.T) {
	fix := newSnapshotFixture(t)
	guest := Actor{ID: uuid.NewString(), Role: models.RoleCandidate, Guest: true, InterviewID: fix.interview.ID}

	response, err := fix.svc.SaveWhiteboard(context.Background(), guest, fix.interview.ID, dto.WhiteboardSnapshotCreateRequest{
		CanvasData: map[string]interface{}{"shapes": []interface{}{"rect"}},
	})
	require.NoError(t, err)
	require.Equal(t, guest.ID, response.AuthorID)

	listed, err := fix.svc.ListWhiteboard(context.Background(), guest, fix.interview.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestSnapshotForbiddenForOutsiders(t *testing.T) {
	fix := newSnapshotFixture(t)
	outsider := Actor{ID: uuid.NewString(), Role: models.RoleCandidate}

	_, err := fix.svc.SaveCode(context.Background(), outsider, fix.interview.ID, dto.CodeSnapshotCreateRequest{
		Language: "go",
		Code:     "package main",
	})
	require.ErrorIs(t, err, domainerr.ErrForbidden)

	_, err = fix.svc.ListCode(context.Background(), outsider, fix.interview.ID)
	require.ErrorIs(t, err, domainerr.ErrForbidden)
}
