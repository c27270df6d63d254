package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/domainerr"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// testDay is a Tuesday, inside the default weekly window used by fixtures.
var testDay = time.Date(2027, time.March, 2, 0, 0, 0, 0, time.UTC)

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func weekdayAvailability(interviewerID string) models.InterviewerAvailability {
	return models.InterviewerAvailability{
		InterviewerID: interviewerID,
		Weekdays:      datatypes.JSONSlice[string]{"monday", "tuesday", "wednesday", "thursday", "friday"},
		DayStart:      "09:00",
		DayEnd:        "17:00",
		BufferMinutes: 15,
		MaxPerDay:     5,
	}
}

// memInterviewRepo mirrors the buffered overlap guard of the real repository
// so scheduling tests exercise the same commit semantics without a database.
// The mutex makes Schedule an atomic check-then-insert, which the concurrency
// tests rely on.
type memInterviewRepo struct {
	mu       sync.Mutex
	items    map[string]models.Interview
	requests *memRescheduleRepo
}

func newMemInterviewRepo() *memInterviewRepo {
	return &memInterviewRepo{items: make(map[string]models.Interview)}
}

func (m *memInterviewRepo) put(interview models.Interview) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[interview.ID] = interview
}

func (m *memInterviewRepo) get(id string) (models.Interview, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	interview, ok := m.items[id]
	return interview, ok
}

func (m *memInterviewRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *memInterviewRepo) GetByID(ctx context.Context, id string) (models.Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	interview, ok := m.items[id]
	if !ok {
		return models.Interview{}, gorm.ErrRecordNotFound
	}
	return interview, nil
}

func (m *memInterviewRepo) GetByRoomID(ctx context.Context, roomID string) (models.Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, interview := range m.items {
		if interview.RoomID == roomID {
			return interview, nil
		}
	}
	return models.Interview{}, gorm.ErrRecordNotFound
}

func (m *memInterviewRepo) List(ctx context.Context, filter repository.InterviewFilter) ([]models.Interview, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := make([]models.Interview, 0)
	for _, interview := range m.items {
		if filter.Status != "" && interview.Status != filter.Status {
			continue
		}
		if filter.InterviewType != "" && interview.InterviewType != filter.InterviewType {
			continue
		}
		if filter.InterviewerID != "" && interview.InterviewerID != filter.InterviewerID {
			continue
		}
		if filter.CandidateID != "" && interview.CandidateID != filter.CandidateID {
			continue
		}
		matched = append(matched, interview)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ScheduledAt.After(matched[j].ScheduledAt)
	})
	return matched, int64(len(matched)), nil
}

func (m *memInterviewRepo) Update(ctx context.Context, interview *models.Interview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[interview.ID] = *interview
	return nil
}

func (m *memInterviewRepo) Schedule(ctx context.Context, interview *models.Interview, bufferMinutes int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.conflictLocked(*interview, bufferMinutes, ""); err != nil {
		return err
	}
	if interview.ID == "" {
		interview.ID = uuid.NewString()
	}
	m.items[interview.ID] = *interview
	return nil
}

func (m *memInterviewRepo) Reschedule(ctx context.Context, old *models.Interview, replacement *models.Interview, request *models.RescheduleRequest, bufferMinutes int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	previous, had := m.items[old.ID]
	m.items[old.ID] = *old
	if err := m.conflictLocked(*replacement, bufferMinutes, ""); err != nil {
		if had {
			m.items[old.ID] = previous
		}
		return err
	}
	if replacement.ID == "" {
		replacement.ID = uuid.NewString()
	}
	m.items[replacement.ID] = *replacement
	if m.requests != nil {
		m.requests.put(*request)
	}
	return nil
}

func (m *memInterviewRepo) conflictLocked(interview models.Interview, bufferMinutes int, excludeID string) error {
	buffer := time.Duration(bufferMinutes) * time.Minute
	windowStart := interview.ScheduledAt.Add(-buffer)
	windowEnd := interview.EndTime.Add(buffer)
	for _, existing := range m.items {
		if existing.ID == excludeID || existing.InterviewerID != interview.InterviewerID {
			continue
		}
		if existing.Status != models.InterviewStatusScheduled && existing.Status != models.InterviewStatusInProgress {
			continue
		}
		if existing.ScheduledAt.Before(windowEnd) && existing.EndTime.After(windowStart) {
			return domainerr.Conflict("interviewer already booked in the requested window", existing.ID)
		}
	}
	return nil
}

func (m *memInterviewRepo) CountActiveOnDay(ctx context.Context, interviewerID string, day time.Time) (int64, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, interview := range m.items {
		if interview.InterviewerID != interviewerID {
			continue
		}
		if interview.Status != models.InterviewStatusScheduled && interview.Status != models.InterviewStatusInProgress {
			continue
		}
		if !interview.ScheduledAt.Before(dayStart) && interview.ScheduledAt.Before(dayEnd) {
			count++
		}
	}
	return count, nil
}

func (m *memInterviewRepo) ListActiveBetween(ctx context.Context, interviewerID string, from, to time.Time) ([]models.Interview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	matched := make([]models.Interview, 0)
	for _, interview := range m.items {
		if interview.InterviewerID != interviewerID {
			continue
		}
		if interview.Status != models.InterviewStatusScheduled && interview.Status != models.InterviewStatusInProgress {
			continue
		}
		if interview.ScheduledAt.Before(to) && interview.EndTime.After(from) {
			matched = append(matched, interview)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ScheduledAt.Before(matched[j].ScheduledAt)
	})
	return matched, nil
}

func (m *memInterviewRepo) RoomIDTaken(ctx context.Context, roomID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, interview := range m.items {
		if interview.RoomID == roomID {
			return true, nil
		}
	}
	return false, nil
}

type memAvailabilityRepo struct {
	items map[string]models.InterviewerAvailability
}

func newMemAvailabilityRepo() *memAvailabilityRepo {
	return &memAvailabilityRepo{items: make(map[string]models.InterviewerAvailability)}
}

func (m *memAvailabilityRepo) Upsert(ctx context.Context, availability *models.InterviewerAvailability) error {
	m.items[availability.InterviewerID] = *availability
	return nil
}

func (m *memAvailabilityRepo) GetByInterviewer(ctx context.Context, interviewerID string) (models.InterviewerAvailability, error) {
	availability, ok := m.items[interviewerID]
	if !ok {
		return models.InterviewerAvailability{}, gorm.ErrRecordNotFound
	}
	return availability, nil
}

type memInterviewerRepo struct {
	items map[string]models.Interviewer
}

func newMemInterviewerRepo() *memInterviewerRepo {
	return &memInterviewerRepo{items: make(map[string]models.Interviewer)}
}

func (m *memInterviewerRepo) GetByID(ctx context.Context, id string) (models.Interviewer, error) {
	interviewer, ok := m.items[id]
	if !ok {
		return models.Interviewer{}, gorm.ErrRecordNotFound
	}
	return interviewer, nil
}

func (m *memInterviewerRepo) List(ctx context.Context) ([]models.Interviewer, error) {
	interviewers := make([]models.Interviewer, 0, len(m.items))
	for _, interviewer := range m.items {
		interviewers = append(interviewers, interviewer)
	}
	return interviewers, nil
}

func (m *memInterviewerRepo) Create(ctx context.Context, interviewer *models.Interviewer) error {
	m.items[interviewer.ID] = *interviewer
	return nil
}

type memCandidateRepo struct {
	items map[string]models.Candidate
}

func newMemCandidateRepo() *memCandidateRepo {
	return &memCandidateRepo{items: make(map[string]models.Candidate)}
}

func (m *memCandidateRepo) GetByID(ctx context.Context, id string) (models.Candidate, error) {
	candidate, ok := m.items[id]
	if !ok {
		return models.Candidate{}, gorm.ErrRecordNotFound
	}
	return candidate, nil
}

func (m *memCandidateRepo) FindByEmail(ctx context.Context, email string) (models.Candidate, error) {
	for _, candidate := range m.items {
		if candidate.Email == email {
			return candidate, nil
		}
	}
	return models.Candidate{}, gorm.ErrRecordNotFound
}

func (m *memCandidateRepo) Create(ctx context.Context, candidate *models.Candidate) error {
	m.items[candidate.ID] = *candidate
	return nil
}

type notifyEvent struct {
	UserID  string
	Type    string
	Title   string
	Message string
	Data    map[string]interface{}
}

// recordNotifier captures fan-out calls for assertions.
type recordNotifier struct {
	mu     sync.Mutex
	events []notifyEvent
}

func (n *recordNotifier) Notify(ctx context.Context, userID, notificationType, title, message string, data map[string]interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, notifyEvent{UserID: userID, Type: notificationType, Title: title, Message: message, Data: data})
}

func (n *recordNotifier) byType(notificationType string) []notifyEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	matched := make([]notifyEvent, 0)
	for _, event := range n.events {
		if event.Type == notificationType {
			matched = append(matched, event)
		}
	}
	return matched
}
