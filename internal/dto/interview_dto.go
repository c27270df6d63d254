package dto

import (
	"time"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
)

// InterviewScheduleRequest describes the payload for scheduling an interview.
type InterviewScheduleRequest struct {
	Title              string                 `json:"title" validate:"required,min=3,max=200"`
	Position           string                 `json:"position" validate:"required,min=2,max=100"`
	InterviewType      string                 `json:"interview_type" validate:"required"`
	CandidateID        string                 `json:"candidate_id" validate:"required,uuid4"`
	InterviewerID      string                 `json:"interviewer_id" validate:"required,uuid4"`
	ScheduledAt        string                 `json:"scheduled_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	DurationMinutes    int                    `json:"duration_minutes" validate:"required,gte=15,lte=240"`
	RoundNumber        int                    `json:"round_number" validate:"omitempty,gte=1"`
	RecordingEnabled   *bool                  `json:"recording_enabled"`
	CodeEditorEnabled  bool                   `json:"code_editor_enabled"`
	WhiteboardEnabled  bool                   `json:"whiteboard_enabled"`
	EvaluationCriteria map[string]interface{} `json:"evaluation_criteria"`
}

// InterviewResponse is the serialized representation returned to API clients.
type InterviewResponse struct {
	ID                  string                 `json:"id"`
	Title               string                 `json:"title"`
	Position            string                 `json:"position"`
	InterviewType       string                 `json:"interview_type"`
	Status              string                 `json:"status"`
	CandidateID         string                 `json:"candidate_id"`
	InterviewerID       string                 `json:"interviewer_id"`
	ScheduledAt         time.Time              `json:"scheduled_at"`
	EndTime             time.Time              `json:"end_time"`
	DurationMinutes     int                    `json:"duration_minutes"`
	RoundNumber         int                    `json:"round_number"`
	RoomID              string                 `json:"room_id"`
	MeetingURL          string                 `json:"meeting_url"`
	ActualStartTime     *time.Time             `json:"actual_start_time"`
	ActualEndTime       *time.Time             `json:"actual_end_time"`
	InterviewerJoinedAt *time.Time             `json:"interviewer_joined_at"`
	CandidateJoinedAt   *time.Time             `json:"candidate_joined_at"`
	RecordingEnabled    bool                   `json:"recording_enabled"`
	CodeEditorEnabled   bool                   `json:"code_editor_enabled"`
	WhiteboardEnabled   bool                   `json:"whiteboard_enabled"`
	EvaluationCriteria  map[string]interface{} `json:"evaluation_criteria,omitempty"`
	CancelReason        string                 `json:"cancel_reason,omitempty"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

// NewInterviewResponse converts a model into a DTO.
func NewInterviewResponse(model models.Interview) InterviewResponse {
	return InterviewResponse{
		ID:                  model.ID,
		Title:               model.Title,
		Position:            model.Position,
		InterviewType:       string(model.InterviewType),
		Status:              string(model.Status),
		CandidateID:         model.CandidateID,
		InterviewerID:       model.InterviewerID,
		ScheduledAt:         model.ScheduledAt,
		EndTime:             model.EndTime,
		DurationMinutes:     model.DurationMinutes,
		RoundNumber:         model.RoundNumber,
		RoomID:              model.RoomID,
		MeetingURL:          model.MeetingURL,
		ActualStartTime:     model.ActualStartTime,
		ActualEndTime:       model.ActualEndTime,
		InterviewerJoinedAt: model.InterviewerJoinedAt,
		CandidateJoinedAt:   model.CandidateJoinedAt,
		RecordingEnabled:    model.RecordingEnabled,
		CodeEditorEnabled:   model.CodeEditorEnabled,
		WhiteboardEnabled:   model.WhiteboardEnabled,
		EvaluationCriteria:  model.EvaluationCriteria,
		CancelReason:        model.CancelReason,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
}

// NewInterviewResponseSlice converts a slice of models into DTOs.
func NewInterviewResponseSlice(interviews []models.Interview) []InterviewResponse {
	responses := make([]InterviewResponse, 0, len(interviews))
	for _, interview := range interviews {
		responses = append(responses, NewInterviewResponse(interview))
	}
	return responses
}

// Pagination carries list paging metadata.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// InterviewListResponse is the paginated interview listing.
type InterviewListResponse struct {
	Items      []InterviewResponse `json:"items"`
	Pagination Pagination          `json:"pagination"`
}

// InterviewJoinRequest records a party joining the live session.
type InterviewJoinRequest struct {
	Party string `json:"party" validate:"required,oneof=interviewer candidate"`
}

// InterviewCancelRequest carries the cancellation reason.
type InterviewCancelRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=512"`
}

// InterviewCompleteRequest optionally forces completion of an interview that
// never went through in_progress (asynchronous or offline formats).
type InterviewCompleteRequest struct {
	Override bool `json:"override"`
}

// GuestJoinRequest issues a temporary candidate token for an email-link join.
type GuestJoinRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// GuestJoinResponse carries the short-lived guest credentials.
type GuestJoinResponse struct {
	AccessToken string    `json:"access_token"`
	GuestID     string    `json:"guest_id"`
	FullName    string    `json:"full_name"`
	RoomID      string    `json:"room_id"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// BulkScheduleCandidate is one candidate entry of a bulk scheduling run.
type BulkScheduleCandidate struct {
	Email     string `json:"email" validate:"required,email"`
	FullName  string `json:"full_name" validate:"required,min=2"`
	Position  string `json:"position" validate:"required,min=2"`
	ResumeURL string `json:"resume_url"`
}

// BulkScheduleRequest schedules many candidates across a pool of interviewers.
type BulkScheduleRequest struct {
	InterviewType     string                  `json:"interview_type" validate:"required"`
	DurationMinutes   int                     `json:"duration_minutes" validate:"required,gte=15,lte=240"`
	DateRangeStart    string                  `json:"date_range_start" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	DateRangeEnd      string                  `json:"date_range_end" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	InterviewerIDs    []string                `json:"interviewer_ids" validate:"required,min=1,dive,uuid4"`
	AutoAssign        bool                    `json:"auto_assign"`
	Candidates        []BulkScheduleCandidate `json:"candidates" validate:"required,min=1,dive"`
	RecordingEnabled  bool                    `json:"recording_enabled"`
	CodeEditorEnabled bool                    `json:"code_editor_enabled"`
	WhiteboardEnabled bool                    `json:"whiteboard_enabled"`
}

// BulkScheduleError names the candidate whose booking failed and why.
type BulkScheduleError struct {
	Candidate string `json:"candidate"`
	Error     string `json:"error"`
}

// BulkScheduleResponse summarizes a bulk scheduling run.
type BulkScheduleResponse struct {
	TotalCandidates       int                 `json:"total_candidates"`
	SuccessfullyScheduled int                 `json:"successfully_scheduled"`
	Failed                int                 `json:"failed"`
	Interviews            []InterviewResponse `json:"interviews"`
	Errors                []BulkScheduleError `json:"errors"`
}
