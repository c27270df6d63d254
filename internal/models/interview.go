package models

import (
	"time"

	"gorm.io/datatypes"
)

// Interview is one scheduled live session between a candidate and an
// interviewer. It is the aggregation root for evaluations, recordings,
// reschedule requests, and snapshots; children cascade with it. The room id
// is assigned once at scheduling time and never changes.
type Interview struct {
	ID              string          `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string          `gorm:"size:255;not null" json:"title"`
	Position        string          `gorm:"size:255" json:"position"`
	InterviewType   InterviewType   `gorm:"size:32;not null" json:"interview_type"`
	Status          InterviewStatus `gorm:"size:32;not null;index" json:"status"`
	CandidateID     string          `gorm:"type:uuid;not null;index" json:"candidate_id"`
	InterviewerID   string          `gorm:"type:uuid;not null;index" json:"interviewer_id"`
	ScheduledAt     time.Time       `gorm:"not null;index" json:"scheduled_at"`
	EndTime         time.Time       `gorm:"not null" json:"end_time"`
	DurationMinutes int             `gorm:"not null" json:"duration_minutes"`
	RoundNumber     int             `gorm:"not null;default:1" json:"round_number"`
	RoomID          string          `gorm:"size:64;uniqueIndex;not null" json:"room_id"`
	MeetingURL      string          `gorm:"size:255" json:"meeting_url"`

	ActualStartTime     *time.Time `json:"actual_start_time"`
	ActualEndTime       *time.Time `json:"actual_end_time"`
	InterviewerJoinedAt *time.Time `json:"interviewer_joined_at"`
	CandidateJoinedAt   *time.Time `json:"candidate_joined_at"`

	RecordingEnabled   bool `gorm:"not null;default:true" json:"recording_enabled"`
	CodeEditorEnabled  bool `gorm:"not null;default:false" json:"code_editor_enabled"`
	WhiteboardEnabled  bool `gorm:"not null;default:false" json:"whiteboard_enabled"`

	EvaluationCriteria datatypes.JSONMap `gorm:"type:json" json:"evaluation_criteria"`
	CreatedBy          string            `gorm:"type:uuid" json:"created_by"`
	CancelReason       string            `gorm:"size:512" json:"cancel_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Candidate   Candidate   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"candidate"`
	Interviewer Interviewer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"interviewer"`

	Evaluations         []Evaluation         `gorm:"constraint:OnDelete:CASCADE" json:"evaluations,omitempty"`
	Recordings          []Recording          `gorm:"constraint:OnDelete:CASCADE" json:"recordings,omitempty"`
	RescheduleRequests  []RescheduleRequest  `gorm:"constraint:OnDelete:CASCADE" json:"reschedule_requests,omitempty"`
	CodeSnapshots       []CodeSnapshot       `gorm:"constraint:OnDelete:CASCADE" json:"code_snapshots,omitempty"`
	WhiteboardSnapshots []WhiteboardSnapshot `gorm:"constraint:OnDelete:CASCADE" json:"whiteboard_snapshots,omitempty"`
}

// Duration returns the booked duration.
func (i Interview) Duration() time.Duration {
	return time.Duration(i.DurationMinutes) * time.Minute
}

// HasAnyJoin reports whether either party has joined.
func (i Interview) HasAnyJoin() bool {
	return i.InterviewerJoinedAt != nil || i.CandidateJoinedAt != nil
}

// JoinedAt returns the join timestamp recorded for the given party.
func (i Interview) JoinedAt(party Party) *time.Time {
	if party == PartyInterviewer {
		return i.InterviewerJoinedAt
	}
	return i.CandidateJoinedAt
}
