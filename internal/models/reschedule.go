package models

import (
	"time"

	"gorm.io/datatypes"
)

// RescheduleRequest records a proposal to move an interview to one of a set of
// alternative times. ResolvedAt is set exactly once, when the request leaves
// pending; a resolved request never changes again.
type RescheduleRequest struct {
	ID            string                         `gorm:"type:uuid;primaryKey" json:"id"`
	InterviewID   string                         `gorm:"type:uuid;not null;index" json:"interview_id"`
	RequestedBy   string                         `gorm:"type:uuid;not null" json:"requested_by"`
	Reason        string                         `gorm:"size:512;not null" json:"reason"`
	ProposedTimes datatypes.JSONSlice[time.Time] `json:"proposed_times"`
	Status        RescheduleStatus               `gorm:"size:16;not null;default:pending" json:"status"`
	ChosenTime    *time.Time                     `json:"chosen_time"`
	// NewInterviewID points at the replacement interview created on approval.
	NewInterviewID string     `gorm:"type:uuid" json:"new_interview_id"`
	ResolvedAt     *time.Time `json:"resolved_at"`
	ResolvedBy     string     `gorm:"type:uuid" json:"resolved_by"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Resolved reports whether the request has left the pending state.
func (r RescheduleRequest) Resolved() bool {
	return r.Status != RescheduleStatusPending
}

// Proposes reports whether the instant is one of the proposed times.
func (r RescheduleRequest) Proposes(at time.Time) bool {
	for _, proposed := range r.ProposedTimes {
		if proposed.Equal(at) {
			return true
		}
	}
	return false
}
