package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification types emitted by the scheduling and lifecycle services.
const (
	NotificationInterviewScheduled   = "interview_scheduled"
	NotificationInterviewCancelled   = "interview_cancelled"
	NotificationInterviewCompleted   = "interview_completed"
	NotificationInterviewRescheduled = "interview_rescheduled"
	NotificationRescheduleRequested  = "reschedule_requested"
)

// Notification is a persisted message targeted at a single user. Delivery
// transport is external; the core only records and fans out the payload.
type Notification struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	UserID    string            `gorm:"type:uuid;index;not null" json:"user_id"`
	Type      string            `gorm:"size:64;not null" json:"type"`
	Title     string            `gorm:"size:255" json:"title"`
	Message   string            `gorm:"type:text;not null" json:"message"`
	Data      datatypes.JSONMap `gorm:"type:json" json:"data"`
	Read      bool              `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
