package models

import "time"

// Recording tracks one recording attempt for an interview. At most one
// recording per interview may be in an active state (recording or processing)
// at a time; failed attempts stay in history.
type Recording struct {
	ID              string          `gorm:"type:uuid;primaryKey" json:"id"`
	InterviewID     string          `gorm:"type:uuid;not null;index" json:"interview_id"`
	Status          RecordingStatus `gorm:"size:16;not null" json:"status"`
	StartedBy       string          `gorm:"type:uuid" json:"started_by"`
	DurationSeconds int             `json:"duration_seconds"`
	FileSizeBytes   int64           `json:"file_size_bytes"`
	VideoURL        string          `gorm:"size:512" json:"video_url"`
	FailureReason   string          `gorm:"size:512" json:"failure_reason"`
	StartedAt       time.Time       `gorm:"not null" json:"started_at"`
	EndedAt         *time.Time      `json:"ended_at"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
