package models

import (
	"time"

	"gorm.io/datatypes"
)

// CodeSnapshot is an immutable point-in-time capture of the collaborative
// editor. Snapshots are append-only and never mutated after creation.
type CodeSnapshot struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	InterviewID string    `gorm:"type:uuid;not null;index" json:"interview_id"`
	AuthorID    string    `gorm:"type:uuid;not null" json:"author_id"`
	Language    string    `gorm:"size:64;not null" json:"language"`
	Code        string    `gorm:"type:text;not null" json:"code"`
	CapturedAt  time.Time `gorm:"not null" json:"captured_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// WhiteboardSnapshot is an immutable capture of the whiteboard canvas. The
// rendered image, if any, lives in object storage; only its location is kept.
type WhiteboardSnapshot struct {
	ID          string            `gorm:"type:uuid;primaryKey" json:"id"`
	InterviewID string            `gorm:"type:uuid;not null;index" json:"interview_id"`
	AuthorID    string            `gorm:"type:uuid;not null" json:"author_id"`
	CanvasData  datatypes.JSONMap `gorm:"type:json" json:"canvas_data"`
	ImageURL    string            `gorm:"size:512" json:"image_url"`
	CapturedAt  time.Time         `gorm:"not null" json:"captured_at"`
	CreatedAt   time.Time         `json:"created_at"`
}
