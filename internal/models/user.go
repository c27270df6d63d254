package models

import "time"

// Interviewer is the local reference record for an interviewer identity.
// Identity provisioning lives in the external auth system; the core only needs
// the reference plus profile fields surfaced in schedule listings.
type Interviewer struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FullName  string    `gorm:"size:255;not null" json:"full_name"`
	Title     string    `gorm:"size:255" json:"title"`
	Status    string    `gorm:"size:32;not null;default:active" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Candidate is the local reference record for a candidate.
type Candidate struct {
	ID              string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	FullName        string    `gorm:"size:255;not null" json:"full_name"`
	PositionApplied string    `gorm:"size:255" json:"position_applied"`
	ResumeURL       string    `gorm:"size:512" json:"resume_url"`
	Source          string    `gorm:"size:64" json:"source"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
