package dto

import (
	"time"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
)

// AvailabilitySetRequest replaces an interviewer's availability record.
type AvailabilitySetRequest struct {
	Weekdays      []string `json:"weekdays" validate:"required,min=1,dive,required"`
	DayStart      string   `json:"day_start" validate:"required"`
	DayEnd        string   `json:"day_end" validate:"required"`
	BufferMinutes int      `json:"buffer_minutes" validate:"gte=0"`
	MaxPerDay     int      `json:"max_per_day" validate:"required,gte=1"`
	BlackoutDates []string `json:"blackout_dates" validate:"omitempty,dive,datetime=2006-01-02"`
}

// AvailabilityResponse is the serialized availability record.
type AvailabilityResponse struct {
	InterviewerID string    `json:"interviewer_id"`
	Weekdays      []string  `json:"weekdays"`
	DayStart      string    `json:"day_start"`
	DayEnd        string    `json:"day_end"`
	BufferMinutes int       `json:"buffer_minutes"`
	MaxPerDay     int       `json:"max_per_day"`
	BlackoutDates []string  `json:"blackout_dates"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewAvailabilityResponse converts a model into a DTO.
func NewAvailabilityResponse(model models.InterviewerAvailability) AvailabilityResponse {
	return AvailabilityResponse{
		InterviewerID: model.InterviewerID,
		Weekdays:      model.Weekdays,
		DayStart:      model.DayStart,
		DayEnd:        model.DayEnd,
		BufferMinutes: model.BufferMinutes,
		MaxPerDay:     model.MaxPerDay,
		BlackoutDates: model.BlackoutDates,
		UpdatedAt:     model.UpdatedAt,
	}
}

// SlotResponse is one entry of the per-day availability grid.
type SlotResponse struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
}
