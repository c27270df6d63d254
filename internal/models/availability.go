package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

const clockLayout = "15:04"

// InterviewerAvailability is the single mutable availability record per
// interviewer: weekly window, buffer between bookings, daily cap, and blackout
// dates. Writes replace the whole record (latest write wins).
type InterviewerAvailability struct {
	ID            uint                         `gorm:"primaryKey" json:"id"`
	InterviewerID string                       `gorm:"type:uuid;uniqueIndex;not null" json:"interviewer_id"`
	Weekdays      datatypes.JSONSlice[string]  `json:"weekdays"`
	DayStart      string                       `gorm:"size:5;not null" json:"day_start"`
	DayEnd        string                       `gorm:"size:5;not null" json:"day_end"`
	BufferMinutes int                          `gorm:"not null;default:0" json:"buffer_minutes"`
	MaxPerDay     int                          `gorm:"not null;default:5" json:"max_per_day"`
	BlackoutDates datatypes.JSONSlice[string]  `json:"blackout_dates"`
	CreatedAt     time.Time                    `json:"created_at"`
	UpdatedAt     time.Time                    `json:"updated_at"`
}

// Validate checks the structural invariants of the record.
func (a InterviewerAvailability) Validate() error {
	start, err := time.Parse(clockLayout, a.DayStart)
	if err != nil {
		return fmt.Errorf("day_start must be HH:MM: %w", err)
	}
	end, err := time.Parse(clockLayout, a.DayEnd)
	if err != nil {
		return fmt.Errorf("day_end must be HH:MM: %w", err)
	}
	if !start.Before(end) {
		return fmt.Errorf("day_start must be before day_end")
	}
	if a.BufferMinutes < 0 {
		return fmt.Errorf("buffer_minutes must not be negative")
	}
	if a.MaxPerDay <= 0 {
		return fmt.Errorf("max_per_day must be positive")
	}
	for _, day := range a.Weekdays {
		if !ValidWeekday(day) {
			return fmt.Errorf("unknown weekday %q", day)
		}
	}
	for _, date := range a.BlackoutDates {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return fmt.Errorf("blackout date must be YYYY-MM-DD: %w", err)
		}
	}
	return nil
}

// AllowsWeekday reports whether the weekly window covers the given weekday.
func (a InterviewerAvailability) AllowsWeekday(day time.Weekday) bool {
	name := strings.ToLower(day.String())
	for _, candidate := range a.Weekdays {
		if strings.ToLower(candidate) == name {
			return true
		}
	}
	return false
}

// WithinDailyWindow reports whether [start, start+duration) stays inside the
// daily start/end window. Times are compared in the instant's own location.
func (a InterviewerAvailability) WithinDailyWindow(start time.Time, duration time.Duration) bool {
	windowStart, err := time.Parse(clockLayout, a.DayStart)
	if err != nil {
		return false
	}
	windowEnd, err := time.Parse(clockLayout, a.DayEnd)
	if err != nil {
		return false
	}

	startMinutes := start.Hour()*60 + start.Minute()
	endMinutes := startMinutes + int(duration.Minutes())
	return startMinutes >= windowStart.Hour()*60+windowStart.Minute() &&
		endMinutes <= windowEnd.Hour()*60+windowEnd.Minute()
}

// IsBlackout reports whether the instant's date is in the blackout set.
func (a InterviewerAvailability) IsBlackout(at time.Time) bool {
	date := at.Format("2006-01-02")
	for _, blackout := range a.BlackoutDates {
		if blackout == date {
			return true
		}
	}
	return false
}
