package models

import "strings"

// InterviewStatus is the closed set of interview lifecycle states.
type InterviewStatus string

const (
	InterviewStatusScheduled   InterviewStatus = "scheduled"
	InterviewStatusInProgress  InterviewStatus = "in_progress"
	InterviewStatusCompleted   InterviewStatus = "completed"
	InterviewStatusCancelled   InterviewStatus = "cancelled"
	InterviewStatusRescheduled InterviewStatus = "rescheduled"
	InterviewStatusNoShow      InterviewStatus = "no_show"
)

// Valid reports whether the status is a member of the closed set.
func (s InterviewStatus) Valid() bool {
	switch s {
	case InterviewStatusScheduled, InterviewStatusInProgress, InterviewStatusCompleted,
		InterviewStatusCancelled, InterviewStatusRescheduled, InterviewStatusNoShow:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
func (s InterviewStatus) Terminal() bool {
	switch s {
	case InterviewStatusCompleted, InterviewStatusCancelled, InterviewStatusRescheduled, InterviewStatusNoShow:
		return true
	}
	return false
}

// InterviewType enumerates the supported interview formats.
type InterviewType string

const (
	InterviewTypePhoneScreen  InterviewType = "phone_screen"
	InterviewTypeTechnical    InterviewType = "technical"
	InterviewTypeSystemDesign InterviewType = "system_design"
	InterviewTypeBehavioral   InterviewType = "behavioral"
	InterviewTypeHR           InterviewType = "hr"
	InterviewTypeFinal        InterviewType = "final"
	InterviewTypeMixed        InterviewType = "mixed"
)

// Valid reports whether the type is a member of the closed set.
func (t InterviewType) Valid() bool {
	switch t {
	case InterviewTypePhoneScreen, InterviewTypeTechnical, InterviewTypeSystemDesign,
		InterviewTypeBehavioral, InterviewTypeHR, InterviewTypeFinal, InterviewTypeMixed:
		return true
	}
	return false
}

// Party identifies which side of the interview an event originates from.
type Party string

const (
	PartyInterviewer Party = "interviewer"
	PartyCandidate   Party = "candidate"
)

// Valid reports whether the party is interviewer or candidate.
func (p Party) Valid() bool {
	return p == PartyInterviewer || p == PartyCandidate
}

// Recommendation is the closed set of hiring recommendations.
type Recommendation string

const (
	RecommendationStrongHire   Recommendation = "strong_hire"
	RecommendationHire         Recommendation = "hire"
	RecommendationMaybe        Recommendation = "maybe"
	RecommendationNoHire       Recommendation = "no_hire"
	RecommendationStrongNoHire Recommendation = "strong_no_hire"
)

// Valid reports whether the recommendation is a member of the closed set.
func (r Recommendation) Valid() bool {
	switch r {
	case RecommendationStrongHire, RecommendationHire, RecommendationMaybe,
		RecommendationNoHire, RecommendationStrongNoHire:
		return true
	}
	return false
}

// ConservatismRank orders recommendations from least to most conservative.
// Ties in summaries resolve toward the higher rank, so a split panel never
// rounds up to a hire.
func (r Recommendation) ConservatismRank() int {
	switch r {
	case RecommendationStrongHire:
		return 1
	case RecommendationHire:
		return 2
	case RecommendationMaybe:
		return 3
	case RecommendationNoHire:
		return 4
	case RecommendationStrongNoHire:
		return 5
	}
	return 0
}

// RescheduleStatus is the closed set of reschedule request outcomes.
type RescheduleStatus string

const (
	RescheduleStatusPending  RescheduleStatus = "pending"
	RescheduleStatusApproved RescheduleStatus = "approved"
	RescheduleStatusRejected RescheduleStatus = "rejected"
)

// Valid reports whether the status is a member of the closed set.
func (s RescheduleStatus) Valid() bool {
	switch s {
	case RescheduleStatusPending, RescheduleStatusApproved, RescheduleStatusRejected:
		return true
	}
	return false
}

// RecordingStatus is the closed set of recording lifecycle states.
type RecordingStatus string

const (
	RecordingStatusRecording  RecordingStatus = "recording"
	RecordingStatusProcessing RecordingStatus = "processing"
	RecordingStatusCompleted  RecordingStatus = "completed"
	RecordingStatusFailed     RecordingStatus = "failed"
)

// Valid reports whether the status is a member of the closed set.
func (s RecordingStatus) Valid() bool {
	switch s {
	case RecordingStatusRecording, RecordingStatusProcessing, RecordingStatusCompleted, RecordingStatusFailed:
		return true
	}
	return false
}

// Active reports whether the recording still occupies the interview's single
// active-recording slot.
func (s RecordingStatus) Active() bool {
	return s == RecordingStatusRecording || s == RecordingStatusProcessing
}

// Role names used in authorization checks.
const (
	RoleAdmin       = "admin"
	RoleInterviewer = "interviewer"
	RoleCandidate   = "candidate"
)

var weekdayNames = map[string]struct{}{
	"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {},
	"friday": {}, "saturday": {}, "sunday": {},
}

// ValidWeekday reports whether name is a lowercase English weekday.
func ValidWeekday(name string) bool {
	_, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
