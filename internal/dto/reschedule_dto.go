package dto

import (
	"time"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
)

// RescheduleCreateRequest proposes alternative times for an interview.
type RescheduleCreateRequest struct {
	Reason        string   `json:"reason" validate:"required,min=10,max=500"`
	ProposedTimes []string `json:"proposed_times" validate:"required,min=1,max=5,dive,datetime=2006-01-02T15:04:05Z07:00"`
}

// RescheduleResolveRequest finalizes a pending reschedule request.
type RescheduleResolveRequest struct {
	Decision   string `json:"decision" validate:"required,oneof=approved rejected"`
	ChosenTime string `json:"chosen_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// RescheduleResponse is the serialized reschedule request.
type RescheduleResponse struct {
	ID             string      `json:"id"`
	InterviewID    string      `json:"interview_id"`
	RequestedBy    string      `json:"requested_by"`
	Reason         string      `json:"reason"`
	ProposedTimes  []time.Time `json:"proposed_times"`
	Status         string      `json:"status"`
	ChosenTime     *time.Time  `json:"chosen_time"`
	NewInterviewID string      `json:"new_interview_id,omitempty"`
	ResolvedAt     *time.Time  `json:"resolved_at"`
	CreatedAt      time.Time   `json:"created_at"`
}

// NewRescheduleResponse converts a model into a DTO.
func NewRescheduleResponse(model models.RescheduleRequest) RescheduleResponse {
	return RescheduleResponse{
		ID:             model.ID,
		InterviewID:    model.InterviewID,
		RequestedBy:    model.RequestedBy,
		Reason:         model.Reason,
		ProposedTimes:  model.ProposedTimes,
		Status:         string(model.Status),
		ChosenTime:     model.ChosenTime,
		NewInterviewID: model.NewInterviewID,
		ResolvedAt:     model.ResolvedAt,
		CreatedAt:      model.CreatedAt,
	}
}

// NewRescheduleResponseSlice converts a slice of models into DTOs.
func NewRescheduleResponseSlice(requests []models.RescheduleRequest) []RescheduleResponse {
	responses := make([]RescheduleResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, NewRescheduleResponse(request))
	}
	return responses
}
