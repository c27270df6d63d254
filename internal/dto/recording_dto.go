package dto

import (
	"time"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
)

// RecordingFinishRequest records the processed artifact's location and stats.
type RecordingFinishRequest struct {
	VideoURL        string `json:"video_url" validate:"required,url"`
	DurationSeconds int    `json:"duration_seconds" validate:"required,gte=1"`
	FileSizeBytes   int64  `json:"file_size_bytes" validate:"required,gte=1"`
}

// RecordingFailRequest marks a recording as failed with a reason.
type RecordingFailRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=512"`
}

// RecordingResponse is the serialized recording metadata.
type RecordingResponse struct {
	ID              string     `json:"id"`
	InterviewID     string     `json:"interview_id"`
	Status          string     `json:"status"`
	DurationSeconds int        `json:"duration_seconds"`
	FileSizeBytes   int64      `json:"file_size_bytes"`
	VideoURL        string     `json:"video_url"`
	FailureReason   string     `json:"failure_reason,omitempty"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at"`
}

// NewRecordingResponse converts a model into a DTO.
func NewRecordingResponse(model models.Recording) RecordingResponse {
	return RecordingResponse{
		ID:              model.ID,
		InterviewID:     model.InterviewID,
		Status:          string(model.Status),
		DurationSeconds: model.DurationSeconds,
		FileSizeBytes:   model.FileSizeBytes,
		VideoURL:        model.VideoURL,
		FailureReason:   model.FailureReason,
		StartedAt:       model.StartedAt,
		EndedAt:         model.EndedAt,
	}
}

// NewRecordingResponseSlice converts a slice of models into DTOs.
func NewRecordingResponseSlice(recordings []models.Recording) []RecordingResponse {
	responses := make([]RecordingResponse, 0, len(recordings))
	for _, recording := range recordings {
		responses = append(responses, NewRecordingResponse(recording))
	}
	return responses
}
