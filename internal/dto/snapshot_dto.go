package dto

import (
	"time"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
)

// CodeSnapshotCreateRequest captures the collaborative editor state.
type CodeSnapshotCreateRequest struct {
	Language   string `json:"language" validate:"required,min=1,max=64"`
	Code       string `json:"code" validate:"required,max=100000"`
	CapturedAt string `json:"captured_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// WhiteboardSnapshotCreateRequest captures the whiteboard canvas.
type WhiteboardSnapshotCreateRequest struct {
	CanvasData map[string]interface{} `json:"canvas_data" validate:"required"`
	ImageURL   string                 `json:"image_url" validate:"omitempty,url"`
	CapturedAt string                 `json:"captured_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// CodeSnapshotResponse is the serialized code capture.
type CodeSnapshotResponse struct {
	ID          string    `json:"id"`
	InterviewID string    `json:"interview_id"`
	AuthorID    string    `json:"author_id"`
	Language    string    `json:"language"`
	Code        string    `json:"code"`
	CapturedAt  time.Time `json:"captured_at"`
}

// NewCodeSnapshotResponse converts a model into a DTO.
func NewCodeSnapshotResponse(model models.CodeSnapshot) CodeSnapshotResponse {
	return CodeSnapshotResponse{
		ID:          model.ID,
		InterviewID: model.InterviewID,
		AuthorID:    model.AuthorID,
		Language:    model.Language,
		Code:        model.Code,
		CapturedAt:  model.CapturedAt,
	}
}

// NewCodeSnapshotResponseSlice converts a slice of models into DTOs.
func NewCodeSnapshotResponseSlice(snapshots []models.CodeSnapshot) []CodeSnapshotResponse {
	responses := make([]CodeSnapshotResponse, 0, len(snapshots))
	for _, snapshot := range snapshots {
		responses = append(responses, NewCodeSnapshotResponse(snapshot))
	}
	return responses
}

// WhiteboardSnapshotResponse is the serialized whiteboard capture.
type WhiteboardSnapshotResponse struct {
	ID          string                 `json:"id"`
	InterviewID string                 `json:"interview_id"`
	AuthorID    string                 `json:"author_id"`
	CanvasData  map[string]interface{} `json:"canvas_data"`
	ImageURL    string                 `json:"image_url"`
	CapturedAt  time.Time              `json:"captured_at"`
}

// NewWhiteboardSnapshotResponse converts a model into a DTO.
func NewWhiteboardSnapshotResponse(model models.WhiteboardSnapshot) WhiteboardSnapshotResponse {
	return WhiteboardSnapshotResponse{
		ID:          model.ID,
		InterviewID: model.InterviewID,
		AuthorID:    model.AuthorID,
		CanvasData:  model.CanvasData,
		ImageURL:    model.ImageURL,
		CapturedAt:  model.CapturedAt,
	}
}

// NewWhiteboardSnapshotResponseSlice converts a slice of models into DTOs.
func NewWhiteboardSnapshotResponseSlice(snapshots []models.WhiteboardSnapshot) []WhiteboardSnapshotResponse {
	responses := make([]WhiteboardSnapshotResponse, 0, len(snapshots))
	for _, snapshot := range snapshots {
		responses = append(responses, NewWhiteboardSnapshotResponse(snapshot))
	}
	return responses
}
