package dto

import (
	"time"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
)

// NotificationCreateRequest describes a message to persist and fan out.
type NotificationCreateRequest struct {
	UserID  string                 `json:"user_id" validate:"required"`
	Type    string                 `json:"type" validate:"required,min=2,max=64"`
	Title   string                 `json:"title" validate:"max=255"`
	Message string                 `json:"message" validate:"required,min=1"`
	Data    map[string]interface{} `json:"data"`
}

// NotificationResponse is the serialized notification.
type NotificationResponse struct {
	ID        uint                   `json:"id"`
	UserID    string                 `json:"user_id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Read      bool                   `json:"read"`
	CreatedAt time.Time              `json:"created_at"`
}

// NewNotificationResponse converts a model into a DTO.
func NewNotificationResponse(model models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        model.ID,
		UserID:    model.UserID,
		Type:      model.Type,
		Title:     model.Title,
		Message:   model.Message,
		Data:      model.Data,
		Read:      model.Read,
		CreatedAt: model.CreatedAt,
	}
}

// NewNotificationResponseSlice converts a slice of models into DTOs.
func NewNotificationResponseSlice(notifications []models.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		responses = append(responses, NewNotificationResponse(notification))
	}
	return responses
}
