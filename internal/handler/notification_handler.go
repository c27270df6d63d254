package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/dto"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/middleware"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/service"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/utils"
)

// NotificationHandler serves the per-user notification feed.
type NotificationHandler struct {
	service service.NotificationService
	logger  zerolog.Logger
}

// NewNotificationHandler constructs the handler instance.
func NewNotificationHandler(service service.NotificationService, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger.With().Str("component", "notification_handler").Logger(),
	}
}

// Register wires the notification routes. Publishing is reserved for admins;
// the usual producers are the domain services themselves.
func (h *NotificationHandler) Register(router fiber.Router) {
	router.Get("/notifications", h.list)
	router.Post("/notifications", middleware.WithAuth(h.publish, middleware.AuthOptions{Role: middleware.AuthRoleAdmin}))
	router.Post("/notifications/:id/read", h.markRead)
}

func (h *NotificationHandler) publish(c *fiber.Ctx) error {
	var payload dto.NotificationCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Publish(c.UserContext(), payload)
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "notification published", response)
}

func (h *NotificationHandler) list(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}
	offset, err := parseQueryInt(c, "offset")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid offset")
	}

	response, err := h.service.List(c.UserContext(), actor(c).ID, limit, offset)
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccess(c, "notifications retrieved", response)
}

func (h *NotificationHandler) markRead(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid notification id")
	}

	response, err := h.service.MarkRead(c.UserContext(), uint(id), actor(c).ID)
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccess(c, "notification marked read", response)
}
