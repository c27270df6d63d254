package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/dto"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/service"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/utils"
)

// SnapshotHandler serves the code and whiteboard capture endpoints.
type SnapshotHandler struct {
	service service.SnapshotService
	logger  zerolog.Logger
}

// NewSnapshotHandler constructs the handler instance.
func NewSnapshotHandler(service service.SnapshotService, logger zerolog.Logger) *SnapshotHandler {
	return &SnapshotHandler{
		service: service,
		logger:  logger.With().Str("component", "snapshot_handler").Logger(),
	}
}

// Register wires the snapshot routes.
func (h *SnapshotHandler) Register(router fiber.Router) {
	router.Post("/interviews/:id/snapshots/code", h.saveCode)
	router.Get("/interviews/:id/snapshots/code", h.listCode)
	router.Post("/interviews/:id/snapshots/whiteboard", h.saveWhiteboard)
	router.Get("/interviews/:id/snapshots/whiteboard", h.listWhiteboard)
}

func (h *SnapshotHandler) saveCode(c *fiber.Ctx) error {
	var payload dto.CodeSnapshotCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.SaveCode(c.UserContext(), actor(c), c.Params("id"), payload)
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "code snapshot saved", response)
}

func (h *SnapshotHandler) listCode(c *fiber.Ctx) error {
	response, err := h.service.ListCode(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccess(c, "code snapshots retrieved", response)
}

func (h *SnapshotHandler) saveWhiteboard(c *fiber.Ctx) error {
	var payload dto.WhiteboardSnapshotCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.SaveWhiteboard(c.UserContext(), actor(c), c.Params("id"), payload)
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "whiteboard snapshot saved", response)
}

func (h *SnapshotHandler) listWhiteboard(c *fiber.Ctx) error {
	response, err := h.service.ListWhiteboard(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccess(c, "whiteboard snapshots retrieved", response)
}
