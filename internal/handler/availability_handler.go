package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/dto"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/service"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/utils"
)

// AvailabilityHandler serves the interviewer availability endpoints.
type AvailabilityHandler struct {
	service service.AvailabilityService
	logger  zerolog.Logger
}

// NewAvailabilityHandler constructs the handler instance.
func NewAvailabilityHandler(service service.AvailabilityService, logger zerolog.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		logger:  logger.With().Str("component", "availability_handler").Logger(),
	}
}

// Register wires the availability routes.
func (h *AvailabilityHandler) Register(router fiber.Router) {
	router.Put("/availability/:interviewerID", h.set)
	router.Get("/availability/:interviewerID", h.get)
	router.Get("/availability/:interviewerID/slots", h.slots)
}

func (h *AvailabilityHandler) set(c *fiber.Ctx) error {
	interviewerID := c.Params("interviewerID")
	current := actor(c)
	if !current.IsAdmin() && !(current.IsInterviewer() && current.ID == interviewerID) {
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	}

	var payload dto.AvailabilitySetRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Set(c.UserContext(), interviewerID, payload)
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccess(c, "availability updated", response)
}

func (h *AvailabilityHandler) get(c *fiber.Ctx) error {
	response, err := h.service.Get(c.UserContext(), c.Params("interviewerID"))
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccess(c, "availability retrieved", response)
}

func (h *AvailabilityHandler) slots(c *fiber.Ctx) error {
	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	slots, err := h.service.ListSlots(c.UserContext(), c.Params("interviewerID"), day)
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccess(c, "slots retrieved", slots)
}
