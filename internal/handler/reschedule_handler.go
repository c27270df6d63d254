package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/dto"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/service"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/utils"
)

// RescheduleHandler serves the reschedule negotiation endpoints.
type RescheduleHandler struct {
	service service.RescheduleService
	logger  zerolog.Logger
}

// NewRescheduleHandler constructs the handler instance.
func NewRescheduleHandler(service service.RescheduleService, logger zerolog.Logger) *RescheduleHandler {
	return &RescheduleHandler{
		service: service,
		logger:  logger.With().Str("component", "reschedule_handler").Logger(),
	}
}

// Register wires the reschedule routes.
func (h *RescheduleHandler) Register(router fiber.Router) {
	router.Post("/interviews/:id/reschedule", h.request)
	router.Get("/interviews/:id/reschedules", h.list)
	router.Post("/reschedules/:id/resolve", h.resolve)
}

func (h *RescheduleHandler) request(c *fiber.Ctx) error {
	var payload dto.RescheduleCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Request(c.UserContext(), actor(c), c.Params("id"), payload)
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "reschedule requested", response)
}

func (h *RescheduleHandler) list(c *fiber.Ctx) error {
	response, err := h.service.ListByInterview(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccess(c, "reschedule requests retrieved", response)
}

func (h *RescheduleHandler) resolve(c *fiber.Ctx) error {
	var payload dto.RescheduleResolveRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Resolve(c.UserContext(), actor(c), c.Params("id"), payload)
	if err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("reschedule resolution rejected")
		return sendDomainError(c, err)
	}

	return utils.SendSuccess(c, "reschedule resolved", response)
}
