package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/dto"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/service"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/utils"
)

// RecordingHandler serves the recording lifecycle endpoints. Start and stop
// are driven by the interviewer; finish and fail by the media pipeline.
type RecordingHandler struct {
	service service.RecordingService
	logger  zerolog.Logger
}

// NewRecordingHandler constructs the handler instance.
func NewRecordingHandler(service service.RecordingService, logger zerolog.Logger) *RecordingHandler {
	return &RecordingHandler{
		service: service,
		logger:  logger.With().Str("component", "recording_handler").Logger(),
	}
}

// Register wires the recording routes.
func (h *RecordingHandler) Register(router fiber.Router) {
	router.Post("/interviews/:id/recording/start", h.start)
	router.Post("/interviews/:id/recording/stop", h.stop)
	router.Get("/interviews/:id/recordings", h.list)
	router.Post("/recordings/:id/finish", h.finish)
	router.Post("/recordings/:id/fail", h.fail)
}

func (h *RecordingHandler) start(c *fiber.Ctx) error {
	response, err := h.service.Start(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "recording started", response)
}

func (h *RecordingHandler) stop(c *fiber.Ctx) error {
	response, err := h.service.Stop(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccess(c, "recording stopped", response)
}

func (h *RecordingHandler) finish(c *fiber.Ctx) error {
	var payload dto.RecordingFinishRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.FinishProcessing(c.UserContext(), c.Params("id"), payload)
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccess(c, "recording completed", response)
}

func (h *RecordingHandler) fail(c *fiber.Ctx) error {
	var payload dto.RecordingFailRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.MarkFailed(c.UserContext(), c.Params("id"), payload)
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccess(c, "recording marked failed", response)
}

func (h *RecordingHandler) list(c *fiber.Ctx) error {
	response, err := h.service.ListByInterview(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccess(c, "recordings retrieved", response)
}
