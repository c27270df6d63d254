package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/dto"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/service"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/utils"
)

// EvaluationHandler serves the evaluation submission and summary endpoints.
type EvaluationHandler struct {
	service service.EvaluationService
	logger  zerolog.Logger
}

// NewEvaluationHandler constructs the handler instance.
func NewEvaluationHandler(service service.EvaluationService, logger zerolog.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		service: service,
		logger:  logger.With().Str("component", "evaluation_handler").Logger(),
	}
}

// Register wires the evaluation routes.
func (h *EvaluationHandler) Register(router fiber.Router) {
	router.Post("/interviews/:id/evaluations", h.submit)
	router.Get("/interviews/:id/evaluations", h.list)
	router.Get("/interviews/:id/evaluations/summary", h.summary)
}

func (h *EvaluationHandler) submit(c *fiber.Ctx) error {
	var payload dto.EvaluationSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Submit(c.UserContext(), actor(c), c.Params("id"), payload)
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "evaluation submitted", response)
}

func (h *EvaluationHandler) list(c *fiber.Ctx) error {
	response, err := h.service.ListByInterview(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccess(c, "evaluations retrieved", response)
}

func (h *EvaluationHandler) summary(c *fiber.Ctx) error {
	response, err := h.service.Summarize(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccess(c, "evaluation summary retrieved", response)
}
