package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/dto"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/repository"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/service"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/utils"
)

// InterviewHandler serves scheduling and lifecycle endpoints.
type InterviewHandler struct {
	scheduling service.SchedulingService
	lifecycle  service.LifecycleService
	logger     zerolog.Logger
}

// NewInterviewHandler constructs the handler instance.
func NewInterviewHandler(scheduling service.SchedulingService, lifecycle service.LifecycleService, logger zerolog.Logger) *InterviewHandler {
	return &InterviewHandler{
		scheduling: scheduling,
		lifecycle:  lifecycle,
		logger:     logger.With().Str("component", "interview_handler").Logger(),
	}
}

// Register wires the authenticated interview routes.
func (h *InterviewHandler) Register(router fiber.Router) {
	router.Post("/interviews", h.schedule)
	router.Post("/interviews/bulk", h.bulkSchedule)
	router.Get("/interviews", h.list)
	router.Get("/interviews/:id", h.get)
	router.Post("/interviews/:id/join", h.join)
	router.Post("/interviews/:id/complete", h.complete)
	router.Post("/interviews/:id/cancel", h.cancel)
	router.Post("/interviews/:id/no-show", h.noShow)
	router.Get("/interviewers/:interviewerID/schedule", h.daySchedule)
}

// RegisterPublic wires the routes reachable without an account token.
func (h *InterviewHandler) RegisterPublic(router fiber.Router) {
	router.Post("/interviews/:id/guest-join", h.guestJoin)
}

func (h *InterviewHandler) schedule(c *fiber.Ctx) error {
	var payload dto.InterviewScheduleRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.scheduling.Schedule(c.UserContext(), actor(c), payload)
	if err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Msg("schedule rejected")
		return sendDomainError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "interview scheduled", response)
}

func (h *InterviewHandler) bulkSchedule(c *fiber.Ctx) error {
	var payload dto.BulkScheduleRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.scheduling.BulkSchedule(c.UserContext(), actor(c), payload)
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccess(c, "bulk scheduling finished", response)
}

func (h *InterviewHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	filter := repository.InterviewFilter{
		Status:        models.InterviewStatus(c.Query("status")),
		InterviewType: models.InterviewType(c.Query("type")),
		Position:      c.Query("position"),
		Page:          page,
		PageSize:      pageSize,
	}
	if raw := c.Query("date_from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid date_from")
		}
		filter.DateFrom = &from
	}
	if raw := c.Query("date_to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid date_to")
		}
		filter.DateTo = &to
	}

	response, err := h.scheduling.List(c.UserContext(), actor(c), filter)
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccess(c, "interviews retrieved", response)
}

func (h *InterviewHandler) get(c *fiber.Ctx) error {
	response, err := h.scheduling.Get(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccess(c, "interview retrieved", response)
}

func (h *InterviewHandler) daySchedule(c *fiber.Ctx) error {
	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	response, err := h.scheduling.DaySchedule(c.UserContext(), actor(c), c.Params("interviewerID"), day)
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccess(c, "schedule retrieved", response)
}

func (h *InterviewHandler) join(c *fiber.Ctx) error {
	var payload dto.InterviewJoinRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.lifecycle.RecordJoin(c.UserContext(), actor(c), c.Params("id"), models.Party(payload.Party))
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccess(c, "join recorded", response)
}

func (h *InterviewHandler) complete(c *fiber.Ctx) error {
	var payload dto.InterviewCompleteRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.lifecycle.Complete(c.UserContext(), actor(c), c.Params("id"), payload)
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccess(c, "interview completed", response)
}

func (h *InterviewHandler) cancel(c *fiber.Ctx) error {
	var payload dto.InterviewCancelRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.lifecycle.Cancel(c.UserContext(), actor(c), c.Params("id"), payload)
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccess(c, "interview cancelled", response)
}

func (h *InterviewHandler) noShow(c *fiber.Ctx) error {
	response, err := h.lifecycle.MarkNoShow(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccess(c, "interview marked no-show", response)
}

func (h *InterviewHandler) guestJoin(c *fiber.Ctx) error {
	var payload dto.GuestJoinRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.scheduling.GuestJoin(c.UserContext(), c.Params("id"), payload)
	if err != nil {
		return sendDomainError(c, err)
	}

	return utils.SendSuccess(c, "guest token issued", response)
}
