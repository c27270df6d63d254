package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/config"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/handler"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/middleware"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AvailabilityHandler *handler.AvailabilityHandler
	InterviewHandler    *handler.InterviewHandler
	RescheduleHandler   *handler.RescheduleHandler
	EvaluationHandler   *handler.EvaluationHandler
	RecordingHandler    *handler.RecordingHandler
	SnapshotHandler     *handler.SnapshotHandler
	NotificationHandler *handler.NotificationHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Guest joins authenticate via the room link, not an account token, so
	// the endpoint is throttled by IP to slow down room-id guessing.
	if deps.InterviewHandler != nil {
		public := api.Group("", middleware.RateLimit("guest_join", 30, time.Minute))
		deps.InterviewHandler.RegisterPublic(public)
	}

	protected := api.Group("", jwtMiddleware)

	if deps.AvailabilityHandler != nil {
		deps.AvailabilityHandler.Register(protected)
	}
	if deps.InterviewHandler != nil {
		deps.InterviewHandler.Register(protected)
	}
	if deps.RescheduleHandler != nil {
		deps.RescheduleHandler.Register(protected)
	}
	if deps.EvaluationHandler != nil {
		evaluations := protected.Group("", middleware.RequireRole("admin", "interviewer"))
		deps.EvaluationHandler.Register(evaluations)
	}
	if deps.RecordingHandler != nil {
		recordings := protected.Group("", middleware.RequireRole("admin", "interviewer"))
		deps.RecordingHandler.Register(recordings)
	}
	if deps.SnapshotHandler != nil {
		deps.SnapshotHandler.Register(protected)
	}
	if deps.NotificationHandler != nil {
		deps.NotificationHandler.Register(protected)
	}
}
