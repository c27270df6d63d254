package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/config"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/database"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/handler"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/middleware"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/repository"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/router"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSURL)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	defer natsConn.Close()

	validate := validator.New(validator.WithRequiredStructEnabled())

	interviewRepo := repository.NewInterviewRepository(db)
	interviewerRepo := repository.NewInterviewerRepository(db)
	candidateRepo := repository.NewCandidateRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	rescheduleRepo := repository.NewRescheduleRepository(db)
	recordingRepo := repository.NewRecordingRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	notificationService := service.NewNotificationService(notificationRepo, redisClient, cfg.ChannelBase, natsConn, validate, logger)
	availabilityService := service.NewAvailabilityService(availabilityRepo, interviewerRepo, interviewRepo, validate, logger)
	schedulingService := service.NewSchedulingService(interviewRepo, candidateRepo, interviewerRepo, availabilityService, notificationService, redisClient, validate, cfg.ScheduleGrace, cfg.ScheduleCacheTTL, cfg.JWTSecret, logger)
	lifecycleService := service.NewLifecycleService(interviewRepo, notificationService, logger)
	rescheduleService := service.NewRescheduleService(rescheduleRepo, interviewRepo, availabilityService, notificationService, redisClient, validate, cfg.ScheduleGrace, logger)
	evaluationService := service.NewEvaluationService(evaluationRepo, interviewRepo, validate, logger)
	recordingService := service.NewRecordingService(recordingRepo, interviewRepo, validate, logger)
	snapshotService := service.NewSnapshotService(snapshotRepo, interviewRepo, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.CORSOrigins})
	router.Register(app, cfg, router.Dependencies{
		AvailabilityHandler: handler.NewAvailabilityHandler(availabilityService, logger),
		InterviewHandler:    handler.NewInterviewHandler(schedulingService, lifecycleService, logger),
		RescheduleHandler:   handler.NewRescheduleHandler(rescheduleService, logger),
		EvaluationHandler:   handler.NewEvaluationHandler(evaluationService, logger),
		RecordingHandler:    handler.NewRecordingHandler(recordingService, logger),
		SnapshotHandler:     handler.NewSnapshotHandler(snapshotService, logger),
		NotificationHandler: handler.NewNotificationHandler(notificationService, logger),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
