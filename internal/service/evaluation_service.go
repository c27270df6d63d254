package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/domainerr"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/dto"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
	"github.com/AdityaYInamdar/interview-portal-backend/internal/repository"
)

// EvaluationService collects per-evaluator assessments and aggregates them
// into a hiring signal. One evaluation per (interview, evaluator) pair;
// resubmitting replaces the earlier one.
type EvaluationService interface {
	Submit(ctx context.Context, actor Actor, interviewID string, payload dto.EvaluationSubmitRequest) (dto.EvaluationResponse, error)
	ListByInterview(ctx context.Context, actor Actor, interviewID string) ([]dto.EvaluationResponse, error)
	Summarize(ctx context.Context, actor Actor, interviewID string) (dto.EvaluationSummaryResponse, error)
}

type evaluationService struct {
	evaluations repository.EvaluationRepository
	interviews  repository.InterviewRepository
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
	now         func() time.Time
}

func NewEvaluationService(evaluations repository.EvaluationRepository, interviews repository.InterviewRepository, validate *validator.Validate, logger zerolog.Logger) EvaluationService {
	return &evaluationService{
		evaluations: evaluations,
		interviews:  interviews,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "evaluation_service").Logger(),
		now:         time.Now,
	}
}

func (s *evaluationService) Submit(ctx context.Context, actor Actor, interviewID string, payload dto.EvaluationSubmitRequest) (dto.EvaluationResponse, error) {
	if actor.IsCandidate() || actor.Guest {
		return dto.EvaluationResponse{}, domainerr.ErrForbidden
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.EvaluationResponse{}, err
	}

	recommendation := models.Recommendation(payload.Recommendation)
	if !recommendation.Valid() {
		return dto.EvaluationResponse{}, domainerr.Validation("recommendation", fmt.Sprintf("unknown recommendation %q", payload.Recommendation))
	}
	for name, rating := range payload.CustomRatings {
		if rating < 1 || rating > 5 {
			return dto.EvaluationResponse{}, domainerr.Validation("custom_ratings", fmt.Sprintf("%s must be between 1 and 5", name))
		}
	}

	interview, err := s.loadInterview(ctx, interviewID)
	if err != nil {
		return dto.EvaluationResponse{}, err
	}
	if !actor.IsAdmin() && actor.ID != interview.InterviewerID {
		return dto.EvaluationResponse{}, domainerr.ErrForbidden
	}

	custom := make(datatypes.JSONMap, len(payload.CustomRatings))
	for name, rating := range payload.CustomRatings {
		custom[name] = rating
	}

	evaluation := models.Evaluation{
		ID:               uuid.NewString(),
		InterviewID:      interview.ID,
		EvaluatorID:      actor.ID,
		TechnicalSkills:  payload.TechnicalSkills,
		ProblemSolving:   payload.ProblemSolving,
		Communication:    payload.Communication,
		CulturalFit:      payload.CulturalFit,
		OverallRating:    payload.OverallRating,
		Recommendation:   recommendation,
		Strengths:        s.clean(payload.Strengths),
		Weaknesses:       s.clean(payload.Weaknesses),
		DetailedFeedback: s.clean(payload.DetailedFeedback),
		Notes:            s.clean(payload.Notes),
		CustomRatings:    custom,
		SubmittedAt:      s.now(),
	}
	if err := evaluation.Validate(); err != nil {
		return dto.EvaluationResponse{}, domainerr.Validation("evaluation", err.Error())
	}

	if err := s.evaluations.Upsert(ctx, &evaluation); err != nil {
		return dto.EvaluationResponse{}, err
	}

	// The upsert keeps the original row id on replacement; re-read so the
	// response reflects what was stored.
	stored, err := s.evaluations.GetByInterviewAndEvaluator(ctx, interview.ID, actor.ID)
	if err != nil {
		return dto.EvaluationResponse{}, err
	}

	s.logger.Info().
		Str("interview_id", interview.ID).
		Str("evaluator_id", actor.ID).
		Str("recommendation", string(recommendation)).
		Msg("evaluation submitted")

	return dto.NewEvaluationResponse(stored), nil
}

func (s *evaluationService) ListByInterview(ctx context.Context, actor Actor, interviewID string) ([]dto.EvaluationResponse, error) {
	interview, err := s.loadInterview(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if !actor.CanRunInterview(interview) {
		return nil, domainerr.ErrForbidden
	}

	evaluations, err := s.evaluations.ListByInterview(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	return dto.NewEvaluationResponseSlice(evaluations), nil
}

// Summarize aggregates every submitted evaluation: per-dimension means, the
// recommendation distribution, and an overall signal. The signal is the
// majority recommendation; ties resolve toward the more conservative one so
// a split panel never rounds up to a hire.
func (s *evaluationService) Summarize(ctx context.Context, actor Actor, interviewID string) (dto.EvaluationSummaryResponse, error) {
	interview, err := s.loadInterview(ctx, interviewID)
	if err != nil {
		return dto.EvaluationSummaryResponse{}, err
	}
	if !actor.CanRunInterview(interview) {
		return dto.EvaluationSummaryResponse{}, domainerr.ErrForbidden
	}

	evaluations, err := s.evaluations.ListByInterview(ctx, interviewID)
	if err != nil {
		return dto.EvaluationSummaryResponse{}, err
	}

	summary := dto.EvaluationSummaryResponse{
		InterviewID:     interviewID,
		EvaluationCount: len(evaluations),
		Distribution:    make(map[string]int),
	}
	if len(evaluations) == 0 {
		return summary, nil
	}

	var technical, problemSolving, communication, culturalFit, overall int
	for _, evaluation := range evaluations {
		technical += evaluation.TechnicalSkills
		problemSolving += evaluation.ProblemSolving
		communication += evaluation.Communication
		culturalFit += evaluation.CulturalFit
		overall += evaluation.OverallRating
		summary.Distribution[string(evaluation.Recommendation)]++
	}

	n := float64(len(evaluations))
	summary.MeanTechnical = float64(technical) / n
	summary.MeanProblemSolving = float64(problemSolving) / n
	summary.MeanCommunication = float64(communication) / n
	summary.MeanCulturalFit = float64(culturalFit) / n
	summary.MeanOverall = float64(overall) / n
	summary.OverallSignal = string(overallSignal(summary.Distribution))

	return summary, nil
}

func overallSignal(distribution map[string]int) models.Recommendation {
	var winner models.Recommendation
	best := -1
	for raw, count := range distribution {
		recommendation := models.Recommendation(raw)
		if count > best || (count == best && recommendation.ConservatismRank() > winner.ConservatismRank()) {
			winner = recommendation
			best = count
		}
	}
	return winner
}

func (s *evaluationService) loadInterview(ctx context.Context, interviewID string) (models.Interview, error) {
	interview, err := s.interviews.GetByID(ctx, interviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Interview{}, domainerr.NotFound("interview", interviewID)
		}
		return models.Interview{}, err
	}
	return interview, nil
}

func (s *evaluationService) clean(raw string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(raw))
}
