package dto

import (
	"time"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
)

// EvaluationSubmitRequest upserts an evaluator's assessment of an interview.
type EvaluationSubmitRequest struct {
	TechnicalSkills  int            `json:"technical_skills" validate:"required,gte=1,lte=5"`
	ProblemSolving   int            `json:"problem_solving" validate:"required,gte=1,lte=5"`
	Communication    int            `json:"communication" validate:"required,gte=1,lte=5"`
	CulturalFit      int            `json:"cultural_fit" validate:"required,gte=1,lte=5"`
	OverallRating    int            `json:"overall_rating" validate:"required,gte=1,lte=5"`
	Recommendation   string         `json:"recommendation" validate:"required"`
	Strengths        string         `json:"strengths" validate:"max=5000"`
	Weaknesses       string         `json:"weaknesses" validate:"max=5000"`
	DetailedFeedback string         `json:"detailed_feedback" validate:"max=20000"`
	Notes            string         `json:"notes" validate:"max=5000"`
	CustomRatings    map[string]int `json:"custom_ratings"`
}

// EvaluationResponse is the serialized evaluation.
type EvaluationResponse struct {
	ID               string                 `json:"id"`
	InterviewID      string                 `json:"interview_id"`
	EvaluatorID      string                 `json:"evaluator_id"`
	TechnicalSkills  int                    `json:"technical_skills"`
	ProblemSolving   int                    `json:"problem_solving"`
	Communication    int                    `json:"communication"`
	CulturalFit      int                    `json:"cultural_fit"`
	OverallRating    int                    `json:"overall_rating"`
	Recommendation   string                 `json:"recommendation"`
	Strengths        string                 `json:"strengths"`
	Weaknesses       string                 `json:"weaknesses"`
	DetailedFeedback string                 `json:"detailed_feedback"`
	Notes            string                 `json:"notes"`
	CustomRatings    map[string]interface{} `json:"custom_ratings,omitempty"`
	SubmittedAt      time.Time              `json:"submitted_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// NewEvaluationResponse converts a model into a DTO.
func NewEvaluationResponse(model models.Evaluation) EvaluationResponse {
	return EvaluationResponse{
		ID:               model.ID,
		InterviewID:      model.InterviewID,
		EvaluatorID:      model.EvaluatorID,
		TechnicalSkills:  model.TechnicalSkills,
		ProblemSolving:   model.ProblemSolving,
		Communication:    model.Communication,
		CulturalFit:      model.CulturalFit,
		OverallRating:    model.OverallRating,
		Recommendation:   string(model.Recommendation),
		Strengths:        model.Strengths,
		Weaknesses:       model.Weaknesses,
		DetailedFeedback: model.DetailedFeedback,
		Notes:            model.Notes,
		CustomRatings:    model.CustomRatings,
		SubmittedAt:      model.SubmittedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

// NewEvaluationResponseSlice converts a slice of models into DTOs.
func NewEvaluationResponseSlice(evaluations []models.Evaluation) []EvaluationResponse {
	responses := make([]EvaluationResponse, 0, len(evaluations))
	for _, evaluation := range evaluations {
		responses = append(responses, NewEvaluationResponse(evaluation))
	}
	return responses
}

// EvaluationSummaryResponse aggregates all evaluations of one interview. The
// overall signal resolves ties toward the more conservative recommendation.
type EvaluationSummaryResponse struct {
	InterviewID        string         `json:"interview_id"`
	EvaluationCount    int            `json:"evaluation_count"`
	MeanTechnical      float64        `json:"mean_technical"`
	MeanProblemSolving float64        `json:"mean_problem_solving"`
	MeanCommunication  float64        `json:"mean_communication"`
	MeanCulturalFit    float64        `json:"mean_cultural_fit"`
	MeanOverall        float64        `json:"mean_overall"`
	Distribution       map[string]int `json:"recommendation_distribution"`
	OverallSignal      string         `json:"overall_signal"`
}
