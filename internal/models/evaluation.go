package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Evaluation is one evaluator's structured assessment of one interview. The
// (interview, evaluator) pair is unique; re-submission updates in place.
type Evaluation struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	InterviewID string `gorm:"type:uuid;not null;uniqueIndex:idx_eval_interview_evaluator" json:"interview_id"`
	EvaluatorID string `gorm:"type:uuid;not null;uniqueIndex:idx_eval_interview_evaluator" json:"evaluator_id"`

	TechnicalSkills int `gorm:"not null" json:"technical_skills"`
	ProblemSolving  int `gorm:"not null" json:"problem_solving"`
	Communication   int `gorm:"not null" json:"communication"`
	CulturalFit     int `gorm:"not null" json:"cultural_fit"`
	OverallRating   int `gorm:"not null" json:"overall_rating"`

	Recommendation   Recommendation `gorm:"size:32;not null" json:"recommendation"`
	Strengths        string         `gorm:"type:text" json:"strengths"`
	Weaknesses       string         `gorm:"type:text" json:"weaknesses"`
	DetailedFeedback string         `gorm:"type:text" json:"detailed_feedback"`
	Notes            string         `gorm:"type:text" json:"notes"`

	CustomRatings datatypes.JSONMap `gorm:"type:json" json:"custom_ratings"`

	SubmittedAt time.Time `gorm:"not null" json:"submitted_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks rating domains and the recommendation enumeration.
func (e Evaluation) Validate() error {
	ratings := map[string]int{
		"technical_skills": e.TechnicalSkills,
		"problem_solving":  e.ProblemSolving,
		"communication":    e.Communication,
		"cultural_fit":     e.CulturalFit,
		"overall_rating":   e.OverallRating,
	}
	for name, rating := range ratings {
		if rating < 1 || rating > 5 {
			return fmt.Errorf("%s must be between 1 and 5, got %d", name, rating)
		}
	}
	if !e.Recommendation.Valid() {
		return fmt.Errorf("unknown recommendation %q", e.Recommendation)
	}
	return nil
}
