package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AdityaYInamdar/interview-portal-backend/internal/models"
)

func TestEvaluationRepositoryUpsertReplacesInPlace(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEvaluationRepository(db)

	interviewID := uuid.NewString()
	evaluatorID := uuid.NewString()
	submittedAt := time.Date(2026, time.March, 3, 11, 30, 0, 0, time.UTC)

	first := models.Evaluation{
		ID:              uuid.NewString(),
		InterviewID:     interviewID,
		EvaluatorID:     evaluatorID,
		TechnicalSkills: 3,
		ProblemSolving:  3,
		Communication:   3,
		CulturalFit:     3,
		OverallRating:   3,
		Recommendation:  models.RecommendationMaybe,
		SubmittedAt:     submittedAt,
	}
	require.NoError(t, repo.Upsert(context.Background(), &first))

	revised := first
	revised.ID = uuid.NewString()
	revised.TechnicalSkills = 5
	revised.Recommendation = models.RecommendationHire
	revised.SubmittedAt = submittedAt.Add(time.Hour)
	require.NoError(t, repo.Upsert(context.Background(), &revised))

	var count int64
	require.NoError(t, db.Model(&models.Evaluation{}).
		Where("interview_id = ?", interviewID).Count(&count).Error)
	require.Equal(t, int64(1), count, "re-submission never duplicates")

	stored, err := repo.GetByInterviewAndEvaluator(context.Background(), interviewID, evaluatorID)
	require.NoError(t, err)
	require.Equal(t, first.ID, stored.ID, "original row survives")
	require.Equal(t, 5, stored.TechnicalSkills)
	require.Equal(t, models.RecommendationHire, stored.Recommendation)
	require.Equal(t, submittedAt, stored.SubmittedAt.UTC(), "first submission time kept")
}

func TestEvaluationRepositoryListByInterview(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEvaluationRepository(db)

	interviewID := uuid.NewString()
	base := time.Date(2026, time.March, 3, 11, 30, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		evaluation := models.Evaluation{
			ID:              uuid.NewString(),
			InterviewID:     interviewID,
			EvaluatorID:     uuid.NewString(),
			TechnicalSkills: 4,
			ProblemSolving:  4,
			Communication:   4,
			CulturalFit:     4,
			OverallRating:   4,
			Recommendation:  models.RecommendationHire,
			SubmittedAt:     base.Add(time.Duration(2-i) * time.Minute),
		}
		require.NoError(t, repo.Upsert(context.Background(), &evaluation))
	}

	listed, err := repo.ListByInterview(context.Background(), interviewID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	require.True(t, listed[0].SubmittedAt.Before(listed[1].SubmittedAt), "ordered by submission time")
}
