package service

import "github.com/AdityaYInamdar/interview-portal-backend/internal/models"

// Actor is the authenticated identity performing an operation. Services check
// it before mutating, so the authorization contract lives in the component
// interface rather than in storage policy.
type Actor struct {
	ID   string
	Role string
	// Guest actors carry a token scoped to a single interview.
	Guest       bool
	InterviewID string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// IsInterviewer reports whether the actor holds the interviewer role.
func (a Actor) IsInterviewer() bool {
	return a.Role == models.RoleInterviewer
}

// IsCandidate reports whether the actor holds the candidate role.
func (a Actor) IsCandidate() bool {
	return a.Role == models.RoleCandidate
}

// CanAccessInterview reports whether the actor may read the given interview.
func (a Actor) CanAccessInterview(interview models.Interview) bool {
	if a.Guest {
		return a.InterviewID == interview.ID
	}
	switch a.Role {
	case models.RoleAdmin:
		return true
	case models.RoleInterviewer:
		return interview.InterviewerID == a.ID
	case models.RoleCandidate:
		return interview.CandidateID == a.ID
	}
	return false
}

// CanRunInterview reports whether the actor may drive the interview lifecycle
// (start, complete, cancel, no-show, recording control).
func (a Actor) CanRunInterview(interview models.Interview) bool {
	return a.IsAdmin() || (a.IsInterviewer() && interview.InterviewerID == a.ID)
}
