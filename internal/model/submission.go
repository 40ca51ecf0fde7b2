package model

import "time"

// SubmissionStatus tracks a respondent session's lifecycle
type SubmissionStatus string

const (
	SubmissionStatusActive    SubmissionStatus = "ACTIVE"
	SubmissionStatusCompleted SubmissionStatus = "COMPLETED"
)

// Respondent holds the contact details captured when a session starts
type Respondent struct {
	Name    string `json:"name" bson:"name"`
	Email   string `json:"email" bson:"email"`
	Company string `json:"company,omitempty" bson:"company,omitempty"`
}

// Submission is one respondent's questionnaire session. Answers belong
// to it and become immutable once the session completes.
type Submission struct {
	ID              string           `json:"id" bson:"_id,omitempty"`
	QuestionnaireID string           `json:"questionnaireId" bson:"questionnaireId"`
	Respondent      Respondent       `json:"respondent" bson:"respondent"`
	Status          SubmissionStatus `json:"status" bson:"status"`
	StartedAt       time.Time        `json:"startedAt" bson:"startedAt"`
	CompletedAt     *time.Time       `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}
