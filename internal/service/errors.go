package service

import "errors"

// Error taxonomy: integrity violations are configuration faults caught
// at write or load time, input errors are rejected at submission time,
// store failures pass through untouched. The pure scoring and
// composition functions raise no errors of their own.
var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrIntegrity           = errors.New("data integrity violation")
	ErrUnanswered          = errors.New("current question not answered")
	ErrSubmissionCompleted = errors.New("submission already completed")
	ErrSubmissionActive    = errors.New("submission not completed")
)
