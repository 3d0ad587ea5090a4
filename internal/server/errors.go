// Package server provides the HTTP REST API for the marketplace.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/shramsaathi/marketplace/internal/auth"
	"github.com/shramsaathi/marketplace/internal/matching"
)

// ErrWorkerNotFound indicates the worker was not found
type ErrWorkerNotFound struct {
	WorkerID uuid.UUID
}

func (e *ErrWorkerNotFound) Error() string {
	return fmt.Sprintf("worker not found: %s", e.WorkerID)
}

// ErrJobNotFound indicates the job was not found
type ErrJobNotFound struct {
	JobID uuid.UUID
}

func (e *ErrJobNotFound) Error() string {
	return fmt.Sprintf("job not found: %s", e.JobID)
}

// ErrJobNotOpen indicates the job is no longer accepting applications
type ErrJobNotOpen struct {
	JobID  uuid.UUID
	Status string
}

func (e *ErrJobNotOpen) Error() string {
	return fmt.Sprintf("job %s is not open for applications: status %s", e.JobID, e.Status)
}

// ErrDuplicateApplication indicates the worker already applied to the job
type ErrDuplicateApplication struct {
	JobID    uuid.UUID
	WorkerID uuid.UUID
}

func (e *ErrDuplicateApplication) Error() string {
	return fmt.Sprintf("worker %s already applied to job %s", e.WorkerID, e.JobID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrWorkerNotFound, *ErrJobNotFound:
		return http.StatusNotFound
	case *ErrJobNotOpen, *ErrDuplicateApplication:
		return http.StatusConflict
	case *ErrValidation:
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, matching.ErrInvalidLimit),
		errors.Is(err, matching.ErrUnknownPolicy),
		errors.Is(err, matching.ErrInvalidWeights):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrNoPendingCode),
		errors.Is(err, auth.ErrCodeExpired),
		errors.Is(err, auth.ErrCodeMismatch):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
