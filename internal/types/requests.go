package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// RequestOTPRequest asks for a one-time code to be sent to a phone number.
type RequestOTPRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
	Role  string `json:"role" validate:"required,oneof=worker employer"`
}

// VerifyOTPRequest exchanges a one-time code for a session token.
type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required,e164"`
	Role  string `json:"role" validate:"required,oneof=worker employer"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// SessionResponse carries the signed session token returned after OTP verification.
type SessionResponse struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateJobRequest is the payload for posting a new job.
type CreateJobRequest struct {
	Title          string     `json:"title" validate:"required,min=3"`
	Description    string     `json:"description" validate:"required"`
	TradeRequired  string     `json:"trade_required" validate:"required"`
	RequiredSkills []string   `json:"required_skills,omitempty"`
	Category       string     `json:"category" validate:"required"`
	Date           *time.Time `json:"date,omitempty"`
	WageAmount     float64    `json:"wage_amount" validate:"required,gt=0"`
	WageCurrency   string     `json:"wage_currency" validate:"required,len=3"`
	WagePeriod     WagePeriod `json:"wage_period" validate:"required,oneof=hourly daily weekly fixed"`
	Location       string     `json:"location" validate:"required"`
	Latitude       *float64   `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude      *float64   `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

// CreateWorkerRequest is the payload for registering a worker profile.
type CreateWorkerRequest struct {
	Name             string     `json:"name" validate:"required,min=1"`
	Phone            string     `json:"phone" validate:"required,e164"`
	Trade            string     `json:"trade" validate:"required"`
	Skills           []string   `json:"skills,omitempty"`
	ExperienceYears  float64    `json:"experience_years" validate:"gte=0"`
	Availability     string     `json:"availability" validate:"required,oneof=immediate flexible dated"`
	AvailabilityDate *time.Time `json:"availability_date,omitempty"`
	Latitude         *float64   `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude        *float64   `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

// CreateApplicationRequest is the payload for a worker applying to a job.
type CreateApplicationRequest struct {
	WorkerID string  `json:"worker_id" validate:"required,uuid"`
	Quote    float64 `json:"quote" validate:"required,gt=0"`
	Message  string  `json:"message,omitempty"`
}

// UpdateJobStatusRequest changes a job's lifecycle status. WorkerID names
// the worker who did the job; it is only meaningful when the status moves
// to completed, where it credits that worker's completed-job count.
type UpdateJobStatusRequest struct {
	Status   JobStatus `json:"status" validate:"required,oneof=active filled completed cancelled"`
	WorkerID string    `json:"worker_id,omitempty" validate:"omitempty,uuid"`
}

// Validate validates the RequestOTPRequest using the validator.
func (r *RequestOTPRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the VerifyOTPRequest using the validator.
func (r *VerifyOTPRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CreateWorkerRequest using the validator.
func (r *CreateWorkerRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the CreateApplicationRequest using the validator.
func (r *CreateApplicationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateJobStatusRequest using the validator.
func (r *UpdateJobStatusRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
