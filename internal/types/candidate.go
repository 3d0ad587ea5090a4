// Package types provides type definitions for structured data used throughout the marketplace system.
package types

import "time"

// Availability describes when a worker can start a job.
type Availability string

// Availability values for WorkerCandidate.
const (
	AvailabilityImmediate Availability = "immediate"
	AvailabilityFlexible  Availability = "flexible"
	AvailabilityDated     Availability = "dated"
)

// JobStatus describes the lifecycle state of a job posting.
type JobStatus string

// JobStatus values. Only active jobs are matchable.
const (
	JobStatusActive    JobStatus = "active"
	JobStatusFilled    JobStatus = "filled"
	JobStatusCompleted JobStatus = "completed"
	JobStatusCancelled JobStatus = "cancelled"
)

// Valid reports whether s is a known lifecycle status.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusActive, JobStatusFilled, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// WagePeriod describes how a job's wage amount is quoted.
type WagePeriod string

// WagePeriod values for JobCandidate.
const (
	WagePeriodHourly WagePeriod = "hourly"
	WagePeriodDaily  WagePeriod = "daily"
	WagePeriodWeekly WagePeriod = "weekly"
	WagePeriodFixed  WagePeriod = "fixed"
)

// WorkerCandidate is the read-only worker projection consumed by matching.
// Matching never mutates it; out-of-range numeric fields are clamped by the
// scoring functions rather than rejected.
type WorkerCandidate struct {
	ID                 string       `json:"id"`
	Trade              string       `json:"trade"`
	Skills             []string     `json:"skills"`
	ExperienceYears    float64      `json:"experience_years"`
	Rating             float64      `json:"rating"`
	Availability       Availability `json:"availability"`
	AvailabilityDate   *time.Time   `json:"availability_date,omitempty"`
	DistanceKm         *float64     `json:"distance_km,omitempty"` // nil means unknown
	Verified           bool         `json:"verified"`
	TotalJobsCompleted int          `json:"total_jobs_completed"`
}

// JobCandidate is the read-only job projection consumed by matching and search.
type JobCandidate struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	TradeRequired  string     `json:"trade_required"`
	RequiredSkills []string   `json:"required_skills,omitempty"`
	Category       string     `json:"category"`
	Date           *time.Time `json:"date,omitempty"` // nil for flexible jobs
	WageAmount     float64    `json:"wage_amount"`
	WageCurrency   string     `json:"wage_currency"`
	WagePeriod     WagePeriod `json:"wage_period"`
	Location       string     `json:"location"`
	Status         JobStatus  `json:"status"`
}

// Matchable reports whether the job can appear in match results.
func (j *JobCandidate) Matchable() bool {
	return j.Status == JobStatusActive
}
