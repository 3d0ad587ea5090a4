package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/shramsaathi/marketplace/internal/types"
)

// Worker is a worker profile row.
type Worker struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Phone              string     `json:"phone"`
	Trade              string     `json:"trade"`
	Skills             []string   `json:"skills"`
	ExperienceYears    float64    `json:"experience_years"`
	Rating             float64    `json:"rating"`
	Availability       string     `json:"availability"`
	AvailabilityDate   *time.Time `json:"availability_date,omitempty"`
	Latitude           *float64   `json:"latitude,omitempty"`
	Longitude          *float64   `json:"longitude,omitempty"`
	Verified           bool       `json:"verified"`
	TotalJobsCompleted int        `json:"total_jobs_completed"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Job is a job posting row.
type Job struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	TradeRequired  string     `json:"trade_required"`
	RequiredSkills []string   `json:"required_skills"`
	Category       string     `json:"category"`
	Date           *time.Time `json:"date,omitempty"`
	WageAmount     float64    `json:"wage_amount"`
	WageCurrency   string     `json:"wage_currency"`
	WagePeriod     string     `json:"wage_period"`
	Location       string     `json:"location"`
	Latitude       *float64   `json:"latitude,omitempty"`
	Longitude      *float64   `json:"longitude,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Application is a worker's application to a job. MatchScore is the
// deterministic policy output captured at application time.
type Application struct {
	ID         uuid.UUID `json:"id"`
	JobID      uuid.UUID `json:"job_id"`
	WorkerID   uuid.UUID `json:"worker_id"`
	Quote      float64   `json:"quote"`
	Message    string    `json:"message,omitempty"`
	MatchScore int       `json:"match_score"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// Candidate converts the row into the read-only projection the matching
// engine consumes. origin, when non-nil, is the job location the distance is
// measured from; with coordinates on both sides the great-circle distance is
// filled in, otherwise distance stays unknown and scoring treats it as
// neutral.
func (w *Worker) Candidate(origin *GeoPoint) types.WorkerCandidate {
	c := types.WorkerCandidate{
		ID:                 w.ID.String(),
		Trade:              w.Trade,
		Skills:             w.Skills,
		ExperienceYears:    w.ExperienceYears,
		Rating:             w.Rating,
		Availability:       types.Availability(w.Availability),
		AvailabilityDate:   w.AvailabilityDate,
		Verified:           w.Verified,
		TotalJobsCompleted: w.TotalJobsCompleted,
	}
	if origin != nil && w.Latitude != nil && w.Longitude != nil {
		d := haversineKm(*origin, GeoPoint{Latitude: *w.Latitude, Longitude: *w.Longitude})
		c.DistanceKm = &d
	}
	return c
}

// Candidate converts the row into the matching/search projection.
func (j *Job) Candidate() types.JobCandidate {
	return types.JobCandidate{
		ID:             j.ID.String(),
		Title:          j.Title,
		Description:    j.Description,
		TradeRequired:  j.TradeRequired,
		RequiredSkills: j.RequiredSkills,
		Category:       j.Category,
		Date:           j.Date,
		WageAmount:     j.WageAmount,
		WageCurrency:   j.WageCurrency,
		WagePeriod:     types.WagePeriod(j.WagePeriod),
		Location:       j.Location,
		Status:         types.JobStatus(j.Status),
	}
}

// GeoPoint returns the job's coordinates, or nil when not set.
func (j *Job) GeoPoint() *GeoPoint {
	if j.Latitude == nil || j.Longitude == nil {
		return nil
	}
	return &GeoPoint{Latitude: *j.Latitude, Longitude: *j.Longitude}
}
