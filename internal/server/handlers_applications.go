package server

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/google/uuid"

	"github.com/shramsaathi/marketplace/internal/db"
	"github.com/shramsaathi/marketplace/internal/types"
)

// ListApplicationsResponse represents the response for listing applications
type ListApplicationsResponse struct {
	Applications []db.Application `json:"applications"`
	Count        int              `json:"count"`
}

// handleCreateApplication records a worker's application to a job. The
// stored match score is the configured policy's output for the pair at
// application time, so employers sorting applicants by score see the same
// ordering the match endpoints produce.
func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	var req types.CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	workerID, err := uuid.Parse(req.WorkerID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid worker ID")
		return
	}

	job, err := s.store.GetJobByID(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}
	jobCand := job.Candidate()
	if !jobCand.Matchable() {
		notOpen := &ErrJobNotOpen{JobID: jobID, Status: job.Status}
		s.errorResponse(w, HTTPStatus(notOpen), notOpen.Error())
		return
	}

	worker, err := s.store.GetWorkerByID(r.Context(), workerID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if worker == nil {
		s.errorResponse(w, http.StatusNotFound, "Worker not found")
		return
	}

	applied, err := s.store.HasApplied(r.Context(), jobID, workerID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if applied {
		dup := &ErrDuplicateApplication{JobID: jobID, WorkerID: workerID}
		s.errorResponse(w, HTTPStatus(dup), dup.Error())
		return
	}

	policy, err := s.policyFor("")
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	workerCand := worker.Candidate(job.GeoPoint())
	match := policy.ComputeMatch(&workerCand, &jobCand)

	application, err := s.store.CreateApplication(r.Context(), &db.Application{
		JobID:      jobID,
		WorkerID:   workerID,
		Quote:      req.Quote,
		Message:    req.Message,
		MatchScore: int(math.Round(match.FinalScore)),
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, application)
}

// handleListApplications lists the applications for a job
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.store.GetJobByID(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	applications, err := s.store.ListApplicationsByJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ListApplicationsResponse{
		Applications: applications,
		Count:        len(applications),
	})
}
