package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/shramsaathi/marketplace/internal/db"
	"github.com/shramsaathi/marketplace/internal/search"
	"github.com/shramsaathi/marketplace/internal/types"
)

// ListJobsResponse represents the response for listing jobs
type ListJobsResponse struct {
	Jobs  []db.Job `json:"jobs"`
	Count int      `json:"count"`
}

// handleCreateJob posts a new job; it starts in the active status
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req types.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	job, err := s.store.CreateJob(r.Context(), &db.Job{
		Title:          req.Title,
		Description:    req.Description,
		TradeRequired:  req.TradeRequired,
		RequiredSkills: req.RequiredSkills,
		Category:       req.Category,
		Date:           req.Date,
		WageAmount:     req.WageAmount,
		WageCurrency:   req.WageCurrency,
		WagePeriod:     string(req.WagePeriod),
		Location:       req.Location,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, job)
}

// handleListJobs lists jobs, optionally filtered by status
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !types.JobStatus(status).Valid() {
		s.errorResponse(w, http.StatusBadRequest, "Invalid status filter")
		return
	}

	jobs, err := s.store.ListJobs(r.Context(), status)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ListJobsResponse{Jobs: jobs, Count: len(jobs)})
}

// handleGetJob retrieves a job by ID
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
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

	s.jsonResponse(w, http.StatusOK, job)
}

// handleUpdateJobStatus moves a job through its lifecycle
func (s *Server) handleUpdateJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	var req types.UpdateJobStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if err := s.store.UpdateJobStatus(r.Context(), jobID, string(req.Status)); err != nil {
		if isNoRows(err) {
			s.errorResponse(w, http.StatusNotFound, "Job not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	if req.Status == types.JobStatusCompleted && req.WorkerID != "" {
		workerID, err := uuid.Parse(req.WorkerID)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid worker ID")
			return
		}
		if err := s.store.IncrementWorkerJobsCompleted(r.Context(), workerID); err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Status updated", "status": string(req.Status)})
}

// handleSearchJobs filters active jobs by the AND of the given criteria.
// Query parameters: category, location, q (free text), skills (comma
// separated), min_wage, max_wage.
func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	criteria := types.SearchCriteria{
		Category:   r.URL.Query().Get("category"),
		Location:   r.URL.Query().Get("location"),
		SearchText: r.URL.Query().Get("q"),
		MinWage:    parseQueryFloat(r, "min_wage"),
		MaxWage:    parseQueryFloat(r, "max_wage"),
	}
	if skills := r.URL.Query().Get("skills"); skills != "" {
		for _, skill := range strings.Split(skills, ",") {
			if skill = strings.TrimSpace(skill); skill != "" {
				criteria.Skills = append(criteria.Skills, skill)
			}
		}
	}

	jobs, err := s.store.ListActiveJobs(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	candidates := make([]types.JobCandidate, 0, len(jobs))
	byID := make(map[string]*db.Job, len(jobs))
	for i := range jobs {
		candidates = append(candidates, jobs[i].Candidate())
		byID[jobs[i].ID.String()] = &jobs[i]
	}

	matched := search.Jobs(candidates, criteria)
	results := make([]db.Job, 0, len(matched))
	for _, candidate := range matched {
		if job, ok := byID[candidate.ID]; ok {
			results = append(results, *job)
		}
	}

	s.jsonResponse(w, http.StatusOK, ListJobsResponse{Jobs: results, Count: len(results)})
}

// handleJobMatches returns the top worker matches for a job. The job and the
// worker pool are fetched concurrently; worker distances are measured from
// the job's coordinates when both sides carry them.
func (s *Server) handleJobMatches(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	policy, err := s.policyFor(r.URL.Query().Get("policy"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	limit := parseQueryInt(r, "limit", s.matchLimit, 100)

	var (
		job     *db.Job
		workers []db.Worker
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		job, err = s.store.GetJobByID(ctx, jobID)
		return err
	})
	g.Go(func() error {
		var err error
		workers, err = s.store.ListWorkers(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	jobCand := job.Candidate()
	if !jobCand.Matchable() {
		s.jsonResponse(w, http.StatusOK, MatchesResponse{
			Matches: []MatchEntry{},
			Count:   0,
			Policy:  string(policy.Name()),
		})
		return
	}

	origin := job.GeoPoint()
	candidates := make([]types.WorkerCandidate, 0, len(workers))
	for i := range workers {
		candidates = append(candidates, workers[i].Candidate(origin))
	}

	results, err := s.newMatcher(policy).FindWorkerMatchesForJob(&jobCand, candidates, limit)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, MatchesResponse{
		Matches: toMatchEntries(results),
		Count:   len(results),
		Policy:  string(policy.Name()),
	})
}
