package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/shramsaathi/marketplace/internal/db"
	"github.com/shramsaathi/marketplace/internal/types"
)

// handleCreateWorker registers a worker profile
func (s *Server) handleCreateWorker(w http.ResponseWriter, r *http.Request) {
	var req types.CreateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	worker, err := s.store.CreateWorker(r.Context(), &db.Worker{
		Name:             req.Name,
		Phone:            req.Phone,
		Trade:            req.Trade,
		Skills:           req.Skills,
		ExperienceYears:  req.ExperienceYears,
		Availability:     req.Availability,
		AvailabilityDate: req.AvailabilityDate,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, worker)
}

// handleGetWorker retrieves a worker profile by ID
func (s *Server) handleGetWorker(w http.ResponseWriter, r *http.Request) {
	workerID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid worker ID")
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

	s.jsonResponse(w, http.StatusOK, worker)
}

// handleVerifyWorker marks a worker profile as verified
func (s *Server) handleVerifyWorker(w http.ResponseWriter, r *http.Request) {
	workerID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid worker ID")
		return
	}

	if err := s.store.SetWorkerVerified(r.Context(), workerID, true); err != nil {
		if isNoRows(err) {
			s.errorResponse(w, http.StatusNotFound, "Worker not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Worker verified"})
}

// handleWorkerMatches returns the top job matches for a worker. The worker
// and the active job pool are fetched concurrently; scoring itself is
// synchronous and deterministic.
func (s *Server) handleWorkerMatches(w http.ResponseWriter, r *http.Request) {
	workerID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid worker ID")
		return
	}

	policy, err := s.policyFor(r.URL.Query().Get("policy"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	limit := parseQueryInt(r, "limit", s.matchLimit, 100)

	var (
		worker *db.Worker
		jobs   []db.Job
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		worker, err = s.store.GetWorkerByID(ctx, workerID)
		return err
	})
	g.Go(func() error {
		var err error
		jobs, err = s.store.ListActiveJobs(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if worker == nil {
		s.errorResponse(w, http.StatusNotFound, "Worker not found")
		return
	}

	candidates := make([]types.JobCandidate, 0, len(jobs))
	for i := range jobs {
		candidates = append(candidates, jobs[i].Candidate())
	}
	workerCand := worker.Candidate(nil)

	results, err := s.newMatcher(policy).FindJobMatchesForWorker(&workerCand, candidates, limit)
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
