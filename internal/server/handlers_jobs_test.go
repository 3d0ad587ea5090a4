package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shramsaathi/marketplace/internal/db"
	"github.com/shramsaathi/marketplace/internal/types"
)

// TestHandleCreateJob_Valid tests creating a job
func TestHandleCreateJob_Valid(t *testing.T) {
	store := &stubStore{}
	s := newTestServer(store)

	body, err := json.Marshal(types.CreateJobRequest{
		Title:          "Bathroom renovation",
		Description:    "Replace tiles and fittings",
		TradeRequired:  "plumber",
		RequiredSkills: []string{"tiling"},
		Category:       "plumbing",
		WageAmount:     600,
		WageCurrency:   "INR",
		WagePeriod:     types.WagePeriodDaily,
		Location:       "Pune",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/jobs", bytes.NewReader(body))
	w := httptest.NewRecorder()

	s.handleCreateJob(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created db.Job
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "active", created.Status, "new jobs start active")
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Len(t, store.jobs, 1)
}

// TestHandleCreateJob_MissingFields tests validation of the create payload
func TestHandleCreateJob_MissingFields(t *testing.T) {
	s := newTestServer(&stubStore{})

	body := []byte(`{"title": "x"}`)
	req := httptest.NewRequest(http.MethodPost, "/jobs", bytes.NewReader(body))
	w := httptest.NewRecorder()

	s.handleCreateJob(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestHandleListJobs_StatusFilter tests the status query parameter
func TestHandleListJobs_StatusFilter(t *testing.T) {
	store := &stubStore{}
	seedJob(store, "active")
	seedJob(store, "filled")
	s := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/jobs?status=filled", nil)
	w := httptest.NewRecorder()

	s.handleListJobs(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ListJobsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "filled", resp.Jobs[0].Status)
}

// TestHandleListJobs_InvalidStatus tests an unknown status filter
func TestHandleListJobs_InvalidStatus(t *testing.T) {
	s := newTestServer(&stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/jobs?status=archived", nil)
	w := httptest.NewRecorder()

	s.handleListJobs(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestHandleGetJob_NotFound tests fetching an unknown job
func TestHandleGetJob_NotFound(t *testing.T) {
	s := newTestServer(&stubStore{})

	id := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/jobs/"+id, nil)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()

	s.handleGetJob(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestHandleUpdateJobStatus_Lifecycle tests a status transition
func TestHandleUpdateJobStatus_Lifecycle(t *testing.T) {
	store := &stubStore{}
	job := seedJob(store, "active")
	s := newTestServer(store)

	body := []byte(`{"status": "filled"}`)
	req := httptest.NewRequest(http.MethodPatch, "/jobs/"+job.ID.String()+"/status", bytes.NewReader(body))
	req.SetPathValue("id", job.ID.String())
	w := httptest.NewRecorder()

	s.handleUpdateJobStatus(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "filled", store.jobs[0].Status)
}

// TestHandleUpdateJobStatus_CompletedCreditsWorker tests that completing a
// job with a worker_id bumps that worker's completed-job count
func TestHandleUpdateJobStatus_CompletedCreditsWorker(t *testing.T) {
	store := &stubStore{}
	worker := seedWorker(store)
	job := seedJob(store, "filled")
	s := newTestServer(store)

	before := store.workers[0].TotalJobsCompleted
	body := []byte(`{"status": "completed", "worker_id": "` + worker.ID.String() + `"}`)
	req := httptest.NewRequest(http.MethodPatch, "/jobs/"+job.ID.String()+"/status", bytes.NewReader(body))
	req.SetPathValue("id", job.ID.String())
	w := httptest.NewRecorder()

	s.handleUpdateJobStatus(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", store.jobs[0].Status)
	assert.Equal(t, before+1, store.workers[0].TotalJobsCompleted)
}

// TestHandleUpdateJobStatus_UnknownStatus tests rejection of invalid statuses
func TestHandleUpdateJobStatus_UnknownStatus(t *testing.T) {
	store := &stubStore{}
	job := seedJob(store, "active")
	s := newTestServer(store)

	body := []byte(`{"status": "archived"}`)
	req := httptest.NewRequest(http.MethodPatch, "/jobs/"+job.ID.String()+"/status", bytes.NewReader(body))
	req.SetPathValue("id", job.ID.String())
	w := httptest.NewRecorder()

	s.handleUpdateJobStatus(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "active", store.jobs[0].Status)
}

// TestHandleUpdateJobStatus_NotFound tests updating an unknown job
func TestHandleUpdateJobStatus_NotFound(t *testing.T) {
	s := newTestServer(&stubStore{})

	id := uuid.New().String()
	body := []byte(`{"status": "cancelled"}`)
	req := httptest.NewRequest(http.MethodPatch, "/jobs/"+id+"/status", bytes.NewReader(body))
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()

	s.handleUpdateJobStatus(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func searchFixture() *stubStore {
	store := &stubStore{}
	store.jobs = []db.Job{
		{
			ID: uuid.New(), Title: "Kitchen sink repair", Description: "Fix a leaking sink",
			TradeRequired: "plumber", RequiredSkills: []string{"pipe fitting"},
			Category: "plumbing", WageAmount: 500, WageCurrency: "INR",
			WagePeriod: "daily", Location: "Mumbai", Status: "active",
		},
		{
			ID: uuid.New(), Title: "House wiring", Description: "Rewire two rooms",
			TradeRequired: "electrician", RequiredSkills: []string{"wiring"},
			Category: "electrical", WageAmount: 800, WageCurrency: "INR",
			WagePeriod: "daily", Location: "Pune", Status: "active",
		},
		{
			ID: uuid.New(), Title: "Drain cleaning", Description: "Clear blocked drain",
			TradeRequired: "plumber", RequiredSkills: nil,
			Category: "plumbing", WageAmount: 300, WageCurrency: "INR",
			WagePeriod: "fixed", Location: "Mumbai", Status: "filled",
		},
	}
	return store
}

// TestHandleSearchJobs_CategoryAndWage tests AND-ed search criteria
func TestHandleSearchJobs_CategoryAndWage(t *testing.T) {
	store := searchFixture()
	s := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/jobs/search?category=plumbing&min_wage=400&max_wage=700", nil)
	w := httptest.NewRecorder()

	s.handleSearchJobs(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ListJobsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "Kitchen sink repair", resp.Jobs[0].Title)
}

// TestHandleSearchJobs_TextSearch tests the free-text criterion
func TestHandleSearchJobs_TextSearch(t *testing.T) {
	store := searchFixture()
	s := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/jobs/search?q=wiring", nil)
	w := httptest.NewRecorder()

	s.handleSearchJobs(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ListJobsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "House wiring", resp.Jobs[0].Title)
}

// TestHandleSearchJobs_OnlyActiveJobs tests that filled jobs never surface
func TestHandleSearchJobs_OnlyActiveJobs(t *testing.T) {
	store := searchFixture()
	s := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/jobs/search?category=plumbing", nil)
	w := httptest.NewRecorder()

	s.handleSearchJobs(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ListJobsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count, "the filled plumbing job must not appear")
	assert.Equal(t, "Kitchen sink repair", resp.Jobs[0].Title)
}

// TestHandleSearchJobs_SkillsParam tests the comma-separated skills filter
func TestHandleSearchJobs_SkillsParam(t *testing.T) {
	store := searchFixture()
	s := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/jobs/search?skills=wiring", nil)
	w := httptest.NewRecorder()

	s.handleSearchJobs(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ListJobsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "House wiring", resp.Jobs[0].Title)
}

// TestHandleSearchJobs_NoCriteria tests that an empty search returns all active jobs
func TestHandleSearchJobs_NoCriteria(t *testing.T) {
	store := searchFixture()
	s := newTestServer(store)

	req := httptest.NewRequest(http.MethodGet, "/jobs/search", nil)
	w := httptest.NewRecorder()

	s.handleSearchJobs(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp ListJobsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
}
