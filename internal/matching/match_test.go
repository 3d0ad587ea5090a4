package matching

import (
	"testing"

	"github.com/shramsaathi/marketplace/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatcher(t *testing.T, opts ...Option) *Matcher {
	t.Helper()
	policy, err := NewWeightedPolicy(DefaultWeights())
	require.NoError(t, err)
	return NewMatcher(policy, opts...)
}

func TestFindJobMatchesForWorker_SkipsInactiveJobs(t *testing.T) {
	m := newTestMatcher(t)
	worker := electricianWorker()
	jobs := []types.JobCandidate{
		{ID: "job_active", TradeRequired: "electrician", Status: types.JobStatusActive},
		{ID: "job_filled", TradeRequired: "electrician", Status: types.JobStatusFilled},
		{ID: "job_cancelled", TradeRequired: "electrician", Status: types.JobStatusCancelled},
		{ID: "job_completed", TradeRequired: "electrician", Status: types.JobStatusCompleted},
	}

	results, err := m.FindJobMatchesForWorker(worker, jobs, 10)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "job_active", results[0].SubjectID)
	assert.Equal(t, worker.ID, results[0].CounterpartID)
}

func TestFindJobMatchesForWorker_TradeMismatchIsSoft(t *testing.T) {
	m := newTestMatcher(t)
	worker := electricianWorker()
	jobs := []types.JobCandidate{
		{ID: "job_elec", TradeRequired: "electrician", Status: types.JobStatusActive},
		{ID: "job_mason", TradeRequired: "mason", Status: types.JobStatusActive},
	}

	results, err := m.FindJobMatchesForWorker(worker, jobs, 10)
	require.NoError(t, err)

	// The adjacent trade still surfaces, ranked below the matching one.
	require.Len(t, results, 2)
	assert.Equal(t, "job_elec", results[0].SubjectID)
	assert.Equal(t, "job_mason", results[1].SubjectID)
}

func TestFindJobMatchesForWorker_HardTradeFilter(t *testing.T) {
	m := newTestMatcher(t, WithHardTradeFilter())
	worker := electricianWorker()
	jobs := []types.JobCandidate{
		{ID: "job_elec", TradeRequired: "Electrician", Status: types.JobStatusActive},
		{ID: "job_mason", TradeRequired: "mason", Status: types.JobStatusActive},
	}

	results, err := m.FindJobMatchesForWorker(worker, jobs, 10)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "job_elec", results[0].SubjectID)
}

func TestFindWorkerMatchesForJob_EmptyWorkerList(t *testing.T) {
	m := newTestMatcher(t)

	results, err := m.FindWorkerMatchesForJob(electricianJob(), nil, 10)

	// No candidates is a valid, representable empty result, not an error.
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindWorkerMatchesForJob_RanksBestFirst(t *testing.T) {
	m := newTestMatcher(t)
	job := electricianJob()
	workers := []types.WorkerCandidate{
		{ID: "worker_weak", Trade: "electrician", Skills: []string{"wiring"}, Rating: 3, Availability: types.AvailabilityFlexible},
		{ID: "worker_strong", Trade: "electrician", Skills: []string{"wiring", "panels", "testing"}, ExperienceYears: 10, Rating: 5, Availability: types.AvailabilityImmediate, Verified: true},
	}

	results, err := m.FindWorkerMatchesForJob(job, workers, 10)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "worker_strong", results[0].SubjectID)
	assert.Equal(t, "worker_weak", results[1].SubjectID)
	assert.Equal(t, job.ID, results[0].CounterpartID)
}

func TestFindJobMatchesForWorker_Deterministic(t *testing.T) {
	m := newTestMatcher(t)
	worker := electricianWorker()
	jobs := []types.JobCandidate{
		{ID: "job_a", TradeRequired: "electrician", RequiredSkills: []string{"wiring"}, Status: types.JobStatusActive},
		{ID: "job_b", TradeRequired: "electrician", RequiredSkills: []string{"panels"}, Status: types.JobStatusActive},
		{ID: "job_c", TradeRequired: "mason", Status: types.JobStatusActive},
	}

	first, err := m.FindJobMatchesForWorker(worker, jobs, 10)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := m.FindJobMatchesForWorker(worker, jobs, 10)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestFindJobMatchesForWorker_PropagatesInvalidLimit(t *testing.T) {
	m := newTestMatcher(t)

	_, err := m.FindJobMatchesForWorker(electricianWorker(), nil, 0)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}
