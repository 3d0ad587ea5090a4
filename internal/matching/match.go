package matching

import (
	"strings"

	"github.com/shramsaathi/marketplace/internal/types"
)

// Matcher runs the full match pipeline: eligibility filter, per-pair scoring
// under one policy, ranking with deterministic tie-breaks, top-N truncation.
// It holds no mutable state and is safe for concurrent use.
type Matcher struct {
	policy Policy

	// hardTradeFilter reproduces the strict legacy behavior of dropping
	// workers whose trade differs from the job's before scoring. Off by
	// default: trade affinity is a score input, not an eligibility gate, so
	// adjacent-but-not-identical trade labels still surface (ranked last)
	// instead of yielding zero matches.
	hardTradeFilter bool
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithHardTradeFilter enables strict trade eligibility filtering.
func WithHardTradeFilter() Option {
	return func(m *Matcher) { m.hardTradeFilter = true }
}

// NewMatcher builds a Matcher around the given policy.
func NewMatcher(policy Policy, opts ...Option) *Matcher {
	m := &Matcher{policy: policy}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Policy returns the matcher's scoring policy.
func (m *Matcher) Policy() Policy { return m.policy }

// FindJobMatchesForWorker scores the worker against every active job and
// returns the top results, subject IDs being job IDs. An empty job list is a
// valid input and yields an empty result.
func (m *Matcher) FindJobMatchesForWorker(worker *types.WorkerCandidate, jobs []types.JobCandidate, limit int) ([]types.MatchResult, error) {
	results := make([]types.MatchResult, 0, len(jobs))
	for i := range jobs {
		job := &jobs[i]
		if !job.Matchable() {
			continue
		}
		if m.hardTradeFilter && !tradesEqual(worker.Trade, job.TradeRequired) {
			continue
		}
		result := m.policy.ComputeMatch(worker, job)
		result.SubjectID = job.ID
		result.CounterpartID = worker.ID
		results = append(results, result)
	}
	return Rank(results, limit)
}

// FindWorkerMatchesForJob scores every worker against the job and returns
// the top results, subject IDs being worker IDs.
func (m *Matcher) FindWorkerMatchesForJob(job *types.JobCandidate, workers []types.WorkerCandidate, limit int) ([]types.MatchResult, error) {
	results := make([]types.MatchResult, 0, len(workers))
	for i := range workers {
		worker := &workers[i]
		if m.hardTradeFilter && !tradesEqual(worker.Trade, job.TradeRequired) {
			continue
		}
		result := m.policy.ComputeMatch(worker, job)
		result.SubjectID = worker.ID
		result.CounterpartID = job.ID
		results = append(results, result)
	}
	return Rank(results, limit)
}

func tradesEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
