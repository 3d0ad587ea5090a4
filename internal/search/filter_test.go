package search

import (
	"testing"

	"github.com/shramsaathi/marketplace/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureJobs() []types.JobCandidate {
	return []types.JobCandidate{
		{ID: "job_1", Title: "Residential wiring", Description: "House rewiring in Andheri", Category: "electrical", Location: "Mumbai, Andheri West", WageAmount: 800, RequiredSkills: []string{"wiring", "panels"}, Status: types.JobStatusActive},
		{ID: "job_2", Title: "Bathroom pipe repair", Description: "Fix leaking pipes", Category: "plumbing", Location: "Mumbai, Bandra", WageAmount: 500, RequiredSkills: []string{"pipe fitting"}, Status: types.JobStatusActive},
		{ID: "job_3", Title: "Kitchen plumbing install", Description: "New kitchen plumbing", Category: "plumbing", Location: "Pune", WageAmount: 650, RequiredSkills: []string{"plumbing", "fittings"}, Status: types.JobStatusActive},
		{ID: "job_4", Title: "Drainage overhaul", Description: "Replace drainage line", Category: "plumbing", Location: "Delhi", WageAmount: 900, RequiredSkills: []string{"drainage"}, Status: types.JobStatusActive},
		{ID: "job_5", Title: "Wall painting", Description: "Two bedroom flat", Category: "painting", Location: "Mumbai, Andheri East", WageAmount: 450, RequiredSkills: []string{"painting"}, Status: types.JobStatusActive},
	}
}

func ids(jobs []types.JobCandidate) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestJobs_CategoryAndWageRange(t *testing.T) {
	minWage, maxWage := 400.0, 700.0
	criteria := types.SearchCriteria{Category: "plumbing", MinWage: &minWage, MaxWage: &maxWage}

	result := Jobs(fixtureJobs(), criteria)

	// Exactly the plumbing jobs inside [400,700], in original order.
	assert.Equal(t, []string{"job_2", "job_3"}, ids(result))
}

func TestJobs_WageBoundsAreInclusive(t *testing.T) {
	minWage, maxWage := 500.0, 650.0
	criteria := types.SearchCriteria{MinWage: &minWage, MaxWage: &maxWage}

	result := Jobs(fixtureJobs(), criteria)

	assert.Equal(t, []string{"job_2", "job_3"}, ids(result))
}

func TestJobs_ZeroWageBoundIsHonored(t *testing.T) {
	// A present zero maximum filters out everything priced above zero; the
	// legacy service dropped falsy bounds, this implementation does not.
	maxWage := 0.0
	result := Jobs(fixtureJobs(), types.SearchCriteria{MaxWage: &maxWage})

	assert.Empty(t, result)
}

func TestJobs_SearchTextMatchesTitleOrDescription(t *testing.T) {
	result := Jobs(fixtureJobs(), types.SearchCriteria{SearchText: "WIRING"})
	assert.Equal(t, []string{"job_1"}, ids(result))

	result = Jobs(fixtureJobs(), types.SearchCriteria{SearchText: "leaking"})
	assert.Equal(t, []string{"job_2"}, ids(result))
}

func TestJobs_LocationSubstringCaseInsensitive(t *testing.T) {
	result := Jobs(fixtureJobs(), types.SearchCriteria{Location: "andheri"})

	assert.Equal(t, []string{"job_1", "job_5"}, ids(result))
}

func TestJobs_CategoryIsCaseSensitive(t *testing.T) {
	result := Jobs(fixtureJobs(), types.SearchCriteria{Category: "Plumbing"})

	assert.Empty(t, result)
}

func TestJobs_PartialSkillMatch(t *testing.T) {
	// "plumb" substring-matches "plumbing"; exact set intersection is not
	// required.
	result := Jobs(fixtureJobs(), types.SearchCriteria{Skills: []string{"plumb"}})

	assert.Equal(t, []string{"job_3"}, ids(result))
}

func TestJobs_SkillMatchesEitherDirection(t *testing.T) {
	// The requested skill may also contain the job skill.
	result := Jobs(fixtureJobs(), types.SearchCriteria{Skills: []string{"interior painting"}})

	assert.Equal(t, []string{"job_5"}, ids(result))
}

func TestJobs_AllCriteriaAnded(t *testing.T) {
	minWage := 600.0
	criteria := types.SearchCriteria{
		Category:   "plumbing",
		SearchText: "kitchen",
		MinWage:    &minWage,
	}

	result := Jobs(fixtureJobs(), criteria)

	assert.Equal(t, []string{"job_3"}, ids(result))
}

func TestJobs_EmptyCriteriaReturnsAll(t *testing.T) {
	jobs := fixtureJobs()
	result := Jobs(jobs, types.SearchCriteria{})

	assert.Equal(t, ids(jobs), ids(result))
}

func TestJobs_Idempotent(t *testing.T) {
	minWage, maxWage := 400.0, 900.0
	criteria := types.SearchCriteria{Location: "mumbai", MinWage: &minWage, MaxWage: &maxWage}
	jobs := fixtureJobs()

	once := Jobs(jobs, criteria)
	twice := Jobs(once, criteria)

	require.Equal(t, once, twice)
}

func TestJobs_DoesNotModifyInput(t *testing.T) {
	jobs := fixtureJobs()
	original := ids(jobs)

	Jobs(jobs, types.SearchCriteria{Category: "plumbing"})

	assert.Equal(t, original, ids(jobs))
}
