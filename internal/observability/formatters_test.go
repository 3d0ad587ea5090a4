package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shramsaathi/marketplace/internal/types"
)

func TestPrintWorker(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	worker := &types.WorkerCandidate{
		ID:              "worker_1",
		Trade:           "electrician",
		Skills:          []string{"wiring", "fan repair"},
		ExperienceYears: 8,
		Rating:          4.5,
		Availability:    types.AvailabilityImmediate,
		Verified:        true,
	}
	p.PrintWorker(worker)

	out := buf.String()
	assert.Contains(t, out, "WORKER PROFILE")
	assert.Contains(t, out, "worker_1")
	assert.Contains(t, out, "electrician")
	assert.Contains(t, out, "wiring")
	assert.Contains(t, out, "Verified:     yes")
}

func TestPrintWorker_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintWorker(nil)
	assert.Empty(t, buf.String())
}

func TestPrintWorker_ManySkillsTruncated(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	worker := &types.WorkerCandidate{
		ID:     "worker_1",
		Trade:  "electrician",
		Skills: []string{"a", "b", "c", "d", "e", "f", "g"},
	}
	p.PrintWorker(worker)

	assert.Contains(t, buf.String(), "... and 2 more")
}

func TestPrintMatches(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	results := []types.MatchResult{
		{
			SubjectID:     "job_1",
			FinalScore:    71.6,
			Reasons:       []string{"Skills: wiring", "Verified"},
			MatchedSkills: []string{"wiring"},
		},
		{
			SubjectID:  "job_2",
			FinalScore: 54.2,
		},
	}
	p.PrintMatches(results, "weighted")

	out := buf.String()
	assert.Contains(t, out, "MATCHES (weighted)")
	assert.Contains(t, out, "job_1")
	assert.Contains(t, out, "71.6")
	assert.Contains(t, out, "Skills: wiring")
	assert.True(t, strings.Index(out, "job_1") < strings.Index(out, "job_2"),
		"results print in ranked order")
}

func TestPrintMatches_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintMatches(nil, "weighted")
	assert.Contains(t, buf.String(), "No matches.")
}

func TestPrintMatches_ManyTruncated(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	results := make([]types.MatchResult, 8)
	for i := range results {
		results[i] = types.MatchResult{SubjectID: "job", FinalScore: float64(i)}
	}
	p.PrintMatches(results, "weighted")

	assert.Contains(t, buf.String(), "... and 3 more matches")
}

func TestPrintBreakdown(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.MatchResult{
		SubjectID:  "job_1",
		FinalScore: 71.6,
		ScoreBreakdown: map[string]float64{
			types.FactorSkill:     2,
			types.FactorRating:    0.9,
			types.FactorProximity: 0.5,
		},
	}
	p.PrintBreakdown(result)

	out := buf.String()
	assert.Contains(t, out, "SCORE BREAKDOWN")
	assert.Contains(t, out, "skill")
	assert.True(t, strings.Index(out, "proximity") < strings.Index(out, "skill"),
		"factors print in sorted order")
}

func TestPrintBreakdown_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintBreakdown(&types.MatchResult{SubjectID: "job_1"})
	assert.Empty(t, buf.String())
}
