// Package search implements free-text job search with AND-ed criteria.
// Search is a filter, not a ranking step: it preserves the original relative
// order of the input, which also makes it idempotent.
package search

import (
	"strings"

	"github.com/shramsaathi/marketplace/internal/types"
)

// Jobs returns the subset of jobs satisfying every provided criterion.
// Absent criteria (empty strings, nil wage bounds, empty skill list) match
// everything. The input slice is not modified.
func Jobs(jobs []types.JobCandidate, criteria types.SearchCriteria) []types.JobCandidate {
	if criteria.Empty() {
		out := make([]types.JobCandidate, len(jobs))
		copy(out, jobs)
		return out
	}

	searchText := strings.ToLower(criteria.SearchText)
	location := strings.ToLower(criteria.Location)
	skills := make([]string, 0, len(criteria.Skills))
	for _, s := range criteria.Skills {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			skills = append(skills, s)
		}
	}

	matched := make([]types.JobCandidate, 0, len(jobs))
	for _, job := range jobs {
		if !matches(&job, &criteria, searchText, location, skills) {
			continue
		}
		matched = append(matched, job)
	}
	return matched
}

func matches(job *types.JobCandidate, criteria *types.SearchCriteria, searchText, location string, skills []string) bool {
	if searchText != "" {
		titleMatch := strings.Contains(strings.ToLower(job.Title), searchText)
		descMatch := strings.Contains(strings.ToLower(job.Description), searchText)
		if !titleMatch && !descMatch {
			return false
		}
	}

	// Category is an exact, case-sensitive match against the stored value.
	if criteria.Category != "" && job.Category != criteria.Category {
		return false
	}

	if location != "" && !strings.Contains(strings.ToLower(job.Location), location) {
		return false
	}

	if criteria.MinWage != nil && job.WageAmount < *criteria.MinWage {
		return false
	}
	if criteria.MaxWage != nil && job.WageAmount > *criteria.MaxWage {
		return false
	}

	if len(skills) > 0 && !anySkillMatches(job.RequiredSkills, skills) {
		return false
	}

	return true
}

// anySkillMatches reports whether any requested skill partially matches any
// job skill, in either direction. Substring semantics are deliberate: the
// legacy search matched "includes" both ways so "plumb" finds "plumbing" and
// vice versa.
func anySkillMatches(jobSkills, wanted []string) bool {
	for _, js := range jobSkills {
		jobSkill := strings.ToLower(js)
		for _, w := range wanted {
			if strings.Contains(jobSkill, w) || strings.Contains(w, jobSkill) {
				return true
			}
		}
	}
	return false
}
