package types

// Score breakdown factor names shared by scoring policies and the explainer.
const (
	FactorSkill        = "skill"
	FactorExperience   = "experience"
	FactorAvailability = "availability"
	FactorProximity    = "proximity"
	FactorRating       = "rating"
	FactorVerification = "verification"
)

// MatchResult is one scored (worker, job) pair. It is derived and ephemeral:
// computed on demand, returned to the caller, never persisted.
type MatchResult struct {
	// SubjectID identifies the candidate being ranked (a job when matching
	// jobs for a worker, a worker when matching workers for a job).
	SubjectID     string `json:"subject_id"`
	CounterpartID string `json:"counterpart_id"`

	// FinalScore is kept in floating point internally; the HTTP layer rounds
	// it to an integer for display.
	FinalScore     float64            `json:"final_score"`
	ScoreBreakdown map[string]float64 `json:"score_breakdown"`
	Reasons        []string           `json:"reasons"`

	// MatchedSkills are the job-required skills the worker carries,
	// in required-skill order. Input to the explainer.
	MatchedSkills []string `json:"matched_skills,omitempty"`
}

// SearchCriteria are the AND-ed filters accepted by job search.
// Nil pointer fields mean "criterion not provided"; a present zero wage bound
// is honored (unlike the legacy service, which ignored falsy bounds).
type SearchCriteria struct {
	Category   string   `json:"category,omitempty"`
	Location   string   `json:"location,omitempty"`
	MinWage    *float64 `json:"min_wage,omitempty"`
	MaxWage    *float64 `json:"max_wage,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	SearchText string   `json:"search_text,omitempty"`
}

// Empty reports whether no criteria were provided at all.
func (c *SearchCriteria) Empty() bool {
	return c.Category == "" && c.Location == "" && c.MinWage == nil &&
		c.MaxWage == nil && len(c.Skills) == 0 && c.SearchText == ""
}
