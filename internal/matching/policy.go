package matching

import (
	"fmt"
	"math"

	"github.com/shramsaathi/marketplace/internal/types"
)

// PolicyName selects which scoring policy a deployment uses. The legacy
// system shipped two incompatible formulas side by side; here each is a
// named, pure strategy and the choice is explicit configuration.
type PolicyName string

// Known policy names.
const (
	// PolicyWeighted is the canonical normalized weighted-sum policy.
	PolicyWeighted PolicyName = "weighted"
	// PolicyPercentage is the simpler 40/25/20/10 percentage-split policy.
	PolicyPercentage PolicyName = "percentage"
)

// DefaultPolicy is used when a deployment does not configure one.
const DefaultPolicy = PolicyWeighted

// Policy scores one (worker, job) pair. Implementations are pure: identical
// inputs produce identical scores, breakdowns, and reasons.
type Policy interface {
	Name() PolicyName
	ComputeMatch(worker *types.WorkerCandidate, job *types.JobCandidate) types.MatchResult
}

// WeightTable holds the per-factor multipliers for the weighted policy.
type WeightTable struct {
	Skill        float64 `json:"skill"`
	Experience   float64 `json:"experience"`
	Availability float64 `json:"availability"`
	Proximity    float64 `json:"proximity"`
	Rating       float64 `json:"rating"`
}

// DefaultWeights is the canonical weight table:
// skill x3, experience x1.5, availability x2, proximity x2, rating x1.
func DefaultWeights() WeightTable {
	return WeightTable{
		Skill:        3.0,
		Experience:   1.5,
		Availability: 2.0,
		Proximity:    2.0,
		Rating:       1.0,
	}
}

// Validate checks that every weight is a non-negative finite number.
func (t WeightTable) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{types.FactorSkill, t.Skill},
		{types.FactorExperience, t.Experience},
		{types.FactorAvailability, t.Availability},
		{types.FactorProximity, t.Proximity},
		{types.FactorRating, t.Rating},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return fmt.Errorf("%w: weight %q must be a non-negative finite number, got %v",
				ErrInvalidWeights, f.name, f.value)
		}
	}
	return nil
}

// PolicyFor resolves a policy name to its implementation. An empty name
// resolves to the default. Unknown names return ErrUnknownPolicy.
func PolicyFor(name PolicyName) (Policy, error) {
	switch name {
	case "":
		name = DefaultPolicy
		fallthrough
	case PolicyWeighted:
		return NewWeightedPolicy(DefaultWeights())
	case PolicyPercentage:
		return &percentagePolicy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// weightedPolicy combines the six sub-scores into a weighted sum, then
// normalizes by the job's maximum possible raw score so the result lands in
// [0,100]. Intermediate sums may exceed the range (a trade-match base score
// against the no-skills denominator can); clamping happens at the boundary
// only.
type weightedPolicy struct {
	weights WeightTable
}

// NewWeightedPolicy builds the weighted policy with the given table,
// rejecting malformed tables.
func NewWeightedPolicy(weights WeightTable) (Policy, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &weightedPolicy{weights: weights}, nil
}

func (p *weightedPolicy) Name() PolicyName { return PolicyWeighted }

func (p *weightedPolicy) ComputeMatch(worker *types.WorkerCandidate, job *types.JobCandidate) types.MatchResult {
	nw := normalizeWorker(worker)
	nj := normalizeJob(job)

	skill, matched := computeSkillScore(nw, nj)
	experience := computeExperienceBonus(worker)
	availability := computeAvailabilityScore(worker, job)
	proximity := computeProximityScore(worker)
	rating := computeRatingScore(worker)

	raw := skill*p.weights.Skill +
		experience*p.weights.Experience +
		availability*p.weights.Availability +
		proximity*p.weights.Proximity +
		rating*p.weights.Rating

	score := clamp(raw/p.maxRawScore(len(nj.required))*100, 0, 100)

	breakdown := map[string]float64{
		types.FactorSkill:        skill,
		types.FactorExperience:   experience,
		types.FactorAvailability: availability,
		types.FactorProximity:    proximity,
		types.FactorRating:       rating,
	}

	return types.MatchResult{
		FinalScore:     score,
		ScoreBreakdown: breakdown,
		MatchedSkills:  matched,
		Reasons:        buildReasons(worker, matched),
	}
}

// maxRawScore is the normalization denominator for a job with the given
// required-skill count: count*skillWeight plus the sum of the remaining
// weights, or skillWeight plus that sum when no skills are required.
func (p *weightedPolicy) maxRawScore(requiredSkills int) float64 {
	rest := p.weights.Experience + p.weights.Availability + p.weights.Proximity + p.weights.Rating
	if requiredSkills == 0 {
		return p.weights.Skill + rest
	}
	return float64(requiredSkills)*p.weights.Skill + rest
}

// percentagePolicy is the flat percentage split carried over from the legacy
// matching service: skills 40, completed-job experience 25, rating 20,
// verification 10. It reads completed-job counts where the weighted policy
// reads years of experience.
type percentagePolicy struct{}

func (p *percentagePolicy) Name() PolicyName { return PolicyPercentage }

func (p *percentagePolicy) ComputeMatch(worker *types.WorkerCandidate, job *types.JobCandidate) types.MatchResult {
	nw := normalizeWorker(worker)
	nj := normalizeJob(job)

	skillFraction := 0.0
	var matched []string
	if n := len(nj.required); n > 0 {
		count, m := computeSkillScore(nw, nj)
		skillFraction = count / float64(n)
		matched = m
	}

	experienceFraction := clamp(float64(worker.TotalJobsCompleted)/10, 0, 1)
	ratingFraction := computeRatingScore(worker)
	verification := computeVerificationScore(worker)

	score := clamp(skillFraction*40+experienceFraction*25+ratingFraction*20+verification*10, 0, 100)

	breakdown := map[string]float64{
		types.FactorSkill:        skillFraction,
		types.FactorExperience:   experienceFraction,
		types.FactorRating:       ratingFraction,
		types.FactorVerification: verification,
	}

	return types.MatchResult{
		FinalScore:     score,
		ScoreBreakdown: breakdown,
		MatchedSkills:  matched,
		Reasons:        buildReasons(worker, matched),
	}
}
