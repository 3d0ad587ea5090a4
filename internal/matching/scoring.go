package matching

import (
	"time"

	"github.com/shramsaathi/marketplace/internal/types"
)

// Sub-score functions. Each is pure and total: malformed numeric inputs
// (negative distance, rating above 5) are clamped rather than rejected,
// since validation belongs to the API boundary, not the scorer.

// maxProximityKm is the distance at which the proximity score reaches zero.
const maxProximityKm = 50.0

// tradeMatchBaseScore is the skill score granted on a trade match when the
// job lists no required skills.
const tradeMatchBaseScore = 3.0

// computeSkillScore counts the job's required skills the worker carries
// (case-insensitive exact match) and returns the matched skills in
// required-skill order, with the job's original casing. When the job lists no
// required skills, a trade match earns a flat base score instead.
//
// A zero score does not exclude the pair; eligibility is the filter's job.
func computeSkillScore(w normalizedWorker, j normalizedJob) (float64, []string) {
	if len(j.required) == 0 {
		if w.tradeKey != "" && w.tradeKey == j.tradeKey {
			return tradeMatchBaseScore, nil
		}
		return 0, nil
	}

	var matched []string
	for _, req := range j.required {
		if _, ok := w.skillSet[req.key]; ok {
			matched = append(matched, req.display)
		}
	}
	return float64(len(matched)), matched
}

// computeExperienceBonus maps years of experience to [0,1], capping at 10 years.
func computeExperienceBonus(w *types.WorkerCandidate) float64 {
	years := clamp(w.ExperienceYears, 0, 10)
	return years / 10
}

// computeAvailabilityScore returns 1.0 for immediate availability, 0.5 for
// flexible, 1.0 for dated availability landing exactly on the job's date, and
// 0.0 otherwise (including a dated worker with a missing or mismatched date).
func computeAvailabilityScore(w *types.WorkerCandidate, j *types.JobCandidate) float64 {
	switch w.Availability {
	case types.AvailabilityImmediate:
		return 1.0
	case types.AvailabilityFlexible:
		return 0.5
	case types.AvailabilityDated:
		if w.AvailabilityDate != nil && j.Date != nil && sameDay(*w.AvailabilityDate, *j.Date) {
			return 1.0
		}
	}
	return 0.0
}

// computeProximityScore falls off linearly from 1.0 at 0 km to 0.0 at 50 km.
// Unknown distance returns a neutral 0.5: absence of distance data must not
// penalize nor reward.
func computeProximityScore(w *types.WorkerCandidate) float64 {
	if w.DistanceKm == nil {
		return 0.5
	}
	d := clamp(*w.DistanceKm, 0, maxProximityKm)
	return clamp(1-d/maxProximityKm, 0, 1)
}

// computeRatingScore normalizes a 0-5 rating to [0,1].
func computeRatingScore(w *types.WorkerCandidate) float64 {
	return clamp(w.Rating/5, 0, 1)
}

// computeVerificationScore is 1 for verified workers, 0 otherwise.
func computeVerificationScore(w *types.WorkerCandidate) float64 {
	if w.Verified {
		return 1.0
	}
	return 0.0
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
