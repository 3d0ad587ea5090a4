package matching

import (
	"strings"

	"github.com/shramsaathi/marketplace/internal/types"
)

// Candidates arrive with mixed-case trades and skills. Case folding happens
// once here, when a candidate enters the engine, so scoring a large set never
// re-lowers the same strings per pair.

type normalizedWorker struct {
	worker   *types.WorkerCandidate
	tradeKey string
	skillSet map[string]struct{}
}

type requiredSkill struct {
	key     string
	display string // original casing, used in reason strings
}

type normalizedJob struct {
	job      *types.JobCandidate
	tradeKey string
	required []requiredSkill
}

func normalizeWorker(w *types.WorkerCandidate) normalizedWorker {
	set := make(map[string]struct{}, len(w.Skills))
	for _, s := range w.Skills {
		key := strings.ToLower(strings.TrimSpace(s))
		if key != "" {
			set[key] = struct{}{}
		}
	}
	return normalizedWorker{
		worker:   w,
		tradeKey: strings.ToLower(strings.TrimSpace(w.Trade)),
		skillSet: set,
	}
}

func normalizeJob(j *types.JobCandidate) normalizedJob {
	required := make([]requiredSkill, 0, len(j.RequiredSkills))
	for _, s := range j.RequiredSkills {
		key := strings.ToLower(strings.TrimSpace(s))
		if key != "" {
			required = append(required, requiredSkill{key: key, display: strings.TrimSpace(s)})
		}
	}
	return normalizedJob{
		job:      j,
		tradeKey: strings.ToLower(strings.TrimSpace(j.TradeRequired)),
		required: required,
	}
}
