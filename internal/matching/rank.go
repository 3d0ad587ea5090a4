package matching

import (
	"fmt"
	"sort"

	"github.com/shramsaathi/marketplace/internal/types"
)

// DefaultLimit is the top-N truncation applied when callers do not ask for a
// specific result count.
const DefaultLimit = 10

// Rank orders match results by final score descending, breaking ties by
// ascending subject ID (plain lexicographic string comparison, so "job_10"
// sorts before "job_2"), and truncates to the top limit entries. The input
// slice is not modified.
func Rank(results []types.MatchResult, limit int) ([]types.MatchResult, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}

	ranked := make([]types.MatchResult, len(results))
	copy(ranked, results)

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].FinalScore != ranked[j].FinalScore {
			return ranked[i].FinalScore > ranked[j].FinalScore
		}
		return ranked[i].SubjectID < ranked[j].SubjectID
	})

	if limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
