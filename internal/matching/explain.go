package matching

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shramsaathi/marketplace/internal/types"
)

// maxReasons caps the reason list so the UI never has to elide.
const maxReasons = 4

// experiencedJobsThreshold is the completed-job count that earns an
// "Experienced" reason.
const experiencedJobsThreshold = 5

// topRatedThreshold is the rating that earns a "Top rated" reason.
const topRatedThreshold = 4.0

// buildReasons derives the human-readable reason strings for a scored pair,
// in fixed priority order: matched skills, completed-job experience, rating,
// verification. Each rule contributes at most one entry. An empty list is a
// valid outcome, not an error.
func buildReasons(worker *types.WorkerCandidate, matchedSkills []string) []string {
	reasons := make([]string, 0, maxReasons)

	if len(matchedSkills) > 0 {
		shown := matchedSkills
		suffix := ""
		if len(shown) > 2 {
			shown = shown[:2]
			suffix = " +more"
		}
		reasons = append(reasons, fmt.Sprintf("Skills: %s%s", strings.Join(shown, ", "), suffix))
	}

	if worker.TotalJobsCompleted >= experiencedJobsThreshold {
		reasons = append(reasons, fmt.Sprintf("Experienced: %d+ jobs", worker.TotalJobsCompleted))
	}

	if worker.Rating >= topRatedThreshold {
		reasons = append(reasons, fmt.Sprintf("Top rated: %s/5", formatRating(worker.Rating)))
	}

	if worker.Verified {
		reasons = append(reasons, "Verified")
	}

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return reasons
}

// formatRating renders a rating without trailing zeros: 4.5 stays "4.5",
// 5.0 becomes "5".
func formatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', -1, 64)
}
