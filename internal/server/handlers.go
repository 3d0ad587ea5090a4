package server

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/shramsaathi/marketplace/internal/types"
)

// isNoRows reports whether err is a no-rows result from the repository.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// parseQueryInt parses an integer query parameter with a default and an
// optional maximum (0 disables the cap).
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}

// parseQueryFloat parses an optional float query parameter; nil means the
// parameter is absent or not numeric.
func parseQueryFloat(r *http.Request, key string) *float64 {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return nil
	}
	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		return nil
	}
	return &val
}

// MatchEntry is the wire form of a single match. Scores travel as integers
// in [0,100]; the breakdown keeps the raw sub-scores for clients that render
// factor bars.
type MatchEntry struct {
	ID            string             `json:"id"`
	Score         int                `json:"score"`
	Breakdown     map[string]float64 `json:"breakdown"`
	Reasons       []string           `json:"reasons"`
	MatchedSkills []string           `json:"matched_skills,omitempty"`
}

// MatchesResponse represents the response for the match endpoints
type MatchesResponse struct {
	Matches []MatchEntry `json:"matches"`
	Count   int          `json:"count"`
	Policy  string       `json:"policy"`
}

func toMatchEntries(results []types.MatchResult) []MatchEntry {
	entries := make([]MatchEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, MatchEntry{
			ID:            r.SubjectID,
			Score:         int(math.Round(r.FinalScore)),
			Breakdown:     r.ScoreBreakdown,
			Reasons:       r.Reasons,
			MatchedSkills: r.MatchedSkills,
		})
	}
	return entries
}
