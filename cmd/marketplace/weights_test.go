package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shramsaathi/marketplace/internal/matching"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWeightTable_EmptyPathUsesDefaults(t *testing.T) {
	table, err := loadWeightTable("")
	require.NoError(t, err)
	assert.Equal(t, matching.DefaultWeights(), table)
}

func TestLoadWeightTable_ValidOverride(t *testing.T) {
	path := writeTempFile(t, "weights.json",
		`{"skill": 5, "experience": 1, "availability": 1, "proximity": 1, "rating": 0.5}`)

	table, err := loadWeightTable(path)
	require.NoError(t, err)
	assert.Equal(t, 5.0, table.Skill)
	assert.Equal(t, 0.5, table.Rating)
}

func TestLoadWeightTable_NegativeWeightRejected(t *testing.T) {
	path := writeTempFile(t, "weights.json",
		`{"skill": -1, "experience": 1, "availability": 1, "proximity": 1, "rating": 1}`)

	_, err := loadWeightTable(path)
	assert.Error(t, err)
}

func TestLoadWeightTable_MissingFieldRejected(t *testing.T) {
	path := writeTempFile(t, "weights.json", `{"skill": 3}`)

	_, err := loadWeightTable(path)
	assert.Error(t, err)
}

func TestLoadWeightTable_UnknownFieldRejected(t *testing.T) {
	path := writeTempFile(t, "weights.json",
		`{"skill": 3, "experience": 1, "availability": 1, "proximity": 1, "rating": 1, "luck": 9}`)

	_, err := loadWeightTable(path)
	assert.Error(t, err)
}

func TestLoadWeightTable_MissingFile(t *testing.T) {
	_, err := loadWeightTable(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestBuildPolicy_Defaults(t *testing.T) {
	policy, err := buildPolicy("", "")
	require.NoError(t, err)
	assert.Equal(t, matching.PolicyWeighted, policy.Name())
}

func TestBuildPolicy_Percentage(t *testing.T) {
	policy, err := buildPolicy("percentage", "")
	require.NoError(t, err)
	assert.Equal(t, matching.PolicyPercentage, policy.Name())
}

func TestBuildPolicy_UnknownName(t *testing.T) {
	_, err := buildPolicy("neural", "")
	assert.ErrorIs(t, err, matching.ErrUnknownPolicy)
}

func TestBuildPolicy_WeightsWithPercentageRejected(t *testing.T) {
	path := writeTempFile(t, "weights.json",
		`{"skill": 3, "experience": 1, "availability": 1, "proximity": 1, "rating": 1}`)

	_, err := buildPolicy("percentage", path)
	assert.Error(t, err)
}
