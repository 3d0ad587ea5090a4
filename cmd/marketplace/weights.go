package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shramsaathi/marketplace/internal/matching"
	"github.com/shramsaathi/marketplace/internal/schemas"
)

// loadWeightTable reads a weight-table override file, validating it against
// the JSON schema first. An empty path selects the default weights.
func loadWeightTable(path string) (matching.WeightTable, error) {
	if path == "" {
		return matching.DefaultWeights(), nil
	}

	if err := schemas.ValidateWeightTable(path); err != nil {
		return matching.WeightTable{}, fmt.Errorf("weight table rejected: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return matching.WeightTable{}, fmt.Errorf("failed to read weight table: %w", err)
	}

	var table matching.WeightTable
	if err := json.Unmarshal(data, &table); err != nil {
		return matching.WeightTable{}, fmt.Errorf("failed to parse weight table: %w", err)
	}
	if err := table.Validate(); err != nil {
		return matching.WeightTable{}, err
	}

	return table, nil
}

// buildPolicy resolves a scoring policy from a name and an optional weight
// table path. The weight table only applies to the weighted policy.
func buildPolicy(name, weightsPath string) (matching.Policy, error) {
	policyName := matching.PolicyName(name)
	if policyName == "" {
		policyName = matching.DefaultPolicy
	}

	if policyName == matching.PolicyWeighted {
		weights, err := loadWeightTable(weightsPath)
		if err != nil {
			return nil, err
		}
		return matching.NewWeightedPolicy(weights)
	}

	if weightsPath != "" {
		return nil, fmt.Errorf("--weights only applies to the weighted policy")
	}
	return matching.PolicyFor(policyName)
}
