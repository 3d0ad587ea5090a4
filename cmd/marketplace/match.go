package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shramsaathi/marketplace/internal/matching"
	"github.com/shramsaathi/marketplace/internal/observability"
	"github.com/shramsaathi/marketplace/internal/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a worker against a job pool from fixture files",
	Long:  `Run the matching pipeline offline: read a worker profile and a job list from JSON files and print the ranked matches. Useful for tuning weight tables without a database.`,
	RunE:  runMatch,
}

var (
	matchWorkerFile      string
	matchJobsFile        string
	matchPolicy          string
	matchLimit           int
	matchWeightsPath     string
	matchHardTradeFilter bool
	matchVerbose         bool
)

func init() {
	matchCmd.Flags().StringVarP(&matchWorkerFile, "worker", "w", "", "Path to worker JSON file (required)")
	matchCmd.Flags().StringVarP(&matchJobsFile, "jobs", "j", "", "Path to jobs JSON file (required)")
	matchCmd.Flags().StringVar(&matchPolicy, "policy", "", "Scoring policy (weighted or percentage)")
	matchCmd.Flags().IntVar(&matchLimit, "limit", matching.DefaultLimit, "Number of matches to return")
	matchCmd.Flags().StringVar(&matchWeightsPath, "weights", "", "Path to a weight table JSON override")
	matchCmd.Flags().BoolVar(&matchHardTradeFilter, "hard-trade-filter", false, "Drop trade-mismatched jobs before scoring")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print the worker profile and per-factor score breakdowns")

	_ = matchCmd.MarkFlagRequired("worker")
	_ = matchCmd.MarkFlagRequired("jobs")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, _ []string) error {
	worker, err := loadWorkerFixture(matchWorkerFile)
	if err != nil {
		return err
	}
	jobs, err := loadJobFixtures(matchJobsFile)
	if err != nil {
		return err
	}

	policy, err := buildPolicy(matchPolicy, matchWeightsPath)
	if err != nil {
		return err
	}

	opts := []matching.Option{}
	if matchHardTradeFilter {
		opts = append(opts, matching.WithHardTradeFilter())
	}
	matcher := matching.NewMatcher(policy, opts...)

	results, err := matcher.FindJobMatchesForWorker(worker, jobs, matchLimit)
	if err != nil {
		return err
	}

	if matchVerbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintWorker(worker)
		printer.PrintMatches(results, string(policy.Name()))
		for i := range results {
			printer.PrintBreakdown(&results[i])
		}
		return nil
	}

	printMatches(os.Stdout, results, string(policy.Name()))
	return nil
}

func loadWorkerFixture(path string) (*types.WorkerCandidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read worker file: %w", err)
	}
	var worker types.WorkerCandidate
	if err := json.Unmarshal(data, &worker); err != nil {
		return nil, fmt.Errorf("failed to parse worker JSON: %w", err)
	}
	return &worker, nil
}

func loadJobFixtures(path string) ([]types.JobCandidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read jobs file: %w", err)
	}
	var jobs []types.JobCandidate
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("failed to parse jobs JSON: %w", err)
	}
	return jobs, nil
}

func printMatches(out *os.File, results []types.MatchResult, policyName string) {
	fmt.Fprintf(out, "Policy: %s\n", policyName)
	if len(results) == 0 {
		fmt.Fprintln(out, "No matches.")
		return
	}
	for i, r := range results {
		fmt.Fprintf(out, "%2d. %-20s score=%.1f", i+1, r.SubjectID, r.FinalScore)
		if len(r.Reasons) > 0 {
			fmt.Fprintf(out, "  (%s)", strings.Join(r.Reasons, "; "))
		}
		fmt.Fprintln(out)
	}
}
