package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shramsaathi/marketplace/internal/search"
	"github.com/shramsaathi/marketplace/internal/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Filter a job list from a fixture file",
	Long:  `Apply the job search criteria to a JSON job list and print the jobs that match all of them.`,
	RunE:  runSearch,
}

var (
	searchJobsFile string
	searchCategory string
	searchLocation string
	searchText     string
	searchSkills   string
	searchMinWage  float64
	searchMaxWage  float64
)

func init() {
	searchCmd.Flags().StringVarP(&searchJobsFile, "jobs", "j", "", "Path to jobs JSON file (required)")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "Exact category to match")
	searchCmd.Flags().StringVar(&searchLocation, "location", "", "Location substring to match")
	searchCmd.Flags().StringVar(&searchText, "text", "", "Free text to match in title or description")
	searchCmd.Flags().StringVar(&searchSkills, "skills", "", "Comma-separated skills, any may match")
	searchCmd.Flags().Float64Var(&searchMinWage, "min-wage", 0, "Minimum wage amount (inclusive)")
	searchCmd.Flags().Float64Var(&searchMaxWage, "max-wage", 0, "Maximum wage amount (inclusive)")

	_ = searchCmd.MarkFlagRequired("jobs")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	jobs, err := loadJobFixtures(searchJobsFile)
	if err != nil {
		return err
	}

	criteria := buildCriteria(cmd)
	results := search.Jobs(jobs, criteria)

	fmt.Fprintf(os.Stdout, "%d of %d jobs match\n", len(results), len(jobs))
	for _, job := range results {
		fmt.Fprintf(os.Stdout, "  %-20s %-30s %s %.0f/%s  %s\n",
			job.ID, job.Title, job.WageCurrency, job.WageAmount, job.WagePeriod, job.Location)
	}
	return nil
}

// buildCriteria translates the flags into search criteria. Wage bounds are
// pointers so an explicit zero is honored.
func buildCriteria(cmd *cobra.Command) types.SearchCriteria {
	criteria := types.SearchCriteria{
		Category:   searchCategory,
		Location:   searchLocation,
		SearchText: searchText,
	}
	if cmd.Flags().Changed("min-wage") {
		criteria.MinWage = &searchMinWage
	}
	if cmd.Flags().Changed("max-wage") {
		criteria.MaxWage = &searchMaxWage
	}
	if searchSkills != "" {
		for _, skill := range strings.Split(searchSkills, ",") {
			if skill = strings.TrimSpace(skill); skill != "" {
				criteria.Skills = append(criteria.Skills, skill)
			}
		}
	}
	return criteria
}
