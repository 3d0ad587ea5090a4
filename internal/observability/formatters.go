// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shramsaathi/marketplace/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintWorker outputs a human-readable summary of the worker profile being
// matched.
func (p *Printer) PrintWorker(worker *types.WorkerCandidate) {
	if worker == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Worker:       %s\n", worker.ID))
	sb.WriteString(fmt.Sprintf("Trade:        %s\n", worker.Trade))
	sb.WriteString(fmt.Sprintf("Experience:   %.1f years\n", worker.ExperienceYears))
	sb.WriteString(fmt.Sprintf("Rating:       %.1f/5\n", worker.Rating))
	sb.WriteString(fmt.Sprintf("Availability: %s\n", worker.Availability))
	if worker.Verified {
		sb.WriteString("Verified:     yes\n")
	}

	if len(worker.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		count := min(len(worker.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", worker.Skills[i]))
		}
		if len(worker.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(worker.Skills)-maxItemsToShow))
		}
	}

	p.printBox("WORKER PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatches outputs the ranked matches with scores, reasons and matched
// skills.
func (p *Printer) PrintMatches(results []types.MatchResult, policyName string) {
	if len(results) == 0 {
		p.printBox("MATCHES ("+policyName+")", "No matches.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total matches: %d\n\n", len(results)))

	count := min(len(results), maxItemsToShow)
	for i := 0; i < count; i++ {
		result := results[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, result.SubjectID))
		sb.WriteString(fmt.Sprintf("    Score: %.1f\n", result.FinalScore))
		if len(result.MatchedSkills) > 0 {
			skills := strings.Join(result.MatchedSkills, ", ")
			if len(skills) > 40 {
				skills = skills[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", skills))
		}
		if len(result.Reasons) > 0 {
			reasons := strings.Join(result.Reasons, "; ")
			if len(reasons) > 45 {
				reasons = reasons[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("    %s\n", reasons))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more matches", len(results)-maxItemsToShow))
	}

	p.printBox("MATCHES ("+policyName+")", sb.String())
}

// PrintBreakdown outputs the per-factor sub-scores of a single match, sorted
// by factor name for stable output.
func (p *Printer) PrintBreakdown(result *types.MatchResult) {
	if result == nil || len(result.ScoreBreakdown) == 0 {
		return
	}

	factors := make([]string, 0, len(result.ScoreBreakdown))
	for factor := range result.ScoreBreakdown {
		factors = append(factors, factor)
	}
	sort.Strings(factors)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Subject: %s\n", result.SubjectID))
	sb.WriteString(fmt.Sprintf("Final:   %.1f\n\n", result.FinalScore))
	for _, factor := range factors {
		sb.WriteString(fmt.Sprintf("  %-14s %.2f\n", factor, result.ScoreBreakdown[factor]))
	}

	p.printBox("SCORE BREAKDOWN", strings.TrimSuffix(sb.String(), "\n"))
}
