// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/forge-ai/forge/internal/types"
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

// PrintAnalysis outputs a human-readable summary of an analysis report.
func (p *Printer) PrintAnalysis(result *types.AnalysisResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Problem:  %s\n", result.RefinedProblem))
	sb.WriteString("\n")

	for _, chunk := range result.Chunks {
		sb.WriteString(fmt.Sprintf("%d. %s\n", chunk.ID, chunk.Title))
		count := min(len(chunk.KeyInsights), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("   • %s\n", chunk.KeyInsights[i]))
		}
		if len(chunk.KeyInsights) > 3 {
			sb.WriteString(fmt.Sprintf("   ... and %d more\n", len(chunk.KeyInsights)-3))
		}
	}

	if len(result.Synthesis.SolutionGuide) > 0 {
		sb.WriteString("\nSolution Guide:\n")
		for i, step := range result.Synthesis.SolutionGuide {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, step))
		}
	}

	p.printBox("ANALYSIS REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDiscovery outputs the discovered problems for a sector scan.
func (p *Printer) PrintDiscovery(result *types.DiscoveryResult) {
	if result == nil || len(result.Problems) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Sector:  %s\n\n", result.Sector))

	count := min(len(result.Problems), maxItemsToShow)
	for i := 0; i < count; i++ {
		problem := result.Problems[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", problem.ID, problem.ProblemStatement))
		if problem.SimulatedSource != "" {
			sb.WriteString(fmt.Sprintf("    Source: %s\n", problem.SimulatedSource))
		}
		if problem.PersonalizationNote != "" {
			sb.WriteString(fmt.Sprintf("    Note:   %s\n", problem.PersonalizationNote))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("DISCOVERED PROBLEMS", sb.String())
}

// PrintPlan outputs a composed action plan with tasks and insights.
func (p *Printer) PrintPlan(plan *types.ActionPlan) {
	if plan == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Plan:      %s\n", plan.CapID))
	sb.WriteString(fmt.Sprintf("Priority:  %s\n", plan.Priority))
	sb.WriteString(fmt.Sprintf("Heartbeat: %ds\n", plan.NextHeartbeatInSeconds))
	sb.WriteString("\n")

	if plan.FusionSummary != "" {
		summary := plan.FusionSummary
		if len(summary) > 50 {
			summary = summary[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("Summary: %s\n\n", summary))
	}

	if len(plan.FusedInsights) > 0 {
		sb.WriteString("Insights:\n")
		count := min(len(plan.FusedInsights), 3)
		for i := 0; i < count; i++ {
			insight := plan.FusedInsights[i]
			text := insight.Insight
			if len(text) > 45 {
				text = text[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s (%.2f)\n", text, insight.Confidence))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Tasks (%d):\n", len(plan.Tasks)))
	for _, task := range plan.Tasks {
		marker := " "
		if task.Status == types.StatusDone {
			marker = "✓"
		}
		sb.WriteString(fmt.Sprintf("  [%s] #%d %s (%s, due %dh)\n",
			marker, task.ID, task.Title, task.Owner, task.DueInHours))
	}

	if len(plan.ExecutionLog) > 0 {
		sb.WriteString("\nExecution Log:\n")
		for _, line := range plan.ExecutionLog {
			sb.WriteString(fmt.Sprintf("  %s\n", line))
		}
	}

	p.printBox("ACTION PLAN", strings.TrimSuffix(sb.String(), "\n"))
}
