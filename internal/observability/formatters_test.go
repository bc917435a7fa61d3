package observability

import (
	"strings"
	"testing"

	"github.com/forge-ai/forge/internal/types"
)

func TestPrintAnalysis(t *testing.T) {
	var buf strings.Builder
	printer := NewPrinter(&buf)

	printer.PrintAnalysis(&types.AnalysisResult{
		RefinedProblem: "Churn in week two",
		Chunks: []types.AnalysisChunk{
			{ID: 1, Title: "Existing Solutions & Gaps", KeyInsights: []string{"incumbents ignore SMBs"}},
		},
		Synthesis: types.Synthesis{SolutionGuide: []string{"Interview ten churned users"}},
	})

	out := buf.String()
	for _, want := range []string{"ANALYSIS REPORT", "Churn in week two", "Existing Solutions & Gaps", "Interview ten churned"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestPrintAnalysis_NilIsNoop(t *testing.T) {
	var buf strings.Builder
	NewPrinter(&buf).PrintAnalysis(nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestPrintDiscovery(t *testing.T) {
	var buf strings.Builder
	printer := NewPrinter(&buf)

	printer.PrintDiscovery(&types.DiscoveryResult{
		Sector: "fintech",
		Problems: []types.Problem{
			{ID: 1, ProblemStatement: "Reconciliation is manual", SimulatedSource: "industry forum"},
			{ID: 2, ProblemStatement: "Chargebacks drain small teams"},
		},
	})

	out := buf.String()
	for _, want := range []string{"DISCOVERED PROBLEMS", "fintech", "#1", "Reconciliation is manual", "industry forum", "#2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestPrintPlan(t *testing.T) {
	var buf strings.Builder
	printer := NewPrinter(&buf)

	printer.PrintPlan(&types.ActionPlan{
		CapID:                  "0b54e1c2-13d7-4f39-9f8e-0a1b2c3d4e5f",
		Priority:               types.PriorityHigh,
		NextHeartbeatInSeconds: 900,
		Tasks: []types.ActionTask{
			{ID: 1, Title: "Ship landing page", Owner: types.OwnerFounder, Status: types.StatusDone, DueInHours: 24},
			{ID: 2, Title: "Draft outreach", Owner: types.OwnerAI, Status: types.StatusPending, DueInHours: 48},
		},
		ExecutionLog: []string{"[14:30:05] Task #1 completed: Ship landing page"},
	})

	out := buf.String()
	for _, want := range []string{"ACTION PLAN", "high", "900", "Ship landing page", "[✓] #1", "[ ] #2", "Task #1 completed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
