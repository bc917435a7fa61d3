package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/forge-ai/forge/internal/composer"
	"github.com/forge-ai/forge/internal/gateway"
	"github.com/forge-ai/forge/internal/llm"
	"github.com/forge-ai/forge/internal/observability"
	"github.com/forge-ai/forge/internal/types"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Compose an action plan from a saved analysis",
	Long:  "Fuses a saved analysis report with optional live data into a prioritized, executable action plan. With --watch, the advisory heartbeat counts down to zero on screen.",
	RunE:  runCompose,
}

var (
	composeAnalysisFile string
	composeLiveDataFile string
	composePriority     string
	composeWatch        bool
	composeAPIKey       string
	composeProfile      profileFlags
)

func init() {
	composeCmd.Flags().StringVar(&composeAnalysisFile, "analysis", "", "Path to a saved analysis JSON (required, see forge analyze --out)")
	composeCmd.Flags().StringVar(&composeLiveDataFile, "live-data", "", "Path to a live data JSON array (optional)")
	composeCmd.Flags().StringVar(&composePriority, "priority", "medium", "Plan priority (urgent, high, medium, low)")
	composeCmd.Flags().BoolVar(&composeWatch, "watch", false, "Run the heartbeat countdown after printing the plan")
	composeCmd.Flags().StringVar(&composeAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	composeProfile.register(composeCmd)
	_ = composeCmd.MarkFlagRequired("analysis")

	rootCmd.AddCommand(composeCmd)
}

// fileSource adapts a gateway plus a loaded analysis to the composer's
// Source interface.
type fileSource struct {
	gateway  *gateway.Gateway
	analysis *types.AnalysisResult
	profile  types.FounderProfile
}

func (f *fileSource) Compose(ctx context.Context, liveData []types.LiveData, priority types.Priority) (*types.ActionPlan, error) {
	return f.gateway.Compose(ctx, f.analysis, nil, liveData, f.profile, priority)
}

func runCompose(_ *cobra.Command, _ []string) error {
	apiKey := composeAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	priority, err := parsePriority(composePriority)
	if err != nil {
		return err
	}

	analysisData, err := os.ReadFile(composeAnalysisFile)
	if err != nil {
		return fmt.Errorf("failed to read analysis file: %w", err)
	}
	var analysis types.AnalysisResult
	if err := json.Unmarshal(analysisData, &analysis); err != nil {
		return fmt.Errorf("failed to parse analysis file: %w", err)
	}

	var liveData []types.LiveData
	if composeLiveDataFile != "" {
		data, err := os.ReadFile(composeLiveDataFile)
		if err != nil {
			return fmt.Errorf("failed to read live data file: %w", err)
		}
		if err := json.Unmarshal(data, &liveData); err != nil {
			return fmt.Errorf("failed to parse live data file: %w", err)
		}
	}

	profile, err := composeProfile.profile()
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, nil, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	source := &fileSource{
		gateway:  gateway.New(client),
		analysis: &analysis,
		profile:  profile.Snapshot(),
	}
	comp := composer.New(source)

	plan, err := comp.Compose(ctx, liveData, priority)
	if err != nil {
		return err
	}
	observability.NewPrinter(os.Stdout).PrintPlan(plan)

	if composeWatch {
		watchHeartbeat(comp)
	}
	return nil
}

// watchHeartbeat counts the advisory heartbeat down to zero, one tick per
// second. The countdown is display-only.
func watchHeartbeat(comp *composer.Composer) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	fmt.Fprintf(os.Stdout, "Next heartbeat in %ds\n", comp.Heartbeat())
	for range ticker.C {
		remaining := comp.Tick()
		fmt.Fprintf(os.Stdout, "\rNext heartbeat in %ds ", remaining)
		if remaining == 0 {
			fmt.Fprintln(os.Stdout, "\nHeartbeat reached. Check in on your plan.")
			return
		}
	}
}
