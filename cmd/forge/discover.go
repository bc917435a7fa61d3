package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forge-ai/forge/internal/gateway"
	"github.com/forge-ai/forge/internal/llm"
	"github.com/forge-ai/forge/internal/observability"
	"github.com/forge-ai/forge/internal/orchestrator"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Scan a sector for founder-fit problems",
	Long:  "Runs a proactive sector scan and prints up to five discovered problems. With --analyze N, problem N is selected and analyzed in the same run.",
	RunE:  runDiscover,
}

var (
	discoverSector  string
	discoverAnalyze int
	discoverAPIKey  string
	discoverProfile profileFlags
)

func init() {
	discoverCmd.Flags().StringVar(&discoverSector, "sector", "", "Sector to scan (required)")
	discoverCmd.Flags().IntVar(&discoverAnalyze, "analyze", 0, "Analyze discovered problem N (1-based) after the scan")
	discoverCmd.Flags().StringVar(&discoverAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	discoverProfile.register(discoverCmd)
	_ = discoverCmd.MarkFlagRequired("sector")

	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(_ *cobra.Command, _ []string) error {
	apiKey := discoverAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	profile, err := discoverProfile.profile()
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, nil, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	orch := orchestrator.New(gateway.New(client), profile)
	printer := observability.NewPrinter(os.Stdout)

	discovery, err := orch.Discover(ctx, discoverSector)
	if err != nil {
		return err
	}
	printer.PrintDiscovery(discovery)

	if discoverAnalyze > 0 {
		analysis, err := orch.SelectProblem(ctx, discoverAnalyze-1)
		if err != nil {
			return err
		}
		printer.PrintAnalysis(analysis)
	}

	return nil
}
