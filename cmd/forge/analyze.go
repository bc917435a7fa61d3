package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forge-ai/forge/internal/gateway"
	"github.com/forge-ai/forge/internal/llm"
	"github.com/forge-ai/forge/internal/observability"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a startup problem into a structured report",
	Long:  "Runs the five-dimension problem analysis for the given problem statement and founder profile, and prints the report. Use --out to save the raw JSON for later composition.",
	RunE:  runAnalyze,
}

var (
	analyzeProblem string
	analyzeOutFile string
	analyzeAPIKey  string
	analyzeProfile profileFlags
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeProblem, "problem", "", "Problem statement to analyze (required)")
	analyzeCmd.Flags().StringVarP(&analyzeOutFile, "out", "o", "", "Path to write the analysis JSON (optional)")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	analyzeProfile.register(analyzeCmd)
	_ = analyzeCmd.MarkFlagRequired("problem")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	apiKey := analyzeAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	profile, err := analyzeProfile.profile()
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, nil, apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	result, err := gateway.New(client).Analyze(ctx, analyzeProblem, profile.Snapshot())
	if err != nil {
		return err
	}

	observability.NewPrinter(os.Stdout).PrintAnalysis(result)

	if analyzeOutFile != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal analysis: %w", err)
		}
		if err := os.WriteFile(analyzeOutFile, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Analysis saved to: %s\n", analyzeOutFile)
	}

	return nil
}
