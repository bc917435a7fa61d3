package gateway

import (
	"context"

	"github.com/forge-ai/forge/internal/llm"
	"github.com/forge-ai/forge/internal/prompts"
	"github.com/forge-ai/forge/internal/schemas"
	"github.com/forge-ai/forge/internal/types"
)

const opAnalyze = "analyze the problem"

// Analyze produces a structured, profile-personalized report for a
// user-submitted problem statement.
func (g *Gateway) Analyze(ctx context.Context, problem string, profile types.FounderProfile) (*types.AnalysisResult, error) {
	pj, err := profileJSON(profile)
	if err != nil {
		return nil, err
	}

	system := prompts.Format(prompts.MustGet(promptFile, "analyze-system"), map[string]string{
		"Profile": pj,
	})
	user := prompts.Format(prompts.MustGet(promptFile, "analyze-user"), map[string]string{
		"Problem": problem,
	})

	raw, err := g.client.GenerateStructured(ctx, system, user, analysisSchema(), llm.TierAdvanced)
	if err != nil {
		return nil, classify(opAnalyze, err)
	}

	var result types.AnalysisResult
	if err := decode(opAnalyze, schemas.Analysis, []byte(raw), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
