package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/forge-ai/forge/internal/llm"
	"github.com/forge-ai/forge/internal/prompts"
	"github.com/forge-ai/forge/internal/schemas"
	"github.com/forge-ai/forge/internal/types"
)

const opCompose = "compose the action plan"

// Compose fuses an analysis, optional discovered opportunities, and an
// optional live data stream into an executable action plan. The heartbeat
// interval is recomputed locally from the plan's priority after decoding,
// and a missing or malformed cap_id is replaced with a fresh UUID, so those
// fields never depend on the model following instructions.
func (g *Gateway) Compose(ctx context.Context, analysis *types.AnalysisResult, opportunities *types.DiscoveryResult, liveData []types.LiveData, profile types.FounderProfile, priority types.Priority) (*types.ActionPlan, error) {
	if analysis == nil {
		return nil, fmt.Errorf("compose requires an analysis")
	}

	pj, err := profileJSON(profile)
	if err != nil {
		return nil, err
	}
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize analysis: %w", err)
	}
	opportunitiesJSON := []byte("null")
	if opportunities != nil {
		if opportunitiesJSON, err = json.Marshal(opportunities); err != nil {
			return nil, fmt.Errorf("failed to serialize opportunities: %w", err)
		}
	}
	liveDataJSON := []byte("[]")
	if len(liveData) > 0 {
		if liveDataJSON, err = json.Marshal(liveData); err != nil {
			return nil, fmt.Errorf("failed to serialize live data: %w", err)
		}
	}

	system := prompts.Format(prompts.MustGet(promptFile, "compose-system"), map[string]string{
		"Profile":       pj,
		"Analysis":      string(analysisJSON),
		"Opportunities": string(opportunitiesJSON),
		"LiveData":      string(liveDataJSON),
		"Priority":      string(priority),
	})
	user := prompts.MustGet(promptFile, "compose-user")

	raw, err := g.client.GenerateStructured(ctx, system, user, planSchema(), llm.TierAdvanced)
	if err != nil {
		return nil, classify(opCompose, err)
	}

	var plan types.ActionPlan
	if err := decode(opCompose, schemas.Plan, []byte(raw), &plan); err != nil {
		return nil, err
	}

	plan.NextHeartbeatInSeconds = types.HeartbeatSeconds(plan.Priority)
	if _, err := uuid.Parse(plan.CapID); err != nil {
		plan.CapID = uuid.NewString()
	}
	if plan.GeneratedAt == "" {
		plan.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return &plan, nil
}
